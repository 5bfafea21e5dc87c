package main

import (
	"fmt"
	"os"

	"pizocrm/internal/app"
)

// @title Pizo CRM API
// @version 1.0
// @description Lead pipeline, dormancy, KPI, CSV export and policy calculator.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := app.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "pizocrm:", err)
		os.Exit(1)
	}
}
