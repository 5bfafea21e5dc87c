package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"pizocrm/internal/authz"
	"pizocrm/internal/handlers"
	"pizocrm/internal/middleware"
)

type Handlers struct {
	Lead     *handlers.LeadHandler
	Report   *handlers.ReportHandler
	Policy   *handlers.PolicyHandler
	Promoter *handlers.PromoterHandler
	Health   *handlers.HealthHandler
}

func SetupRoutes(r *gin.Engine, h Handlers, jwtSecret []byte) *gin.Engine {
	// ---- public
	r.GET("/healthz", h.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.POST("/public/leads", h.Lead.PublicIntake)

	// ---- protected
	api := r.Group("/")
	api.Use(middleware.AuthMiddleware(jwtSecret))
	api.Use(middleware.ReadOnlyGuard())

	api.GET("/pipeline", h.Report.Board)
	api.GET("/kpi", h.Report.KPI)
	api.GET("/reports/pipeline.pdf", h.Report.PipelinePDF)
	api.GET("/policy/cost", h.Policy.Cost)
	api.GET("/policy/brackets", h.Policy.Brackets)

	leads := api.Group("/leads")
	{
		leads.GET("", h.Lead.List)
		leads.POST("", h.Lead.Create)
		leads.GET("/export.csv", h.Report.ExportCSV)
		leads.GET("/snooze-options", h.Lead.SnoozeOptions)
		leads.GET("/:id", h.Lead.GetByID)
		leads.PUT("/:id", h.Lead.Update)
		leads.DELETE("/:id", h.Lead.Delete)
		leads.POST("/:id/status", h.Lead.ChangeStatus)
		leads.POST("/:id/dormancy", h.Lead.SetDormancy)
		leads.POST("/:id/quality", h.Lead.UpdateQuality)
	}

	promoters := api.Group("/promoters")
	{
		promoters.GET("", h.Promoter.List)
		promoters.GET("/:id", h.Promoter.Get)
		promoters.GET("/:id/leads", h.Promoter.Leads)

		manage := promoters.Group("", middleware.RequireRoles(authz.RoleOperations, authz.RoleManagement, authz.RoleAdmin))
		manage.POST("", h.Promoter.Create)
		manage.POST("/:id/active", h.Promoter.SetActive)
	}

	return r
}
