package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pizocrm/internal/models"
	"pizocrm/internal/pdf"
	"pizocrm/internal/services"
)

// ReportHandler serves the read-only views: board, KPI, CSV and PDF.
type ReportHandler struct {
	Leads    *services.LeadService
	Pipeline *services.PipelineService
	Exporter *services.CSVExporter
	PDF      pdf.Generator
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewReportHandler(leads *services.LeadService, pipeline *services.PipelineService, exporter *services.CSVExporter, gen pdf.Generator, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{Leads: leads, Pipeline: pipeline, Exporter: exporter, PDF: gen, Logger: logger, Now: time.Now}
}

// @Summary      Pipeline board
// @Description  Leads grouped into the seven stages with per-column totals and the KPI summary
// @Tags         Pipeline
// @Produce      json
// @Param        transactionType  query  string  false  "all | renta | venta | ventaRenta"
// @Param        showDormant      query  bool    false  "include snoozed leads"
// @Param        asesor           query  string  false  "advisor (elevated roles)"
// @Param        search           query  string  false  "free text"
// @Success      200  {object}  services.Board
// @Failure      400  {object}  map[string]string
// @Router       /pipeline [get]
func (h *ReportHandler) Board(c *gin.Context) {
	var f models.LeadFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	board, err := h.Pipeline.Board(c.Request.Context(), scopeFilter(identity(c), f))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// @Summary      KPI summary
// @Tags         Reports
// @Produce      json
// @Success      200  {object}  services.Summary
// @Router       /kpi [get]
func (h *ReportHandler) KPI(c *gin.Context) {
	var f models.LeadFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	leads, err := h.Leads.List(c.Request.Context(), scopeFilter(identity(c), f))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, services.Summarize(leads, h.Now()))
}

// ExportCSV downloads every lead the caller can see, dormant included.
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	f := scopeFilter(identity(c), models.LeadFilter{ShowDormant: true})
	leads, err := h.Leads.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	name := services.ExportFileName(h.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, services.CSVContentType, h.Exporter.Export(leads))
}

// PipelinePDF renders the board summary as an A4 report.
func (h *ReportHandler) PipelinePDF(c *gin.Context) {
	id := identity(c)
	f := scopeFilter(id, models.LeadFilter{ShowDormant: true, Asesor: c.Query("asesor")})
	leads, err := h.Leads.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	now := h.Now()
	board := services.BuildBoard(leads, now)
	data := pdf.PipelineReportData{
		GeneratedAt: now,
		Scope:       "Todos los asesores",
		Total:       board.Summary.Total,
		Active:      board.Summary.ActiveCount,
		Dormant:     board.Summary.DormantCount,
		TotalValue:  board.Summary.TotalValueLabel,
		Commission:  board.Summary.PotentialCommissionLabel,
	}
	if f.Asesor != "" && f.Asesor != "all" {
		data.Scope = f.Asesor
	}
	for _, t := range models.TransactionTypes {
		data.ByType = append(data.ByType, pdf.KV{Key: string(t), Value: strconv.Itoa(board.Summary.CountByTransactionType[t])})
	}
	for _, col := range board.Columns {
		data.Columns = append(data.Columns, pdf.ColumnRow{
			Status:     string(col.Status),
			Count:      col.Count,
			Value:      services.FormatMXN(col.TotalValue),
			Commission: services.FormatMXN(col.PotentialCommission),
		})
	}

	var buf bytes.Buffer
	if err := h.PDF.PipelineReport(&buf, data); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="pipeline_%s.pdf"`, now.Format("2006-01-02")))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

