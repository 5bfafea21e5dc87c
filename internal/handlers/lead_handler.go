package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pizocrm/internal/authz"
	"pizocrm/internal/models"
	"pizocrm/internal/services"
)

type LeadHandler struct {
	Leads    *services.LeadService
	Pipeline *services.PipelineService
	Dormancy *services.DormancyService
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewLeadHandler(leads *services.LeadService, pipeline *services.PipelineService, dormancy *services.DormancyService, logger *zap.Logger) *LeadHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadHandler{Leads: leads, Pipeline: pipeline, Dormancy: dormancy, Logger: logger, Now: time.Now}
}

// LeadDetail is a lead with its derived dormancy label and commission split.
type LeadDetail struct {
	models.Lead
	DormantDaysRemaining *int                         `json:"dormantDaysRemaining,omitempty"`
	DormantStatus        *string                      `json:"dormantStatus,omitempty"`
	Commission           services.CommissionBreakdown `json:"commission"`
}

func (h *LeadHandler) detail(l *models.Lead) LeadDetail {
	now := h.Now()
	return LeadDetail{
		Lead:                 *l,
		DormantDaysRemaining: services.DaysRemaining(l, now),
		DormantStatus:        services.FormatDormantStatus(l, now),
		Commission:           services.BreakdownCommission(l),
	}
}

// loadWritable fetches the lead and checks the caller may change it. It has
// already responded when ok is false.
func (h *LeadHandler) loadWritable(c *gin.Context) (*models.Lead, bool) {
	lead, err := h.Leads.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return nil, false
	}
	if !authz.CanWriteLead(identity(c), lead) {
		forbidden(c)
		return nil, false
	}
	return lead, true
}

// @Summary      Create a lead
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        lead  body      models.Lead  true  "Lead"
// @Success      201   {object}  LeadDetail
// @Failure      400   {object}  map[string]string
// @Router       /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	var lead models.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := identity(c)
	// the owner comes from the token unless an elevated role assigns it
	if !authz.IsElevated(id.RoleID) || strings.TrimSpace(lead.Asesor) == "" {
		lead.Asesor = id.Asesor
	}
	lead.ID = ""
	lead.Dormido = false
	lead.DormidoHasta = nil
	if lead.Estatus == models.StatusForm {
		lead.Estatus = models.StatusPropuesta
	}

	created, err := h.Leads.Create(c.Request.Context(), &lead)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, h.detail(created))
}

// PublicLeadRequest is what the website contact form posts.
type PublicLeadRequest struct {
	NombreCompleto  string                 `json:"nombreCompleto" binding:"required"`
	Telefono        string                 `json:"telefono"`
	Correo          string                 `json:"correo"`
	PropertyType    string                 `json:"propertyType"`
	TransactionType models.TransactionType `json:"transactionType"`
	CondoName       string                 `json:"condoName"`
	Price           float64                `json:"price"`
	OrigenTexto     string                 `json:"origenTexto"`
	OrigenURL       string                 `json:"origenUrl"`
	Notas           string                 `json:"notas"`
	PromotorID      string                 `json:"promotorId"`
}

// @Summary      Website intake
// @Description  Creates a lead in the form stage without authentication
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        lead  body      PublicLeadRequest  true  "Contact form"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /public/leads [post]
func (h *LeadHandler) PublicIntake(c *gin.Context) {
	var req PublicLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Telefono) == "" && strings.TrimSpace(req.Correo) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "telefono or correo is required"})
		return
	}
	lead := models.Lead{
		NombreCompleto:  strings.TrimSpace(req.NombreCompleto),
		Telefono:        strings.TrimSpace(req.Telefono),
		Correo:          strings.TrimSpace(req.Correo),
		PropertyType:    req.PropertyType,
		TransactionType: req.TransactionType,
		CondoName:       req.CondoName,
		Price:           req.Price,
		OrigenTexto:     req.OrigenTexto,
		OrigenURL:       req.OrigenURL,
		Notas:           req.Notas,
		PromotorID:      req.PromotorID,
		Estatus:         models.StatusForm,
	}
	created, err := h.Leads.Create(c.Request.Context(), &lead)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": created.ID})
}

// @Summary      List leads
// @Tags         Leads
// @Produce      json
// @Param        transactionType  query  string  false  "all | renta | venta | ventaRenta"
// @Param        showDormant      query  bool    false  "include snoozed leads"
// @Param        asesor           query  string  false  "advisor (elevated roles)"
// @Param        search           query  string  false  "free text"
// @Success      200  {array}   models.Lead
// @Router       /leads [get]
func (h *LeadHandler) List(c *gin.Context) {
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
	c.JSON(http.StatusOK, leads)
}

func (h *LeadHandler) GetByID(c *gin.Context) {
	lead, err := h.Leads.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	if !authz.CanReadLead(identity(c), lead) {
		forbidden(c)
		return
	}
	c.JSON(http.StatusOK, h.detail(lead))
}

func (h *LeadHandler) Update(c *gin.Context) {
	current, ok := h.loadWritable(c)
	if !ok {
		return
	}
	var patch models.LeadPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !authz.IsElevated(identity(c).RoleID) {
		patch.Asesor = nil
	}
	updated, err := h.Leads.Update(c.Request.Context(), current.ID, patch)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, h.detail(updated))
}

// @Summary      Delete a lead
// @Tags         Leads
// @Param        id       path   string  true  "Lead ID"
// @Param        confirm  query  bool    true  "must be true"
// @Success      204
// @Failure      409  {object}  map[string]interface{}
// @Router       /leads/{id} [delete]
func (h *LeadHandler) Delete(c *gin.Context) {
	if !queryBool(c, "confirm") {
		respondError(c, h.Logger, services.ErrConfirmationRequired)
		return
	}
	current, ok := h.loadWritable(c)
	if !ok {
		return
	}
	if err := h.Pipeline.DeleteLead(c.Request.Context(), current.ID, true); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type changeStatusRequest struct {
	To      models.LeadStatus `json:"to" binding:"required"`
	Confirm bool              `json:"confirm"`
}

// @Summary      Move a lead to another stage
// @Description  Leaving cerrada or cancelada answers 409 unless confirm is true
// @Tags         Pipeline
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Lead ID"
// @Param        body  body      changeStatusRequest  true  "Target stage"
// @Success      200   {object}  LeadDetail
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]interface{}
// @Router       /leads/{id}/status [post]
func (h *LeadHandler) ChangeStatus(c *gin.Context) {
	current, ok := h.loadWritable(c)
	if !ok {
		return
	}
	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.Pipeline.ChangeStatus(c.Request.Context(), current.ID, req.To, req.Confirm)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, h.detail(updated))
}

type dormancyRequest struct {
	Days *int `json:"days" binding:"required"`
}

// SetDormancy snoozes ({"days": 7}) or wakes ({"days": 0}) a lead.
func (h *LeadHandler) SetDormancy(c *gin.Context) {
	current, ok := h.loadWritable(c)
	if !ok {
		return
	}
	var req dormancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.Dormancy.SetDormant(c.Request.Context(), current.ID, *req.Days)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, h.detail(updated))
}

type qualityRequest struct {
	Calidad *int `json:"calidad" binding:"required"`
}

func (h *LeadHandler) UpdateQuality(c *gin.Context) {
	current, ok := h.loadWritable(c)
	if !ok {
		return
	}
	var req qualityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.Leads.UpdateQuality(c.Request.Context(), current.ID, *req.Calidad)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, h.detail(updated))
}

// SnoozeOptions lists the selectable snooze lengths for the UI menu.
func (h *LeadHandler) SnoozeOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"days": services.SnoozeDays})
}
