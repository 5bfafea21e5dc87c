package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pizocrm/internal/models"
	"pizocrm/internal/services"
)

type PromoterHandler struct {
	Service *services.PromoterService
	Logger  *zap.Logger
}

func NewPromoterHandler(service *services.PromoterService, logger *zap.Logger) *PromoterHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PromoterHandler{Service: service, Logger: logger}
}

type createPromoterRequest struct {
	Name  string `json:"name" binding:"required"`
	Code  string `json:"code"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// @Summary      Register a promoter
// @Tags         Promoters
// @Accept       json
// @Produce      json
// @Param        promoter  body      createPromoterRequest  true  "Promoter"
// @Success      201       {object}  models.Promoter
// @Failure      409       {object}  map[string]string
// @Router       /promoters [post]
func (h *PromoterHandler) Create(c *gin.Context) {
	var req createPromoterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.Service.Create(c.Request.Context(), &models.Promoter{
		Name: req.Name, Code: req.Code, Email: req.Email, Phone: req.Phone,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PromoterHandler) List(c *gin.Context) {
	list, err := h.Service.List(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PromoterHandler) Get(c *gin.Context) {
	p, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PromoterHandler) SetActive(c *gin.Context) {
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.Service.SetActive(c.Request.Context(), c.Param("id"), *req.Active)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Leads lists the promoter's referred leads the caller may see.
func (h *PromoterHandler) Leads(c *gin.Context) {
	asesor, ok := leadScope(identity(c))
	if !ok {
		forbidden(c)
		return
	}
	out, err := h.Service.Referred(c.Request.Context(), c.Param("id"), asesor)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
