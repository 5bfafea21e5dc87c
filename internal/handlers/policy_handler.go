package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pizocrm/internal/services"
)

type PolicyHandler struct {
	DefaultDiscount decimal.Decimal
	Logger          *zap.Logger
}

func NewPolicyHandler(defaultDiscount float64, logger *zap.Logger) *PolicyHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PolicyHandler{DefaultDiscount: decimal.NewFromFloat(defaultDiscount), Logger: logger}
}

// @Summary      Legal policy cost
// @Description  Bracketed cost below 60000 of monthly rent, a percentage from there on
// @Tags         Policy
// @Produce      json
// @Param        rent      query     number  true   "monthly rent"
// @Param        type      query     string  false  "kanun | elemental (default)"
// @Param        discount  query     number  false  "percent, default 35"
// @Success      200       {object}  services.PolicyQuote
// @Failure      400       {object}  map[string]string
// @Router       /policy/cost [get]
func (h *PolicyHandler) Cost(c *gin.Context) {
	rent, err := decimal.NewFromString(c.Query("rent"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrInvalidRent.Error()})
		return
	}
	typ, err := services.ParsePolicyType(c.Query("type"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	discount := h.DefaultDiscount
	if raw := c.Query("discount"); raw != "" {
		if discount, err = decimal.NewFromString(raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrInvalidDiscount.Error()})
			return
		}
	}

	quote, err := services.QuotePolicy(rent, typ, discount)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Brackets returns the tier's fixed-cost table.
func (h *PolicyHandler) Brackets(c *gin.Context) {
	typ, err := services.ParsePolicyType(c.Query("type"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"type":      typ,
		"brackets":  services.PolicyBrackets(typ),
		"threshold": services.PercentageThreshold,
	})
}
