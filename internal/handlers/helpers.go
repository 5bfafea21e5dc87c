package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pizocrm/internal/authz"
	"pizocrm/internal/middleware"
	"pizocrm/internal/models"
	"pizocrm/internal/services"
)

func identity(c *gin.Context) models.Identity {
	id, _ := middleware.IdentityFrom(c)
	return id
}

// scopeFilter pins advisors to their own pipeline; elevated roles may pick one.
func scopeFilter(id models.Identity, f models.LeadFilter) models.LeadFilter {
	if !authz.SeesAllLeads(id.RoleID) {
		f.Asesor = id.Asesor
	}
	return f
}

// respondError maps service errors onto HTTP statuses. Anything unknown is a
// 500 with a generic message; the cause goes to the log only.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrLeadNotFound), errors.Is(err, services.ErrPromoterNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrTransitionNeedsConfirmation), errors.Is(err, services.ErrConfirmationRequired):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "needs_confirmation": true})
	case errors.Is(err, services.ErrPromoterNameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// leadScope is the advisor a caller is limited to, "" for roles that see every
// lead. Advisors without an asesor claim get nothing.
func leadScope(id models.Identity) (string, bool) {
	if authz.SeesAllLeads(id.RoleID) {
		return "", true
	}
	a := strings.TrimSpace(id.Asesor)
	if a == "" || a == "all" {
		return "", false
	}
	return a, true
}

func forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
}

func queryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}
