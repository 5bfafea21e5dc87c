package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"pizocrm/internal/models"
)

const (
	ctxAsesor = "asesor"
	ctxRoleID = "role_id"
	ctxEmail  = "email"
)

// Claims carried by the bearer token. Tokens are issued by the identity
// provider; this service only verifies them.
type Claims struct {
	Asesor string `json:"asesor"`
	RoleID int    `json:"role_id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// endpoints reachable without a token
func isPublicPath(path string) bool {
	switch path {
	case "/healthz", "/metrics", "/public/leads":
		return true
	}
	return strings.HasPrefix(path, "/swagger")
}

func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		if isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(strings.TrimSpace(parts[1]), claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return secret, nil
		}, jwt.WithLeeway(2*time.Minute), jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		if claims.Asesor == "" && claims.RoleID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token carries no identity"})
			return
		}

		c.Set(ctxAsesor, claims.Asesor)
		c.Set(ctxRoleID, claims.RoleID)
		c.Set(ctxEmail, claims.Email)
		c.Next()
	}
}

// IdentityFrom reads what AuthMiddleware stored.
func IdentityFrom(c *gin.Context) (models.Identity, bool) {
	roleV, ok := c.Get(ctxRoleID)
	if !ok {
		return models.Identity{}, false
	}
	roleID, _ := roleV.(int)
	return models.Identity{
		Asesor: c.GetString(ctxAsesor),
		RoleID: roleID,
		Email:  c.GetString(ctxEmail),
	}, true
}

// SignToken issues a token for the given identity. Used by tests and the
// local dev tooling; production tokens come from the identity provider.
func SignToken(secret []byte, id models.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Asesor: id.Asesor,
		RoleID: id.RoleID,
		Email:  id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
