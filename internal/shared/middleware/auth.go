package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"libreria-backend/internal/shared/response"
	"libreria-backend/pkg/jwt"
)

const (
	// PrincipalKey is the gin context key holding the authenticated user.
	PrincipalKey = "principal"
	// UserIDKey is the gin context key holding the authenticated user's id.
	UserIDKey = "userID"
)

// Principal is the authenticated user attached to the request context.
type Principal struct {
	ID    uuid.UUID
	Email string
	Name  string
	Roles []string
}

// PrincipalLoader resolves the subject of a verified token to a live user.
// Returning (nil, nil) means the user no longer exists or is inactive.
type PrincipalLoader func(ctx context.Context, userID uuid.UUID) (*Principal, error)

// Auth verifies the access token (Authorization header, falling back to the
// access_token cookie) and loads the principal into the context.
func Auth(manager *jwt.Manager, load PrincipalLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "Token de acceso requerido")
			return
		}

		claims, err := manager.VerifyAccessToken(token)
		if err != nil {
			response.Unauthorized(c, "Token inválido o expirado")
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			response.Unauthorized(c, "Token inválido o expirado")
			return
		}

		principal, err := load(c.Request.Context(), userID)
		if err != nil {
			response.InternalServerError(c)
			return
		}
		if principal == nil {
			response.Unauthorized(c, "Token inválido o expirado")
			return
		}

		c.Set(PrincipalKey, principal)
		c.Set(UserIDKey, principal.ID)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie("access_token")
	if err != nil {
		return ""
	}
	return cookie
}

// PrincipalFrom reads the principal set by Auth. ok is false when the route
// was registered without authentication.
func PrincipalFrom(c *gin.Context) (*Principal, bool) {
	value, exists := c.Get(PrincipalKey)
	if !exists {
		return nil, false
	}
	principal, ok := value.(*Principal)
	return principal, ok
}
