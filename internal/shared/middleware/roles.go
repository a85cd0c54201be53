package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"libreria-backend/internal/shared/response"
)

// RequireRoles allows the request when the principal holds at least one of
// the listed roles. Routes without role requirements simply omit this
// middleware; an empty list allows everyone through.
func RequireRoles(roles ...string) gin.HandlerFunc {
	required := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		required[role] = struct{}{}
	}

	return func(c *gin.Context) {
		if len(required) == 0 {
			c.Next()
			return
		}

		principal, ok := PrincipalFrom(c)
		if !ok || principal == nil {
			// Distinct from 403: the route is misconfigured or the auth
			// middleware did not run.
			response.BadRequest(c, "No se encontró información del usuario")
			return
		}

		for _, role := range principal.Roles {
			if _, allowed := required[role]; allowed {
				c.Next()
				return
			}
		}

		response.Forbidden(c, fmt.Sprintf(
			"El usuario %s no tiene permisos para acceder a este recurso",
			principal.Name,
		))
	}
}
