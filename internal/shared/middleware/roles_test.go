package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libreria-backend/internal/shared/response"
)

func newRolesRouter(principal *Principal, required ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/guarded",
		func(c *gin.Context) {
			if principal != nil {
				c.Set(PrincipalKey, principal)
			}
			c.Next()
		},
		RequireRoles(required...),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		},
	)
	return router
}

func doGuarded(t *testing.T, router *gin.Engine) (*httptest.ResponseRecorder, response.ErrorBody) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	router.ServeHTTP(rec, req)

	var body response.ErrorBody
	if rec.Code != http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestRequireRoles_MatchingRoleAllows(t *testing.T) {
	principal := &Principal{ID: uuid.New(), Name: "Ana", Roles: []string{"user", "admin"}}
	router := newRolesRouter(principal, "admin")

	rec, _ := doGuarded(t, router)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoles_AnyOverlapIsEnough(t *testing.T) {
	principal := &Principal{ID: uuid.New(), Name: "Ana", Roles: []string{"editor"}}
	router := newRolesRouter(principal, "admin", "editor")

	rec, _ := doGuarded(t, router)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoles_NoOverlapForbiddenNamesUser(t *testing.T) {
	principal := &Principal{ID: uuid.New(), Name: "Ana", Roles: []string{"user"}}
	router := newRolesRouter(principal, "admin")

	rec, body := doGuarded(t, router)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "El usuario Ana no tiene permisos para acceder a este recurso", body.Error)
	assert.Equal(t, 403, body.StatusCode)
	assert.NotEmpty(t, body.Timestamp)
}

func TestRequireRoles_MissingPrincipalIsBadRequest(t *testing.T) {
	router := newRolesRouter(nil, "admin")

	rec, body := doGuarded(t, router)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No se encontró información del usuario", body.Error)
}

func TestRequireRoles_NilRolesForbidden(t *testing.T) {
	principal := &Principal{ID: uuid.New(), Name: "Ana", Roles: nil}
	router := newRolesRouter(principal, "admin")

	rec, _ := doGuarded(t, router)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoles_NoRequirementAllowsAnyone(t *testing.T) {
	router := newRolesRouter(nil)

	rec, _ := doGuarded(t, router)
	assert.Equal(t, http.StatusOK, rec.Code)
}
