package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"libreria-backend/internal/domains/auth"
	"libreria-backend/internal/shared/middleware"
	"libreria-backend/internal/shared/response"
)

const cookieMaxAge = 24 * 60 * 60 // seconds

// AuthHandler exposes the authentication endpoints. Tokens travel both in
// the JSON body and as HTTPOnly cookies.
type AuthHandler struct {
	service      auth.Service
	secureCookie bool
}

func NewAuthHandler(service auth.Service, production bool) *AuthHandler {
	return &AuthHandler{
		service:      service,
		secureCookie: production,
	}
}

// Register - POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req auth.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Cuerpo de la petición inválido")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			response.Conflict(c, auth.ErrEmailTaken.Error())
			return
		}
		response.InternalServerError(c)
		return
	}

	h.setTokenCookies(c, resp)
	response.Success(c, http.StatusCreated, resp)
}

// Login - POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Cuerpo de la petición inválido")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			response.Unauthorized(c, auth.ErrInvalidCredentials.Error())
			return
		}
		response.InternalServerError(c)
		return
	}

	h.setTokenCookies(c, resp)
	response.Success(c, http.StatusOK, resp)
}

// Refresh - POST /auth/refresh
// The token comes from the body, falling back to the refresh_token cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req auth.RefreshReq
	_ = c.ShouldBindJSON(&req)
	if req.RefreshToken == "" {
		if cookie, err := c.Cookie("refresh_token"); err == nil {
			req.RefreshToken = cookie
		}
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidRefreshToken) {
			response.Unauthorized(c, auth.ErrInvalidRefreshToken.Error())
			return
		}
		response.InternalServerError(c)
		return
	}

	h.setTokenCookies(c, resp)
	response.Success(c, http.StatusOK, resp)
}

// Logout - POST /auth/logout (authenticated)
func (h *AuthHandler) Logout(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Unauthorized(c, "Token de acceso requerido")
		return
	}

	if err := h.service.Logout(c.Request.Context(), principal.ID); err != nil {
		response.InternalServerError(c)
		return
	}

	h.clearTokenCookies(c)
	response.Success(c, http.StatusOK, gin.H{"message": "Logout exitoso"})
}

// Validate - GET /auth/validate
// Best effort: always 200 with a boolean, token from query or header.
func (h *AuthHandler) Validate(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = extractBearer(c)
	}

	valid := token != "" && h.service.ValidateToken(c.Request.Context(), token)
	response.Success(c, http.StatusOK, auth.ValidateResp{Valid: valid})
}

func (h *AuthHandler) setTokenCookies(c *gin.Context, resp *auth.AuthResp) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("access_token", resp.AccessToken, cookieMaxAge, "/", "", h.secureCookie, true)
	c.SetCookie("refresh_token", resp.RefreshToken, cookieMaxAge, "/", "", h.secureCookie, true)
}

func (h *AuthHandler) clearTokenCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("access_token", "", -1, "/", "", h.secureCookie, true)
	c.SetCookie("refresh_token", "", -1, "/", "", h.secureCookie, true)
}

func extractBearer(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
