package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"libreria-backend/internal/domains/author"
	"libreria-backend/internal/shared/response"
)

type AuthorHandler struct {
	service author.Service
}

func NewAuthorHandler(service author.Service) *AuthorHandler {
	return &AuthorHandler{service: service}
}

// Create - POST /authors
func (h *AuthorHandler) Create(c *gin.Context) {
	var req author.CreateAuthorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Cuerpo de la petición inválido")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err, uuid.Nil)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// FindAll - GET /authors
func (h *AuthorHandler) FindAll(c *gin.Context) {
	resp, err := h.service.FindAll(c.Request.Context())
	if err != nil {
		response.InternalServerError(c)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// FindOne - GET /authors/:id
func (h *AuthorHandler) FindOne(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	resp, err := h.service.FindOne(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, id)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Update - PATCH /authors/:id
func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req author.UpdateAuthorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Cuerpo de la petición inválido")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleError(c, err, id)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Remove - DELETE /authors/:id
func (h *AuthorHandler) Remove(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		h.handleError(c, err, id)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Autor eliminado exitosamente"})
}

func (h *AuthorHandler) handleError(c *gin.Context, err error, id uuid.UUID) {
	switch {
	case errors.Is(err, author.ErrNotFound):
		response.NotFound(c, fmt.Sprintf("Autor con ID %s no encontrado", id))
	case errors.Is(err, author.ErrDuplicateName):
		response.Conflict(c, author.ErrDuplicateName.Error())
	default:
		response.InternalServerError(c)
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return uuid.Nil, false
	}
	return id, true
}
