package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"libreria-backend/internal/domains/genre"
	"libreria-backend/internal/shared/response"
)

type GenreHandler struct {
	service genre.Service
}

func NewGenreHandler(service genre.Service) *GenreHandler {
	return &GenreHandler{service: service}
}

// Create - POST /genres
func (h *GenreHandler) Create(c *gin.Context) {
	var req genre.CreateGenreReq
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

// FindAll - GET /genres
func (h *GenreHandler) FindAll(c *gin.Context) {
	resp, err := h.service.FindAll(c.Request.Context())
	if err != nil {
		response.InternalServerError(c)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// FindOne - GET /genres/:id
func (h *GenreHandler) FindOne(c *gin.Context) {
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

// Update - PATCH /genres/:id
func (h *GenreHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req genre.UpdateGenreReq
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

// Remove - DELETE /genres/:id
func (h *GenreHandler) Remove(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		h.handleError(c, err, id)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Género eliminado exitosamente"})
}

func (h *GenreHandler) handleError(c *gin.Context, err error, id uuid.UUID) {
	switch {
	case errors.Is(err, genre.ErrNotFound):
		response.NotFound(c, fmt.Sprintf("Género con ID %s no encontrado", id))
	case errors.Is(err, genre.ErrDuplicateName):
		response.Conflict(c, genre.ErrDuplicateName.Error())
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
