package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"libreria-backend/internal/domains/editorial"
	"libreria-backend/internal/shared/response"
)

type EditorialHandler struct {
	service editorial.Service
}

func NewEditorialHandler(service editorial.Service) *EditorialHandler {
	return &EditorialHandler{service: service}
}

// Create - POST /editorials
func (h *EditorialHandler) Create(c *gin.Context) {
	var req editorial.CreateEditorialReq
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

// FindAll - GET /editorials
func (h *EditorialHandler) FindAll(c *gin.Context) {
	resp, err := h.service.FindAll(c.Request.Context())
	if err != nil {
		response.InternalServerError(c)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// FindOne - GET /editorials/:id
func (h *EditorialHandler) FindOne(c *gin.Context) {
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

// Update - PATCH /editorials/:id
func (h *EditorialHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req editorial.UpdateEditorialReq
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

// Remove - DELETE /editorials/:id
func (h *EditorialHandler) Remove(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		h.handleError(c, err, id)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Editorial eliminada exitosamente"})
}

func (h *EditorialHandler) handleError(c *gin.Context, err error, id uuid.UUID) {
	switch {
	case errors.Is(err, editorial.ErrNotFound):
		response.NotFound(c, fmt.Sprintf("Editorial con ID %s no encontrada", id))
	case errors.Is(err, editorial.ErrDuplicateName):
		response.Conflict(c, editorial.ErrDuplicateName.Error())
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
