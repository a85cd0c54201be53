package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"libreria-backend/internal/domains/book"
	"libreria-backend/internal/shared/middleware"
	"libreria-backend/internal/shared/response"
)

type BookHandler struct {
	service book.Service
}

func NewBookHandler(service book.Service) *BookHandler {
	return &BookHandler{service: service}
}

// Create - POST /books
func (h *BookHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req book.CreateBookReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Cuerpo de la petición inválido")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req, actor)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// FindAll - GET /books
func (h *BookHandler) FindAll(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	resp, err := h.service.FindAll(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// FindAvailable - GET /books/available
func (h *BookHandler) FindAvailable(c *gin.Context) {
	resp, err := h.service.FindAvailable(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ExportCSV - GET /books/export/csv
func (h *BookHandler) ExportCSV(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	data, err := h.service.ExportCSV(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="libros.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// FindOne - GET /books/:id
func (h *BookHandler) FindOne(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	resp, err := h.service.FindOne(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Update - PATCH /books/:id
func (h *BookHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req book.UpdateBookReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Cuerpo de la petición inválido")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, &req, actor)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Remove - DELETE /books/:id (admin only, enforced at route registration)
func (h *BookHandler) Remove(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), id, actor); err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Libro eliminado exitosamente"})
}

// UpdateStock - PATCH /books/:id/stock
func (h *BookHandler) UpdateStock(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req book.UpdateStockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Cuerpo de la petición inválido")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.UpdateStock(c.Request.Context(), id, req.Stock, actor)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Sell - POST /books/:id/sell
func (h *BookHandler) Sell(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	var req book.SellReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Cuerpo de la petición inválido")
		return
	}

	resp, err := h.service.Sell(c.Request.Context(), id, req.Quantity, actor)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func handleError(c *gin.Context, err error) {
	var insufficient *book.InsufficientStockError
	var reference *book.ReferenceError

	switch {
	case errors.Is(err, book.ErrNotFound):
		response.NotFound(c, book.ErrNotFound.Error())
	case errors.Is(err, book.ErrDuplicateTitle):
		response.Conflict(c, book.ErrDuplicateTitle.Error())
	case errors.Is(err, book.ErrNotAvailable):
		response.BadRequest(c, book.ErrNotAvailable.Error())
	case errors.Is(err, book.ErrInvalidQuantity):
		response.BadRequest(c, book.ErrInvalidQuantity.Error())
	case errors.Is(err, book.ErrStockInsufficient):
		response.BadRequest(c, book.ErrStockInsufficient.Error())
	case errors.As(err, &insufficient):
		response.BadRequest(c, insufficient.Error())
	case errors.As(err, &reference):
		response.NotFound(c, reference.Error())
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

func requireActor(c *gin.Context) (uuid.UUID, bool) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok || principal == nil {
		response.Unauthorized(c, "Token de acceso requerido")
		return uuid.Nil, false
	}
	return principal.ID, true
}

func parseFilter(c *gin.Context) (*book.Filter, bool) {
	filter := &book.Filter{
		Search:  c.Query("search"),
		SortBy:  c.Query("sort_by"),
		SortDir: c.Query("sort_dir"),
	}

	for param, target := range map[string]**uuid.UUID{
		"author_id":    &filter.AuthorID,
		"editorial_id": &filter.EditorialID,
		"genre_id":     &filter.GenreID,
	} {
		if raw := c.Query(param); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				response.BadRequest(c, "ID inválido")
				return nil, false
			}
			*target = &id
		}
	}

	if raw := c.Query("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(c, "Parámetro available inválido")
			return nil, false
		}
		filter.Available = &available
	}

	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	return filter, true
}
