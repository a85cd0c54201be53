package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"libreria-backend/internal/domains/book"
	"libreria-backend/internal/domains/file"
	"libreria-backend/internal/shared/middleware"
	"libreria-backend/internal/shared/response"
)

type FileHandler struct {
	service     file.Service
	maxFileSize int64
}

func NewFileHandler(service file.Service, maxFileSize int64) *FileHandler {
	return &FileHandler{
		service:     service,
		maxFileSize: maxFileSize,
	}
}

// Upload - POST /files/books/:bookId (multipart field "file")
func (h *FileHandler) Upload(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Unauthorized(c, "Token de acceso requerido")
		return
	}

	bookID, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		response.BadRequest(c, "ID inválido")
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "El archivo es requerido")
		return
	}
	if header.Size > h.maxFileSize {
		response.BadRequest(c, file.ErrFileTooLarge.Error())
		return
	}

	src, err := header.Open()
	if err != nil {
		response.InternalServerError(c)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.maxFileSize+1))
	if err != nil {
		response.InternalServerError(c)
		return
	}
	if int64(len(data)) > h.maxFileSize {
		response.BadRequest(c, file.ErrFileTooLarge.Error())
		return
	}

	resp, err := h.service.UploadBookCover(c.Request.Context(), bookID, header.Filename, data, principal.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// Get - GET /files/books/:filename
func (h *FileHandler) Get(c *gin.Context) {
	fileName := c.Param("filename")

	image, err := h.service.GetImage(c.Request.Context(), fileName)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Data(http.StatusOK, image.ContentType, image.Data)
}

func (h *FileHandler) handleError(c *gin.Context, err error) {
	var noBook *file.NoBookError

	switch {
	case errors.Is(err, file.ErrInvalidExtension):
		response.BadRequest(c, file.ErrInvalidExtension.Error())
	case errors.Is(err, file.ErrFileTooLarge):
		response.BadRequest(c, file.ErrFileTooLarge.Error())
	case errors.Is(err, file.ErrInvalidImage):
		response.BadRequest(c, file.ErrInvalidImage.Error())
	case errors.Is(err, book.ErrNotFound):
		response.NotFound(c, book.ErrNotFound.Error())
	case errors.As(err, &noBook):
		response.BadRequest(c, noBook.Error())
	default:
		response.InternalServerError(c)
	}
}
