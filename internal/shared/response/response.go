package response

import (
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the error envelope every failed request returns.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Timestamp  string `json:"timestamp"`
}

// Meta carries pagination info for list endpoints.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// Paginated wraps list data with its pagination meta.
type Paginated struct {
	Data interface{} `json:"data"`
	Meta Meta        `json:"meta"`
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

func Error(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorBody{
		StatusCode: statusCode,
		Error:      message,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 401, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, 403, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 404, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 409, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, 500, "Error interno del servidor")
}
