package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"libreria-backend/internal/domains/auth"
	"libreria-backend/internal/shared/middleware"
	"libreria-backend/pkg/container"
)

// SetupRouter registers middleware and all routes under /api/v1.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(c.Config.CORS.Origin))

	authenticated := middleware.Auth(c.JWTManager, principalLoader(c))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck(c))

		auth := v1.Group("/auth")
		{
			auth.POST("/register", c.AuthHandler.Register)
			auth.POST("/login", c.AuthHandler.Login)
			auth.POST("/refresh", c.AuthHandler.Refresh)
			auth.GET("/validate", c.AuthHandler.Validate)
			auth.POST("/logout", authenticated, c.AuthHandler.Logout)
		}

		authors := v1.Group("/authors")
		{
			authors.GET("", c.AuthorHandler.FindAll)
			authors.GET("/:id", c.AuthorHandler.FindOne)
			authors.POST("", authenticated, c.AuthorHandler.Create)
			authors.PATCH("/:id", authenticated, c.AuthorHandler.Update)
			authors.DELETE("/:id", authenticated, c.AuthorHandler.Remove)
		}

		editorials := v1.Group("/editorials", authenticated)
		{
			editorials.POST("", c.EditorialHandler.Create)
			editorials.GET("", c.EditorialHandler.FindAll)
			editorials.GET("/:id", c.EditorialHandler.FindOne)
			editorials.PATCH("/:id", c.EditorialHandler.Update)
			editorials.DELETE("/:id", c.EditorialHandler.Remove)
		}

		genres := v1.Group("/genres")
		{
			genres.GET("", c.GenreHandler.FindAll)
			genres.GET("/:id", c.GenreHandler.FindOne)
			genres.POST("", authenticated, c.GenreHandler.Create)
			genres.PATCH("/:id", authenticated, c.GenreHandler.Update)
			genres.DELETE("/:id", authenticated, c.GenreHandler.Remove)
		}

		books := v1.Group("/books", authenticated)
		{
			books.POST("", c.BookHandler.Create)
			books.GET("", c.BookHandler.FindAll)
			books.GET("/available", c.BookHandler.FindAvailable)
			books.GET("/export/csv", c.BookHandler.ExportCSV)
			books.GET("/:id", c.BookHandler.FindOne)
			books.PATCH("/:id", c.BookHandler.Update)
			books.DELETE("/:id", middleware.RequireRoles("admin"), c.BookHandler.Remove)
			books.PATCH("/:id/stock", c.BookHandler.UpdateStock)
			books.POST("/:id/sell", c.BookHandler.Sell)
		}

		files := v1.Group("/files")
		{
			files.POST("/books/:bookId", authenticated, c.FileHandler.Upload)
			files.GET("/books/:filename", c.FileHandler.Get)
		}
	}

	return router
}

// principalLoader adapts the auth service to the authentication middleware.
// Inactive users resolve to nil so their tokens stop working immediately.
func principalLoader(c *container.Container) middleware.PrincipalLoader {
	return func(ctx context.Context, userID uuid.UUID) (*middleware.Principal, error) {
		user, err := c.AuthService.GetUser(ctx, userID)
		if err != nil {
			if errors.Is(err, auth.ErrUserNotFound) {
				return nil, nil
			}
			return nil, err
		}
		if !user.IsActive {
			return nil, nil
		}

		return &middleware.Principal{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.DisplayName(),
			Roles: user.Roles,
		}, nil
	}
}

func healthCheck(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		overall := "ok"
		checks := gin.H{"database": "ok", "cache": "ok"}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			checks["database"] = "down"
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			checks["cache"] = "down"
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		ctx.JSON(status, gin.H{
			"status": overall,
			"checks": checks,
		})
	}
}
