package container

import (
	"context"
	"fmt"

	"libreria-backend/internal/config"
	infraCache "libreria-backend/internal/infrastructure/cache"
	"libreria-backend/internal/infrastructure/database"
	"libreria-backend/internal/infrastructure/storage"
	"libreria-backend/pkg/cache"
	"libreria-backend/pkg/jwt"
	"libreria-backend/pkg/logger"

	"libreria-backend/internal/domains/auth"
	authHandler "libreria-backend/internal/domains/auth/handler"
	authRepo "libreria-backend/internal/domains/auth/repository"
	authService "libreria-backend/internal/domains/auth/service"

	"libreria-backend/internal/domains/author"
	authorHandler "libreria-backend/internal/domains/author/handler"
	authorRepo "libreria-backend/internal/domains/author/repository"
	authorService "libreria-backend/internal/domains/author/service"

	"libreria-backend/internal/domains/editorial"
	editorialHandler "libreria-backend/internal/domains/editorial/handler"
	editorialRepo "libreria-backend/internal/domains/editorial/repository"
	editorialService "libreria-backend/internal/domains/editorial/service"

	"libreria-backend/internal/domains/genre"
	genreHandler "libreria-backend/internal/domains/genre/handler"
	genreRepo "libreria-backend/internal/domains/genre/repository"
	genreService "libreria-backend/internal/domains/genre/service"

	"libreria-backend/internal/domains/book"
	bookHandler "libreria-backend/internal/domains/book/handler"
	bookRepo "libreria-backend/internal/domains/book/repository"
	bookService "libreria-backend/internal/domains/book/service"

	"libreria-backend/internal/domains/file"
	fileHandler "libreria-backend/internal/domains/file/handler"
	fileService "libreria-backend/internal/domains/file/service"
)

// Container wires the whole dependency graph: config, infrastructure,
// repositories, services, handlers. Everything is a singleton built once at
// startup.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Storage    *storage.MinIOStorage
	JWTManager *jwt.Manager

	AuthRepo      auth.Repository
	AuthorRepo    author.Repository
	EditorialRepo editorial.Repository
	GenreRepo     genre.Repository
	BookRepo      book.Repository

	AuthService      auth.Service
	AuthorService    author.Service
	EditorialService editorial.Service
	GenreService     genre.Service
	BookService      book.Service
	FileService      file.Service

	AuthHandler      *authHandler.AuthHandler
	AuthorHandler    *authorHandler.AuthorHandler
	EditorialHandler *editorialHandler.EditorialHandler
	GenreHandler     *genreHandler.GenreHandler
	BookHandler      *bookHandler.BookHandler
	FileHandler      *fileHandler.FileHandler
}

func NewContainer() (*Container, error) {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}
	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := database.Migrate(ctx, db.DSN()); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		db.Close()
		_ = redisCache.Close()
		return nil, fmt.Errorf("connect minio: %w", err)
	}

	jwtManager := jwt.NewManager(jwt.Config{
		AccessSecret:  cfg.JWT.AccessSecret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessExpiry:  cfg.JWT.AccessExpiry,
		RefreshExpiry: cfg.JWT.RefreshExpiry,
	})

	processor := storage.NewImageProcessor(cfg.Upload.MaxFileSize)
	production := cfg.App.Environment == "production"

	c := &Container{
		Config:     cfg,
		DB:         db,
		Cache:      redisCache,
		Storage:    minioStorage,
		JWTManager: jwtManager,
	}

	c.AuthRepo = authRepo.NewPostgresRepository(db.Pool)
	c.AuthorRepo = authorRepo.NewPostgresRepository(db.Pool, redisCache)
	c.EditorialRepo = editorialRepo.NewPostgresRepository(db.Pool, redisCache)
	c.GenreRepo = genreRepo.NewPostgresRepository(db.Pool, redisCache)
	c.BookRepo = bookRepo.NewPostgresRepository(db.Pool)

	c.AuthService = authService.NewAuthService(c.AuthRepo, jwtManager)
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.EditorialService = editorialService.NewEditorialService(c.EditorialRepo)
	c.GenreService = genreService.NewGenreService(c.GenreRepo)
	c.BookService = bookService.NewBookService(c.BookRepo, c.AuthorRepo, c.EditorialRepo, c.GenreRepo)
	c.FileService = fileService.NewFileService(minioStorage, processor, c.BookRepo, cfg.Upload.BaseURL)

	c.AuthHandler = authHandler.NewAuthHandler(c.AuthService, production)
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.EditorialHandler = editorialHandler.NewEditorialHandler(c.EditorialService)
	c.GenreHandler = genreHandler.NewGenreHandler(c.GenreService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.FileHandler = fileHandler.NewFileHandler(c.FileService, cfg.Upload.MaxFileSize)

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	return c, nil
}

// Cleanup closes infrastructure connections. Safe to call once on shutdown.
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if closer, ok := c.Cache.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				logger.Error("closing redis failed", err)
			}
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
