package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"draftbook-backend/internal/config"
	infraCache "draftbook-backend/internal/infrastructure/cache"
	"draftbook-backend/internal/infrastructure/database"
	"draftbook-backend/internal/infrastructure/googledocs"
	"draftbook-backend/pkg/cache"
	"draftbook-backend/pkg/idtoken"

	"draftbook-backend/internal/domains/author"
	authorHandler "draftbook-backend/internal/domains/author/handler"
	authorRepo "draftbook-backend/internal/domains/author/repository"
	authorService "draftbook-backend/internal/domains/author/service"
	"draftbook-backend/internal/domains/book"
	bookRepo "draftbook-backend/internal/domains/book/repository"
	"draftbook-backend/internal/domains/export"
	exportHandler "draftbook-backend/internal/domains/export/handler"
)

// Container holds every dependency of the application and is the root
// of the dependency graph. Initialization order matters: config first,
// then infrastructure, then repositories, services and handlers.
type Container struct {
	// Infrastructure (singletons for the app lifetime)
	Config   *config.Config
	DB       *database.PostgresDB
	Cache    cache.Cache
	Verifier idtoken.Verifier
	Exporter export.Exporter // nil when Google credentials are not configured

	// Repositories
	AuthorRepo author.Repository
	BookRepo   book.Repository

	// Services
	AuthorService author.Service

	// Handlers
	AuthorHandler *authorHandler.AuthorHandler
	ExportHandler *exportHandler.ExportHandler
}

// NewContainer builds and wires the whole dependency graph.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// Config depends on nothing, load it first.
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// Database
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("✅ Database connected")

	// Cache. A Redis outage is not fatal: lookups fall through to the
	// database, which stays the source of truth.
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
		} else {
			log.Println("✅ Redis connected")
		}
	}
	c.Cache = redisCache

	// Identity token verifier
	c.Verifier = idtoken.NewDecoder(cfg.Google.ClientID)

	// Google Docs exporter. Optional: without credentials the export
	// routes are simply not mounted.
	if cfg.Google.CredentialsJSON != "" {
		exporter, err := googledocs.NewExporter(context.Background(), cfg.Google.CredentialsJSON)
		if err != nil {
			log.Printf("⚠️  Google Docs exporter unavailable: %v", err)
		} else {
			c.Exporter = exporter
			log.Println("✅ Google Docs exporter ready")
		}
	}

	// Repositories
	c.AuthorRepo = authorRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.BookRepo = bookRepo.NewPostgresRepository(db.Pool)

	// Services
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.BookRepo)

	// Handlers
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	if c.Exporter != nil {
		c.ExportHandler = exportHandler.NewExportHandler(c.Exporter)
	}

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis: %v", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}

	log.Println("✅ Cleanup complete")
}
