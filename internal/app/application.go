package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"autogallery/internal/config"
	"autogallery/internal/content"
	"autogallery/internal/handlers"
	"autogallery/internal/middleware"
	"autogallery/internal/models"
	pluginruntime "autogallery/internal/plugin/runtime"
	"autogallery/internal/repository"
	"autogallery/internal/seed"
	"autogallery/pkg/logger"
	"autogallery/pkg/validator"
)

type Options struct {
	// Articles replaces the database backed repository. No database connection is
	// opened when it is set.
	Articles repository.ArticleRepository
}

type Application struct {
	cfg     *config.Config
	options Options

	db       *gorm.DB
	articles repository.ArticleRepository
	pipeline *content.Pipeline
	runtime  *pluginruntime.Runtime

	pageHandler *handlers.PageHandler
	rateLimits  *middleware.RateLimitManager
	router      *gin.Engine
	server      *http.Server
}

func New(cfg *config.Config, opts Options) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg:     cfg,
		options: opts,
	}

	if opts.Articles != nil {
		app.articles = opts.Articles
	} else {
		if err := app.initDatabase(); err != nil {
			return nil, err
		}
		if err := app.runMigrations(); err != nil {
			return nil, err
		}
		app.articles = repository.NewArticleRepository(app.db)
	}

	if cfg.SeedDemoContent {
		seed.EnsureDemoArticles(app.articles)
	}

	app.initPipeline()

	if err := app.activatePlugins(); err != nil {
		return nil, err
	}

	pageHandler, err := handlers.NewPageHandler(app.articles, app.pipeline, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize page handler: %w", err)
	}
	app.pageHandler = pageHandler

	app.initRouter()

	app.server = &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        app.router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return err
		}
	}

	if a.runtime != nil {
		if err := a.runtime.DeactivateAll(); err != nil {
			logger.Error(err, "Failed to deactivate plugins", nil)
		}
	}

	if a.rateLimits != nil {
		_ = a.rateLimits.Shutdown()
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	return nil
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

func (a *Application) initDatabase() error {
	logger.Info("Connecting to database", nil)

	db, err := gorm.Open(postgres.Open(a.cfg.DatabaseURL), &gorm.Config{
		Logger: logger.NewGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	a.db = db
	return nil
}

func (a *Application) runMigrations() error {
	if a.db == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	logger.Info("Running database migrations", nil)

	if err := a.db.AutoMigrate(&models.Article{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := a.db.Exec("CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published) WHERE published = true").Error; err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	logger.Info("Database migration completed", nil)
	return nil
}

func (a *Application) initPipeline() {
	if a.cfg.SanitizeContent {
		validator.Init()
		a.pipeline = content.NewPipeline(validator.ContentPolicy())
		return
	}
	a.pipeline = content.NewPipeline(nil)
}

func (a *Application) initRouter() {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	a.rateLimits = middleware.NewRateLimitManager(context.Background())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(logger.GinLogger())
	router.Use(middleware.SecurityHeadersMiddleware(
		[]string{a.cfg.Gallery.LightboxStyleURL},
		[]string{a.cfg.Gallery.LightboxScriptURL},
	))
	router.Use(middleware.RateLimitMiddleware(a.cfg, a.rateLimits))

	if len(a.cfg.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     a.cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "HEAD", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", a.pageHandler.Health)

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	if baseURL := strings.TrimRight(a.cfg.Gallery.BaseURL, "/"); baseURL != "" {
		files := router.Group(baseURL, middleware.GalleryFileFilter(a.cfg.GalleryDefaults().Extensions))
		files.Static("/", a.cfg.GalleryDir())
	}

	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Route not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		a.pageHandler.Show(c)
	})

	a.router = router
}
