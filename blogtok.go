// Package blogtok is a small blog publishing platform built with Go, Echo,
// and SQLite. It serves a JSON API for articles, categories, site settings
// and the admin account, a ranked substring search over articles, and the
// static front end with per-site branding applied to its HTML pages.
package blogtok

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

// App is the central blogtok application. It wires together the store,
// cache, handlers and middleware.
type App struct {
	Config Config
	Echo   *echo.Echo
	Store  *Store
	Cache  *ArticleCache

	log          zerolog.Logger
	seed         *Seed
	loginLimiter *LoginLimiter
}

// New creates a new App with the given configuration.
func New(cfg Config, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	a := &App{
		Config: cfg,
		Echo:   e,
		log:    Logger("http"),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens the store, bootstraps an empty database and registers the
// middleware and routes. It is separate from Start so tests can drive
// a.Echo directly.
func (a *App) Init(ctx context.Context) error {
	if a.Config.SessionSecret == "" {
		return errors.New("blogtok: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("blogtok: init store: %w", err)
	}
	a.Store = store

	seed := DefaultSeed()
	if a.seed != nil {
		seed = *a.seed
	}
	if err := a.Store.Bootstrap(ctx, seed, a.Config.AdminUsername, a.Config.AdminPassword); err != nil {
		a.Store.Close()
		return fmt.Errorf("blogtok: bootstrap: %w", err)
	}

	a.Cache = NewArticleCache(a.Store, a.Config.CacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	return nil
}

// Start serves HTTP on Config.Addr until the server is shut down.
func (a *App) Start() error {
	a.log.Info().Str("addr", a.Config.Addr).Str("env", a.Config.Environment).Msg("listening")
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run starts the server and shuts it down gracefully when ctx is done.
func (a *App) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() { errc <- a.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("blogtok: shutdown: %w", err)
	}
	return <-errc
}

func (a *App) setupRoutes() {
	e := a.Echo
	admin := requireAdmin

	api := e.Group("/api")
	api.GET("/health", a.handleHealth)
	api.GET("/search", a.handleSearch)

	api.GET("/articles", a.handleListArticles)
	api.GET("/articles/count", a.handleCountArticles)
	api.GET("/articles/:id", a.handleGetArticle)
	api.GET("/articles-with-categories", a.handleListArticlesWithCategories)
	api.POST("/articles", a.handleCreateArticle, admin)
	api.DELETE("/articles/:id", a.handleDeleteArticle, admin)

	api.GET("/categories", a.handleListCategories)
	api.GET("/categories/count", a.handleCountCategories)
	api.GET("/categories/:id", a.handleGetCategory)
	api.POST("/categories", a.handleCreateCategory, admin)
	api.PUT("/categories/:id", a.handleUpdateCategory, admin)
	api.DELETE("/categories/:id", a.handleDeleteCategory, admin)

	api.GET("/site-settings", a.handleListSettings)
	api.GET("/site-settings/:key", a.handleGetSetting)
	api.POST("/site-settings", a.handleUpdateSiteSettings, admin)

	api.GET("/about", a.handleGetAbout)
	api.PUT("/about", a.handleUpdateAbout, admin)

	api.POST("/login", a.handleLogin)
	api.POST("/logout", handleLogout)
	api.GET("/admin-user", a.handleGetAdminUser, admin)
	api.POST("/admin-user", a.handleUpdateAdminUser, admin)
	api.Any("/*", func(c echo.Context) error { return echo.ErrNotFound })

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/*", a.handlePage)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
