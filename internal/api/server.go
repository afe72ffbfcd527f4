package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	_ "portfolio/docs"
	"portfolio/internal/config"
	"portfolio/internal/feederr"
	"portfolio/internal/models"
	"portfolio/internal/pipeline"
	"portfolio/internal/render"
	"portfolio/internal/security"
	"portfolio/internal/storage"
	"portfolio/internal/view"
	"portfolio/internal/web"
)

const (
	defaultLoadsLimit = 20
	maxLoadsLimit     = 200

	limiterCleanupInterval = 10 * time.Minute
	limiterMaxIdle         = 30 * time.Minute
)

// SessionLoader provides the resident article collection
type SessionLoader interface {
	Session(ctx context.Context) (*models.Collection, error)
	State() models.LoadState
	Expires() (time.Time, bool)
}

type Server struct {
	router        *gin.Engine
	loader        SessionLoader
	storage       storage.Storage
	port          int
	pageSize      int
	viewOptions   view.Options
	limiter       *security.RateLimiter
	siteServer    *web.SiteServer
	swaggerServer *web.SwaggerServer
}

// NewServer wires the site, the JSON API and the middleware. store may be nil
// when no load history is kept.
func NewServer(loader SessionLoader, store storage.Storage, styles view.Styles, cfg *config.Config) (*Server, error) {
	router := gin.New()
	router.Use(gin.Recovery())

	limiter := security.SetupSecurityMiddleware(router, cfg.Security)

	renderer, err := render.NewHTMLRenderer()
	if err != nil {
		return nil, err
	}

	opts := view.Options{
		Title:      cfg.Site.Title,
		ProfileURL: cfg.Site.ProfileURL,
		BasePath:   "/",
		Styles:     styles,
	}

	server := &Server{
		router:        router,
		loader:        loader,
		storage:       store,
		port:          cfg.Port,
		pageSize:      cfg.Feed.PageSize,
		viewOptions:   opts,
		limiter:       limiter,
		siteServer:    web.NewSiteServer(loader, renderer, opts, cfg.Feed.PageSize),
		swaggerServer: web.NewSwaggerServer(cfg.EnableSwagger),
	}

	server.setupRoutes()
	return server, nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)

	api := s.router.Group("/api/v1")
	{
		api.GET("/articles", s.getArticles)
		api.GET("/filters", s.getFilters)
		api.GET("/loads", s.getLoads)
	}

	s.siteServer.RegisterRoutes(s.router)
	s.swaggerServer.RegisterRoutes(s.router)
}

// Handler exposes the router for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// StartWithContext serves until ctx is cancelled, then shuts down gracefully
func (s *Server) StartWithContext(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(s.port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.limiter != nil {
		go s.cleanupLimiter(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

func (s *Server) cleanupLimiter(ctx context.Context) {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.limiter.Cleanup(limiterMaxIdle); removed > 0 {
				log.Printf("Removed %d idle rate limiters, %d clients tracked", removed, s.limiter.Len())
			}
		}
	}
}

// healthCheck godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"service":    "portfolio",
		"load_state": s.loader.State(),
	})
}

// getArticles godoc
// @Summary Articles of the current session
// @Tags Articles
// @Produce json
// @Param category query string false "Category, or all"
// @Param year query string false "Four digit year, or all"
// @Param q query string false "Keyword"
// @Param page query int false "Page number"
// @Success 200 {object} view.Page
// @Failure 503 {object} map[string]string
// @Router /api/v1/articles [get]
func (s *Server) getArticles(c *gin.Context) {
	collection, ok := s.session(c)
	if !ok {
		return
	}

	state := web.ViewState(c, collection, s.pageSize)
	c.JSON(http.StatusOK, view.Project(state, pipeline.Apply(state), s.viewOptions))
}

// getFilters godoc
// @Summary Filter options derived from the session
// @Tags Articles
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]string
// @Router /api/v1/filters [get]
func (s *Server) getFilters(c *gin.Context) {
	collection, ok := s.session(c)
	if !ok {
		return
	}

	response := gin.H{
		"categories":   collection.Categories,
		"years":        collection.Years,
		"total":        len(collection.Articles),
		"last_updated": collection.LastUpdated,
		"loaded_at":    collection.LoadedAt,
	}
	if expires, ok := s.loader.Expires(); ok {
		response["session_expires_at"] = expires
	}
	c.JSON(http.StatusOK, response)
}

// getLoads godoc
// @Summary Recent session loads
// @Tags Loads
// @Produce json
// @Param limit query int false "Maximum entries"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/loads [get]
func (s *Server) getLoads(c *gin.Context) {
	limit := defaultLoadsLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxLoadsLimit {
		limit = maxLoadsLimit
	}

	loads := []models.LoadRecord{}
	if s.storage != nil {
		records, err := s.storage.RecentLoads(c.Request.Context(), limit)
		if err != nil {
			log.Printf("Failed to read load history: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to read load history",
			})
			return
		}
		if records != nil {
			loads = records
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"loads": loads,
		"count": len(loads),
		"state": s.loader.State(),
	})
}

// session returns the resident collection or answers 503 with the generic
// message and the error kind only.
func (s *Server) session(c *gin.Context) (*models.Collection, bool) {
	collection, err := s.loader.Session(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": view.MessageFailed,
			"kind":  feederr.KindOf(err).String(),
		})
		return nil, false
	}
	return collection, true
}
