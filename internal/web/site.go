package web

import (
	"bytes"
	"context"
	"embed"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio/internal/models"
	"portfolio/internal/pipeline"
	"portfolio/internal/render"
	"portfolio/internal/theme"
	"portfolio/internal/view"
)

//go:embed static
var staticFS embed.FS

// SessionProvider hands out the resident article collection
type SessionProvider interface {
	Session(ctx context.Context) (*models.Collection, error)
}

// SiteServer serves the server-rendered article page
type SiteServer struct {
	sessions SessionProvider
	renderer render.Renderer
	opts     view.Options
	pageSize int
}

func NewSiteServer(sessions SessionProvider, renderer render.Renderer, opts view.Options, pageSize int) *SiteServer {
	return &SiteServer{
		sessions: sessions,
		renderer: renderer,
		opts:     opts,
		pageSize: pageSize,
	}
}

// RegisterRoutes registers the site routes with the Gin router
func (s *SiteServer) RegisterRoutes(router *gin.Engine) {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	router.GET("/", s.serveIndex)
	router.POST("/theme", s.setTheme)
	router.StaticFS("/static", http.FS(static))
}

func (s *SiteServer) serveIndex(c *gin.Context) {
	theme.Advertise(c.Writer.Header())

	status := http.StatusOK
	var page *view.Page

	collection, err := s.sessions.Session(c.Request.Context())
	if err != nil {
		// Detail is logged by the loader
		status = http.StatusServiceUnavailable
		page = view.Failed(s.opts)
	} else {
		state := ViewState(c, collection, s.pageSize)
		page = view.Project(state, pipeline.Apply(state), s.opts)
	}
	page.Theme = string(theme.FromRequest(c.Request))

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, page); err != nil {
		log.Printf("Failed to render page: %v", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (s *SiteServer) setTheme(c *gin.Context) {
	t, ok := theme.Parse(c.PostForm("theme"))
	if !ok {
		c.String(http.StatusBadRequest, "unknown theme")
		return
	}

	http.SetCookie(c.Writer, theme.Cookie(t, c.Request.TLS != nil))
	c.Redirect(http.StatusSeeOther, safeReturn(c.PostForm("return")))
}

// safeReturn only allows redirects to local paths
func safeReturn(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}

// FiltersFromQuery reads the filter state from the category, year and q
// parameters. Missing values match everything.
func FiltersFromQuery(c *gin.Context) models.FilterState {
	filters := models.DefaultFilters()
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		filters.Category = category
	}
	if year := strings.TrimSpace(c.Query("year")); year != "" {
		filters.Year = year
	}
	filters.Keyword = strings.ToLower(strings.TrimSpace(c.Query("q")))
	return filters
}

// PageFromQuery reads the requested page, defaulting to the first
func PageFromQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// ViewState assembles the state of one request over collection
func ViewState(c *gin.Context, collection *models.Collection, pageSize int) models.ViewState {
	return models.ViewState{
		Collection: collection,
		Filters:    FiltersFromQuery(c),
		Pagination: models.PaginationState{
			CurrentPage:  PageFromQuery(c),
			ItemsPerPage: pageSize,
		},
	}
}
