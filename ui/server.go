package ui

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"

	"datadash/app"
	"datadash/internal"
	"datadash/internal/cache"
	"datadash/internal/config"
	"datadash/ui/services"
)

// Server is the dashboard's presentation shell: thin glue between widget
// state arriving as query parameters and the pure render pipeline.
type Server struct {
	router    *gin.Engine
	cfg       *config.Config
	cache     *cache.TableCache
	dashboard *app.DashboardService
	render    *services.RenderService
	templates *template.Template
}

// NewServer creates the web server. The caller owns the cache; the server
// never constructs global state.
func NewServer(cfg *config.Config, tableCache *cache.TableCache, embeddedFiles embed.FS) (*Server, error) {
	gin.SetMode(cfg.Server.GinMode)

	funcMap := template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"pct":   func(v float64) string { return fmt.Sprintf("%+.1f%%", v) },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "ui/templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    gin.Default(),
		cfg:       cfg,
		cache:     tableCache,
		dashboard: app.NewDashboardService(),
		render:    services.NewRenderService(),
		templates: templates,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/dashboard", s.handleDashboardFragment)
	s.router.GET("/export/filtered.csv", s.handleExportFiltered)
	s.router.GET("/export/full.csv", s.handleExportFull)
	s.router.POST("/reload", s.handleReload)
	s.router.GET("/healthz", s.handleHealthz)
}

// Run serves the dashboard until the listener fails.
func (s *Server) Run() error {
	addr := ":" + s.cfg.Server.Port
	internal.DefaultLogger.Info("[Server] dashboard listening on %s (data=%s)", addr, s.cfg.Paths.DataFile)
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

var startedAt = time.Now()
