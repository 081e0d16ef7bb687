package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Divyaeh-iitm/Simpledashboard/app"
	"github.com/Divyaeh-iitm/Simpledashboard/internal"
	"github.com/Divyaeh-iitm/Simpledashboard/internal/config"
)

//go:embed templates/*.html static/*.css
var embeddedFiles embed.FS

// DefaultPrimaryMaterials pre-fills the form with a typical flooring
// material list.
const DefaultPrimaryMaterials = "vitrified, vitrified 20mm, granite, marble, terrazzo, engineered wood, grout, epoxy grout, adhesive, mortar, screed sheets"

// Server is the web UI for the EPD analysis dashboard.
type Server struct {
	router  *gin.Engine
	service *app.AnalysisService
	cfg     *config.Config
	logger  *internal.Logger
}

// NewServer creates the web server with parsed templates and routes.
func NewServer(cfg *config.Config, service *app.AnalysisService) (*Server, error) {
	gin.SetMode(cfg.Server.GinMode)

	funcMap := template.FuncMap{
		"stat": app.FormatStat,
		"num": func(v *float64) string {
			if v == nil {
				return "—"
			}
			return fmt.Sprintf("%.2f", *v)
		},
		"add": func(a, b int) int { return a + b },
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:  gin.New(),
		service: service,
		cfg:     cfg,
		logger:  internal.DefaultLogger,
	}

	s.router.Use(gin.Logger(), gin.Recovery())
	s.router.SetHTMLTemplate(templates)
	s.router.MaxMultipartMemory = cfg.Upload.MaxSizeMB << 20

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.POST("/analyze", s.handleAnalyze)
	s.router.POST("/api/analyze", s.handleAPIAnalyze)
	s.router.GET("/healthz", s.handleHealth)

	static, _ := fsSub(embeddedFiles, "static")
	s.router.StaticFS("/static", static)
}

// Run starts the HTTP server on the configured port.
func (s *Server) Run() error {
	addr := s.cfg.Server.Port
	if !strings.HasPrefix(addr, ":") {
		addr = ":" + addr
	}
	s.logger.Info("[Server] listening on %s", addr)
	return s.router.Run(addr)
}

// Router exposes the underlying handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// fsSub exposes a subdirectory of the embedded filesystem over HTTP.
func fsSub(f embed.FS, dir string) (http.FileSystem, error) {
	sub, err := fs.Sub(f, dir)
	if err != nil {
		return nil, err
	}
	return http.FS(sub), nil
}
