package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"pharmabrand/app"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html templates/fragments/*.html static/css/*.css
var embeddedFiles embed.FS

// Server is the wizard web UI.
type Server struct {
	router    *gin.Engine
	service   *app.PlanService
	sessions  *SessionStore
	templates *template.Template
}

// Config holds UI server settings.
type Config struct {
	Port    string
	GinMode string
}

// NewServer creates the UI server and parses its embedded templates.
func NewServer(config Config, service *app.PlanService) (*Server, error) {
	if config.GinMode != "" {
		gin.SetMode(config.GinMode)
	}

	funcMap := template.FuncMap{
		"join": strings.Join,
		"inSlice": func(list []string, v string) bool {
			for _, item := range list {
				if item == v {
					return true
				}
			}
			return false
		},
		"pct": func(f float64) string {
			return fmt.Sprintf("%.0f%%", f*100)
		},
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    gin.Default(),
		service:   service,
		sessions:  NewSessionStore(),
		templates: templates,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// setupMiddleware serves static assets from the embedded filesystem.
func (s *Server) setupMiddleware() {
	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		log.Printf("[Server] Error creating static filesystem: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(staticFS))
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/login", s.handleLoginPage)
	s.router.POST("/login", s.handleLoginSubmit)

	s.router.GET("/", s.handleWizard)
	s.router.POST("/criteria", s.handleCriteria)
	s.router.POST("/imperatives", s.handleImperatives)
	s.router.POST("/differentiators", s.handleDifferentiators)
	s.router.POST("/generate", s.handleGenerate)
}

// Run starts the server on the configured port.
func (s *Server) Run(port string) error {
	log.Printf("[Server] Pharma Brand Manager UI listening on :%s", port)
	return s.router.Run(":" + port)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
