package server

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cyra/proxylog-report/internal/config"
	"github.com/cyra/proxylog-report/internal/logging"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server serves the request report over HTTP.
type Server struct {
	httpServer *http.Server
}

// New builds the HTTP server. Every request to / triggers a full report run.
func New(cfg config.ServerConfig, reporter Reporter, logger *logging.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Listen,
			Handler:           NewRouter(reporter, logger),
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		},
	}
}

// NewRouter returns the gin engine with all routes registered.
func NewRouter(reporter Reporter, logger *logging.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	h := NewHandlers(reporter, logger)
	router.GET("/", h.Index)
	router.GET("/api/records", h.Records)
	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func requestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debugf("%s %s status=%d took=%s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
