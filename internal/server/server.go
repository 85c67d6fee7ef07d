package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inodb/vibe-skip/internal/bed"
	"github.com/inodb/vibe-skip/internal/provider"
	"github.com/inodb/vibe-skip/internal/transcript"
)

// Server exposes the service over HTTP.
type Server struct {
	service *Service
	logger  *zap.Logger
	router  *gin.Engine
}

// NewServer builds the HTTP server around a service.
func NewServer(service *Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		service: service,
		logger:  logger,
	}
	router := gin.New()
	router.Use(s.requestLogger(), gin.Recovery())

	api := router.Group("/api/v1")
	api.GET("/health", s.health)
	api.GET("/links/:description", s.links)
	api.GET("/analyze", s.analyze)
	api.POST("/transcript/exonskip", s.exonSkip)

	s.router = router
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves the API on addr until the listener fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("serving api", zap.String("addr", addr))
	return s.router.Run(addr)
}

// requestLogger tags every request with an ID and logs its outcome.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := uuid.NewString()
		c.Header("X-Request-ID", id)
		c.Next()
		s.logger.Info("request",
			zap.String("id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) links(c *gin.Context) {
	links, err := s.service.Links(c.Param("description"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

func (s *Server) analyze(c *gin.Context) {
	description := c.Query("hgvs")
	if description == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "missing 'hgvs' query parameter"})
		return
	}
	results, err := s.service.Analyze(description)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// exonSkipRequest is the body of POST /transcript/exonskip.
type exonSkipRequest struct {
	Transcript transcript.Model `json:"transcript"`
	Selector   bed.Model        `json:"selector"`
}

func (s *Server) exonSkip(c *gin.Context) {
	var req exonSkipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	out, err := s.service.ExonSkip(req.Transcript, req.Selector)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// writeError maps pipeline errors to status codes: client mistakes are
// 422, unknown identifiers 404, provider and engine failures 502.
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case isValidationError(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
	case errors.Is(err, provider.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	default:
		s.logger.Error("pipeline failure", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"detail": err.Error()})
	}
}
