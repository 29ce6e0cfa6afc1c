// Package server exposes analysis over HTTP.
//
// Routes:
//
//	GET  /api/health         liveness check
//	POST /api/analyze        {"url": "..."} -> AnalysisResult or failure record
//	POST /api/analyze/batch  {"urls": [...]} -> array of results and failure records
//
// Responses use the same JSON as the CLI's --json output.
package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/docscore/internal/config"
	"github.com/nao1215/docscore/internal/model"
	"github.com/nao1215/docscore/internal/pipeline"
)

// DefaultMaxBatchURLs limits the URLs accepted by one batch request.
const DefaultMaxBatchURLs = 50

// Server handles analysis requests.
type Server struct {
	analyzer     pipeline.URLAnalyzer
	batchSize    int
	maxBatchURLs int
	rps          float64
	burst        int
	logger       *slog.Logger
	engine       *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithBatchSize sets the number of URLs of a batch analyzed at once.
func WithBatchSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithMaxBatchURLs limits the number of URLs in one batch request.
func WithMaxBatchURLs(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBatchURLs = n
		}
	}
}

// WithRateLimit limits requests per client IP. rps <= 0 disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		s.rps = rps
		s.burst = burst
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a Server backed by analyzer.
func New(analyzer pipeline.URLAnalyzer, opts ...Option) *Server {
	s := &Server{
		analyzer:     analyzer,
		batchSize:    config.DefaultBatchSize,
		maxBatchURLs: DefaultMaxBatchURLs,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(recoverer(s.logger), requestLogger(s.logger), cors())
	if s.rps > 0 {
		r.Use(newRateLimiter(s.rps, s.burst).middleware())
	}

	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.POST("/analyze", s.analyze)
		api.POST("/analyze/batch", s.analyzeBatch)
	}
	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type analyzeRequest struct {
	URL string `json:"url" binding:"required"`
}

type batchRequest struct {
	URLs []string `json:"urls" binding:"required"`
}

func (s *Server) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be {\"url\": \"...\"}"})
		return
	}

	out := s.analyzer.Analyze(c.Request.Context(), strings.TrimSpace(req.URL))
	if out.Failure != nil {
		c.JSON(failureStatus(out.Failure.ErrorKind), out.Failure)
		return
	}
	c.JSON(http.StatusOK, out.Result)
}

func (s *Server) analyzeBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be {\"urls\": [...]}"})
		return
	}
	if len(req.URLs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "urls must not be empty"})
		return
	}
	if len(req.URLs) > s.maxBatchURLs {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many urls in one batch"})
		return
	}

	urls := make([]string, len(req.URLs))
	for i, u := range req.URLs {
		urls[i] = strings.TrimSpace(u)
	}
	bp := pipeline.NewBatchProcessor(s.analyzer,
		pipeline.WithConcurrency(s.batchSize),
		pipeline.WithBatchLogger(s.logger),
	)
	c.JSON(http.StatusOK, bp.ProcessBatch(c.Request.Context(), urls))
}

// failureStatus maps an error kind to the HTTP status of /api/analyze.
func failureStatus(kind model.ErrorKind) int {
	switch kind {
	case model.ErrorKindNetwork:
		return http.StatusBadGateway
	case model.ErrorKindInsufficientContent, model.ErrorKindExtraction:
		return http.StatusUnprocessableEntity
	case model.ErrorKindCancelled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
