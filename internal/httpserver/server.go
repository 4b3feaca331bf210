// Package httpserver exposes the triggering surface: a descriptor root, a
// liveness probe, and the batch-run endpoints.
package httpserver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ContentTriage/internal/domain"
)

const (
	defaultBatchSize = 10
	minBatchSize     = 1
	maxBatchSize     = 50
)

// BatchRunner triggers one synchronous triage batch.
type BatchRunner interface {
	Run(ctx context.Context, batchSize int) (domain.RunStats, error)
}

// IngestRunner triggers one synchronous ingestion pass.
type IngestRunner interface {
	Run(ctx context.Context) (domain.IngestStats, error)
}

// Server wires the gin engine with the use cases.
type Server struct {
	addr   string
	engine *gin.Engine
	triage BatchRunner
	ingest IngestRunner
	logger *slog.Logger
}

// New builds the HTTP surface. The ingest endpoint is registered only when
// an ingest runner is supplied.
func New(addr string, triage BatchRunner, ingest IngestRunner, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		addr:   addr,
		engine: engine,
		triage: triage,
		ingest: ingest,
		logger: logger,
	}

	engine.GET("/", s.handleRoot)
	engine.GET("/health", s.handleHealth)
	engine.POST("/api/analyze", s.handleAnalyze)
	if ingest != nil {
		engine.POST("/api/ingest", s.handleIngest)
	}

	return s
}

// Run blocks serving HTTP until the listener fails.
func (s *Server) Run() error {
	if s.logger != nil {
		s.logger.Info("http server listening", "addr", s.addr)
	}
	return s.engine.Run(s.addr)
}

// Handler exposes the underlying handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Content triage service is running",
		"health":  "/health",
		"analyze": "/api/analyze (POST)",
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type analyzeRequest struct {
	BatchSize *int `json:"batch_size"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.String(http.StatusBadRequest, "invalid request body: %v", err)
		return
	}

	batchSize := defaultBatchSize
	if req.BatchSize != nil {
		batchSize = *req.BatchSize
	}
	if batchSize < minBatchSize || batchSize > maxBatchSize {
		c.String(http.StatusBadRequest, "batch_size must be between %d and %d", minBatchSize, maxBatchSize)
		return
	}

	stats, err := s.triage.Run(c.Request.Context(), batchSize)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("triage run failed", "error", err)
		}
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleIngest(c *gin.Context) {
	stats, err := s.ingest.Run(c.Request.Context())
	if err != nil {
		if s.logger != nil {
			s.logger.Error("ingestion run failed", "error", err)
		}
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, stats)
}
