// Package server exposes the trip quote API over HTTP. Quotes are held in
// memory for the lifetime of the process; the only durable artifacts are the
// CSV and PDF exports.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iwvelando/trip-forecast/internal/route"
	"github.com/iwvelando/trip-forecast/internal/trip"
	"github.com/iwvelando/trip-forecast/pkg/output"
	"github.com/iwvelando/trip-forecast/pkg/validation"
)

type handler struct {
	logger *zap.Logger
	engine *route.Engine

	mu     sync.RWMutex
	quotes map[string]*trip.Summary
}

// NewRouter builds the gin engine serving the quote API.
func NewRouter(logger *zap.Logger, engine *route.Engine, cfg *Config) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = &Config{}
	}

	h := &handler{
		logger: logger,
		engine: engine,
		quotes: make(map[string]*trip.Summary),
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api")
	{
		api.GET("/health", h.handleHealth)
		api.POST("/quotes", h.handleCreateQuote)
		api.GET("/quotes/:id", h.handleGetQuote)
		api.GET("/quotes/:id/download", h.handleDownloadQuote)
	}

	return r
}

// requestLogger logs each HTTP request with method, path, status, and latency.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.Info("request",
			zap.String("op", "server.requestLogger"),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func (h *handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type quoteResponse struct {
	ID      string        `json:"id"`
	Summary *trip.Summary `json:"summary"`
}

func (h *handler) handleCreateQuote(c *gin.Context) {
	var req trip.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if problems := validation.ValidateTrip(req.Source, req.Destination, req.Nights, req.NightlyRate, req.Budget); len(problems) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": strings.Join(problems, "; ")})
		return
	}

	summary, err := trip.Compute(h.logger, h.engine, req)
	if err != nil {
		if errors.Is(err, trip.ErrNoOutboundRoute) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no outbound route found"})
			return
		}
		h.logger.Error("failed to compute quote",
			zap.String("op", "server.handleCreateQuote"),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute quote"})
		return
	}

	id := uuid.NewString()
	h.mu.Lock()
	h.quotes[id] = summary
	h.mu.Unlock()

	c.JSON(http.StatusOK, quoteResponse{ID: id, Summary: summary})
}

func (h *handler) handleGetQuote(c *gin.Context) {
	summary, ok := h.lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "quote not found"})
		return
	}
	c.JSON(http.StatusOK, quoteResponse{ID: c.Param("id"), Summary: summary})
}

func (h *handler) handleDownloadQuote(c *gin.Context) {
	id := c.Param("id")
	summary, ok := h.lookup(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "quote not found"})
		return
	}

	data, err := output.PDFBytes(summary)
	if err != nil {
		h.logger.Error("failed to render quote PDF",
			zap.String("op", "server.handleDownloadQuote"),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render PDF"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=quote-%s.pdf", id))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *handler) lookup(id string) (*trip.Summary, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	summary, ok := h.quotes[id]
	return summary, ok
}
