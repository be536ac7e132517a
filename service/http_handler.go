package service

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ludo-technologies/mobilescan/domain"
	"github.com/ludo-technologies/mobilescan/internal/version"
)

// MaxRequestComponents caps the number of components accepted per API call
const MaxRequestComponents = 200

// AnalyzeComponentPayload is one component in an API request
type AnalyzeComponentPayload struct {
	Name    string `json:"name" binding:"required"`
	Path    string `json:"path"`
	Content string `json:"content"`
}

// AnalyzeRequestPayload is the body of POST /api/analyze
type AnalyzeRequestPayload struct {
	Components  []AnalyzeComponentPayload `json:"components" binding:"required,min=1,dive"`
	MinSeverity string                    `json:"min_severity"`
	SortBy      string                    `json:"sort_by"`
}

// HTTPHandler serves the analysis API
type HTTPHandler struct {
	service domain.MobileService
	logger  *slog.Logger
}

// NewHTTPHandler creates a handler backed by the given service
func NewHTTPHandler(service domain.MobileService, logger *slog.Logger) *HTTPHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPHandler{service: service, logger: logger}
}

// NewRouter builds the gin engine with the API routes and middleware
func NewRouter(service domain.MobileService, logger *slog.Logger) *gin.Engine {
	h := NewHTTPHandler(service, logger)

	r := gin.New()
	r.Use(ErrorHandler(h.logger))
	r.Use(RequestLogger(h.logger))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.POST("/analyze", h.Analyze)
	}
	return r
}

// Health reports liveness and the running version
func (h *HTTPHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": version.Version,
	})
}

// Analyze runs a batch analysis on the posted components
func (h *HTTPHandler) Analyze(c *gin.Context) {
	var payload AnalyzeRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	req, err := payload.toRequest()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	response, err := h.service.Analyze(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("analysis request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to analyze components: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, PrepareResponse(response, req.MinSeverity, req.SortBy))
}

func (p AnalyzeRequestPayload) toRequest() (domain.MobileRequest, error) {
	if len(p.Components) > MaxRequestComponents {
		return domain.MobileRequest{}, fmt.Errorf("too many components: %d (max %d)", len(p.Components), MaxRequestComponents)
	}

	req := domain.MobileRequest{
		Components:   make([]domain.ComponentSource, 0, len(p.Components)),
		OutputFormat: domain.OutputFormatJSON,
		SortBy:       domain.SortCriteria(strings.ToLower(p.SortBy)),
	}
	for _, c := range p.Components {
		req.Components = append(req.Components, domain.ComponentSource{
			Name:    c.Name,
			Path:    c.Path,
			Content: c.Content,
			Size:    int64(len(c.Content)),
		})
	}

	if p.MinSeverity != "" {
		severity, err := domain.ParseSeverity(p.MinSeverity)
		if err != nil {
			return domain.MobileRequest{}, err
		}
		req.MinSeverity = severity
	}
	if err := NewConfigurationLoader().ValidateRequest(&req); err != nil {
		return domain.MobileRequest{}, err
	}
	return req, nil
}

// ErrorHandler recovers from panics in handlers and answers with a 500
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					"error", err,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()))

				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "An unexpected error occurred",
				})
				c.Abort()
			}
		}()

		c.Next()
	}
}

// RequestLogger logs every request at DEBUG and failed ones at WARN
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelDebug
		if status >= http.StatusBadRequest {
			level = slog.LevelWarn
		}
		logger.Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"client", c.ClientIP())
	}
}

// IsServerClosed reports whether err is the normal shutdown error of http.Server
func IsServerClosed(err error) bool {
	return errors.Is(err, http.ErrServerClosed)
}
