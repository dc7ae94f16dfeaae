// Package server exposes the pipeline over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Garvgupta06/ai-podcast-script-generator/internal/apperrors"
	"github.com/Garvgupta06/ai-podcast-script-generator/internal/pipeline"
)

// Server wraps an echo instance serving the pipeline API.
type Server struct {
	echo     *echo.Echo
	pipeline *pipeline.Pipeline
	logger   *zap.Logger
	started  time.Time
}

// successEnvelope wraps every successful response body.
type successEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// errorEnvelope wraps every failure response body.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// NewServer creates the HTTP server and registers its routes.
func NewServer(p *pipeline.Pipeline, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:     e,
		pipeline: p,
		logger:   logger,
		started:  time.Now(),
	}

	e.Use(middleware.Recover())
	e.Use(s.requestID())
	e.Use(s.requestLogger())

	api := e.Group("/api")
	api.GET("/health", s.handleHealth)
	api.POST("/process-transcript", s.handleProcessTranscript)
	api.POST("/enhance-content", s.handleEnhanceContent)
	api.POST("/generate-script", s.handleGenerateScript)
	api.POST("/create-script", s.handleCreateScript)

	return s
}

// Start begins serving on the given address. It blocks until the server
// stops.
func (s *Server) Start(addr string) error {
	s.logger.Info("http server starting", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) requestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.New().String()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			c.Set("request_id", id)
			return next(c)
		}
	}
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			requestID, _ := c.Get("request_id").(string)
			s.logger.Info("request handled",
				zap.String("request_id", requestID),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)))
			return err
		}
	}
}

func (s *Server) handleHealth(c echo.Context) error {
	stats := s.pipeline.Stats()
	return respond(c, http.StatusOK, map[string]interface{}{
		"status":                "healthy",
		"uptime_seconds":        int(time.Since(s.started).Seconds()),
		"llm_providers":         s.pipeline.HasEnhancementProviders(),
		"transcripts_processed": stats.TranscriptsProcessed,
		"content_enhanced":      stats.ContentEnhanced,
		"fallbacks_served":      stats.FallbacksServed,
		"scripts_generated":     stats.ScriptsGenerated,
	})
}

func (s *Server) handleProcessTranscript(c echo.Context) error {
	var req pipeline.ProcessTranscriptRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.NewValidation("malformed request body: %v", err))
	}
	transcript, err := s.pipeline.ProcessTranscript(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, transcript)
}

func (s *Server) handleEnhanceContent(c echo.Context) error {
	var req pipeline.EnhanceContentRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.NewValidation("malformed request body: %v", err))
	}
	result, err := s.pipeline.EnhanceContent(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, result)
}

func (s *Server) handleGenerateScript(c echo.Context) error {
	var req pipeline.GenerateScriptRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.NewValidation("malformed request body: %v", err))
	}
	pkg, err := s.pipeline.GenerateScript(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, pkg)
}

func (s *Server) handleCreateScript(c echo.Context) error {
	var req pipeline.CreateScriptRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.NewValidation("malformed request body: %v", err))
	}
	result, err := s.pipeline.CreateScript(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, result)
}

func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, successEnvelope{Success: true, Data: data})
}

func respondError(c echo.Context, err error) error {
	appErr := apperrors.FromError(err)
	return c.JSON(appErr.HTTPStatus(), errorEnvelope{
		Success: false,
		Error:   appErr.Message,
		Code:    string(appErr.Code),
	})
}
