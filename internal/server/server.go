// Package server exposes validation, slip conversion and extraction over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rezonia/brdoc/internal/barcode"
	"github.com/rezonia/brdoc/internal/document"
	"github.com/rezonia/brdoc/internal/linecodec"
	"github.com/rezonia/brdoc/internal/llm"
	"github.com/rezonia/brdoc/internal/logger"
	"github.com/rezonia/brdoc/internal/model"
	"github.com/rezonia/brdoc/internal/processor"
)

// Config holds server configuration
type Config struct {
	Address        string
	APIKey         string
	LLMBaseURL     string
	LLMModel       string
	LLMVisionModel string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	Debug          bool
}

// Server represents the HTTP API server
type Server struct {
	config   *Config
	router   *gin.Engine
	pipeline *processor.Pipeline
	log      *slog.Logger
	now      func() time.Time
}

// Option configures the server
type Option func(*Server)

// WithLogger sets the request and lifecycle logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPipeline replaces the extraction pipeline built from the config
func WithPipeline(p *processor.Pipeline) Option {
	return func(s *Server) {
		if p != nil {
			s.pipeline = p
		}
	}
}

// WithClock sets the reference time for due date decoding
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// NewServer creates a new API server
func NewServer(config *Config, opts ...Option) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config: config,
		log:    logger.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.pipeline == nil {
		pipelineOpts := []processor.PipelineOption{
			processor.WithLogger(s.log),
			processor.WithClock(s.now),
		}
		if config.APIKey != "" {
			client := llm.NewClient(config.APIKey,
				llm.WithBaseURL(config.LLMBaseURL),
				llm.WithDefaultModel(config.LLMModel),
			)
			pipelineOpts = append(pipelineOpts, processor.WithLLMExtractor(
				llm.NewExtractor(client,
					llm.WithModel(config.LLMModel),
					llm.WithVisionModel(config.LLMVisionModel),
				),
			))
		}
		s.pipeline = processor.NewPipeline(pipelineOpts...)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestID())
	if config.Debug {
		router.Use(gin.Logger())
	} else {
		router.Use(requestLogger(s.log))
	}
	s.router = router

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/validate", s.handleValidate)
		v1.POST("/validate/incremental", s.handleValidateIncremental)

		v1.POST("/boleto/format", s.handleBoletoFormat)
		v1.POST("/boleto/deformat", s.handleBoletoDeformat)
		v1.POST("/boleto/info", s.handleBoletoInfo)

		v1.POST("/extract", s.handleExtract)
	}
}

// Run serves until ctx is cancelled or the process is interrupted
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.log.Info("server started",
		slog.String("address", s.config.Address),
		slog.Bool("llm", s.pipeline.HasLLM()))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	var err error
	select {
	case <-ctx.Done():
	case <-stop:
	case err = <-errCh:
	}

	if err == nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err = <-errCh
	}
	s.log.Info("server stopped")

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   s.now().UTC().Format(time.RFC3339),
		"llm":    s.pipeline.HasLLM(),
	})
}

func (s *Server) handleValidate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body", Details: err.Error()})
		return
	}

	values := req.Values
	if req.Value != "" {
		values = append([]string{req.Value}, values...)
	}
	if len(values) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "value is required"})
		return
	}

	ref := s.now()
	resp := ValidateResponse{Results: make([]processor.Finding, 0, len(values)), Total: len(values)}
	for _, v := range values {
		f := processor.Check(v, ref)
		if f.Valid {
			resp.Valid++
		}
		resp.Results = append(resp.Results, f)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleValidateIncremental(c *gin.Context) {
	var req IncrementalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body", Details: err.Error()})
		return
	}

	kind := strings.ToLower(req.Kind)
	if kind == "" {
		kind = document.Guess(req.Value)
	}
	v, ok := document.Named(kind)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown kind", Details: req.Kind})
		return
	}

	r, err := v.ValidateIncremental(req.Value, model.NewPartialResult())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, IncrementalResponse{
		Kind:       kind,
		State:      string(r.State()),
		StillValid: r.StillValid,
		Complete:   r.Complete,
		Message:    r.Message,
		Typed:      r.Typed,
	})
}

func (s *Server) handleBoletoFormat(c *gin.Context) {
	req, ok := bindValue(c)
	if !ok {
		return
	}

	line, err := linecodec.Format(req.Value)
	if err != nil {
		s.fail(c, err)
		return
	}
	formatted, err := linecodec.Mask(line)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, FormatResponse{Barcode: req.Value, Line: line, Formatted: formatted})
}

func (s *Server) handleBoletoDeformat(c *gin.Context) {
	req, ok := bindValue(c)
	if !ok {
		return
	}

	bc, err := linecodec.Deformat(req.Value)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, DeformatResponse{Line: document.DigitsOnly(req.Value), Barcode: bc})
}

func (s *Server) handleBoletoInfo(c *gin.Context) {
	req, ok := bindValue(c)
	if !ok {
		return
	}

	info, err := barcode.Parse(req.Value, s.now())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (s *Server) handleExtract(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return
	}

	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return
	}

	format := processor.DetectFormat(body)
	if format == processor.FormatUnknown {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unsupported file format"})
		return
	}

	timeout := 30 * time.Second
	if format != processor.FormatText {
		timeout = 2 * time.Minute
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	var result *processor.Result
	contentType := c.ContentType()
	if format == processor.FormatImage && strings.HasPrefix(contentType, "image/") {
		result = s.pipeline.ProcessImage(ctx, body, contentType)
	} else {
		result = s.pipeline.Process(ctx, body)
	}

	if result.Error != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:    result.Error.Error(),
			Warnings: result.Warnings,
		})
		return
	}

	c.JSON(http.StatusOK, ExtractResponse{
		Format:     format.String(),
		Findings:   result.Findings,
		Method:     string(result.Method),
		Confidence: result.Confidence,
		Warnings:   result.Warnings,
	})
}

func bindValue(c *gin.Context) (ValueRequest, bool) {
	var req ValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body", Details: err.Error()})
		return req, false
	}
	if strings.TrimSpace(req.Value) == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "value is required"})
		return req, false
	}
	return req, true
}

// fail maps usage errors to 400 and anything else to 500
func (s *Server) fail(c *gin.Context, err error) {
	if model.IsUsageError(err) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	s.log.ErrorContext(c.Request.Context(), "request failed",
		slog.String("request_id", c.GetString(requestIDKey)),
		slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
