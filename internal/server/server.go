// Package server exposes the matcher over HTTP.
package server

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlog "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/logger"
	"github.com/spigell/ats-matcher/internal/parser"
	"github.com/spigell/ats-matcher/internal/scoring"
	"github.com/spigell/ats-matcher/internal/textract"
)

const (
	defaultListen  = ":8000"
	requestIDKey   = "request_id"
	processingNote = "Files processed in-memory only. No data stored on server."
)

type Config struct {
	Listen         string `mapstructure:"listen"`
	MaxUploadBytes int    `mapstructure:"max-upload-bytes"`
	AllowOrigins   string `mapstructure:"allow-origins"`
}

type Server struct {
	app     *fiber.App
	cfg     Config
	parser  *parser.Parser
	scorer  *scoring.Scorer
	logger  *zap.Logger
	model   string
	version string
}

// Option customizes a Server.
type Option func(*Server)

// WithVersion reports the build version in health responses.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithModelName reports the linguistic model in health responses.
func WithModelName(name string) Option {
	return func(s *Server) { s.model = name }
}

func New(cfg Config, p *parser.Parser, sc *scoring.Scorer, log *zap.Logger, opts ...Option) *Server {
	if cfg.Listen == "" {
		cfg.Listen = defaultListen
	}
	if cfg.MaxUploadBytes <= 0 || cfg.MaxUploadBytes > textract.MaxBytes {
		cfg.MaxUploadBytes = textract.MaxBytes
	}
	if cfg.AllowOrigins == "" {
		cfg.AllowOrigins = "*"
	}

	s := &Server{
		cfg:     cfg,
		parser:  p,
		scorer:  sc,
		logger:  logger.WithFields(log),
		version: "dev",
	}
	for _, opt := range opts {
		opt(s)
	}

	// two documents plus multipart overhead
	bodyLimit := 2*cfg.MaxUploadBytes + 1<<20

	s.app = fiber.New(fiber.Config{
		AppName:               "ATS Matching API",
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          60 * time.Second,
		BodyLimit:             bodyLimit,
		ErrorHandler:          s.errorHandler,
		DisableStartupMessage: true,
	})

	s.app.Use(recover.New())
	s.app.Use(requestID)
	s.app.Use(fiberlog.New(fiberlog.Config{
		Format:     "${locals:request_id} ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: time.RFC3339,
		Output:     zap.NewStdLog(s.logger.Named("http")).Writer(),
	}))
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/", s.handleRoot)

	api := s.app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Post("/ats/match", s.handleMatch)
	api.Post("/ats/parse", s.handleParse)
}

// App exposes the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting the api server", zap.String("listen", s.cfg.Listen))
		errCh <- s.app.Listen(s.cfg.Listen)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down the api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.app.ShutdownWithContext(shutdownCtx)
	}
}

func requestID(c *fiber.Ctx) error {
	id := c.Get(fiber.HeaderXRequestID)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	c.Locals(requestIDKey, id)
	c.Set(fiber.HeaderXRequestID, id)
	return c.Next()
}

func (s *Server) requestLogger(c *fiber.Ctx) *zap.Logger {
	id, _ := c.Locals(requestIDKey).(string)
	return s.logger.With(zap.String(logger.FieldRequestID, id))
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		s.requestLogger(c).Error("request failed", zap.Error(err))
	}

	return c.Status(code).JSON(fiber.Map{
		"detail": err.Error(),
		"code":   code,
	})
}
