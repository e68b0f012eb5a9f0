// Package server exposes the scorer and its helpers over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/dshills/atscritic/internal/config"
	"github.com/dshills/atscritic/internal/scorer"
)

// MaxBatch caps the number of records accepted by the batch endpoint.
const MaxBatch = 100

// Options configures a Server.
type Options struct {
	Config   config.ServerConfig
	Version  string
	Parallel int
	Logger   *zap.Logger
}

// Server serves one immutable scorer to concurrent requests.
type Server struct {
	app      *fiber.App
	scorer   *scorer.Scorer
	log      *zap.Logger
	addr     string
	version  string
	parallel int
}

// New builds the fiber application and registers all routes.
func New(s *scorer.Scorer, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	srv := &Server{
		scorer:   s,
		log:      log,
		addr:     opts.Config.Addr,
		version:  opts.Version,
		parallel: opts.Parallel,
	}

	app := fiber.New(fiber.Config{
		AppName:               "atscritic " + opts.Version,
		BodyLimit:             opts.Config.BodyLimit,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	app.Use(RequestLogger(log))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Error("panic recovered", zap.String("path", c.Path()), zap.Any("panic", e))
		},
	}))
	app.Use(healthcheck.New(healthcheck.Config{
		ReadinessProbe: func(*fiber.Ctx) bool { return srv.scorer != nil },
	}))
	if opts.Config.RateLimit > 0 {
		app.Use(RateLimiter(opts.Config.RateLimit, opts.Config.RateWindow))
	}

	srv.app = app
	srv.registerRoutes()
	return srv
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Listen(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.addr))
		errc <- s.app.Listen(s.addr)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("server.Listen: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.log.Info("shutting down")
		if err := s.app.Shutdown(); err != nil {
			return fmt.Errorf("server.Listen: shutdown: %w", err)
		}
		if err := <-errc; err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("server.Listen: %w", err)
		}
		return nil
	}
}
