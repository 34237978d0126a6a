package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/selira/modguard/pkg/config"
	handlers "github.com/selira/modguard/pkg/handlers/http"
	"github.com/selira/modguard/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

type Server struct {
	config           *config.Config
	logger           *logrus.Logger
	router           *fiber.App
	handlerTransport handlers.HandlerTransport
	metricsStarted   bool
}

func New(cfg *config.Config, logger *logrus.Logger, transport handlers.HandlerTransport) *Server {
	r := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             1 * 1024 * 1024,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           120 * time.Second,
	})

	r.Use(recover.New())
	r.Use(cors.New(cors.Config{
		AllowMethods: "POST,GET,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))

	return &Server{
		config:           cfg,
		logger:           logger,
		router:           r,
		handlerTransport: transport,
	}
}

func (s *Server) Run() error {
	s.setupRoutes()
	s.setupHealthCheck()
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.WithField("addr", addr).Info("starting moderation server")
	return s.router.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.router.Shutdown()
}

func (s *Server) setupRoutes() {
	v1 := s.router.Group("/api/v1")
	{
		moderationGroup := v1.Group("/moderation")
		{
			moderationGroup.Post("", s.handlerTransport.ModerateHandler.Handle)
			moderationGroup.Get("/accounts/:identity", s.handlerTransport.GetAccountHandler.Handle)
		}
	}
}

func (s *Server) setupHealthCheck() {
	s.router.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
}

func (s *Server) setupMetricsEndpoint() {
	if !s.config.Metrics.Enabled {
		s.logger.Info("prometheus metrics are disabled by configuration")
		return
	}
	if s.metricsStarted {
		return
	}
	s.metricsStarted = true

	metricsApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	metricsApp.Use(recover.New())

	metricsApp.Get("/metrics", func(c *fiber.Ctx) error {
		handler := fasthttpadaptor.NewFastHTTPHandler(
			promhttp.HandlerFor(prometheus.Registry(), promhttp.HandlerOpts{}),
		)
		handler(c.Context())
		return nil
	})

	go func() {
		addr := fmt.Sprintf(":%d", s.config.Server.MetricsPort)
		if err := metricsApp.Listen(addr); err != nil {
			if !strings.Contains(err.Error(), "address already in use") {
				s.logger.WithError(err).Error("failed to start metrics server")
			}
		}
	}()
}
