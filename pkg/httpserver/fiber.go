package httpserver

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Metrics is exposed on /metrics when set.
	Metrics prometheus.Gatherer
	// Ready backs /manage/ready. Nil means always ready.
	Ready func() bool
}

func InitFiberServer(appName string, opts Options) *fiber.App {
	s := fiber.New(fiber.Config{
		AppName:      appName,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  opts.IdleTimeout,
	})

	s.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	s.Use(cors.New(cors.Config{
		ExposeHeaders: "X-Cache, X-Updated-At",
	}))

	ready := opts.Ready
	if ready == nil {
		ready = func() bool { return true }
	}
	s.Use(healthcheck.New(healthcheck.Config{
		LivenessEndpoint:  "/manage/health",
		ReadinessEndpoint: "/manage/ready",
		ReadinessProbe:    func(*fiber.Ctx) bool { return ready() },
	}))

	if opts.Metrics != nil {
		s.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Metrics, promhttp.HandlerOpts{})))
	}

	return s
}
