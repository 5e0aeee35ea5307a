package server

import (
	"fmt"
	"html/template"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/template/html/v3"
	"go.uber.org/zap"

	"trendboard/internal/config"
	"trendboard/internal/handlers"
	"trendboard/internal/handlers/api"
	"trendboard/internal/models"
)

// Server wraps the Fiber app and configuration.
type Server struct {
	App    *fiber.App
	Cfg    *config.Config
	Logger *zap.Logger
}

// New creates a new server with middleware configured.
func New(cfg *config.Config, log *zap.Logger) *Server {
	// Setup template engine
	engine := html.New(cfg.ViewsDir, ".html")
	engine.Reload(cfg.IsDev())
	engine.AddFuncMap(templateFuncs())

	// Initialize Fiber
	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/main",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			} else {
				log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
			}

			data := handlers.NewBranding(cfg).Page("Error")
			data["Code"] = code
			data["Message"] = message
			return c.Status(code).Render("error", data)
		},
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())

	// CORS middleware
	corsOrigins := cfg.BaseURL
	if cfg.CORSOrigins != "" {
		corsOrigins = cfg.CORSOrigins
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Split(corsOrigins, ","),
		AllowMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       86400,
	}))

	// Rate limiting middleware, per client IP
	if cfg.RateLimitPerMinute > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitPerMinute,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return api.Fail(c, fiber.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			},
		}))
	}

	return &Server{
		App:    app,
		Cfg:    cfg,
		Logger: log,
	}
}

// Start listens on the configured address until Shutdown is called.
func (s *Server) Start() error {
	s.Logger.Info("starting server", zap.String("addr", s.Cfg.ServerAddr))
	return s.App.Listen(s.Cfg.ServerAddr, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.App.Shutdown()
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"comma": humanize.Comma,
		"pct":   formatPercent,
		"share": formatShare,
		"shade": shade,
		"date": func(t time.Time) string {
			return t.Format(models.DateLayout)
		},
		"join": strings.Join,
		"inc": func(i int) int {
			return i + 1
		},
	}
}

// formatPercent renders a growth value with an explicit sign.
func formatPercent(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}

// formatShare renders a 0..100 share without a sign.
func formatShare(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// shade maps v in [0, top] to a CSS background for heatmap cells.
func shade(v, top int64) template.CSS {
	alpha := 0.0
	if top > 0 {
		alpha = math.Round(float64(v)/float64(top)*100) / 100
	}
	return template.CSS(fmt.Sprintf("background-color: rgba(31, 119, 180, %.2f)", alpha))
}
