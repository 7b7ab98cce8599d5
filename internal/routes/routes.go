package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/gilberthappi/keya-health-be/internal/appointments"
	"github.com/gilberthappi/keya-health-be/internal/articles"
	"github.com/gilberthappi/keya-health-be/internal/auth"
	"github.com/gilberthappi/keya-health-be/internal/config"
	"github.com/gilberthappi/keya-health-be/internal/identity"
	"github.com/gilberthappi/keya-health-be/internal/ledger"
	"github.com/gilberthappi/keya-health-be/internal/middleware"
	"github.com/gilberthappi/keya-health-be/internal/notification"
	"github.com/gilberthappi/keya-health-be/internal/paypack"
	"github.com/gilberthappi/keya-health-be/internal/survey"
	"github.com/gilberthappi/keya-health-be/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg      config.Config
	DB       *pgxpool.Pool
	Cache    *redis.Client
	Logger   *slog.Logger
	Notifier notification.Notifier
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !isDev(d.Cfg.AppEnv) {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Services and handlers
	var store ledger.Store
	if d.DB != nil {
		store = ledger.NewPostgresStore(d.DB)
	} else {
		store = ledger.NewInMemory()
	}

	notifier := d.Notifier
	if notifier == nil {
		notifier = notification.NewLoggerNotifier(d.Logger)
	}

	var gateway paypack.Client
	if d.Cfg.PaypackClientID != "" && d.Cfg.PaypackSecret != "" {
		gateway = paypack.NewHTTPClient(d.Cfg.PaypackBaseURL, paypack.Credentials{
			ClientID:     d.Cfg.PaypackClientID,
			ClientSecret: d.Cfg.PaypackSecret,
		})
	} else if isDev(d.Cfg.AppEnv) {
		gateway = paypack.StaticClient{}
	} else {
		return fmt.Errorf("paypack credentials are required when APP_ENV=%s", d.Cfg.AppEnv)
	}

	walletSvc := wallet.NewService(store, gateway, notifier, d.Logger, d.Cfg.GatewayTimeout)

	var identityRepo identity.Repository
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
	} else {
		identityRepo = identity.NewMemoryRepository()
	}
	identitySvc := identity.NewService(identityRepo)
	identityHandler := identity.NewHandler(identitySvc)
	authSvc := auth.NewService(d.Cfg, identityRepo)
	authHandler := auth.NewHandler(identitySvc, authSvc)

	var appointmentRepo appointments.Repository
	if d.DB != nil {
		appointmentRepo = appointments.NewPostgresRepository(d.DB)
	} else {
		appointmentRepo = appointments.NewMemoryRepository()
	}
	appointmentHandler := appointments.NewHandler(appointments.NewService(appointmentRepo))

	var surveyRepo survey.Repository
	if d.DB != nil {
		surveyRepo = survey.NewPostgresRepository(d.DB)
	} else {
		surveyRepo = survey.NewMemoryRepository()
	}
	surveyHandler := survey.NewHandler(survey.NewService(surveyRepo))

	var articleRepo articles.Repository
	if d.DB != nil {
		articleRepo = articles.NewPostgresRepository(d.DB)
	} else {
		articleRepo = articles.NewMemoryRepository()
	}
	articleHandler := articles.NewHandler(articles.NewService(articleRepo))

	walletHandler := wallet.NewHandler(walletSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter)

	// Protected routes
	jwtmw := middleware.JWTAuth(d.Cfg, identityRepo)
	protected := api.Group("", jwtmw)
	protected.Get("/me", func(c *fiber.Ctx) error {
		uid, _ := c.Locals("user_id").(string)
		if uid == "" {
			return c.SendStatus(http.StatusUnauthorized)
		}
		user, err := identityRepo.FindByID(c.UserContext(), uid)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "user not found")
		}
		return c.JSON(fiber.Map{
			"user_id":    user.ID,
			"email":      user.Email,
			"fullName":   user.FullName,
			"role":       user.Role,
			"created_at": user.CreatedAt,
			"last_login": user.LastLogin,
		})
	})
	protected.Post("/auth/logout", authHandler.Logout)
	RegisterWalletRoutes(protected, walletHandler)
	RegisterAppointmentRoutes(protected, appointmentHandler)
	RegisterSurveyRoutes(protected, surveyHandler)
	RegisterDoctorRoutes(protected, identityHandler)
	RegisterArticleRoutes(protected, articleHandler)

	return nil
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
