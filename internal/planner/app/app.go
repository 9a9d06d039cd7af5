package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aussiebroadwan/tripplan/internal/planner/genai"
	httpapi "github.com/aussiebroadwan/tripplan/internal/planner/http"
	"github.com/aussiebroadwan/tripplan/internal/planner/metrics"
	"github.com/aussiebroadwan/tripplan/internal/planner/notify"
	"github.com/aussiebroadwan/tripplan/internal/planner/service"
	"github.com/aussiebroadwan/tripplan/internal/planner/store"
	mongostore "github.com/aussiebroadwan/tripplan/internal/planner/store/drivers/mongo"
	"github.com/aussiebroadwan/tripplan/internal/planner/store/drivers/sqlite"
	"github.com/aussiebroadwan/tripplan/pkg/cryptox"
	"github.com/aussiebroadwan/tripplan/pkg/httpx"
	"github.com/aussiebroadwan/tripplan/pkg/jwtx"
	"github.com/aussiebroadwan/tripplan/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application wires the planner service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db         store.Store
	keyManager *jwtx.KeyManager
	metrics    *metrics.Metrics
	redis      *redis.Client

	authService         *service.AuthService
	planService         *service.PlanService
	historyService      *service.HistoryService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "planner",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg:     cfg,
		logger:  NewLogger(cfg),
		metrics: metrics.New(),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	ctx := context.Background()
	db, err := OpenStore(ctx, cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	keyManager, err := InitSessionKeys(cfg, app.logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	app.keyManager = keyManager

	if err := app.initRedis(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// OpenStore connects the configured driver and brings its schema up to date.
func OpenStore(ctx context.Context, cfg Config, logger *slog.Logger) (store.Store, error) {
	var (
		db  store.Store
		err error
	)
	switch cfg.StoreDriver {
	case DriverSQLite:
		dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", cfg.DatabaseFile)
		db, err = sqlite.NewStore(dsn)
	case DriverMongo:
		if cfg.MongoURI == "" {
			return nil, errors.New("MONGO_URI is required for the mongo store driver")
		}
		db, err = mongostore.NewStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	logger.Info("database ready", "driver", cfg.StoreDriver)
	return db, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("planner starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down planner...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("planner stopped")
	return nil
}

// initRedis connects the shared rate limit backend when REDIS_URL is set.
func (app *Application) initRedis(ctx context.Context) error {
	if app.cfg.RedisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(app.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	app.redis = redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := app.redis.Ping(pingCtx).Err(); err != nil {
		// Rate limiting fails open, so an unreachable redis only degrades it.
		app.logger.Warn("redis unreachable, rate limits will allow requests until it recovers", "error", err)
	} else {
		app.logger.Info("redis rate limiting enabled", "addr", opts.Addr)
	}
	return nil
}

func (app *Application) notifier() notify.Notifier {
	if app.cfg.Notifier == NotifierBrevo {
		n := notify.NewBrevoNotifier(app.cfg.BrevoAPIKey, app.cfg.EmailFrom, app.cfg.EmailAppName, app.logger)
		n.ExpiryMinutes = max(1, int(app.cfg.OTPTTL/time.Minute))
		app.logger.Info("otp email via brevo", "from", app.cfg.EmailFrom)
		return n
	}
	app.logger.Warn("otp email disabled, codes are only logged", "notifier", app.cfg.Notifier)
	return notify.NewLogNotifier(app.logger)
}

func (app *Application) model() service.Model {
	if app.cfg.GeminiAPIKey == "" {
		app.logger.Warn("GEMINI_API_KEY is not set, plan generation will fail")
	}
	client := genai.NewClient(app.cfg.GeminiAPIKey, app.cfg.GeminiModel, app.cfg.GeminiBaseURL, app.cfg.GenerationTimeout)
	return genai.NewBreaker(client, genai.DefaultBreakerConfig, app.logger)
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	users := &service.UserService{Store: app.db}
	otps := &service.OTPService{Store: app.db, TTL: app.cfg.OTPTTL}

	app.authService = &service.AuthService{
		Store: app.db,
		Users: users,
		OTPs:  otps,
		Sessions: &service.SessionService{
			Signer: app.keyManager.Signer,
			Issuer: app.cfg.Issuer,
			TTL:    app.cfg.SessionTTL,
		},
		Notifier:    app.notifier(),
		Metrics:     app.metrics,
		SendTimeout: app.cfg.OTPSendTimeout,
	}

	app.historyService = &service.HistoryService{Store: app.db, Metrics: app.metrics}
	app.planService = &service.PlanService{
		Itineraries: &service.ItineraryService{Model: app.model(), Metrics: app.metrics},
		History:     app.historyService,
	}

	app.housekeepingService = service.NewHousekeepingService(
		otps,
		app.metrics,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		app.keyManager.Verifier,
		BuildVersion,
		app.db,
		app.metrics,
		app.logger,
	)

	router.AuthService = app.authService
	router.PlanService = app.planService
	router.HistoryService = app.historyService
	router.CORSOrigins = app.cfg.CORSOrigins
	if app.redis != nil {
		router.NewLimiter = func(name string, cfg httpx.RateLimitConfig) httpx.Limiter {
			return httpx.NewRedisLimiter(app.redis, "planner:ratelimit:"+name, cfg)
		}
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
