package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"patient-record-manager/config"
	deliveryHttp "patient-record-manager/internal/delivery/http"
	"patient-record-manager/internal/delivery/http/handler"
	"patient-record-manager/internal/delivery/http/middleware"
	"patient-record-manager/internal/domain/entity"
	domainRepo "patient-record-manager/internal/domain/repository"
	"patient-record-manager/internal/infrastructure/cache"
	"patient-record-manager/internal/infrastructure/database"
	"patient-record-manager/internal/repository"
	"patient-record-manager/internal/service"
	"patient-record-manager/internal/usecase"
	"patient-record-manager/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	LiveQuery   *service.LiveQueryService
	Patients    usecase.PatientUsecase
	Queries     usecase.QueryUsecase
	Dashboard   usecase.DashboardUsecase
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized.
// It fails when the schema cannot be ensured.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	// Setup logger
	app.Log = setupLogger(cfg.App.LogLevel)

	// Initialize database
	db, err := database.NewConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, err
	}
	app.DB = db
	app.Log.WithField("driver", cfg.DB.Driver).Info("Database connected successfully")

	if err := database.EnsureSchema(ctx, db); err != nil {
		app.Close()
		return nil, err
	}

	// Saved query storage
	savedQueryRepo, err := app.newSavedQueryRepository(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.initializeServer(db, savedQueryRepo)
	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	return log
}

func (app *App) newSavedQueryRepository(ctx context.Context) (domainRepo.SavedQueryRepository, error) {
	cfg := app.Config.SavedQueries
	switch cfg.Backend {
	case config.SavedQueriesBackendRedis:
		redisClient, err := cache.NewRedisClient(ctx, app.Config.Redis)
		if err != nil {
			return nil, err
		}
		app.RedisClient = redisClient
		return repository.NewSavedQueryRedisRepository(redisClient, cfg.Key, app.Log), nil
	case config.SavedQueriesBackendFile, "":
		return repository.NewSavedQueryFileRepository(afero.NewOsFs(), cfg.Path, cfg.Key, app.Log), nil
	default:
		return nil, fmt.Errorf("unsupported saved queries backend %q", cfg.Backend)
	}
}

// initializeServer wires every layer and creates the HTTP server
func (app *App) initializeServer(db *gorm.DB, savedQueryRepo domainRepo.SavedQueryRepository) {
	log := app.Log
	dialect := database.Dialect(db)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories; every write is announced on the change feed
	feed := service.NewChangeFeed()
	patientRepo := repository.NewPatientRepository(db, feed)
	queryRepo := repository.NewQueryRepository(db, feed)

	// Initialize services
	auditService := service.NewAuditService(log)
	generator := service.NewPatientGenerator(0, nil)
	app.LiveQuery = service.NewLiveQueryService(queryRepo, feed, log)

	// Initialize usecases
	app.Patients = usecase.NewPatientUsecase(log, patientRepo, generator, auditService, app.Config.Seed.DefaultCount)
	app.Queries = usecase.NewQueryUsecase(log, dialect, queryRepo, savedQueryRepo, auditService)
	app.Dashboard = usecase.NewDashboardUsecase(log, dialect, queryRepo)

	// Initialize handlers
	patientHandler := handler.NewPatientHandler(app.Patients, customValidator)
	queryHandler := handler.NewQueryHandler(app.Queries, customValidator)
	dashboardHandler := handler.NewDashboardHandler(app.Dashboard)
	liveHandler := handler.NewLiveHandler(app.LiveQuery, log)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(patientHandler, queryHandler, dashboardHandler, liveHandler, corsMiddleware, loggingMiddleware)

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", app.Config.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Dialect reports the SQL flavour of the connected engine.
func (app *App) Dialect() entity.Dialect {
	return database.Dialect(app.DB)
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Live subscriptions hold hijacked connections that Shutdown does not wait for
	app.LiveQuery.Stop()

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (live queries, database, redis)
func (app *App) Close() {
	if app.LiveQuery != nil {
		app.LiveQuery.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
