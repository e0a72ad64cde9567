package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/schooldesk/api/internal/app/controllers"
	appMigrations "github.com/schooldesk/api/internal/app/migrations"
	appRepos "github.com/schooldesk/api/internal/app/repositories"
	appRoutes "github.com/schooldesk/api/internal/app/routes"
	appServices "github.com/schooldesk/api/internal/app/services"
	"github.com/schooldesk/api/internal/config"
	"github.com/schooldesk/api/internal/db"
	"github.com/schooldesk/api/internal/pkg/helpers"
	"github.com/schooldesk/api/internal/pkg/logger"
	"github.com/schooldesk/api/internal/pkg/websocket"
	"github.com/schooldesk/api/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services *appServices.Services
	Repos    *appRepos.Repositories

	StudentController      *appControllers.StudentController
	PaymentController      *appControllers.PaymentController
	SubjectController      *appControllers.SubjectController
	UserController         *appControllers.UserController
	FeeController          *appControllers.FeeController
	AnnouncementController *appControllers.AnnouncementController
	ActivityController     *appControllers.ActivityController

	Hub       *websocket.Hub
	WSHandler *websocket.Handler
	Refresher *appServices.SummaryRefresher

	Logger zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	// Run migrations
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Create default data (after migrations)
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// The hub fans collection-change events out to dashboard subscribers
	deps.Hub = websocket.NewHub(lgr)
	deps.WSHandler = websocket.NewHandler(deps.Hub, lgr)

	deps.Services = appServices.NewServices(deps.Repos, deps.Hub, cfg.Assets.LogoURL)

	// Background recompute keeps financial summaries fresh between mutations
	summaryInterval := helpers.ParseDuration(cfg.Refresh.SummaryInterval, 30*time.Second)
	deps.Refresher = appServices.NewSummaryRefresher(deps.Services.StudentService, summaryInterval)

	deps.StudentController = appControllers.NewStudentController(deps.Services.StudentService, cfg.Assets.LogoURL)
	deps.PaymentController = appControllers.NewPaymentController(deps.Services.PaymentService)
	deps.SubjectController = appControllers.NewSubjectController(deps.Services.SubjectService)
	deps.UserController = appControllers.NewUserController(deps.Services.UserService)
	deps.FeeController = appControllers.NewFeeController(deps.Services.FeeScheduleService)
	deps.AnnouncementController = appControllers.NewAnnouncementController(deps.Services.AnnouncementService)
	deps.ActivityController = appControllers.NewActivityController(deps.Services.ActivityService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	// Setup Swagger
	appRoutes.SetupSwagger(router)

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.StudentController,
		deps.PaymentController,
		deps.SubjectController,
		deps.UserController,
		deps.FeeController,
		deps.AnnouncementController,
		deps.ActivityController,
		deps.WSHandler,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
