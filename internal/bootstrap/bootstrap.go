// Package bootstrap wires configuration, database, repositories, services
// and controllers into a running application.
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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/Revach69/bashert/internal/app/auth"
	appControllers "github.com/Revach69/bashert/internal/app/controllers"
	appMigrations "github.com/Revach69/bashert/internal/app/migrations"
	appRepos "github.com/Revach69/bashert/internal/app/repositories"
	appRoutes "github.com/Revach69/bashert/internal/app/routes"
	appServices "github.com/Revach69/bashert/internal/app/services"
	"github.com/Revach69/bashert/internal/config"
	"github.com/Revach69/bashert/internal/db"
	appMiddleware "github.com/Revach69/bashert/internal/middleware"
	pkgAuth "github.com/Revach69/bashert/internal/pkg/auth"
	"github.com/Revach69/bashert/internal/pkg/helpers"
	"github.com/Revach69/bashert/internal/pkg/logger"
	"github.com/Revach69/bashert/internal/pkg/notify"
	"github.com/Revach69/bashert/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService      *appServices.AuthService
	ProfileService   *appServices.ProfileService
	EventService     *appServices.EventService
	BrowseService    *appServices.BrowseService
	InterestService  *appServices.InterestService
	DashboardService *appServices.DashboardService

	AuthController       *appControllers.AuthController
	ProfileController    *appControllers.ProfileController
	EventController      *appControllers.EventController
	BrowseController     *appControllers.BrowseController
	InterestController   *appControllers.InterestController
	MatchmakerController *appControllers.MatchmakerController
	DashboardController  *appControllers.DashboardController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	AuthzService   *appAuth.AuthorizationService
	Notifier       notify.Notifier
	Logger         zerolog.Logger
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

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the configured admin accounts.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database, cfg, lgr); err != nil {
		// Seeding failures should not block startup
		lgr.Error().Err(err).Msg("Failed to seed default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.ParticipationRepository)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	mailer := notify.NewSMTPMailer(notify.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromAddress,
	}, lgr)
	deps.Notifier = notify.NewDispatcher(mailer, lgr)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		cfg,
		lgr,
	)
	deps.ProfileService = appServices.NewProfileService(
		deps.Repos.ProfileRepository,
		deps.AuthzService,
		lgr,
	)
	deps.EventService = appServices.NewEventService(
		deps.Repos.EventRepository,
		deps.Repos.UserRepository,
		deps.Repos.ProfileRepository,
		deps.Repos.ParticipationRepository,
		deps.AuthzService,
		lgr,
	)
	deps.BrowseService = appServices.NewBrowseService(
		deps.Repos.EventRepository,
		deps.Repos.ProfileRepository,
		deps.Repos.ParticipationRepository,
		deps.AuthzService,
		lgr,
	)
	deps.InterestService = appServices.NewInterestService(
		deps.Repos.InterestRepository,
		deps.Repos.EventRepository,
		deps.Repos.ProfileRepository,
		deps.Repos.UserRepository,
		deps.Repos.ParticipationRepository,
		deps.AuthzService,
		deps.Notifier,
		lgr,
	)
	deps.DashboardService = appServices.NewDashboardService(
		deps.Repos.ProfileRepository,
		deps.Repos.EventRepository,
		deps.Repos.InterestRepository,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.ProfileController = appControllers.NewProfileController(deps.ProfileService)
	deps.EventController = appControllers.NewEventController(deps.EventService)
	deps.BrowseController = appControllers.NewBrowseController(deps.BrowseService)
	deps.InterestController = appControllers.NewInterestController(deps.InterestService)
	deps.MatchmakerController = appControllers.NewMatchmakerController(deps.InterestService, deps.EventService)
	deps.DashboardController = appControllers.NewDashboardController(deps.DashboardService)

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

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.CORS())

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ProfileController,
		deps.EventController,
		deps.BrowseController,
		deps.InterestController,
		deps.MatchmakerController,
		deps.DashboardController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
