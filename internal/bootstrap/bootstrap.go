package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/uniportal/internal/app/controllers"
	appMigrations "github.com/yigit/uniportal/internal/app/migrations"
	appRepos "github.com/yigit/uniportal/internal/app/repositories"
	appRoutes "github.com/yigit/uniportal/internal/app/routes"
	appServices "github.com/yigit/uniportal/internal/app/services"
	"github.com/yigit/uniportal/internal/config"
	"github.com/yigit/uniportal/internal/db"
	appMiddleware "github.com/yigit/uniportal/internal/middleware"
	pkgAuth "github.com/yigit/uniportal/internal/pkg/auth"
	"github.com/yigit/uniportal/internal/pkg/describer"
	"github.com/yigit/uniportal/internal/pkg/geocoding"
	"github.com/yigit/uniportal/internal/pkg/helpers"
	"github.com/yigit/uniportal/internal/pkg/kvstore"
	"github.com/yigit/uniportal/internal/pkg/logger"
	"github.com/yigit/uniportal/internal/pkg/markdown"
	"github.com/yigit/uniportal/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	State          kvstore.Store
	JWTService     *pkgAuth.JWTService
	Services       *appServices.Services
	Controllers    *appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Logger         zerolog.Logger
}

// Close releases the state store
func (d *Dependencies) Close() error {
	if d == nil || d.State == nil {
		return nil
	}
	return d.State.Close()
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:   logLevel,
		Pretty:  strings.ToLower(cfg.Logging.Format) == "text",
		Service: "uniportal",
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
// The memory driver needs neither and returns a nil pool.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Warn().Msg("Using the in-memory database driver, data is lost on restart")
		return nil, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := appMigrations.NewMigrator(dbPool, lgr).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// SetupState opens the per-user state store selected by state.driver
func SetupState(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (kvstore.Store, error) {
	codec := kvstore.NewCodec(kvstore.DefaultMigrations...)
	switch cfg.State.Driver {
	case config.DriverRedis:
		store, err := kvstore.NewRedisStore(context.Background(), kvstore.RedisConfig{
			Addr:      cfg.State.RedisAddr,
			Password:  cfg.State.RedisPassword,
			DB:        cfg.State.RedisDB,
			KeyPrefix: cfg.State.KeyPrefix,
		}, codec)
		if err != nil {
			lgr.Error().Err(err).Str("addr", cfg.State.RedisAddr).Msg("Failed to connect to redis")
			return nil, err
		}
		lgr.Info().Str("addr", cfg.State.RedisAddr).Msg("User state stored in redis")
		return store, nil
	case config.DriverPostgres:
		if dbPool == nil {
			return nil, fmt.Errorf("postgres state driver needs a database connection")
		}
		lgr.Info().Msg("User state stored in postgres")
		return kvstore.NewPostgresStore(dbPool, codec), nil
	default:
		lgr.Warn().Msg("User state kept in memory, progress and bookmarks are lost on restart")
		return kvstore.NewMemoryStore(codec), nil
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, state kvstore.Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, State: state}

	if dbPool != nil {
		deps.Repos = appRepos.NewRepositories(dbPool)
	} else {
		deps.Repos = appRepos.NewMemoryRepositories()
	}

	if err := appMiddleware.RegisterValidators(); err != nil {
		lgr.Error().Err(err).Msg("Failed to register validators")
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	if err := seed.CreateDefaultData(context.Background(), deps.Repos, cfg.Admin, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	desc := describer.NewClient(describer.Config{
		APIKey:  cfg.Describer.APIKey,
		BaseURL: cfg.Describer.BaseURL,
		Model:   cfg.Describer.Model,
		Timeout: helpers.ParseDuration(cfg.Describer.Timeout, describer.DefaultTimeout),
	}, lgr)
	if !desc.Configured() {
		lgr.Warn().Msg("Description generator has no API key, generation is disabled")
	}

	geo := geocoding.NewClient(geocoding.Config{
		BaseURL:   cfg.Geocoding.BaseURL,
		UserAgent: cfg.Geocoding.UserAgent,
		Limit:     cfg.Geocoding.Limit,
		Timeout:   helpers.ParseDuration(cfg.Geocoding.Timeout, geocoding.DefaultTimeout),
	}, lgr)

	deps.Services = appServices.NewServices(appServices.Dependencies{
		Repos:     deps.Repos,
		State:     state,
		JWT:       deps.JWTService,
		Describer: desc,
		Geocoder:  geo,
		Markdown:  markdown.NewRenderer(),
		Location:  cfg.Location(),
		Logger:    lgr,
	})

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.Users, lgr)
	deps.Controllers = NewControllers(deps.Services, lgr)

	return deps, nil
}

// NewControllers builds every controller from the services
func NewControllers(svc *appServices.Services, lgr zerolog.Logger) *appRoutes.Controllers {
	return &appRoutes.Controllers{
		Auth:        appControllers.NewAuthController(svc.Auth, lgr),
		Courses:     appControllers.NewCourseController(svc.Courses, svc.Dashboard),
		Chapters:    appControllers.NewChapterController(svc.Chapters),
		Series:      appControllers.NewSeriesController(svc.Series),
		Settings:    appControllers.NewSettingsController(svc.Settings),
		Progress:    appControllers.NewProgressController(svc.Progress, svc.Bookmarks),
		Users:       appControllers.NewUserController(svc.Users, svc.Address),
		Payments:    appControllers.NewPaymentController(svc.Payments),
		Description: appControllers.NewDescriptionController(svc.Description),
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	appRoutes.SetupSwagger(router)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	router.Use(deps.AuthMiddleware.JWTAuth(), deps.AuthMiddleware.SessionLoader())
	appRoutes.SetupRouter(router, deps.Controllers)

	return router
}
