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

	appControllers "github.com/yigit/consultdesk/internal/app/controllers"
	appMigrations "github.com/yigit/consultdesk/internal/app/migrations"
	appRepos "github.com/yigit/consultdesk/internal/app/repositories"
	appRoutes "github.com/yigit/consultdesk/internal/app/routes"
	appServices "github.com/yigit/consultdesk/internal/app/services"
	"github.com/yigit/consultdesk/internal/config"
	"github.com/yigit/consultdesk/internal/db"
	appMiddleware "github.com/yigit/consultdesk/internal/middleware"
	pkgAuth "github.com/yigit/consultdesk/internal/pkg/auth"
	"github.com/yigit/consultdesk/internal/pkg/email"
	"github.com/yigit/consultdesk/internal/pkg/filestorage"
	"github.com/yigit/consultdesk/internal/pkg/helpers"
	"github.com/yigit/consultdesk/internal/pkg/logger"
	"github.com/yigit/consultdesk/internal/pkg/websocket"
	"github.com/yigit/consultdesk/internal/scheduler"
	"github.com/yigit/consultdesk/internal/seed"
)

const expiryJobName = "document-expiry-reminders"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos         *appRepos.Repositories
	JWTService    *pkgAuth.JWTService
	FileStorage   *filestorage.LocalStorage
	EmailService  email.EmailService
	Hub           *websocket.Hub
	Scheduler     *scheduler.Scheduler
	AuthService   *appServices.AuthService
	ExpiryService *appServices.ExpiryService

	AuthMiddleware   *appMiddleware.AuthMiddleware
	Controllers      appRoutes.Controllers
	WebSocketHandler *websocket.Handler
	Logger           zerolog.Logger
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
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
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

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, logger.Component("migrator"))
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	seedOpts := seed.Options{
		AdminEmail:    config.GetEnv("SEED_ADMIN_EMAIL", seed.DefaultAdminEmail),
		AdminPassword: config.GetEnv("SEED_ADMIN_PASSWORD", seed.DefaultAdminPassword),
	}
	if err := seed.CreateDefaultData(ctx, dbPool, seedOpts, logger.Component("seed")); err != nil {
		// Missing defaults do not prevent the API from serving
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers and background workers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(dbPool)
	repos := deps.Repos

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 720*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.BaseURL(),
	}, logger.Component("email"))

	deps.Hub = websocket.NewHub(logger.Component("websocket"))

	// Services
	deps.AuthService = appServices.NewAuthService(repos.UserRepository, repos.BranchRepository, deps.JWTService, lgr)
	userService := appServices.NewUserService(repos.UserRepository, repos.BranchRepository, lgr)
	branchService := appServices.NewBranchService(repos.BranchRepository, repos.UserRepository, lgr)
	studentService := appServices.NewStudentService(repos.StudentRepository, repos.BranchRepository, repos.ApplicationRepository, lgr)
	applicationService := appServices.NewApplicationService(
		repos.ApplicationRepository,
		repos.StudentRepository,
		repos.CourseRepository,
		repos.ChecklistRepository,
		repos.DocumentRepository,
		deps.FileStorage,
		lgr,
	)
	documentService := appServices.NewDocumentService(
		repos.DocumentRepository,
		repos.ApplicationRepository,
		deps.FileStorage,
		filestorage.DocumentUploadPolicy(cfg.MaxUploadBytes()),
		lgr,
	)
	checklistService := appServices.NewChecklistService(repos.ChecklistRepository, repos.CourseRepository, lgr)
	notificationService := appServices.NewNotificationService(repos.NotificationRepository, repos.UserRepository, deps.Hub, lgr)
	deps.ExpiryService = appServices.NewExpiryService(
		repos.DocumentRepository,
		notificationService,
		deps.EmailService,
		cfg.Scheduler.ExpiryWindowDays,
		logger.Component("expiry"),
	)
	dashboardService := appServices.NewDashboardService(repos.DashboardRepository, repos.BranchRepository)
	bulkService := appServices.NewBulkService(
		repos.StudentRepository,
		repos.BranchRepository,
		repos.ApplicationRepository,
		applicationService,
		repos.AuditRepository,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.AuthService)
	deps.WebSocketHandler = websocket.NewHandler(deps.Hub, cfg.Server.AllowedOrigins, appMiddleware.GetActor, logger.Component("websocket"))

	// Controllers
	deps.Controllers = appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(deps.AuthService, lgr),
		User:         appControllers.NewUserController(userService),
		Branch:       appControllers.NewBranchController(branchService),
		Student:      appControllers.NewStudentController(studentService),
		Application:  appControllers.NewApplicationController(applicationService),
		Document:     appControllers.NewDocumentController(documentService),
		Checklist:    appControllers.NewChecklistController(checklistService),
		Notification: appControllers.NewNotificationController(notificationService, deps.ExpiryService, lgr),
		Dashboard:    appControllers.NewDashboardController(dashboardService),
		Bulk:         appControllers.NewBulkController(bulkService, filestorage.CSVUploadPolicy(cfg.MaxUploadBytes())),
	}

	if cfg.Scheduler.Enabled {
		deps.Scheduler, err = setupScheduler(cfg, deps.ExpiryService, logger.Component("scheduler"))
		if err != nil {
			return nil, err
		}
	} else {
		lgr.Info().Msg("Scheduler disabled by configuration")
	}

	return deps, nil
}

// setupScheduler registers the daily expiry reminder job
func setupScheduler(cfg *config.Config, expiry *appServices.ExpiryService, lgr zerolog.Logger) (*scheduler.Scheduler, error) {
	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler timezone: %w", err)
	}

	sched := scheduler.New(scheduler.Config{
		Location:   location,
		RunTimeout: helpers.ParseDuration(cfg.Scheduler.RunTimeout, 10*time.Minute),
	}, lgr)

	err = sched.AddJob(expiryJobName, cfg.Scheduler.ExpiryCron, func(ctx context.Context) error {
		result, err := expiry.Scan(ctx)
		if err != nil {
			return err
		}
		lgr.Info().
			Int("documentCount", result.DocumentCount).
			Int("notified", result.Notified).
			Int("failed", result.Failed).
			Msg("Scheduled expiry scan completed")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sched, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadBytes()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestLogger(logger.Component("http")),
		appMiddleware.CORS(cfg.Server.AllowedOrigins),
	)

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, appRoutes.Options{
		CronAPIKey:       cfg.Cron.APIKey,
		WebSocketHandler: deps.WebSocketHandler.HandleConnection,
	})

	router.Static(filestorage.PublicPrefix, deps.FileStorage.BasePath())
	lgr.Info().Str("path", deps.FileStorage.BasePath()).Msg("Static file serving configured for uploads directory")

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router, nil
}
