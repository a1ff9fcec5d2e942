package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/bathudi/admissions/internal/app/controllers"
	appMigrations "github.com/bathudi/admissions/internal/app/migrations"
	appRepos "github.com/bathudi/admissions/internal/app/repositories"
	appRoutes "github.com/bathudi/admissions/internal/app/routes"
	appServices "github.com/bathudi/admissions/internal/app/services"
	"github.com/bathudi/admissions/internal/config"
	"github.com/bathudi/admissions/internal/db"
	appMiddleware "github.com/bathudi/admissions/internal/middleware"
	pkgAuth "github.com/bathudi/admissions/internal/pkg/auth"
	"github.com/bathudi/admissions/internal/pkg/coursepdf"
	"github.com/bathudi/admissions/internal/pkg/email"
	"github.com/bathudi/admissions/internal/pkg/filestorage"
	"github.com/bathudi/admissions/internal/pkg/helpers"
	"github.com/bathudi/admissions/internal/pkg/logger"
	"github.com/bathudi/admissions/internal/pkg/validation"
	"github.com/bathudi/admissions/internal/pkg/websocket"
	"github.com/bathudi/admissions/internal/pkg/whatsapp"
)

// DefaultConfigPath is where the server and the admin CLI look for their config file
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos      *appRepos.Repositories
	Storage    filestorage.Storage
	Documents  *filestorage.DocumentStore
	JWTService *pkgAuth.JWTService
	Hub        *websocket.Hub
	Audit      *websocket.AuditLogger
	Dispatcher *whatsapp.Dispatcher
	Mailer     email.EmailService

	AuthService        *appServices.AuthService
	CourseService      appServices.CourseService
	ApplicationService appServices.ApplicationService
	WorkflowService    appServices.WorkflowService
	StudentService     appServices.StudentService
	DashboardService   appServices.DashboardService
	ContentService     appServices.ContentService

	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger
}

// Start runs the event hub and the audit log until ctx is done
func (d *Dependencies) Start(ctx context.Context) {
	go d.Hub.Run(ctx)
	d.Audit.Start(ctx)
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.FromSettings(cfg.Logging.Level, cfg.Logging.Format))

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// ConnectDatabase opens and verifies the connection pool
func ConnectDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database.Pool, nil
}

// RunMigrations applies pending SQL files from the configured directory
func RunMigrations(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, lgr zerolog.Logger) (int, error) {
	dir := cfg.Server.MigrationsDir
	if _, err := os.Stat(dir); err != nil {
		lgr.Error().Err(err).Str("path", dir).Msg("Migrations directory not found")
		return 0, fmt.Errorf("migrations directory not found at %s: %w", dir, err)
	}

	applied, err := appMigrations.NewMigrator(pool, lgr).MigrateFromDirectory(ctx, dir)
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return applied, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Int("applied", applied).Msg("Database migrations complete")
	return applied, nil
}

// SetupDatabase connects, migrates and ensures the configured admin account
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	pool, err := ConnectDatabase(cfg, lgr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := RunMigrations(ctx, cfg, pool, lgr); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// SetupStorage builds the file storage selected by storage.driver
func SetupStorage(cfg *config.Config, lgr zerolog.Logger) (filestorage.Storage, error) {
	switch cfg.Storage.Driver {
	case "s3":
		s3cfg := cfg.Storage.S3
		st, err := filestorage.NewS3Storage(filestorage.S3Config{
			Bucket:    s3cfg.Bucket,
			Region:    s3cfg.Region,
			Endpoint:  s3cfg.Endpoint,
			AccessKey: s3cfg.AccessKey,
			SecretKey: s3cfg.SecretKey,
			PublicURL: s3cfg.PublicURL,
		})
		if err != nil {
			lgr.Error().Err(err).Str("bucket", s3cfg.Bucket).Msg("Failed to initialize S3 storage")
			return nil, fmt.Errorf("failed to initialize s3 storage: %w", err)
		}
		lgr.Info().Str("bucket", s3cfg.Bucket).Str("region", s3cfg.Region).Msg("Using S3 storage")
		return st, nil
	default:
		// Files are served back through /media/*path
		baseURL := strings.TrimRight(cfg.Server.BaseURL, "/") + "/media"
		st, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file storage: %w", err)
		}
		return st, nil
	}
}

func setupNotifier(cfg *config.Config, lgr zerolog.Logger) *whatsapp.Dispatcher {
	wa := cfg.WhatsApp
	var provider whatsapp.Provider
	if wa.AccountSID != "" && wa.AuthToken != "" {
		tp, err := whatsapp.NewTwilioProvider(whatsapp.TwilioConfig{
			AccountSID: wa.AccountSID,
			AuthToken:  wa.AuthToken,
			From:       wa.FromNumber,
			Timeout:    helpers.ParseDuration(wa.Timeout, 15*time.Second),
		})
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to initialize Twilio provider, WhatsApp notifications disabled")
		} else {
			provider = tp
		}
	} else {
		lgr.Warn().Msg("Twilio credentials not configured, WhatsApp notifications disabled")
	}

	inst := cfg.Institution
	return whatsapp.NewDispatcher(provider, whatsapp.Settings{
		Enabled:             wa.Enabled,
		SendApproval:        wa.SendApproval,
		SendRejection:       wa.SendRejection,
		TemplateID:          wa.TemplateSID,
		ApprovalTemplateID:  wa.ApprovalTemplateSID,
		RejectionTemplateID: wa.RejectionTemplateSID,
		SandboxMode:         wa.SandboxMode,
		TestNumbers:         wa.TestNumbers,
	}, whatsapp.Institution{
		Name:            inst.Name,
		RegistrationFee: inst.RegistrationFeeAmount,
		Currency:        inst.RegistrationFeeCurr,
		Address:         inst.Address,
		Phone:           inst.WhatsAppNumber,
		Email:           inst.Email,
		Website:         inst.Website,
	}, lgr)
}

func setupMailer(cfg *config.Config, lgr zerolog.Logger) email.EmailService {
	return email.NewEmailService(email.SMTPConfig{
		Host:            cfg.Mail.Host,
		Port:            cfg.Mail.Port,
		Username:        cfg.Mail.Username,
		Password:        cfg.Mail.Password,
		FromName:        cfg.Institution.Name,
		FromEmail:       cfg.Mail.From,
		InstitutionName: cfg.Institution.Name,
		ContactPhone:    cfg.Institution.WhatsAppNumber,
		Website:         cfg.Institution.Website,
	}, lgr)
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.Storage, err = SetupStorage(cfg, lgr)
	if err != nil {
		return nil, err
	}
	deps.Documents = filestorage.NewDocumentStore(deps.Storage, lgr)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Hub = websocket.NewHub(lgr)
	deps.Audit = websocket.NewAuditLogger(deps.Hub, lgr)
	deps.Dispatcher = setupNotifier(cfg, lgr)
	deps.Mailer = setupMailer(cfg, lgr)

	repos := deps.Repos
	inst := cfg.Institution
	pdf := coursepdf.NewGenerator(coursepdf.Institution{
		Name:    inst.Name,
		Address: inst.Address,
		Phone:   inst.WhatsAppNumber,
		Email:   inst.Email,
		Website: inst.Website,
	})

	resolver := appServices.NewCourseResolver(repos.CourseRepository, appServices.ResolverConfig{KeyMapping: cfg.Courses.KeyMapping}, lgr)

	deps.AuthService = appServices.NewAuthService(repos.AdminRepository, deps.JWTService, lgr)
	deps.CourseService = appServices.NewCourseService(repos.CourseRepository, deps.Storage, pdf, lgr)
	deps.ApplicationService = appServices.NewApplicationService(
		repos.ApplicationRepository,
		repos.CourseRepository,
		resolver,
		deps.Documents,
		deps.Hub,
		lgr,
	)
	deps.WorkflowService = appServices.NewWorkflowService(appServices.WorkflowDeps{
		Applications: repos.ApplicationRepository,
		Students:     repos.StudentRepository,
		Presenter:    deps.ApplicationService,
		Notifier:     deps.Dispatcher,
		Mailer:       deps.Mailer,
		Events:       deps.Hub,
	}, lgr)
	deps.StudentService = appServices.NewStudentService(repos.StudentRepository, repos.CourseRepository, lgr)
	deps.DashboardService = appServices.NewDashboardService(repos.ApplicationRepository, repos.StudentRepository, repos.CourseRepository)
	deps.ContentService = appServices.NewContentService(appServices.ContentRepositories{
		Team:        repos.TeamMemberRepository,
		Gallery:     repos.GalleryRepository,
		Newsletter:  repos.NewsletterRepository,
		News:        repos.NewsRepository,
		Director:    repos.DirectorMessageRepository,
		Testimonial: repos.TestimonialRepository,
		Video:       repos.VideoRepository,
	}, deps.Storage, deps.Mailer, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Auth:        appControllers.NewAuthController(deps.AuthService, lgr),
		Course:      appControllers.NewCourseController(deps.CourseService),
		Application: appControllers.NewApplicationController(deps.ApplicationService, deps.WorkflowService, lgr),
		Student:     appControllers.NewStudentController(deps.StudentService),
		Dashboard:   appControllers.NewDashboardController(deps.DashboardService),
		Content:     appControllers.NewContentController(deps.ContentService),
		Media:       appControllers.NewMediaController(deps.Storage, lgr),
		Events:      websocket.NewHandler(deps.Hub, cfg.Server.CORSOrigins, lgr),
	}

	return deps, nil
}

// EnsureConfiguredAdmin creates or resets the admin account named in the config, if any
func EnsureConfiguredAdmin(ctx context.Context, cfg *config.Config, deps *Dependencies) {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		return
	}
	_, created, err := deps.AuthService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, "")
	if err != nil {
		deps.Logger.Error().Err(err).Str("email", cfg.Admin.Email).Msg("Failed to ensure configured admin, proceeding anyway...")
		return
	}
	deps.Logger.Info().Str("email", cfg.Admin.Email).Bool("created", created).Msg("Configured admin ensured")
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

	if err := validation.RegisterCustomValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.MaxMultipartMemory = 8 << 20
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.CORS(cfg.Server.CORSOrigins),
		appMiddleware.BodyLimit(cfg.Server.MaxUploadBytes),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router, nil
}
