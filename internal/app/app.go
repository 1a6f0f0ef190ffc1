package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"referee_training_backend/internal/config"
	"referee_training_backend/internal/controller"
	"referee_training_backend/internal/repository"
	"referee_training_backend/internal/service"
	"referee_training_backend/pkg/database"
	"referee_training_backend/pkg/logger"
	"referee_training_backend/pkg/monitoring"
	"referee_training_backend/pkg/security"
	"referee_training_backend/pkg/tracing"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	services *services
}

// ApplyConfig pushes a freshly loaded config into the services that accept
// runtime changes. Only the media limits are hot-swappable; everything else
// needs a restart.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.services.media.UpdateLimits(cfg.Media)
}

type repositories struct {
	user      *repository.UserRepository
	category  *repository.CategoryRepository
	question  *repository.QuestionRepository
	tag       *repository.TagRepository
	video     *repository.VideoRepository
	test      *repository.TestRepository
	videoTest *repository.VideoTestRepository
	study     *repository.StudyRepository
}

type services struct {
	auth      *service.AuthService
	user      *service.UserService
	category  *service.CategoryService
	question  *service.QuestionService
	taxonomy  *service.TaxonomyService
	tag       *service.TagService
	storage   *service.StorageService
	media     *service.MediaService
	video     *service.VideoService
	test      *service.TestService
	videoTest *service.VideoTestService
	study     *service.StudyService
}

type controllers struct {
	health    *controller.HealthController
	auth      *controller.AuthController
	user      *controller.UserController
	category  *controller.CategoryController
	question  *controller.QuestionController
	tag       *controller.TagController
	library   *controller.LibraryController
	test      *controller.TestController
	videoTest *controller.VideoTestController
	study     *controller.StudyController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		category:  repository.NewCategoryRepository(db),
		question:  repository.NewQuestionRepository(db),
		tag:       repository.NewTagRepository(db),
		video:     repository.NewVideoRepository(db),
		test:      repository.NewTestRepository(db),
		videoTest: repository.NewVideoTestRepository(db),
		study:     repository.NewStudyRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	taxonomy := service.NewTaxonomyService(repos.tag)
	storage := service.NewStorageService(cfg)

	return &services{
		auth:      service.NewAuthService(repos.user, cfg),
		user:      service.NewUserService(repos.user),
		category:  service.NewCategoryService(repos.category),
		question:  service.NewQuestionService(repos.question, repos.category),
		taxonomy:  taxonomy,
		tag:       service.NewTagService(repos.tag, taxonomy),
		storage:   storage,
		media:     service.NewMediaService(storage, cfg.Media),
		video:     service.NewVideoService(repos.video, repos.tag, taxonomy, rdb),
		test:      service.NewTestService(repos.test, repos.question, repos.category),
		videoTest: service.NewVideoTestService(repos.videoTest, repos.video, taxonomy),
		study:     service.NewStudyService(repos.study, repos.question),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		health:    controller.NewHealthController(db, rdb),
		auth:      controller.NewAuthController(s.auth),
		user:      controller.NewUserController(s.user),
		category:  controller.NewCategoryController(s.category),
		question:  controller.NewQuestionController(s.question),
		tag:       controller.NewTagController(s.tag),
		library:   controller.NewLibraryController(s.video, s.media),
		test:      controller.NewTestController(s.test),
		videoTest: controller.NewVideoTestController(s.videoTest),
		study:     controller.NewStudyController(s.study),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	// In release mode the schema only migrates when asked to.
	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			// Redis only backs caches; run without it rather than die.
			logger.Log.Warn("Redis unavailable, caching disabled", zap.Error(err))
			rdb = nil
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(app.services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("referee-training", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Info("Server exiting")
	logger.Log.Sync()
}
