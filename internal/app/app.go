package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookclub_backend/internal/config"
	"bookclub_backend/internal/controller"
	"bookclub_backend/internal/repository"
	"bookclub_backend/internal/service"
	"bookclub_backend/pkg/database"
	"bookclub_backend/pkg/logger"
	"bookclub_backend/pkg/monitoring"
	"bookclub_backend/pkg/queue"
	"bookclub_backend/pkg/security"
	"bookclub_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
	producer queue.Producer
}

type repositories struct {
	user         *repository.UserRepository
	club         *repository.ClubRepository
	goal         *repository.GoalRepository
	goalEntry    *repository.GoalEntryRepository
	post         *repository.PostRepository
	meeting      *repository.MeetingRepository
	notification *repository.NotificationRepository
}

type services struct {
	auth         *service.AuthService
	user         *service.UserService
	club         *service.ClubService
	goal         *service.GoalService
	feed         *service.FeedService
	meeting      *service.MeetingService
	notification *service.NotificationService
	report       *service.ReportService
	reminder     *service.ReminderService
	hub          *service.ClubHub
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	club         *controller.ClubController
	goal         *controller.GoalController
	feed         *controller.FeedController
	meeting      *controller.MeetingController
	notification *controller.NotificationController
	report       *controller.ReportController
	ws           *controller.WSController
	health       *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		club:         repository.NewClubRepository(db),
		goal:         repository.NewGoalRepository(db),
		goalEntry:    repository.NewGoalEntryRepository(db),
		post:         repository.NewPostRepository(db),
		meeting:      repository.NewMeetingRepository(db),
		notification: repository.NewNotificationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.hub = service.NewClubHub(rdb)
	go s.hub.Run()

	producer := a.initProducer(cfg)
	s.notification = service.NewNotificationService(repos.notification, repos.club, producer, s.hub)

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.club = service.NewClubService(repos.club, repos.user, s.notification)
	s.goal = service.NewGoalService(repos.goal, repos.goalEntry, s.club)
	s.feed = service.NewFeedService(repos.post, s.club, s.notification, s.hub)
	s.meeting = service.NewMeetingService(repos.meeting, s.club, s.notification)
	s.report = service.NewReportService(repos.goal, repos.club, repos.goalEntry)
	s.reminder = service.NewReminderService(repos.user, repos.goal, repos.goalEntry, s.notification, cfg.Reminder.LocalHour)

	return s
}

func (a *App) initProducer(cfg *config.Config) queue.Producer {
	if !cfg.Queue.Enabled {
		a.producer = queue.NopProducer{}
		return a.producer
	}
	producer, err := queue.NewProducer(cfg.Queue.URL, cfg.Queue.Name)
	if err != nil {
		// The platform stays usable without push delivery.
		logger.Log.Error("queue unavailable, push delivery disabled", zap.Error(err))
		a.producer = queue.NopProducer{}
		return a.producer
	}
	a.producer = producer
	return producer
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		user:         controller.NewUserController(s.user),
		club:         controller.NewClubController(s.club),
		goal:         controller.NewGoalController(s.goal),
		feed:         controller.NewFeedController(s.feed),
		meeting:      controller.NewMeetingController(s.meeting),
		notification: controller.NewNotificationController(s.notification),
		report:       controller.NewReportController(s.report, s.club),
		ws:           controller.NewWSController(s.hub, s.club),
		health:       controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests,
		time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services, cfg *config.Config) {
	// Meeting reminders fire for anything starting within the next hour.
	go func() {
		ticker := time.NewTicker(time.Minute)
		for range ticker.C {
			if err := s.meeting.RemindDue(time.Hour); err != nil {
				logger.Log.Error("meeting reminder sweep failed", zap.Error(err))
			}
		}
	}()

	if cfg.Reminder.Enabled {
		go func() {
			ticker := time.NewTicker(5 * time.Minute)
			for range ticker.C {
				if err := s.reminder.Tick(); err != nil {
					logger.Log.Error("habit reminder sweep failed", zap.Error(err))
				}
			}
		}()
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("bookclub-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	app.startBackgroundTasks(services, cfg)

	return app
}

// ReloadConfig applies the settings that can change at runtime. The listen
// address, database and middleware wiring stay as booted.
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config.Reminder = cfg.Reminder
	if a.services != nil && a.services.reminder != nil {
		a.services.reminder.LocalHour = cfg.Reminder.LocalHour
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Drop WebSocket clients and their redis presence keys first.
	if a.services != nil && a.services.hub != nil {
		a.services.hub.Stop()
	}
	if a.producer != nil {
		a.producer.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
