// cmd/verihome-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/wilsonA2000/verihome/internal/api/rest/v1"
	"github.com/wilsonA2000/verihome/internal/app"
	"github.com/wilsonA2000/verihome/internal/domain/accounts"
	"github.com/wilsonA2000/verihome/internal/domain/activity"
	"github.com/wilsonA2000/verihome/internal/domain/leases"
	"github.com/wilsonA2000/verihome/internal/domain/matching"
	"github.com/wilsonA2000/verihome/internal/domain/messaging"
	"github.com/wilsonA2000/verihome/internal/domain/notifications"
	"github.com/wilsonA2000/verihome/internal/domain/payments"
	"github.com/wilsonA2000/verihome/internal/domain/properties"
	"github.com/wilsonA2000/verihome/internal/domain/ratings"
	"github.com/wilsonA2000/verihome/internal/infrastructure/auth"
	"github.com/wilsonA2000/verihome/internal/infrastructure/email"
	"github.com/wilsonA2000/verihome/internal/infrastructure/monitor"
	"github.com/wilsonA2000/verihome/internal/infrastructure/persistence"
	"github.com/wilsonA2000/verihome/internal/infrastructure/realtime"
	"github.com/wilsonA2000/verihome/internal/infrastructure/redisclient"
	"github.com/wilsonA2000/verihome/internal/infrastructure/tasks"
	"github.com/wilsonA2000/verihome/internal/pkg/config"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Sweep cadence and retention for the recurring background jobs.
const (
	matchExpiryInterval    = time.Hour
	leaseExpiryInterval    = time.Hour
	paymentOverdueInterval = 6 * time.Hour
	activityPurgeInterval  = 24 * time.Hour
	activityRetention      = 180 * 24 * time.Hour
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env so local setups can set VERIHOME_* overrides
	_ = godotenv.Load()

	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-api.yaml"
	}

	cfg, err := config.InitializeAppConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(cfg, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db          *gorm.DB
	redis       *redisclient.Client
	hub         *realtime.Hub
	fanout      *realtime.Fanout
	queue       *tasks.Queue
	scheduler   *tasks.Scheduler
	monitor     *monitor.Monitor
	auditWorker *app.AuditWorker
	tokens      accounts.TokenIssuer
	services    *appServices
}

type appRepositories struct {
	users         accounts.UserRepository
	properties    properties.PropertyRepository
	matches       matching.MatchRepository
	leases        leases.LeaseRepository
	signatures    leases.SignatureRepository
	threads       messaging.ThreadRepository
	messages      messaging.MessageRepository
	transactions  payments.TransactionRepository
	plans         payments.PlanRepository
	ratings       ratings.RatingRepository
	notifications notifications.NotificationRepository
	activity      activity.EntryRepository
}

type appServices struct {
	accounts      accounts.AccountService
	properties    properties.PropertyService
	matches       matching.MatchService
	leases        leases.LeaseService
	messages      messaging.MessageService
	payments      payments.PaymentService
	ratings       ratings.RatingService
	notifications notifications.NotificationService
	audit         activity.AuditService
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.AppConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := persistence.MigrateAll(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	// Initialize redis. A nil client disables cross-instance fan-out and
	// snapshot caching without touching the rest of the wiring.
	redis, err := redisclient.New(&cfg.Redis, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	if redis == nil {
		log.Info("Redis not configured, cross-instance notification fan-out disabled")
	}

	// Initialize repositories
	repos, err := initializeRepositories(db, log)
	if err != nil {
		return nil, err
	}

	// Initialize auth primitives
	hasher, err := auth.NewBcryptHasher(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create password hasher: %w", err)
	}

	tokens, err := auth.NewJWTManager(&cfg.Auth, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT manager: %w", err)
	}

	// Initialize realtime delivery and the background task queue
	hub := realtime.NewHub(log)
	fanout := realtime.NewFanout(hub, redis, log)

	queue, err := tasks.NewQueue(&cfg.Tasks, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create task queue: %w", err)
	}
	scheduler := tasks.NewScheduler(queue, log)

	mailer, err := email.NewMailer(&cfg.SMTP, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create mailer: %w", err)
	}

	// Initialize services
	services, auditWorker, err := initializeApplicationServices(repos, hasher, tokens, fanout, queue, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	// Initialize the performance sampler
	var mon *monitor.Monitor
	if cfg.Monitor.Enabled {
		mon, err = monitor.NewMonitor(db, redis, &cfg.Monitor, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create monitor: %w", err)
		}
	}

	// Bind background task handlers and recurring sweeps
	if err := registerTaskHandlers(queue, mailer, services, log); err != nil {
		return nil, fmt.Errorf("failed to register task handlers: %w", err)
	}
	scheduler.Every(matchExpiryInterval, tasks.KindMatchExpiry, nil)
	scheduler.Every(leaseExpiryInterval, tasks.KindLeaseExpiry, nil)
	scheduler.Every(paymentOverdueInterval, tasks.KindPaymentOverdue, nil)
	scheduler.Every(activityPurgeInterval, tasks.KindActivityPurge, nil)

	return &appDependencies{
		db:          db,
		redis:       redis,
		hub:         hub,
		fanout:      fanout,
		queue:       queue,
		scheduler:   scheduler,
		monitor:     mon,
		auditWorker: auditWorker,
		tokens:      tokens,
		services:    services,
	}, nil
}

// initializeRepositories sets up all persistence repositories
func initializeRepositories(db *gorm.DB, log logger.Logger) (*appRepositories, error) {
	userRepo, err := persistence.NewGormUserRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}

	propertyRepo, err := persistence.NewGormPropertyRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create property repository: %w", err)
	}

	matchRepo, err := persistence.NewGormMatchRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create match repository: %w", err)
	}

	leaseRepo, err := persistence.NewGormLeaseRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create lease repository: %w", err)
	}

	signatureRepo, err := persistence.NewGormSignatureRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create signature repository: %w", err)
	}

	threadRepo, err := persistence.NewGormThreadRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create thread repository: %w", err)
	}

	messageRepo, err := persistence.NewGormMessageRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create message repository: %w", err)
	}

	transactionRepo, err := persistence.NewGormTransactionRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction repository: %w", err)
	}

	planRepo, err := persistence.NewGormPlanRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment plan repository: %w", err)
	}

	ratingRepo, err := persistence.NewGormRatingRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create rating repository: %w", err)
	}

	notificationRepo, err := persistence.NewGormNotificationRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification repository: %w", err)
	}

	activityRepo, err := persistence.NewGormActivityRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity repository: %w", err)
	}

	return &appRepositories{
		users:         userRepo,
		properties:    propertyRepo,
		matches:       matchRepo,
		leases:        leaseRepo,
		signatures:    signatureRepo,
		threads:       threadRepo,
		messages:      messageRepo,
		transactions:  transactionRepo,
		plans:         planRepo,
		ratings:       ratingRepo,
		notifications: notificationRepo,
		activity:      activityRepo,
	}, nil
}

// initializeApplicationServices sets up all application services
func initializeApplicationServices(
	repos *appRepositories,
	hasher accounts.PasswordHasher,
	tokens accounts.TokenIssuer,
	fanout *realtime.Fanout,
	queue tasks.Enqueuer,
	log logger.Logger,
) (*appServices, *app.AuditWorker, error) {
	auditService, auditWorker, err := app.NewAuditService(repos.activity, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create audit service: %w", err)
	}

	notificationService, err := app.NewNotificationService(repos.notifications, fanout, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create notification service: %w", err)
	}

	accountService, err := app.NewAccountService(repos.users, hasher, tokens, auditService, queue, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create account service: %w", err)
	}

	propertyService, err := app.NewPropertyService(repos.properties, repos.leases, auditService, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create property service: %w", err)
	}

	matchService, err := app.NewMatchService(repos.matches, repos.properties, notificationService, auditService, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create match service: %w", err)
	}

	leaseService, err := app.NewLeaseService(repos.leases, repos.signatures, propertyService, repos.matches, repos.users, notificationService, auditService, queue, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create lease service: %w", err)
	}

	messageService, err := app.NewMessageService(repos.threads, repos.messages, repos.users, notificationService, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create message service: %w", err)
	}

	paymentService, err := app.NewPaymentService(repos.transactions, repos.plans, repos.leases, notificationService, auditService, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create payment service: %w", err)
	}

	ratingService, err := app.NewRatingService(repos.ratings, repos.leases, notificationService, auditService, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create rating service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appServices{
		accounts:      accountService,
		properties:    propertyService,
		matches:       matchService,
		leases:        leaseService,
		messages:      messageService,
		payments:      paymentService,
		ratings:       ratingService,
		notifications: notificationService,
		audit:         auditService,
	}, auditWorker, nil
}

// registerTaskHandlers binds one handler per background task kind
func registerTaskHandlers(queue *tasks.Queue, mailer email.Mailer, services *appServices, log logger.Logger) error {
	handlers := map[tasks.Kind]tasks.Handler{
		tasks.KindEmailDelivery: func(ctx context.Context, task tasks.Task) error {
			msg, ok := task.Payload.(*email.Message)
			if !ok {
				return fmt.Errorf("unexpected payload type %T for email delivery task", task.Payload)
			}
			return mailer.Send(ctx, msg)
		},
		tasks.KindMatchExpiry: func(ctx context.Context, _ tasks.Task) error {
			expired, err := services.matches.ExpireStale(ctx, time.Now().UTC())
			if err != nil {
				return err
			}
			if expired > 0 {
				log.Info("Expired ", expired, " stale match requests")
			}
			return nil
		},
		tasks.KindLeaseExpiry: func(ctx context.Context, _ tasks.Task) error {
			expired, err := services.leases.ExpireFinished(ctx, time.Now().UTC())
			if err != nil {
				return err
			}
			if expired > 0 {
				log.Info("Expired ", expired, " finished leases")
			}
			return nil
		},
		tasks.KindPaymentOverdue: func(ctx context.Context, _ tasks.Task) error {
			overdue, err := services.payments.MarkOverdue(ctx, time.Now().UTC())
			if err != nil {
				return err
			}
			if overdue > 0 {
				log.Info("Marked ", overdue, " installments overdue")
			}
			return nil
		},
		tasks.KindActivityPurge: func(ctx context.Context, _ tasks.Task) error {
			deleted, err := services.audit.Purge(ctx, time.Now().UTC().Add(-activityRetention))
			if err != nil {
				return err
			}
			if deleted > 0 {
				log.Info("Purged ", deleted, " activity entries past retention")
			}
			return nil
		},
	}

	for kind, handler := range handlers {
		if err := queue.Register(kind, handler); err != nil {
			return err
		}
	}
	return nil
}

// buildRouter assembles the gin engine with CORS and the API routes
func buildRouter(cfg *config.AppConfig, deps *appDependencies, log logger.Logger) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r, &v1.Services{
		AccountService:      deps.services.accounts,
		PropertyService:     deps.services.properties,
		MatchService:        deps.services.matches,
		LeaseService:        deps.services.leases,
		MessageService:      deps.services.messages,
		PaymentService:      deps.services.payments,
		RatingService:       deps.services.ratings,
		NotificationService: deps.services.notifications,
		AuditService:        deps.services.audit,
		Tokens:              deps.tokens,
		Hub:                 deps.hub,
		Monitor:             deps.monitor,
		Redis:               deps.redis,
		DB:                  deps.db,
		Auth:                &cfg.Auth,
		Logger:              log,
	})

	return r
}

// startBackgroundWorkers launches every long-running component on the group
func startBackgroundWorkers(ctx context.Context, group *errgroup.Group, deps *appDependencies) {
	group.Go(func() error {
		return ignoreCanceled(deps.hub.Run(ctx))
	})
	group.Go(func() error {
		return ignoreCanceled(deps.fanout.Run(ctx))
	})
	group.Go(func() error {
		return ignoreCanceled(deps.queue.Run(ctx))
	})
	group.Go(func() error {
		return ignoreCanceled(deps.scheduler.Run(ctx))
	})
	group.Go(func() error {
		return ignoreCanceled(deps.auditWorker.Run(ctx))
	})
	if deps.monitor != nil {
		group.Go(func() error {
			return ignoreCanceled(deps.monitor.Run(ctx))
		})
	}
}

// ignoreCanceled strips the cancellation error of an orderly shutdown
func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.AppConfig, deps *appDependencies, log logger.Logger) error {
	r := buildRouter(cfg, deps, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)
	startBackgroundWorkers(groupCtx, group, deps)

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on ", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Block until a signal arrives, a worker dies or the server errors
	select {
	case err := <-serverErrors:
		stop()
		_ = group.Wait()
		return err
	case <-groupCtx.Done():
		log.Info("Initiating graceful shutdown")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	// Collect background workers; a worker failure is the shutdown reason
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("background worker failed: %w", err)
	}

	if deps.redis != nil {
		if err := deps.redis.Close(); err != nil {
			log.Warn("Failed to close redis client: ", err)
		}
	}
	if err := persistence.CloseDB(deps.db); err != nil {
		log.Warn("Failed to close database connection: ", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
