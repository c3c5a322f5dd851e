package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/email"
	mongoadapter "github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/mongo"
	natsadapter "github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/nats"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/payment"
	redisadapter "github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/redis"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/storage/s3"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/auth"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/tracer"
	grpcserver "github.com/Abdurahmanit/GroupProject/storefront-service/internal/port/grpc"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/port/rest"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/service"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	startupTimeout       = 15 * time.Second
	confirmationQueue    = "storefront-mailer"
	subscriberTimeoutPad = 5 * time.Second
)

type App struct {
	cfg            *config.Config
	log            logger.Logger
	httpServer     *rest.Server
	grpcServer     *grpcserver.Server
	metricsServer  *metrics.Server
	healthService  service.HealthService
	subscriber     *natsadapter.Subscriber
	tracerProvider *sdktrace.TracerProvider
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	natsConn       *nats.Conn
}

// New wires every component. Redis is required; MongoDB may be unreachable at
// start, in which case the service runs degraded. NATS, SMTP, S3, tracing,
// metrics and the gRPC health port are each disabled by an empty setting.
func New(cfg *config.Config) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	appLogger, err := logger.NewZapLogger(logger.ZapLoggerConfig{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		TimeFormat: cfg.Logger.TimeFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger.Infof("Configuration loaded: Env=%s, HTTP Port: %s, Database: %s", cfg.Env, cfg.HTTPServer.Port, cfg.MongoDB.Database)

	tp, err := tracer.InitTracer(ctx, cfg.Tracing.ServiceName, cfg.Tracing.OTLPEndpoint, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}

	var metricsManager *metrics.MetricsManager
	if cfg.Metrics.Port != "" {
		metricsManager = metrics.NewMetricsManager(cfg.Metrics.Namespace)
	} else {
		appLogger.Info("Prometheus metrics disabled: no metrics port configured")
	}

	appLogger.Info("Initializing MongoDB client...")
	mongoClient, err := mongoadapter.NewClient(ctx, cfg.MongoDB)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
	}
	db := mongoadapter.NewDatabase(mongoClient, cfg.MongoDB.Database)
	if err := db.Ping(ctx); err != nil {
		appLogger.Warnf("MongoDB is not reachable, starting degraded: %v", err)
	} else if err := mongoadapter.EnsureUserIndexes(ctx, db); err != nil {
		appLogger.Warnf("Failed to ensure user indexes: %v", err)
	} else {
		appLogger.Info("MongoDB connected, indexes ensured")
	}

	appLogger.Info("Initializing Redis client...")
	redisClient, err := redisadapter.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
	}

	publisher := natsadapter.NewNoopPublisher()
	var natsConn *nats.Conn
	if cfg.NATS.URL != "" {
		natsConn, err = natsadapter.NewConnection(cfg.NATS, appLogger.Named("nats"))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		publisher, err = natsadapter.NewNATSPublisher(natsConn)
		if err != nil {
			return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
		}
		appLogger.Infof("NATS publisher connected to %s", natsConn.ConnectedUrl())
	} else {
		appLogger.Info("Event publishing disabled: no NATS URL configured")
	}

	var images service.ImageStorage
	if cfg.S3.Endpoint != "" {
		storage, err := s3.NewStorage(ctx, cfg.S3, appLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize object storage: %w", err)
		}
		images = storage
	} else {
		appLogger.Info("Product image uploads disabled: no S3 endpoint configured")
	}

	productRepo := mongoadapter.NewProductRepository(db)
	userRepo := mongoadapter.NewUserRepository(db)
	orderRepo := mongoadapter.NewOrderRepository(db)
	productCache := redisadapter.NewProductCache(redisClient)
	sessions := redisadapter.NewSessionStore(redisClient)

	catalogService := service.NewCatalogService(productRepo, productCache, cfg.ProductCache.TTL, metricsManager, appLogger.Named("catalog"))
	adminService := service.NewProductAdminService(productRepo, productCache, images, publisher, appLogger.Named("admin"))
	checkoutService := service.NewCheckoutService(orderRepo, payment.NewStubGateway(), publisher, metricsManager, appLogger.Named("checkout"))
	authService := service.NewAuthService(
		userRepo,
		sessions,
		auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		appLogger.Named("auth"),
	)
	healthService := service.NewHealthService(db, appLogger.Named("health"))

	if err := authService.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		appLogger.Warnf("Admin bootstrap skipped: %v", err)
	}

	var subscriber *natsadapter.Subscriber
	if natsConn != nil && cfg.SMTP.Host != "" {
		sender, err := email.NewSMTPSender(cfg.SMTP, appLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SMTP sender: %w", err)
		}
		notifications := service.NewNotificationService(sender, appLogger.Named("notifications"))
		subscriber = natsadapter.NewSubscriber(natsConn, appLogger.Named("nats"), cfg.SMTP.SendTimeout+subscriberTimeoutPad)
		if err := subscriber.QueueSubscribe(service.SubjectOrderCreated, confirmationQueue, notifications.HandleOrderCreated); err != nil {
			return nil, fmt.Errorf("failed to subscribe to %s: %w", service.SubjectOrderCreated, err)
		}
	} else {
		appLogger.Info("Order confirmation emails disabled: NATS or SMTP not configured")
	}

	router := rest.NewRouter(rest.Handlers{
		Products: rest.NewProductHandler(catalogService, appLogger),
		Admin:    rest.NewAdminHandler(adminService, cfg.HTTPServer.MaxUploadBytes, appLogger),
		Checkout: rest.NewCheckoutHandler(checkoutService, appLogger),
		Auth:     rest.NewAuthHandler(authService, appLogger),
		Health:   rest.NewHealthHandler(healthService, appLogger),
	}, authService, metricsManager, appLogger.Named("http"))

	application := &App{
		cfg:            cfg,
		log:            appLogger,
		httpServer:     rest.NewServer(cfg.HTTPServer, router, appLogger),
		healthService:  healthService,
		subscriber:     subscriber,
		tracerProvider: tp,
		mongoClient:    mongoClient,
		redisClient:    redisClient,
		natsConn:       natsConn,
	}

	if cfg.GRPCServer.Port != "" {
		application.grpcServer = grpcserver.NewServer(
			appLogger,
			cfg.GRPCServer.Port,
			cfg.GRPCServer.TimeoutGraceful,
			cfg.GRPCServer.MaxConnectionIdle,
		)
	}
	if metricsManager != nil {
		application.metricsServer = metrics.NewServer(cfg.Metrics.Port, metricsManager.Registry, appLogger)
	}

	return application, nil
}

func (a *App) Run() {
	a.log.Info("Starting application components...")

	runCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()

	go func() {
		if err := a.httpServer.Start(); err != nil {
			a.log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	if a.grpcServer != nil {
		go a.grpcServer.WatchHealth(runCtx, a.healthService, a.cfg.GRPCServer.HealthInterval)
		go func() {
			if err := a.grpcServer.Start(); err != nil {
				a.log.Fatalf("Failed to start gRPC server: %v", err)
			}
		}()
	}

	if a.metricsServer != nil {
		go func() {
			if err := a.metricsServer.Start(); err != nil {
				a.log.Errorf("Prometheus metrics server failed: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	a.log.Infof("Received shutdown signal: %v. Shutting down application...", receivedSignal)
	stopWatch()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.TimeoutGraceful+5*time.Second)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Errorf("Error during HTTP server graceful shutdown: %v", err)
	}
	if a.grpcServer != nil {
		if err := a.grpcServer.Stop(shutdownCtx); err != nil {
			a.log.Errorf("Error during gRPC server graceful shutdown: %v", err)
		}
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Stop(shutdownCtx); err != nil {
			a.log.Errorf("Error stopping metrics server: %v", err)
		}
	}

	if a.subscriber != nil {
		a.subscriber.Drain()
	}
	if a.natsConn != nil {
		if err := a.natsConn.Drain(); err != nil {
			a.log.Errorf("Error draining NATS connection: %v", err)
		}
	}

	a.log.Info("Closing database connections...")
	if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
		a.log.Errorf("Error disconnecting from MongoDB: %v", err)
	}
	if err := a.redisClient.Close(); err != nil {
		a.log.Errorf("Error closing Redis client: %v", err)
	}

	if err := a.tracerProvider.Shutdown(shutdownCtx); err != nil {
		a.log.Errorf("Error shutting down tracer provider: %v", err)
	}

	a.log.Info("Application shut down successfully")
	_ = a.log.Sync()
}
