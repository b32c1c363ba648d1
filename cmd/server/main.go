package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	auditapp "github.com/finapp/backend/internal/application/audit"
	billingapp "github.com/finapp/backend/internal/application/billing"
	identityapp "github.com/finapp/backend/internal/application/identity"
	ledgerapp "github.com/finapp/backend/internal/application/ledger"
	partnerapp "github.com/finapp/backend/internal/application/partner"
	reportapp "github.com/finapp/backend/internal/application/report"
	"github.com/finapp/backend/internal/infrastructure/auth"
	"github.com/finapp/backend/internal/infrastructure/cache"
	"github.com/finapp/backend/internal/infrastructure/config"
	"github.com/finapp/backend/internal/infrastructure/logger"
	"github.com/finapp/backend/internal/infrastructure/persistence"
	"github.com/finapp/backend/internal/infrastructure/ratelimit"
	"github.com/finapp/backend/internal/infrastructure/report"
	"github.com/finapp/backend/internal/interfaces/http/handler"
	"github.com/finapp/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting financial back office",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	store := cache.NewRedisStore(redisClient, cfg.Redis.KeyPrefix, cfg.Redis.CacheTTL)

	// Repositories: Gorm wrapped in cache-aside decorators
	clientRepo := cache.NewCachedClientRepository(
		persistence.NewGormClientRepository(db.DB), store, cfg.Redis.CacheTTL, log)
	invoiceRepo := cache.NewCachedInvoiceRepository(
		persistence.NewGormInvoiceRepository(db.DB), store, cfg.Redis.CacheTTL, log)
	transactionRepo := cache.NewCachedTransactionRepository(
		persistence.NewGormTransactionRepository(db.DB), store, cfg.Redis.CacheTTL, log)
	permissionRepo := persistence.NewGormPermissionRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	auditRepo := persistence.NewGormAuditLogRepository(db.DB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	recorder := auditapp.NewRecorder(auditRepo)
	clientService := partnerapp.NewClientService(clientRepo, userRepo, recorder)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, clientRepo, recorder)
	transactionService := ledgerapp.NewTransactionService(transactionRepo, clientRepo, recorder)
	authService := identityapp.NewAuthService(userRepo, roleRepo, clientRepo, recorder, jwtService)
	permissionService := identityapp.NewPermissionService(permissionRepo, store, log)

	reportLimiter := ratelimit.New(ratelimit.DefaultMaxRequests, ratelimit.DefaultWindow)
	reportService := reportapp.NewReportService(
		reportLimiter, clientRepo, invoiceRepo, transactionRepo, report.NewPDFRenderer())

	// HTTP layer
	perm := router.Permission(permissionService, log)
	engine := router.New(router.Config{
		Logger:     log,
		JWTService: jwtService,
		System:     handler.NewSystemHandler(db, version),
		Auth:       handler.NewAuthHandler(authService),
		Protected: []router.RouteRegistrar{
			handler.NewClientHandler(clientService, perm),
			handler.NewInvoiceHandler(invoiceService, perm),
			handler.NewTransactionHandler(transactionService, perm),
			handler.NewReportHandler(reportService, perm),
			handler.NewAuditHandler(recorder, perm),
			handler.NewPermissionHandler(permissionService, perm),
		},
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
