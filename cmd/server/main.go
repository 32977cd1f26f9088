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

	identityapp "github.com/schoolms/backend/internal/application/identity"
	ledgerapp "github.com/schoolms/backend/internal/application/ledger"
	orgapp "github.com/schoolms/backend/internal/application/org"
	reportapp "github.com/schoolms/backend/internal/application/report"
	"github.com/schoolms/backend/internal/infrastructure/auth"
	"github.com/schoolms/backend/internal/infrastructure/config"
	"github.com/schoolms/backend/internal/infrastructure/logger"
	"github.com/schoolms/backend/internal/infrastructure/persistence"
	"github.com/schoolms/backend/internal/infrastructure/printing"
	"github.com/schoolms/backend/internal/infrastructure/scheduler"
	"github.com/schoolms/backend/internal/infrastructure/storage"
	"github.com/schoolms/backend/internal/interfaces/http/handler"
	"github.com/schoolms/backend/internal/interfaces/http/middleware"
	"github.com/schoolms/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting school management backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	branchRepo := persistence.NewGormBranchRepository(db.DB)
	staffRepo := persistence.NewGormStaffRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	budgetRepo := persistence.NewGormBudgetRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)

	// Auth
	jwtService := auth.NewJWTService(cfg.JWT)
	blacklist := newTokenBlacklist(cfg, log)

	// Report artifact storage
	blobs, err := newObjectStorage(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Application services
	budgetService := ledgerapp.NewBudgetService(budgetRepo, transactionRepo, log)
	transactionService := ledgerapp.NewTransactionService(transactionRepo, budgetService, log)
	branchService := orgapp.NewBranchService(branchRepo)
	staffService := orgapp.NewStaffService(staffRepo)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo)

	reportOpts := []reportapp.ReportServiceOption{}
	if cfg.Storage.URLExpiry > 0 {
		reportOpts = append(reportOpts, reportapp.WithURLExpiry(cfg.Storage.URLExpiry))
	}
	if cfg.Report.DefaultCurrency != "" {
		reportOpts = append(reportOpts, reportapp.WithDefaultCurrency(cfg.Report.DefaultCurrency))
	}
	reportService := reportapp.NewReportService(
		transactionRepo, branchRepo, staffRepo,
		reportRepo, blobs, printing.NewPDFRenderer(),
		log, reportOpts...,
	)
	schedulerService := reportapp.NewSchedulerService(reportService, branchRepo, log)

	// Built-in monthly trigger, for deployments without an external cron
	if cfg.Scheduler.Enabled {
		trigger := scheduler.NewReportCronTrigger(
			scheduler.CronTriggerConfigFrom(cfg.Scheduler),
			schedulerService,
			log,
		)
		if err := trigger.Start(context.Background()); err != nil {
			log.Fatal("Failed to start report cron trigger", zap.Error(err))
		}
		defer func() {
			if err := trigger.Stop(context.Background()); err != nil {
				log.Error("Error stopping report cron trigger", zap.Error(err))
			}
		}()
		log.Info("Report cron trigger started")
	}

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.RequestLogger(log))

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/health",
			"/api/v1/auth/login",
			// These two authenticate themselves (cron secret or admin token)
			"/api/v1/reports/generate",
			"/api/v1/reports/scheduler/run",
		},
		Logger: log,
	}
	engine.Use(middleware.JWTAuthWithConfig(jwtConfig))

	reportHandler := handler.NewReportHandler(
		reportService,
		schedulerService,
		middleware.CronOrAdmin(cfg.Scheduler.CronSecret, jwtConfig),
		middleware.CronSecretAuth(cfg.Scheduler.CronSecret),
	)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewSystemHandler(cfg.App.Name, cfg.App.Env)).
		Register(handler.NewAuthHandler(authService)).
		Register(handler.NewUserHandler(userService)).
		Register(handler.NewBranchHandler(branchService)).
		Register(handler.NewStaffHandler(staffService)).
		Register(handler.NewTransactionHandler(transactionService)).
		Register(handler.NewBudgetHandler(budgetService)).
		Register(reportHandler).
		Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

// newTokenBlacklist connects to Redis when configured, falling back to the
// in-process blacklist so logout still works in single-node deployments.
func newTokenBlacklist(cfg *config.Config, log *zap.Logger) auth.TokenBlacklist {
	if cfg.Redis.Host == "" {
		log.Info("Redis not configured, using in-memory token blacklist")
		return auth.NewInMemoryTokenBlacklist()
	}
	blacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		return auth.NewInMemoryTokenBlacklist()
	}
	log.Info("Redis token blacklist connected", zap.String("addr", cfg.Redis.Addr()))
	return blacklist
}

// newObjectStorage picks the artifact store by provider
func newObjectStorage(cfg *config.Config, log *zap.Logger) (reportapp.ObjectStorage, error) {
	switch cfg.Storage.Provider {
	case "s3":
		store, err := storage.NewS3Storage(&cfg.Storage)
		if err != nil {
			return nil, err
		}
		log.Info("S3 object storage configured",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("region", cfg.Storage.Region),
		)
		return store, nil
	default:
		log.Warn("Using in-memory object storage, artifacts are lost on restart")
		return storage.NewMemoryStorage(), nil
	}
}
