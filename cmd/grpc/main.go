package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-intake-service/config"
	"github.com/fekuna/omnipos-intake-service/internal/ingestion/handler"
	"github.com/fekuna/omnipos-intake-service/internal/ingestion/listener"
	"github.com/fekuna/omnipos-intake-service/internal/ingestion/process"
	ucPkg "github.com/fekuna/omnipos-intake-service/internal/ingestion/usecase"
	"github.com/fekuna/omnipos-intake-service/internal/manager"
	"github.com/fekuna/omnipos-intake-service/internal/manager/repository"
	"github.com/fekuna/omnipos-intake-service/internal/model"
	"github.com/fekuna/omnipos-intake-service/internal/pos"
	"github.com/fekuna/omnipos-intake-service/internal/pos/posabit"
	"github.com/fekuna/omnipos-intake-service/pkg/broker"
	"github.com/fekuna/omnipos-intake-service/pkg/cache"
	"github.com/fekuna/omnipos-intake-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-intake-service/pkg/logger"
	"github.com/fekuna/omnipos-intake-service/pkg/middleware"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.IsDevelopment() {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Storage
	var repo manager.Repository
	switch cfg.Storage.Driver {
	case "memory":
		repo = repository.NewMemoryRepository()
		appLogger.Warn("Using in-memory storage, data is lost on restart")
	default:
		db, err := postgres.NewPostgres(&postgres.Config{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			DBName:          cfg.Postgres.DBName,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to database", zap.Error(err))
		}
		defer db.Close()
		appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))
		repo = repository.NewPGRepository(db)
	}
	mgr := manager.NewManager(repo)

	// 4. Redis run lock
	var locker ucPkg.Locker
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Fatal("Could not connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		locker = redisClient
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		appLogger.Warn("REDIS_ADDR not set, intake job runs are not locked")
	}

	// 5. POS adapters
	caller := pos.NewServiceCaller(cfg.Posabit.Timeout, mgr)
	registry := pos.NewRegistry(map[model.PosPlatform]pos.Client{
		model.PosPlatformPosabit: posabit.NewClient(cfg.Posabit.BaseURL, caller),
	})

	// 6. Metrics
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder, err := ucPkg.NewPrometheusRecorder(promRegistry)
	if err != nil {
		appLogger.Fatal("Could not register metrics", zap.Error(err))
	}

	// 7. UseCase
	intakeUC := ucPkg.NewIntakeUseCase(
		process.NewInventoryProcess(mgr, registry, appLogger),
		process.NewSalesProcess(mgr, registry, appLogger),
		ucPkg.Options{Locker: locker, LockTTL: cfg.Ingestion.LockTTL, Metrics: recorder},
		appLogger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 8. Kafka listener
	if cfg.Kafka.Enabled {
		kafkaConsumer := broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer kafkaConsumer.Close()
		appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

		go listener.NewIntakeJobListener(kafkaConsumer, intakeUC, appLogger).Start(ctx)
	}

	// 9. Metrics endpoint
	var metricsServer *http.Server
	if cfg.Server.MetricsPort != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
		metricsServer = &http.Server{Addr: withColon(cfg.Server.MetricsPort), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Error("metrics server stopped", zap.Error(err))
			}
		}()
		appLogger.Info("Serving metrics", zap.String("port", metricsServer.Addr))
	}

	// 10. Start gRPC Server
	port := withColon(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", port)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(middleware.LoggingInterceptor(appLogger)),
	)
	handler.RegisterIntakeJobServiceServer(grpcServer, handler.NewIntakeJobHandler(intakeUC, appLogger))
	reflection.Register(grpcServer)

	appLogger.Info("Starting gRPC server", zap.String("port", port))

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()
	grpcServer.GracefulStop()
	if metricsServer != nil {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = metricsServer.Shutdown(shutdownCtx)
	}
	appLogger.Info("Server stopped")
}

func withColon(port string) string {
	if !strings.HasPrefix(port, ":") {
		return ":" + port
	}
	return port
}
