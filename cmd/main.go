package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gitlab.com/algoforge.net/internal/adapter/crypto"
	"gitlab.com/algoforge.net/internal/adapter/judge0"
	"gitlab.com/algoforge.net/internal/adapter/postgres/languageconfig"
	"gitlab.com/algoforge.net/internal/adapter/postgres/problemrepository"
	"gitlab.com/algoforge.net/internal/adapter/postgres/submissionrepository"
	"gitlab.com/algoforge.net/internal/adapter/postgres/userrepository"
	"gitlab.com/algoforge.net/internal/adapter/redis/verdictcache"
	"gitlab.com/algoforge.net/internal/config"
	"gitlab.com/algoforge.net/internal/core/services/catalog"
	"gitlab.com/algoforge.net/internal/core/services/grading"
	logger2 "gitlab.com/algoforge.net/internal/global/logger"
	"gitlab.com/algoforge.net/internal/handlers"
	http2 "gitlab.com/algoforge.net/internal/http"
	"gitlab.com/algoforge.net/internal/reconciler"
)

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger2.Info("Starting grading service")

	logger := logger2.Logger

	sysCfg := config.NewSystemConfig()

	db, err := setupDatabase(sysCfg.PostgresConfig)
	if err != nil {
		panic(err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})

	// SECONDARY PORTS
	judgeClient := judge0.NewClient(sysCfg.JudgeConfig, logger)
	problemRepo := problemrepository.NewProblemRepository(db, logger)
	submissionRepo := submissionrepository.NewSubmissionRepository(db, logger)
	userRepo := userrepository.New(db, logger, "public")
	languageCfgRepo := languageconfig.NewLanguageConfigRepository(db, logger)
	cache := verdictcache.NewVerdictCache(redisClient, logger)

	// primary ports
	jwtProvider := crypto.NewJWTService(sysCfg.JwtConfig)

	// services
	dispatcher := grading.NewDispatcher(judgeClient, languageCfgRepo, logger)
	poller := grading.NewPoller(judgeClient, sysCfg.JudgeConfig, logger)
	gradingSvc := grading.NewGradingService(
		dispatcher, poller,
		problemRepo, submissionRepo, userRepo, cache,
		sysCfg.GradingConfig, logger,
	)
	catalogSvc := catalog.NewCatalogService(problemRepo, userRepo, languageCfgRepo, logger)
	serviceProvider := http2.NewServiceProvider(gradingSvc, catalogSvc)

	// server
	middleware := handlers.New(jwtProvider)
	httpServer := http2.NewServer(8082, "algoforge", *serviceProvider, middleware, logger)
	err = httpServer.Init()
	if err != nil {
		panic(err)
	}
	ctxBg, cancelBg := context.WithCancel(context.Background())
	httpServer.Start(ctxBg)

	reconcilerSvc := reconciler.NewReconciler(sysCfg.GradingConfig, submissionRepo, logger)
	reconcilerSvc.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")
	cancelBg()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	httpServer.Stop(ctx)

	if err := db.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
	}
	if err := redisClient.Close(); err != nil {
		logger.Error("Failed to close redis", "error", err)
	}

	logger.Info("successfully shutdown server")
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func InitReader() {
	environment := ""
	if len(os.Args) < 2 {
		log.Fatalf("Env not supplied in argument")
	} else {
		environment = os.Args[1]
	}

	err := godotenv.Load(environment + ".env")
	if err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
