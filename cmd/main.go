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

	"gitlab.com/codeclimb-2025.net/internal/adapter/crypto"
	"gitlab.com/codeclimb-2025.net/internal/adapter/judge0"
	"gitlab.com/codeclimb-2025.net/internal/adapter/postgres/streakrepository"
	"gitlab.com/codeclimb-2025.net/internal/adapter/postgres/submissionrepository"
	"gitlab.com/codeclimb-2025.net/internal/adapter/redis/ratelimit"
	"gitlab.com/codeclimb-2025.net/internal/config"
	"gitlab.com/codeclimb-2025.net/internal/core/services/evaluation"
	"gitlab.com/codeclimb-2025.net/internal/core/services/streak"
	logger2 "gitlab.com/codeclimb-2025.net/internal/global/logger"
	"gitlab.com/codeclimb-2025.net/internal/handlers"
	http2 "gitlab.com/codeclimb-2025.net/internal/http"
)

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger2.Info("Starting submission evaluation service")

	logger := logger2.Logger
	defer logger.Sync()

	sysCfg := config.NewSystemConfig()

	db, err := setupDatabase(sysCfg.PostgresConfig)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})
	defer redisClient.Close()

	loc, err := time.LoadLocation(sysCfg.StreakConfig.Timezone)
	if err != nil {
		logger.Warn("Unknown streak timezone, falling back to UTC", "timezone", sysCfg.StreakConfig.Timezone)
		loc = time.UTC
	}

	// SECONDARY PORTS
	streakRepo := streakrepository.NewStreakRepository(db, logger)
	submissionRepo := submissionrepository.NewSubmissionRepository(db, logger)
	limiter := ratelimit.NewLimiter(redisClient, sysCfg.RateLimitConfig, logger)
	executor := judge0.NewClient(sysCfg.JudgeConfig, logger)

	// PRIMARY PORTS
	verifier := crypto.NewJWTVerifier(sysCfg.JwtConfig)

	// SERVICES
	evalSvc := evaluation.NewService(executor, submissionRepo, limiter, logger, sysCfg.JudgeConfig.MaxPollAttempts)
	streakSvc := streak.NewService(streakRepo, loc, logger)
	serviceProvider := http2.NewServiceProvider(evalSvc, streakSvc, submissionRepo)

	// SERVER
	middleware := handlers.NewMiddlewareProvider(verifier, logger)
	httpServer := http2.NewServer(8082, "submissionEvaluator", *serviceProvider, middleware, logger)
	if err := httpServer.Init(); err != nil {
		panic(err)
	}
	ctxBg := context.Background()
	httpServer.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, 5*time.Second)
	defer cancel()
	httpServer.Stop(ctx)

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
