package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"interview-stories/internal/config"
	"interview-stories/internal/db"
	apihttp "interview-stories/internal/http"
	"interview-stories/internal/llm"
	"interview-stories/internal/repository"
	"interview-stories/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}

	if cfg.RunMigrations {
		if err := db.MigratePool(pool); err != nil {
			logger.Fatal("db migrate", zap.Error(err))
		}
	}

	var (
		revocations service.RevocationStore
		throttle    service.LoginThrottle
		redisClient *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			revocations = service.NewRedisRevocationStore(redisClient)
			throttle = service.NewRedisLoginThrottle(redisClient, cfg.LoginWindow(), cfg.LoginMaxAttempts)
		}
		cancel()
	}
	if throttle == nil {
		throttle = service.NewLoginThrottle(cfg.LoginWindow(), cfg.LoginMaxAttempts)
	}

	accountRepo := repository.NewPgAccountRepository(pool)
	storyRepo := repository.NewPgStoryRepository(pool)

	llmClient := llm.NewClient(llm.Options{
		Provider:  cfg.LLMProvider,
		BaseURL:   cfg.LLMBaseURL,
		APIKey:    cfg.LLMAPIKey,
		Model:     cfg.LLMModel,
		MaxTokens: cfg.LLMMaxTokens,
	}, logger)
	if cfg.LLMAPIKey == "" {
		logger.Warn("llm api key not configured; story optimization disabled")
	}

	accountSvc := service.NewAccountService(logger, accountRepo, throttle, cfg.BcryptCost)
	sessionSvc := service.NewSessionService(cfg.SessionSecret, cfg.SessionTTL(), revocations)
	storySvc := service.NewStoryService(storyRepo)
	rewriteSvc := service.NewRewriteService(logger, llmClient, storySvc)

	cookie := apihttp.CookieConfig{
		Name:   cfg.SessionCookieName,
		Secure: cfg.SessionCookieSecure,
	}
	accountHandler := apihttp.NewAccountHandler(logger, accountSvc, sessionSvc, cookie)
	storyHandler := apihttp.NewStoryHandler(logger, storySvc)
	rewriteHandler := apihttp.NewRewriteHandler(logger, rewriteSvc)
	router := apihttp.NewRouter(logger, sessionSvc, cookie, accountHandler, storyHandler, rewriteHandler, pool)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
