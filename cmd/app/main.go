package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gamelog_daily/internal/api"
	"gamelog_daily/internal/cache"
	"gamelog_daily/internal/content"
	"gamelog_daily/internal/middleware"
	"gamelog_daily/internal/repository"
	"gamelog_daily/internal/service"
	"gamelog_daily/pkg/auth"
	"gamelog_daily/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	if len(os.Args) > 1 {
		if err := runCommand(cfg, os.Args[1:]); err != nil {
			zapLogger.Fatal("Command failed", zap.String("command", os.Args[1]), zap.Error(err))
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		zapLogger.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *Config) error {
	zapLogger := logger.Logger()

	if cfg.Database.AutoMigrate {
		if err := repository.Migrate(cfg.Database.GetDatabaseURL()); err != nil {
			return err
		}
	}

	catalog, err := content.Load(cfg.Challenges.ContentDir)
	if err != nil {
		return fmt.Errorf("failed to load content tables: %w", err)
	}

	repo, err := repository.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}
	defer repo.Close()

	redisClient, err := cache.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	var leaderboardCache service.LeaderboardCache
	if redisClient != nil {
		defer redisClient.Close()
		leaderboardCache = cache.NewLeaderboardCache(redisClient, cfg.Redis.TTL)
	} else {
		zapLogger.Info("Redis address not configured, leaderboard cache disabled")
	}

	clock := service.Clock(time.Now)
	challengeService := service.NewChallengeService(repo, catalog, clock)
	attemptService := service.NewAttemptService(challengeService, repo, repo, clock, cfg.Challenges.StreakLookbackDays)
	svc := service.NewService(
		challengeService,
		attemptService,
		service.NewLeaderboardService(repo, leaderboardCache, clock),
		service.NewSummaryService(challengeService, repo, attemptService, clock),
		service.NewUserService(repo),
	)

	if cfg.TelegramAuth.DebugMode {
		zapLogger.Warn("Telegram auth debug mode is on, init data signatures are not checked")
	}
	telegramAuth := auth.NewTelegramAuth(cfg.TelegramAuth.TelegramBotToken, cfg.TelegramAuth.DebugMode)
	authorization := middleware.NewAuthorization(svc)

	router := gin.New()
	router.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodOptions,
	}
	config.AllowHeaders = []string{"*"}
	config.MaxAge = 12 * time.Hour

	router.Use(cors.New(config))

	a := router.Group("/api/v1")
	api.NewChallengeRoutes(a, svc, telegramAuth, authorization)
	api.NewUserRoutes(a, telegramAuth, authorization)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zapLogger.Info("Received shutdown signal, shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
