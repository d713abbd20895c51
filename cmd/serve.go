package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"kanban-board.com/kanban-board/internal/cache"
	config "kanban-board.com/kanban-board/internal/configs"
	httpapi "kanban-board.com/kanban-board/internal/http"
	middleware "kanban-board.com/kanban-board/internal/http/middlewares"
	repository "kanban-board.com/kanban-board/internal/repositories"
	"kanban-board.com/kanban-board/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the Kanban board HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("%s not loaded, using environment variables", envFile)
		}

		cfg := config.Load()
		logger := config.NewLogger(cfg)

		database := config.NewDatabaseClient(cfg.DatabaseDSN)
		sqlDB, err := database.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		repos := repository.NewManager(database)

		var (
			tokens    cache.TokenCache = cache.NopTokenCache{}
			rateLimit middleware.RateLimitStore
		)
		if cfg.RedisEnabled() {
			redisClient := config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()

			tokens = cache.NewRedisTokenCache(redisClient, time.Duration(cfg.TokenCacheTTLSeconds)*time.Second)
			rateLimit = middleware.NewRedisRateLimitStore(redisClient, cfg.RateLimit, time.Minute)
			logger.WithField("addr", cfg.RedisAddr).Info("redis enabled for token cache and rate limiting")
		} else {
			rateLimit = middleware.NewMemoryRateLimitStore(cfg.RateLimit, time.Minute)
		}

		e := httpapi.NewServer(httpapi.ServerDeps{
			Auth:      services.NewAuthService(repos, tokens, cfg.BcryptCost, logger),
			Boards:    services.NewBoardService(repos, logger),
			Tasks:     services.NewTaskService(repos, logger),
			Comments:  services.NewCommentService(repos, logger),
			RateLimit: rateLimit,
			Logger:    logger,
		})

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			logger.Infof("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.WithError(err).Error("server stopped")
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("graceful shutdown failed")
			return err
		}

		logger.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
