package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	config "task-market.com/task-market/internal/configs"
	"task-market.com/task-market/internal/events"
	httpapi "task-market.com/task-market/internal/http"
	repository "task-market.com/task-market/internal/repositories"
	"task-market.com/task-market/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task marketplace HTTP API and realtime event bus",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Info(".env file not found, using environment variables")
		}

		cfg := config.Load()
		database := config.New(cfg.DatabaseDSN)

		var mirror events.Mirror
		if cfg.RedisEventsEnabled {
			redisClient := config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()
			mirror = events.NewRedisMirror(redisClient, cfg.RedisChannelPrefix)
		}
		bus := events.NewBus(cfg.EventBufferSize, mirror)

		taskRepo := repository.NewTaskRepository(database)
		historyRepo := repository.NewHistoryRepository(database)
		chatRepo := repository.NewChatRepository(database)
		messageRepo := repository.NewMessageRepository(database)

		chatService := services.NewChatService(chatRepo, messageRepo, taskRepo, bus, cfg.MessageMaxLength)
		taskService := services.NewTaskService(taskRepo, historyRepo, chatService, bus)

		e := echo.New()
		handler := httpapi.NewHandler(taskService, chatService)
		httpapi.Register(e, handler, bus, cfg.RateLimit)

		go func() {
			log.Infof("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Infof("server stopped: %v", err)
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		ctx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		_ = e.Shutdown(ctx)
		bus.Close()

		log.Info("HTTP server and event bus shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
