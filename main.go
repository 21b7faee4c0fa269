// File: slotpoll/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotpoll/config"
	"slotpoll/cron"
	"slotpoll/database"
	pollRepoPkg "slotpoll/database/repository/poll"
	"slotpoll/handlers"
	"slotpoll/middleware"
	"slotpoll/routes"
	pollService "slotpoll/services/poll"
	"slotpoll/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Pick the poll store backend.
	var repo pollRepoPkg.PollRepository
	switch config.AppConfig.StoreBackend {
	case "sqlite":
		var err error
		repo, err = pollRepoPkg.NewSQLitePollRepo(config.AppConfig.SQLitePath)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to open sqlite store: %v", err)
		}
	case "memory":
		repo = pollRepoPkg.NewMemoryPollRepo()
	default:
		database.InitDB()
		repo = pollRepoPkg.NewMongoPollRepo()
	}

	utils.InitResultsCache()
	sweepClient := cron.NewSweepClient()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// services.
	pollSvc := &pollService.DefaultPollService{
		Repo:          repo,
		Cache:         utils.GetResultsCacheClient(),
		Sweeper:       sweepClient,
		RetentionDays: config.AppConfig.PollRetentionDays,
	}
	pollHandler := handlers.NewPollHandler(pollSvc)

	// Background retention sweeper.
	cron.InitSweepWorker(pollSvc)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		CreatePollHandler: pollHandler.CreatePollHandler,
		GetPollHandler:    pollHandler.GetPollHandler,
		ResultsHandler:    pollHandler.ResultsHandler,
		RespondHandler:    pollHandler.RespondHandler,
		FinalizeHandler:   pollHandler.FinalizeHandler,
		DeletePollHandler: pollHandler.DeletePollHandler,

		ConflictsHandler: pollHandler.ConflictsHandler,
		PreviewHandler:   pollHandler.PreviewHandler,

		ListMyPollsHandler: pollHandler.ListMyPollsHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	if err := sweepClient.Close(); err != nil {
		logger.Sugar().Warnf("main: failed to close sweep client: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
