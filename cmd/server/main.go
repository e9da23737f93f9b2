package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/config"
	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/handler"
	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/middleware"
	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/oracle"
	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/router"
	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/service"
	"github.com/STERDINATOR/The-OmniTruth-Engine/internal/store"
)

func main() {
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "omnitruth-api")

	feedStore := store.New()
	handler.InitMetrics(feedStore)

	oracleClient := oracle.NewClient(cfg.OracleURL, cfg.OracleAPIKey, cfg.OracleTimeout)
	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	consensus := service.NewConsensusService()
	feedSvc := service.NewFeedService(feedStore, consensus, oracleClient)
	verifySvc := service.NewVerifyService(feedStore, oracleClient, cache)
	authorSvc := service.NewAuthorService(feedStore, cache)
	credSvc := service.NewCredibilityService(feedStore)

	handlers := &router.Handlers{
		Feed:   handler.NewFeedHandler(feedSvc, feedStore),
		Vote:   handler.NewVoteHandler(feedSvc),
		Verify: handler.NewVerifyHandler(verifySvc),
		Search: handler.NewSearchHandler(feedSvc),
		Author: handler.NewAuthorHandler(authorSvc),
		Stats:  handler.NewStatsHandler(authorSvc, consensus, credSvc),
		Export: handler.NewExportHandler(feedStore),
		Health: handler.NewHealthHandler(feedStore, cache.Client()),
	}

	app := fiber.New(fiber.Config{
		AppName:      "OmniTruth API",
		ServerHeader: "OmniTruth",
	})

	router.Setup(app, handlers, cfg.CORSOrigins)

	// Seed the store at boot and keep it fresh in the background.
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	refreshWorker := service.NewRefreshWorker(feedSvc, cfg.RefreshInterval)
	go refreshWorker.Start(workerCtx)

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("shutting down")
		workerCancel()
		_ = app.Shutdown()
	}()

	log.Printf("OmniTruth backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
