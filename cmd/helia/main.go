package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/astrelina/helia/internal/api"
	"github.com/astrelina/helia/internal/backend"
	"github.com/astrelina/helia/internal/config"
	"github.com/astrelina/helia/internal/db"
	"github.com/astrelina/helia/internal/metrics"
	"github.com/astrelina/helia/internal/refresh"
	"github.com/astrelina/helia/internal/services"
	"github.com/astrelina/helia/internal/store"
)

func main() {
	configPath := getEnv("CONFIG_PATH", "helia.yaml")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	location := mustLoadLocation(cfg.Timezone)
	time.Local = location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	client := backend.NewClient(cfg.BackendURL, cfg.AuthToken)
	userID, err := client.UserID()
	if err != nil {
		log.Fatalf("cannot resolve user id from auth token: %v", err)
	}

	recordStore := store.New()
	coordinator := services.NewMutationCoordinator(recordStore, client, userID)
	kpCache := db.NewKpCacheRepository(database)
	kpService := services.NewKpService(client, kpCache, recordStore, location)
	collected := metrics.New()

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	go collected.Serve(cfg.MetricsAddr)

	scheduler := refresh.NewScheduler(kpService, kpCache, location, collected.KpRefreshErrors)
	if err := scheduler.Start(lifecycleCtx); err != nil {
		log.Fatalf("kp refresh scheduler failed: %v", err)
	}

	go func() {
		if err := coordinator.Refetch(lifecycleCtx); err != nil {
			log.Printf("initial refetch failed: %v", err)
		}
	}()

	handler := api.NewHandler(recordStore, coordinator, kpService, client, collected, location)

	app := fiber.New(fiber.Config{
		AppName:               "Helia",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Helia listening on http://0.0.0.0:%s (backend: %s, tz: %s)", cfg.Port, cfg.BackendURL, location.String())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
