package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"drinkingman/internal/api"
	"drinkingman/internal/catalog"
	"drinkingman/internal/config"
	"drinkingman/internal/database"
	"drinkingman/internal/monitoring"
	"drinkingman/internal/suggest"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *metricsPort != 0 {
		cfg.MetricsPort = *metricsPort
	}

	// Load the catalog once; it is immutable for the process lifetime.
	store, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("Loaded %d cocktails from %s", store.Len(), cfg.CatalogPath)

	// Initialize database
	if err := database.InitDB(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	if err := database.SeedIngredients(database.GetDB(), store.Ingredients()); err != nil {
		log.Fatalf("Failed to seed ingredients: %v", err)
	}

	// Initialize the recommendation service when a model key is configured.
	var suggester *suggest.Service
	if cfg.GeminiKey != "" {
		provider, err := suggest.NewGeminiProvider(context.Background(), cfg.GeminiKey)
		if err != nil {
			log.Fatalf("Failed to initialize model provider: %v", err)
		}
		suggester = suggest.NewService(provider, time.Duration(cfg.Suggest.TimeoutSeconds)*time.Second)
	} else {
		log.Println("No Gemini key configured; recommendation endpoints disabled")
	}

	metrics := monitoring.NewMetrics()
	server := api.NewServer(store, database.GetDB(), suggester, metrics, cfg.JWTSecret)

	go startMetricsServer(cfg.MetricsPort, metrics)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: server.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d", cfg.Port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func startMetricsServer(port int, metrics *monitoring.Metrics) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
