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

	"custochef/internal/advisor"
	"custochef/internal/api"
	"custochef/internal/config"
	"custochef/internal/database"
	"custochef/internal/live"
	"custochef/internal/metrics"
	"custochef/internal/monitoring"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	// Load configuration
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
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// Initialize database
	if err := database.InitDB(cfg.Database.Dialect, cfg.DSN()); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if cfg.Seed {
		database.Seed()
	}

	// Initialize the AI price advisor; the API degrades gracefully without it
	adv, err := initializeAdvisor(cfg)
	if err != nil {
		log.Printf("Price advisor disabled: %v", err)
	}

	collector := metrics.NewCollector()
	monitor := monitoring.NewMonitor()
	hub := live.NewHub()

	server := api.NewServer(database.GetDB(), adv, collector, monitor, hub)

	// Start metrics server
	go startMetricsServer(cfg.MetricsPort, collector)

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

func initializeAdvisor(cfg *config.Config) (*advisor.Advisor, error) {
	var provider advisor.Provider
	var err error

	switch cfg.Advisor.Provider {
	case "azure":
		provider, err = advisor.NewAzureOpenAIProvider()
	default:
		if cfg.Advisor.OpenAIKey == "" {
			return nil, fmt.Errorf("no OpenAI API key configured")
		}
		provider, err = advisor.NewLangChainProvider(cfg.Advisor.OpenAIKey, cfg.Advisor.Model)
	}
	if err != nil {
		return nil, err
	}

	return advisor.New(provider), nil
}

func startMetricsServer(port int, collector *metrics.Collector) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.HandlerFor(collector.Registry(), promhttp.HandlerOpts{})))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
