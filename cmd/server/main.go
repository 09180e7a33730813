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

	"github.com/robfig/cron/v3"

	"github.com/avaldes/blogboard/internal/config"
	"github.com/avaldes/blogboard/internal/handlers"
)

var (
	Version   string = "dev"
	Commit    string = "unknown"
	BuildTime string = "unknown"
)

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showHelp {
		fmt.Printf("Blogboard Gateway\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nEnvironment Variables:\n")
		fmt.Printf("  STORE_BASE_URL        Remote store base URL (default: http://localhost:3000)\n")
		fmt.Printf("  PORT                  Server port (default: 8080)\n")
		fmt.Printf("  HOST                  Server host (default: 0.0.0.0)\n")
		fmt.Printf("  DEFAULT_USERNAME      Default active identity (default: Sandra)\n")
		fmt.Printf("  PAGE_SIZE             Blogs per page (default: 5)\n")
		fmt.Printf("  SESSION_FILE          Current-user session file\n")
		fmt.Printf("  STORE_PING_SCHEDULE   Cron schedule for the store reachability probe\n")
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("Blogboard Gateway\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Commit: %s\n", Commit)
		fmt.Printf("Build Time: %s\n", BuildTime)
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create server
	server := handlers.NewServer(cfg)

	// Setup routes
	router := server.SetupRoutes()

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Schedule the remote store reachability probe
	c := cron.New()
	if cfg.StorePingSchedule != "" {
		_, err := c.AddFunc(cfg.StorePingSchedule, func() {
			if err := server.PingStore(ctx); err != nil {
				log.Printf("Remote store unreachable: %v", err)
			}
		})
		if err != nil {
			log.Printf("Failed to schedule store probe: %v", err)
		} else {
			log.Printf("Scheduled store probe with cron: %s", cfg.StorePingSchedule)
		}
	}

	c.Start()
	defer c.Stop()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server
	go func() {
		log.Printf("Starting server on %s:%s (store: %s)", cfg.Host, cfg.Port, cfg.StoreBaseURL)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down server...")

	// Cancel background tasks
	cancel()

	// Shutdown HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
