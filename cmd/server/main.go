// Package main is the entry point for the erchete server.
package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mkyprianou/erchete/internal/api"
	"github.com/mkyprianou/erchete/internal/config"
	"github.com/mkyprianou/erchete/internal/location"
	"github.com/mkyprianou/erchete/internal/transit"
)

//go:embed web
var webAssets embed.FS

func main() {
	// Load .env if present; deployed environments set variables directly
	_ = godotenv.Load()

	cfg := config.Load()

	if err := cfg.Validate(); err != nil {
		log.Fatal("Configuration error: ", err)
	}

	stopSvc := location.NewStopService()
	if err := stopSvc.Load(cfg.StopsFile); err != nil {
		slog.Warn("stop catalog unavailable, nearby lookups disabled",
			"file", cfg.StopsFile,
			"error", err,
		)
	} else {
		slog.Info("stop catalog loaded",
			"file", cfg.StopsFile,
			"stops", stopSvc.Count(),
		)
	}

	arrivalSvc := transit.NewArrivalService(cfg.FeedURL, cfg.HTTPTimeout, cfg.CacheTTL)
	defer arrivalSvc.Close()

	webFS, err := fs.Sub(webAssets, "web")
	if err != nil {
		log.Fatal("Web assets missing: ", err)
	}

	router := api.NewRouter(stopSvc, arrivalSvc, arrivalSvc, webFS)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		fmt.Printf("🚌 erchete server starting on port %s\n", cfg.Port)
		fmt.Printf("📍 Environment: %s\n", cfg.Env)
		fmt.Printf("📡 Feed: %s\n", arrivalSvc.FeedURL())
		fmt.Printf("🔗 http://localhost:%s\n", cfg.Port)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: ", err)
		}
	}()

	<-quit
	fmt.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}
}
