// Command priceserver serves mobile launch-price predictions over HTTP.
// It loads the trained artifacts once at startup; if they are missing it
// stays up in a degraded mode that rejects predictions with a clear error
// instead of crashing.
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

	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/api"
	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/config"
	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/db"
	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/predict"
	"github.com/SubhashMOthukuri/ml-mobile-analysis/internal/version"
)

var (
	configPath   = flag.String("config", "", "Path to JSON config file (optional)")
	listen       = flag.String("listen", "", "Listen address (overrides config)")
	artifactsDir = flag.String("artifacts", "", "Artifacts directory (overrides config)")
	dbPath       = flag.String("db", "", "Registry database path (overrides config)")
	showVersion  = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("priceserver %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	cfg := config.Empty()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	artifacts := cfg.GetArtifactsDir()
	if *artifactsDir != "" {
		artifacts = *artifactsDir
	}
	addr := cfg.GetListen()
	if *listen != "" {
		addr = *listen
	}
	registry := cfg.GetDBPath()
	if *dbPath != "" {
		registry = *dbPath
	}

	predictor := predict.Load(artifacts)
	if !predictor.Ready() {
		log.Printf("Warning: running degraded, predictions disabled: %v", predictor.LoadError())
	}

	database, err := db.NewDB(registry)
	if err != nil {
		log.Fatalf("Failed to open registry database %s: %v", registry, err)
	}
	defer database.Close()

	server := api.NewServer(predictor, database)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: api.LoggingMiddleware(server.ServeMux()),
	}

	go func() {
		log.Printf("priceserver %s listening on %s (artifacts: %s)", version.Version, addr, artifacts)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Print("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
