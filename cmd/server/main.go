package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackxcreation/downloader-ninjaX-backend/internal/api"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/api/handler"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/config"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/cookies"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/extractor"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/fetch"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/remux"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("downloader-ninjax %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting downloader-ninjax",
		"version", Version,
		"build_time", BuildTime,
	)

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Ensure storage directories exist
	if err := os.MkdirAll(cfg.Remux.ScratchDir, 0755); err != nil {
		logger.Error("failed to create scratch directory", "error", err)
		os.Exit(1)
	}
	store, err := cookies.NewFileStore(cfg.Cookies.Dir)
	if err != nil {
		logger.Error("failed to create cookie store", "error", err)
		os.Exit(1)
	}

	// Initialize dependencies
	runner := extractor.NewExecRunner(cfg.Extract.BinPath)
	ext := extractor.New(runner, store, cfg.Extract, logger)
	client := fetch.NewClient(cfg.Download, logger)

	remuxer, err := remux.NewFFmpegRemuxer(cfg.Remux)
	if err != nil {
		logger.Error("ffmpeg not available", "error", err)
		os.Exit(1)
	}
	pipeline := remux.NewPipeline(client, remuxer, cfg.Remux, logger)

	// Initialize services
	mediaSvc := service.NewMediaService(ext, logger)

	// Initialize handlers
	infoHandler := handler.NewInfoHandler(mediaSvc, logger)
	mergeHandler := handler.NewMergeHandler(pipeline, logger)
	relayHandler := handler.NewRelayHandler(client, logger)
	cookieHandler := handler.NewCookieHandler(store, logger)
	healthHandler := handler.NewHealthHandler(cfg.Extract.BinPath, cfg.Remux.FFmpegPath, cfg.Remux.ScratchDir)

	// Setup router
	router := api.NewRouter(infoHandler, mergeHandler, relayHandler, cookieHandler, healthHandler)

	// Setup HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
