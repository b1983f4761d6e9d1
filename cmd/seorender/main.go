// Package main wires together the render service binary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cry808/seorender/internal/api"
	"github.com/cry808/seorender/internal/botdetect"
	"github.com/cry808/seorender/internal/config"
	"github.com/cry808/seorender/internal/content"
	"github.com/cry808/seorender/internal/logging"
	"github.com/cry808/seorender/internal/shell"
	"github.com/cry808/seorender/internal/sitemap"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	// Local development convenience; absence of a .env file is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", syncErr)
		}
	}()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	articles := content.NewClient(cfg.Upstream.APIOrigin, cfg.UpstreamTimeout())
	shellFetcher := shell.New(shell.Config{
		Origin:    cfg.Shell.Origin,
		Path:      cfg.Shell.Path,
		UserAgent: "seorender/1.0",
		Timeout:   cfg.UpstreamTimeout(),
	})
	generator := sitemap.New(cfg.Site.Origin, articles)
	classifier := botdetect.NewClassifier()

	apiServer := api.NewServer(articles, generator, shellFetcher, classifier, cfg, logger.Named("api"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
