package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/makkenzo/wedding-invitation-api/internal/config"
	"github.com/makkenzo/wedding-invitation-api/internal/draftmode"
	"github.com/makkenzo/wedding-invitation-api/internal/handler"
	"github.com/makkenzo/wedding-invitation-api/internal/metrics"
	"github.com/makkenzo/wedding-invitation-api/internal/service"
	"github.com/makkenzo/wedding-invitation-api/internal/storage/microcms"
	"github.com/makkenzo/wedding-invitation-api/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "./configs/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.NewZapLogger(cfg.Log.Level, cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	sugarLogger := appLogger.Sugar()

	sugarLogger.Info("Starting application...")
	sugarLogger.Infof("Environment: %s, log level: %s", cfg.App.Env, cfg.Log.Level)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	appCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Draft.Secret == "" {
		sugarLogger.Warn("DRAFT_MODE_SECRET is not set; using a random secret, preview sessions end on restart")
	}
	drafts, err := draftmode.NewManager(cfg.Draft.Secret, cfg.Draft.TTL, cfg.IsProduction())
	if err != nil {
		sugarLogger.Fatalf("Failed to initialize draft mode: %v", err)
	}

	if !cfg.CMS.Configured() {
		sugarLogger.Warn("microCMS is not configured; content endpoints will fail")
	}
	if cfg.RSVP.ScriptURL == "" {
		sugarLogger.Warn("GOOGLE_APPS_SCRIPT_URL is not set; RSVP submissions will fail")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	cmsClient := microcms.NewClient(&cfg.CMS, nil, appMetrics, appLogger)

	contentService := service.NewContentService(cmsClient, appLogger)
	rsvpService := service.NewRSVPService(&cfg.RSVP, nil, appMetrics, appLogger)

	previewHandler, err := handler.NewPreviewHandler(drafts, cfg.App.SiteURL, appLogger)
	if err != nil {
		sugarLogger.Fatalf("Failed to initialize preview handler: %v", err)
	}

	router := handler.NewRouter(handler.RouterDeps{
		Logger:         appLogger,
		Metrics:        appMetrics,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Drafts:         drafts,
		AllowOrigins:   cfg.CORS.AllowOrigins,
		AccessLog:      true,
		Health:         handler.NewHealthHandler(cfg.CMS.Configured(), rsvpService.Configured(), appLogger),
		Preview:        previewHandler,
		Content:        handler.NewContentHandler(contentService, appLogger),
		RSVP:           handler.NewRSVPHandler(rsvpService, cfg.RSVP.MaxBodyBytes, appLogger),
	})

	g, groupCtx := errgroup.WithContext(appCtx)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g.Go(func() error {
		sugarLogger.Infof("HTTP server listening on port %s", cfg.Server.Port)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugarLogger.Errorf("HTTP server ListenAndServe error: %v", err)
			return fmt.Errorf("http server failed: %w", err)
		}
		sugarLogger.Info("HTTP server stopped listening.")
		return nil
	})

	g.Go(func() error {
		<-groupCtx.Done()
		sugarLogger.Info("Shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownPeriod)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			sugarLogger.Errorf("HTTP server graceful shutdown failed: %v", err)
			return fmt.Errorf("http server shutdown error: %w", err)
		}
		sugarLogger.Info("HTTP server shutdown complete.")
		return nil
	})

	sugarLogger.Info("Application started. Waiting for interrupt signal (Ctrl+C) or component error...")

	waitErr := g.Wait()

	sugarLogger.Info("Shutdown sequence finished.")

	if waitErr != nil {
		if errors.Is(waitErr, context.Canceled) {
			sugarLogger.Info("Shutdown reason: Context canceled (likely due to OS signal).")
		} else {
			sugarLogger.Errorf("Application shutdown finished with unexpected error: %v", waitErr)
		}
	} else {
		sugarLogger.Info("Application shutdown successfully (all components finished without errors).")
	}

	sugarLogger.Info("Application exiting now.")
}
