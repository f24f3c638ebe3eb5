package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/mfreitag/yelp-fusion/internal/api/handlers"
	"github.com/mfreitag/yelp-fusion/internal/api/middleware"
	"github.com/mfreitag/yelp-fusion/internal/config"
	"github.com/mfreitag/yelp-fusion/internal/notify"
	"github.com/mfreitag/yelp-fusion/internal/watch"
	"github.com/mfreitag/yelp-fusion/pkg/logger"
	"github.com/mfreitag/yelp-fusion/pkg/yelp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and watch scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cliLog := logger.NewCLI(cfg.Logging.Level)
	appLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	tokens, client := buildFusionClient(cfg, cliLog)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.RequestLog(appLog))
	e.Use(middleware.Metrics())
	e.Use(middleware.Recovery(appLog))

	// Health endpoints.
	health := handlers.NewHealthHandler(tokens)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)

	// Prometheus metrics.
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("Yelp Fusion Proxy", Version))
	handlers.RegisterSearchRoutes(api, handlers.NewSearchHandler(client))
	handlers.RegisterBusinessRoutes(api, handlers.NewBusinessHandler(client))
	handlers.RegisterReviewRoutes(api, handlers.NewReviewsHandler(client))

	var sched *watch.Scheduler
	if len(cfg.Watch.Watches) > 0 {
		runner := buildWatchRunner(cfg, client, appLog, cfg.Watch.NotifyOnFirstRun)

		sched, err = watch.NewScheduler(runner, cfg.Watch.Interval, appLog)
		if err != nil {
			return fmt.Errorf("creating watch scheduler: %w", err)
		}
		sched.Start()

		// The first cron tick is a full interval away, so prime the
		// watches right after startup.
		go func() {
			if err := runner.RunAll(context.Background()); err != nil {
				appLog.Error("initial watch run failed", "error", err)
			}
		}()
	}

	addr := cfg.Server.Addr()
	cliLog.Info("starting server", "addr", addr, "watches", len(cfg.Watch.Watches))

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			cliLog.Error("server error", "err", err)
		}
	}()

	// Wait for interrupt signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cliLog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if sched != nil {
		select {
		case <-sched.Stop().Done():
		case <-ctx.Done():
			cliLog.Warn("watch scheduler did not drain before the shutdown deadline")
		}
	}

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	cliLog.Info("server stopped")
	return nil
}

// buildFusionClient wires the token provider and Fusion client from config.
// The provider is returned separately so readiness checks can probe it.
func buildFusionClient(
	cfg *config.Config,
	cliLog *log.Logger,
) (yelp.TokenProvider, yelp.Client) {
	httpClient := &http.Client{Timeout: cfg.Yelp.Timeout}

	tokens := yelp.NewOAuthTokenProvider(
		cfg.Yelp.ClientID,
		cfg.Yelp.ClientSecret,
		yelp.WithTokenURL(cfg.Yelp.TokenURL),
		yelp.WithHTTPClient(httpClient),
	)

	client := yelp.NewFusionClient(
		tokens,
		yelp.WithBaseURL(cfg.Yelp.BaseURL),
		yelp.WithFusionHTTPClient(httpClient),
		yelp.WithLogger(cliLog),
	)

	return tokens, client
}

func buildWatchRunner(
	cfg *config.Config,
	client yelp.Client,
	appLog *slog.Logger,
	notifyOnFirstRun bool,
) *watch.Runner {
	var notifier notify.Notifier
	if cfg.Notifications.Discord.Enabled {
		notifier = notify.NewDiscordNotifier(cfg.Notifications.Discord.WebhookURL)
	} else {
		notifier = notify.NewNoOpNotifier(appLog)
	}

	return watch.NewRunner(
		client,
		notifier,
		watch.FromConfig(cfg.Watch.Watches),
		watch.WithLogger(appLog),
		watch.WithNotifyOnFirstRun(notifyOnFirstRun),
	)
}
