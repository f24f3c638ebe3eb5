package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mfreitag/yelp-fusion/internal/config"
	"github.com/mfreitag/yelp-fusion/internal/watch"
	"github.com/mfreitag/yelp-fusion/pkg/logger"
)

var watchOnce bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the watch poller without the HTTP server",
	Long: "Polls every configured watch on its schedule and alerts on businesses\n" +
		"that appear in the results for the first time. With --once each watch is\n" +
		"polled a single time and every result is announced, since a one-shot run\n" +
		"has no prior state to compare against.",
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "poll every watch once and exit")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if len(cfg.Watch.Watches) == 0 {
		return fmt.Errorf("no watches configured in %s", cfgFile)
	}

	cliLog := logger.NewCLI(cfg.Logging.Level)
	appLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	_, client := buildFusionClient(cfg, cliLog)

	if watchOnce {
		runner := buildWatchRunner(cfg, client, appLog, true)
		return runner.RunAll(cmd.Context())
	}

	runner := buildWatchRunner(cfg, client, appLog, cfg.Watch.NotifyOnFirstRun)

	sched, err := watch.NewScheduler(runner, cfg.Watch.Interval, appLog)
	if err != nil {
		return fmt.Errorf("creating watch scheduler: %w", err)
	}

	cliLog.Info("watch poller starting",
		"watches", len(cfg.Watch.Watches),
		"interval", cfg.Watch.Interval,
	)

	sched.Start()

	if err := runner.RunAll(context.Background()); err != nil {
		appLog.Error("initial watch run failed", "error", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cliLog.Info("watch poller stopping")
	<-sched.Stop().Done()
	return nil
}
