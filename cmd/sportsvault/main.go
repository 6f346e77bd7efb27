package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/voyagen/sportsvault/internal/cache"
	"github.com/voyagen/sportsvault/internal/config"
	"github.com/voyagen/sportsvault/internal/health"
	"github.com/voyagen/sportsvault/internal/logging"
	"github.com/voyagen/sportsvault/internal/report"
	"github.com/voyagen/sportsvault/internal/service"
)

// Lock TTL for a run; comfortably above a few hundred sequential checks.
const runLockTTL = 2 * time.Hour

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sportsvault: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:           "sportsvault",
		Short:         "Build a health-checked sports playlist from a remote M3U",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			return run(cmd.Context(), cfg)
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Optional YAML config file; defaults and SPORTSVAULT_* env vars apply otherwise")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func run(ctx context.Context, cfg *config.Config) error {
	log, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, MaxBackups: 5, MaxAgeDays: 30})
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checker := health.NewChecker(cfg.UserAgent, cfg.CheckTimeout, health.WithLogger(log))
	builder := report.NewBuilder(cfg.PlaylistPath, cfg.ReportPath)

	var opts []service.Option
	if cfg.RedisURL != "" {
		rds, err := cache.New(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer rds.Close()
		if err := rds.Ping(ctx); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		opts = append(opts, service.WithCoordinator(cache.NewCoordinator(rds, runLockTTL)))
		log.Info("redis connected (run lock and summary queue enabled)")
	}

	summary, err := service.New(cfg, log, checker, builder, opts...).Run(ctx)
	if err != nil {
		return err
	}
	log.Info("done",
		zap.String("run_id", summary.RunID),
		zap.Int("selected", summary.Selected),
		zap.Int("alive", summary.Alive),
		zap.Duration("took", summary.FinishedAt.Sub(summary.StartedAt)))
	return nil
}
