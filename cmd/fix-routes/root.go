package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/okian/routefix/internal/config"
	"github.com/okian/routefix/internal/rewrite"
	"github.com/okian/routefix/pkg/logger"
	"github.com/okian/routefix/pkg/metrics"
)

const (
	// targetFile is the route module rewritten by every run.
	targetFile = "rpg/api/content-routes.js"

	successMessage = "Routes fixed!"
)

func newRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fix-routes",
		Short: "Strip the /api/ prefix from route registrations",
		Long: `fix-routes rewrites ` + targetFile + ` in place, turning
router.get('/api/..., router.post('/api/..., router.put('/api/... and
router.delete('/api/... into the same calls without the /api/ prefix.

Logging and the optional metrics textfile are configured through
ROUTEFIX_* environment variables, a .env file, or a YAML file named by
ROUTEFIX_CONFIG.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

// run performs one rewrite of the target and prints the confirmation to out.
// Logs go to logOut.
func run(ctx context.Context, out, logOut io.Writer) error {
	if err := logger.Init(logger.WithWriter(logOut)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	log := logger.Get().With(logger.String("run_id", uuid.NewString()))

	target, err := filepath.Abs(filepath.FromSlash(targetFile))
	if err != nil {
		return fmt.Errorf("failed to resolve target: %w", err)
	}

	// Only collect what will be exported.
	mgr := metrics.NewManager(metrics.WithMetricsEnabled(cfg.MetricsFile != ""))
	fixer := rewrite.New(
		rewrite.WithLogger(log.Named("rewrite")),
		rewrite.WithRecorder(mgr),
	)

	log.Debug(ctx, "fixing routes", logger.String("target", target))
	_, fixErr := fixer.Fix(ctx, target)

	if cfg.MetricsFile != "" {
		if err := mgr.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn(ctx, "failed to write metrics textfile", logger.String("metrics_file", cfg.MetricsFile), logger.Error(err))
		}
	}

	if fixErr != nil {
		return fixErr
	}

	_, err = fmt.Fprintln(out, successMessage)
	return err
}

// Compile-time check that the metrics manager can back the fixer.
var _ rewrite.Recorder = (*metrics.Manager)(nil)
