package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gustavohenri316/Montink-Store/internal/bootstrap"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the storefront HTTP server",
	Long: `Start the storefront API. The server stops on SIGINT or SIGTERM after
draining in-flight requests.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, "")
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	log.Info("Starting storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", bootstrap.Version),
		zap.String("snapshot_driver", cfg.Snapshot.Driver),
	)

	ctx, stop := signal.NotifyContext(contextOr(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := bootstrap.NewServer(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return srv.Run(ctx)
}

// contextOr returns the command context, which is nil when a command is
// invoked without ExecuteContext
func contextOr(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
