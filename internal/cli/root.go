// Package cli implements the storefront command line: the HTTP server plus
// operator commands for the address lookup and stored visitor state.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/config"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Montink single-product storefront",
	Long: `storefront serves the product page API and offers operator commands
to look up postal codes and inspect the cart, wishlist and page state
stored for each visitor.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./config.toml or /app/config.toml)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger. Operator commands log to stderr so
// their stdout stays machine readable.
func newLogger(cfg *config.Config, output string) (*zap.Logger, error) {
	if output == "" {
		output = cfg.Log.Output
	}
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		Service:    cfg.App.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}
