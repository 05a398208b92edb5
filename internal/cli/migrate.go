package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gustavohenri316/Montink-Store/internal/bootstrap"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/config"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the snapshot table for the SQL snapshot drivers",
	Long: `Create or update the snapshots table used when snapshot.driver is
sqlite, postgres or mysql. The server does the same on startup; this
command lets a deploy run it ahead of time.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !isSQLDriver(cfg.Snapshot.Driver) {
		return fmt.Errorf("snapshot.driver %q does not use a SQL database", cfg.Snapshot.Driver)
	}
	log, err := newLogger(cfg, "stderr")
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	store, err := bootstrap.OpenSQLStore(contextOr(cmd), cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("Error closing database", zap.Error(err))
		}
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "snapshot table ready (%s)\n", cfg.Snapshot.Driver)
	return nil
}

func isSQLDriver(driver string) bool {
	switch driver {
	case config.DriverSQLite, config.DriverPostgres, config.DriverMySQL:
		return true
	}
	return false
}
