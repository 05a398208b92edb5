package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	storefrontapp "github.com/gustavohenri316/Montink-Store/internal/application/storefront"
	"github.com/gustavohenri316/Montink-Store/internal/bootstrap"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/logger"
)

// snapshotNames are the kinds of state kept per visitor, in display order
var snapshotNames = []string{
	storefrontapp.KeyCart,
	storefrontapp.KeyWishlist,
	storefrontapp.KeyProductSelections,
	storefrontapp.KeyPendingConfirmation,
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Inspect and maintain stored visitor state",
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show <visitor-id>",
	Short: "Print the stored cart, wishlist, selections and pending action of a visitor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store shared.SnapshotStore) error {
			return showSnapshots(ctx, cmd.OutOrStdout(), store, args[0])
		})
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the visitors that have stored state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store shared.SnapshotStore) error {
			lister, ok := store.(shared.SnapshotLister)
			if !ok {
				return errors.New("the configured snapshot store cannot list keys")
			}
			visitors, err := listVisitors(ctx, lister)
			if err != nil {
				return err
			}
			for _, v := range visitors {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		})
	},
}

var snapshotPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete expired snapshots from the SQL store",
	Long: `Delete expired rows from the snapshots table. Redis and the in-memory
store expire entries themselves, so purge only applies to the SQL drivers.`,
	Args: cobra.NoArgs,
	RunE: runPurge,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(snapshotShowCmd, snapshotListCmd, snapshotPurgeCmd)
}

func withStore(cmd *cobra.Command, fn func(ctx context.Context, store shared.SnapshotStore) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, "stderr")
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	ctx := contextOr(cmd)
	store, err := bootstrap.OpenSnapshotStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("Error closing snapshot store", zap.Error(err))
		}
	}()
	return fn(ctx, store)
}

func showSnapshots(ctx context.Context, out io.Writer, store shared.SnapshotStore, visitorID string) error {
	for _, name := range snapshotNames {
		fmt.Fprintf(out, "%s:\n", name)
		raw, err := store.Get(ctx, storefrontapp.SnapshotKey(visitorID, name))
		if errors.Is(err, shared.ErrSnapshotNotFound) {
			fmt.Fprintln(out, "  (none)")
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}

		var pretty bytes.Buffer
		if err := json.Indent(&pretty, raw, "  ", "  "); err != nil {
			// shown as stored; the service discards it on the next read
			fmt.Fprintf(out, "  %s\n", raw)
			continue
		}
		fmt.Fprintf(out, "  %s\n", pretty.String())
	}
	return nil
}

// listVisitors returns the distinct visitor ids found in the store's keys
func listVisitors(ctx context.Context, lister shared.SnapshotLister) ([]string, error) {
	keys, err := lister.Keys(ctx, "")
	if err != nil {
		return nil, err
	}
	var visitors []string
	for _, key := range keys {
		id, name, ok := strings.Cut(key, ":")
		if !ok || !slices.Contains(snapshotNames, name) {
			continue
		}
		if !slices.Contains(visitors, id) {
			visitors = append(visitors, id)
		}
	}
	slices.Sort(visitors)
	return visitors, nil
}

func runPurge(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !isSQLDriver(cfg.Snapshot.Driver) {
		fmt.Fprintf(cmd.OutOrStdout(), "snapshot.driver %q expires entries itself, nothing to purge\n", cfg.Snapshot.Driver)
		return nil
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
	defer func() { _ = store.Close() }()

	n, err := store.PurgeExpired(contextOr(cmd))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "purged %d expired snapshots\n", n)
	return nil
}
