package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gustavohenri316/Montink-Store/internal/bootstrap"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shared/valueobject"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/logger"
)

var lookupJSON bool

var lookupCmd = &cobra.Command{
	Use:   "lookup <cep>",
	Short: "Resolve a postal code through the address service",
	Long: `Resolve a Brazilian postal code (CEP) with the same client the product
page uses. Punctuation in the code is ignored.`,
	Example: "  storefront lookup 01310-100",
	Args:    cobra.ExactArgs(1),
	RunE:    runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "print the address as JSON")
}

func runLookup(cmd *cobra.Command, args []string) error {
	code, err := valueobject.NewPostalCode(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, "stderr")
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	client, err := bootstrap.NewViaCEPClient(cfg, log, nil)
	if err != nil {
		return err
	}

	addr, err := client.Lookup(contextOr(cmd), code)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if lookupJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(addr)
	}
	for _, line := range addr.Lines() {
		fmt.Fprintln(out, line)
	}
	return nil
}
