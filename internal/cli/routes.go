package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gustavohenri316/Montink-Store/internal/interfaces/http/router"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the API routes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := router.NewRouter(nil).Prefix()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tDESCRIPTION")
		for _, group := range router.StorefrontGroups(router.Handlers{}) {
			for _, route := range group.Routes() {
				fmt.Fprintf(w, "%s\t%s%s\t%s\n", route.Method, prefix, route.Path, route.Description)
			}
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
