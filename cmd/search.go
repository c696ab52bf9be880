package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"bibcleaner/core/dblp"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// searchCmd runs one DBLP search and prints the result locators.
var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search DBLP and list the matching records",
	Long:  `Normalizes the query the same way a cleaning run does and prints the DBLP locators in index order.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		query := dblp.NewQueryClient(rt.client, rt.cfg.DBLP)
		locators, err := query.Search(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		rt.log.Info("Search finished", zap.String("query", query.LastQuery()), zap.Int("results", len(locators)))

		rows := make([][]string, 0, len(locators))
		for i, l := range locators {
			rows = append(rows, []string{strconv.Itoa(i), l})
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"#", "Locator"}, rows, []columnAlignment{alignRight}))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(searchCmd)
}
