package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cacheCmd is the parent command for lookup cache maintenance.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Maintain the lookup cache",
	Long:  `Inspect and prune the optional database cache of DBLP responses (database.enabled).`,
}

// cachePurgeCmd removes expired documents.
var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete cached documents older than the TTL",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()
		if rt.cache == nil {
			return errors.New("lookup cache is not enabled")
		}

		removed, err := rt.cache.Purge(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to purge cache: %w", err)
		}
		remaining, err := rt.cache.Count(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to count cache: %w", err)
		}
		rt.log.Info("Purged lookup cache", zap.Int64("removed", removed), zap.Int64("remaining", remaining))
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cachePurgeCmd)
	RootCmd.AddCommand(cacheCmd)
}
