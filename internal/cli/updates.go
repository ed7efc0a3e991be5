package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/extpack-labs/extpack/internal/config"
	"github.com/extpack-labs/extpack/internal/lifecycle"
)

var updatesRefresh bool

func init() {
	updatesCmd.Flags().BoolVar(&updatesRefresh, "refresh", false,
		"Refetch every catalog manifest instead of using the cached result")
	rootCmd.AddCommand(updatesCmd)
}

var updatesCmd = &cobra.Command{
	Use:   "updates",
	Short: "List installed extensions with newer compatible releases",
	Long: `List every installed extension whose catalog offers a newer release
compatible with the configured host version. Results are cached for a
day; pass --refresh to refetch the catalog manifests.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager()
		if err != nil {
			return err
		}
		defer m.Close()

		host := m.HostVersion().String()

		var updates []lifecycle.UpdateAvailable
		cache, _ := lifecycle.LoadUpdateCache(config.Dir())
		if !updatesRefresh && !lifecycle.IsUpdateCacheStale(cache, host, lifecycle.DefaultUpdateCacheMaxAge) {
			updates = cache.Updates
		} else {
			updates, err = m.AvailableUpdates(cmd.Context())
			if err != nil {
				return err
			}
			save := &lifecycle.UpdateCache{HostVersion: host, CheckedAt: time.Now(), Updates: updates}
			if err := lifecycle.SaveUpdateCache(config.Dir(), save); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not cache update check: %v\n", err)
			}
		}

		if len(updates) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "All installed extensions are up to date.")
			return nil
		}
		for _, u := range updates {
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s -> %s\n", u.Extension, u.Installed, u.Available)
		}
		return nil
	},
}
