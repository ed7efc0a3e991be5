package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/extpack-labs/extpack/internal/lifecycle"
	"github.com/extpack-labs/extpack/internal/manifest"
)

var installOptionalDeps bool

func init() {
	installCmd.Flags().BoolVar(&installOptionalDeps, "optional-deps", false,
		"Also install optional dependencies")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install <catalog> <extension> [release]",
	Short: "Install or update an extension",
	Long: `Install a release of an extension from a subscribed catalog, replacing
any installed release. Without an explicit release name, the highest
release compatible with the configured host version is installed.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager()
		if err != nil {
			return err
		}
		defer m.Close()

		cat, ext, err := findExtension(cmd.Context(), m, args[0], args[1])
		if err != nil {
			return err
		}

		var release *manifest.Release
		if len(args) == 3 {
			release = ext.FindRelease(args[2])
			if release == nil {
				return fmt.Errorf("release %q not found for extension %q", args[2], ext.Name)
			}
		} else {
			release = ext.MaxCompatibleRelease(m.HostVersion())
			if release == nil {
				return fmt.Errorf("no release of %q is compatible with host %s", ext.Name, m.HostVersion())
			}
		}

		hooks := lifecycle.Hooks{
			OnStatus: func(step lifecycle.Step, resource string) {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", step, resource)
			},
		}
		if err := m.InstallOrUpdate(cmd.Context(), cat, ext, *release, installOptionalDeps, hooks); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Installed %s %s.\n", ext.Name, release.Name)
		return nil
	},
}
