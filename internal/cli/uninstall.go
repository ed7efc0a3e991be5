package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(uninstallCmd)
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <catalog> <extension>",
	Short: "Remove an installed extension",
	Args:  cobra.ExactArgs(2),
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
		if err := m.RemoveExtension(cat, ext); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", ext.Name)
		return nil
	},
}
