package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	listManual  bool
	listManaged bool
)

func init() {
	listCmd.Flags().BoolVar(&listManual, "manual", false, "Only manually installed jars")
	listCmd.Flags().BoolVar(&listManaged, "managed", false, "Only catalog-managed jars")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed jar archives",
	Long: `List jar archives under the extension root. Catalog-managed jars live
inside the catalog/extension/release layout; manually installed jars
sit directly in the root directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager()
		if err != nil {
			return err
		}
		defer m.Close()

		all := !listManual && !listManaged
		if listManaged || all {
			for _, jar := range m.ManagedJars().Snapshot() {
				fmt.Fprintf(cmd.OutOrStdout(), "managed  %s\n", jar)
			}
		}
		if listManual || all {
			for _, jar := range m.ManualJars().Snapshot() {
				fmt.Fprintf(cmd.OutOrStdout(), "manual   %s\n", jar)
			}
		}
		return nil
	},
}
