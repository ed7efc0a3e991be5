package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/extpack-labs/extpack/internal/manifest"
)

var (
	catalogAddDescription string
	catalogAddURI         string
	catalogRemoveFiles    bool
)

func init() {
	catalogAddCmd.Flags().StringVar(&catalogAddDescription, "description", "", "Catalog description")
	catalogAddCmd.Flags().StringVar(&catalogAddURI, "uri", "", "Display URI shown for the catalog")
	catalogRemoveCmd.Flags().BoolVar(&catalogRemoveFiles, "remove-extensions", false,
		"Also delete the catalog's installed extensions")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogAddCmd)
	catalogCmd.AddCommand(catalogRemoveCmd)
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage subscribed extension catalogs",
	Long: `Manage the catalogs of extensions the host application can install from.

The subscribed set is persisted in registry.json at the extension root
and survives restarts. The built-in catalog cannot be removed.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subscribed catalogs",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager()
		if err != nil {
			return err
		}
		defer m.Close()

		for _, c := range m.Catalogs().Snapshot() {
			marker := " "
			if !c.Deletable {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %-24s %s\n", marker, c.Name, c.URI)
		}
		return nil
	},
}

var catalogAddCmd = &cobra.Command{
	Use:   "add <name> <raw-uri>",
	Short: "Subscribe to a catalog",
	Long: `Subscribe to a catalog by name and manifest location. The raw URI must
serve the catalog's JSON manifest. Names must be unique among saved
catalogs; a colliding name is rejected.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager()
		if err != nil {
			return err
		}
		defer m.Close()

		before := m.Catalogs().Len()
		err = m.AddCatalogs([]manifest.Catalog{{
			Name:        args[0],
			Description: catalogAddDescription,
			URI:         catalogAddURI,
			RawURI:      args[1],
			Deletable:   true,
		}})
		if err != nil {
			return err
		}
		if m.Catalogs().Len() == before {
			return fmt.Errorf("catalog %q was not added (name already in use)", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Catalog %q added.\n", args[0])
		return nil
	},
}

var catalogRemoveCmd = &cobra.Command{
	Use:   "remove <name>...",
	Short: "Unsubscribe from catalogs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager()
		if err != nil {
			return err
		}
		defer m.Close()

		toRemove := make([]manifest.Catalog, len(args))
		for i, name := range args {
			toRemove[i] = manifest.Catalog{Name: name}
		}
		if err := m.RemoveCatalogs(toRemove, catalogRemoveFiles); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Done.")
		return nil
	},
}
