package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/extpack-labs/extpack/internal/scaffold"
)

var (
	scaffoldOut         string
	scaffoldBaseURL     string
	scaffoldDescription string
)

func init() {
	catalogScaffoldCmd.Flags().StringVarP(&scaffoldOut, "out", "o", "catalog.json",
		"Output path for the generated manifest")
	catalogScaffoldCmd.Flags().StringVar(&scaffoldBaseURL, "base-url", "https://example.com/downloads",
		"Download URL prefix used in the example release")
	catalogScaffoldCmd.Flags().StringVar(&scaffoldDescription, "description", "", "Catalog description")
	catalogCmd.AddCommand(catalogScaffoldCmd)
}

var catalogScaffoldCmd = &cobra.Command{
	Use:   "scaffold <name>",
	Short: "Generate a starter catalog manifest",
	Long: `Generate a schema-valid catalog manifest skeleton with one example
extension and release. Edit the file, host it at a public URL, and
subscribers can add it with "catalog add".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data := scaffold.NewData(args[0], scaffoldBaseURL)
		if scaffoldDescription != "" {
			data.Description = scaffoldDescription
		}

		result, err := scaffold.Generate(data, scaffoldOut)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", result.OutputPath)
		for _, w := range result.Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
		}
		return nil
	},
}
