package cli

import (
	"github.com/spf13/cobra"

	"github.com/extpack-labs/extpack/internal/branding"
	"github.com/extpack-labs/extpack/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` manages catalogs of optional extensions for the host
application: subscribing to catalogs, installing and updating extension
releases compatible with the host version, and removing them again.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
