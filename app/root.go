// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./etc/", "Directory containing main.toml")
}

var rootCmd = &cobra.Command{
	Use:   "emailcapture",
	Short: "emailcapture serves the settings and email capture API",
	Long: `emailcapture is a small JSON API that stores a single settings document
(logo URL, button text, admin email) and a list of subscriber emails.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
