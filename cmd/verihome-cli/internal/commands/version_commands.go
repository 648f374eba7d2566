package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build metadata, overridden at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
)

// InitVersionCommands registers the version command
func InitVersionCommands(rootCmd *cobra.Command) error {
	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("verihome-cli %s (%s)\n", version, commit)
		},
	}
	rootCmd.AddCommand(versionCmd)

	return nil
}
