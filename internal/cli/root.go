// Package cli implements the soundboard CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	flagLogLevel   string
	flagForeground bool
	flagPort       int
)

var rootCmd = &cobra.Command{
	Use:   "soundboard [args...]",
	Short: "Soundboard tray application",
	Long: `Soundboard lives in the system tray. Launching it again brings the
running instance to front and hands it the command-line arguments.`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	// Forwarded argv may carry flags meant for the running instance.
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE:               runApp,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides settings.yaml")
	rootCmd.Flags().BoolVar(&flagForeground, "foreground", false, "Run without a system tray, logging to stderr")
	rootCmd.Flags().IntVar(&flagPort, "port", 0, "Instance server port (0 for dynamic allocation)")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(displayServerCmd)
	rootCmd.AddCommand(overlayCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}
