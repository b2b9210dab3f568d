package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ddemile/soundboard/internal/platform"
)

var displayServerCmd = &cobra.Command{
	Use:   "display-server",
	Short: "Print the detected display server (x11, wayland, unknown or none)",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(platform.NewDisplayDetector().Kind())
	},
}
