package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ddemile/soundboard/internal/daemon/server"
	"github.com/ddemile/soundboard/internal/models"
)

var overlayCmd = &cobra.Command{
	Use:   "overlay",
	Short: "Open or close the overlay window",
}

var overlayOpenCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the overlay, remembering the focused window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setOverlay(cmd.Context(), true)
	},
}

var overlayCloseCmd = &cobra.Command{
	Use:   "close",
	Short: "Close the overlay and refocus the previous window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setOverlay(cmd.Context(), false)
	},
}

func init() {
	overlayCmd.AddCommand(overlayOpenCmd)
	overlayCmd.AddCommand(overlayCloseCmd)
}

func setOverlay(parent context.Context, open bool) error {
	return withInstance(parent, func(ctx context.Context, client *server.Client, _ *models.InstanceInfo) error {
		if err := client.Overlay(ctx, open); err != nil {
			return err
		}
		if open {
			fmt.Println(styleSuccess.Render("Overlay opened."))
		} else {
			fmt.Println(styleSuccess.Render("Overlay closed."))
		}
		return nil
	})
}
