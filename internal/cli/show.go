package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ddemile/soundboard/internal/daemon/server"
	"github.com/ddemile/soundboard/internal/models"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Bring the running instance's window to front",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withInstance(cmd.Context(), func(ctx context.Context, client *server.Client, _ *models.InstanceInfo) error {
			if err := client.Activate(ctx, nil); err != nil {
				return err
			}
			fmt.Println(styleSuccess.Render("Window shown."))
			return nil
		})
	},
}
