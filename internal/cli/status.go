package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ddemile/soundboard/internal/config"
	"github.com/ddemile/soundboard/internal/daemon/server"
	"github.com/ddemile/soundboard/internal/models"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running instance's window state",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	err := withInstance(cmd.Context(), func(ctx context.Context, client *server.Client, info *models.InstanceInfo) error {
		st, err := client.Status(ctx)
		if err != nil {
			return err
		}
		printStatus(info, st)
		return nil
	})
	if errors.Is(err, config.ErrInstanceNotRunning) {
		fmt.Println(styleWarning.Render("Soundboard is not running."))
		return nil
	}
	return err
}

func printStatus(info *models.InstanceInfo, st *server.Status) {
	uptime := time.Since(info.StartedAt).Truncate(time.Second)
	lastFocus := st.LastFocus
	if lastFocus == "" {
		lastFocus = "none"
	}

	fmt.Println(styleBrand.Render("Soundboard") + " " + styleSuccess.Render("running"))
	printField("PID", fmt.Sprintf("%d", st.PID))
	printField("Port", fmt.Sprintf("%d", info.Port))
	printField("Uptime", uptime.String())
	printField("Window", visibilityStyle(st.Visibility).Render(st.Visibility))
	printField("Tray entry", st.ToggleLabel)
	printField("Display", st.DisplayServer)
	printField("Last focus", lastFocus)
}

func printField(label, value string) {
	fmt.Printf("  %s %s\n", styleLabel.Render(fmt.Sprintf("%-11s", label)), styleValue.Render(value))
}
