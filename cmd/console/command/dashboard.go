package command

// dashboard.go renders the overview screen and records the quick actions
// that ask an entity list to open its add form on the next visit.

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/anas-cht/notifications-project/internal/console"
)

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the platform overview",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireSession(); err != nil {
			return err
		}

		dashboard := console.LoadDashboard(cmd.Context(), app.client, app.log)
		dashboard.Render(os.Stdout, time.Now())
		return nil
	},
}

// quickCmd records a one-shot intent for the matching list command.
var quickCmd = &cobra.Command{
	Use:   "quick [collaborator|category|notification]",
	Short: "Queue an add form to open on the next list visit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireSession(); err != nil {
			return err
		}

		var action string
		switch args[0] {
		case "collaborator":
			action = console.ActionAddCollaborator
		case "category":
			action = console.ActionAddCategory
		case "notification":
			action = console.ActionAddNotification
		default:
			return fmt.Errorf("unknown quick action %q", args[0])
		}

		if err := app.store.SetPendingAction(action); err != nil {
			return fmt.Errorf("recording quick action: %w", err)
		}
		fmt.Printf("✓ The %s list will open its add form next.\n", args[0])
		return nil
	},
}

func init() {
	dashboardCmd.AddCommand(quickCmd)
	rootCmd.AddCommand(dashboardCmd)
}
