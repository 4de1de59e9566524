package command

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/anas-cht/notifications-project/internal/console"
)

var notificationCmd = &cobra.Command{
	Use:   "notification",
	Short: "Notification management commands",
	Long:  `Manage notifications: list and search them, send new ones from a template, re-enable them, and delete them.`,
}

var listNotificationsCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications, optionally filtered by title",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")

		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireSession(); err != nil {
			return err
		}

		screen := console.NewNotificationScreen(app.client, app.log)
		if err := screen.Load(cmd.Context()); err != nil {
			return err
		}

		if ok, err := app.store.TakePendingActionIf(console.ActionAddNotification); err == nil && ok {
			sent, err := screen.OpenAddForm(cmd.Context(), console.NewPrompter(os.Stdin, os.Stdout))
			if err != nil {
				return fmt.Errorf("failed to send notification: %w", err)
			}
			fmt.Printf("✓ Notification %d sent.\n\n", sent.ID)
		}

		screen.Render(os.Stdout, search)
		return nil
	},
}

var listTemplatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available notification templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireSession(); err != nil {
			return err
		}

		templates, err := app.client.AllTemplates(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get templates: %w", err)
		}
		if len(templates) == 0 {
			fmt.Println("No templates found.")
			return nil
		}

		fmt.Printf("Templates (%d)\n\n", len(templates))
		for _, t := range templates {
			fmt.Printf("ID: %d | %s\n", t.ID, t.Name)
		}
		return nil
	},
}

var sendNotificationCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a notification from a template",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireSession(); err != nil {
			return err
		}

		collaborators, err := app.client.AllCollaborators(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get collaborators: %w", err)
		}

		form := console.NewNotificationForm()
		form.Title, _ = cmd.Flags().GetString("title")
		form.TemplateID, _ = cmd.Flags().GetInt64("template")

		// Selecting a category pre-selects its collaborators; explicit
		// --recipient flags then toggle individual ones.
		if cmd.Flags().Changed("category") {
			categoryID, _ := cmd.Flags().GetInt64("category")
			form.SelectCategory(categoryID, collaborators)
		}
		recipients, _ := cmd.Flags().GetStringSlice("recipient")
		for _, id := range recipients {
			found := false
			for _, c := range collaborators {
				if c.ID == id {
					form.ToggleRecipient(c)
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("unknown recipient %s", id)
			}
		}

		sent, err := form.Submit(cmd.Context(), app.client)
		if err != nil {
			return fmt.Errorf("failed to send notification: %w", err)
		}

		fmt.Println("✓ Notification sent.")
		fmt.Printf("ID: %d\n", sent.ID)
		fmt.Printf("Title: %s\n", sent.Title)
		fmt.Printf("Recipients: %d\n", len(form.Recipients))
		return nil
	},
}

var enableNotificationCmd = &cobra.Command{
	Use:   "enable [id]",
	Short: "Re-enable a notification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid notification id: %w", err)
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireSession(); err != nil {
			return err
		}

		updated, err := app.client.EnableNotification(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to enable notification: %w", err)
		}

		fmt.Printf("✓ Notification %d enabled.\n", updated.ID)
		return nil
	},
}

var deleteNotificationCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a notification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid notification id: %w", err)
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireSession(); err != nil {
			return err
		}

		if err := app.client.DeleteNotification(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete notification: %w", err)
		}

		fmt.Printf("✓ Notification %d deleted.\n", id)
		return nil
	},
}

func init() {
	notificationCmd.AddCommand(listNotificationsCmd)
	notificationCmd.AddCommand(listTemplatesCmd)
	notificationCmd.AddCommand(sendNotificationCmd)
	notificationCmd.AddCommand(enableNotificationCmd)
	notificationCmd.AddCommand(deleteNotificationCmd)
	rootCmd.AddCommand(notificationCmd)

	listNotificationsCmd.Flags().StringP("search", "s", "", "Filter by title")

	sendNotificationCmd.Flags().String("title", "", "Notification title")
	sendNotificationCmd.Flags().Int64("template", 0, "Template id")
	sendNotificationCmd.Flags().Int64("category", 0, "Category whose collaborators receive the notification")
	sendNotificationCmd.Flags().StringSlice("recipient", nil, "Recipient collaborator id (repeatable)")
	sendNotificationCmd.MarkFlagRequired("title")
	sendNotificationCmd.MarkFlagRequired("template")
}
