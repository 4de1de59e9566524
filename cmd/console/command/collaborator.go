package command

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anas-cht/notifications-project/internal/console"
)

var collaboratorCmd = &cobra.Command{
	Use:   "collaborator",
	Short: "Collaborator management commands",
	Long:  `Manage collaborators: list and search them, add new ones, edit their details, and toggle their active status.`,
}

var listCollaboratorsCmd = &cobra.Command{
	Use:   "list",
	Short: "List collaborators, optionally filtered by name or email",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")

		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireSession(); err != nil {
			return err
		}

		screen := console.NewCollaboratorScreen(app.client, app.store, app.log)
		if err := screen.Load(cmd.Context()); err != nil {
			return err
		}

		// A dashboard quick action aimed at this screen opens the add
		// form before the list. Intents for other screens stay pending.
		if ok, err := app.store.TakePendingActionIf(console.ActionAddCollaborator); err == nil && ok {
			created, err := screen.OpenAddForm(cmd.Context(), console.NewPrompter(os.Stdin, os.Stdout))
			if err != nil {
				return fmt.Errorf("failed to add collaborator: %w", err)
			}
			fmt.Printf("✓ Collaborator %s added.\n\n", created.ID)
		}

		screen.Render(os.Stdout, search)
		return nil
	},
}

var addCollaboratorCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new collaborator",
	RunE: func(cmd *cobra.Command, args []string) error {
		form := console.NewCollaboratorForm()
		form.ID, _ = cmd.Flags().GetString("id")
		form.FullName, _ = cmd.Flags().GetString("full-name")
		form.Email, _ = cmd.Flags().GetString("email")
		form.Email2, _ = cmd.Flags().GetString("email2")
		form.PhoneNumber, _ = cmd.Flags().GetString("phone")
		if cmd.Flags().Changed("category") {
			categoryID, _ := cmd.Flags().GetInt64("category")
			form.CategoryID = &categoryID
		}
		if inactive, _ := cmd.Flags().GetBool("inactive"); inactive {
			form.Active = false
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireSession(); err != nil {
			return err
		}

		created, err := form.SubmitAdd(cmd.Context(), app.client)
		if err != nil {
			return fmt.Errorf("failed to add collaborator: %w", err)
		}

		fmt.Println("✓ Collaborator added.")
		fmt.Printf("ID: %s\n", created.ID)
		fmt.Printf("Name: %s\n", created.FullName)
		fmt.Printf("Email: %s\n", created.Email)
		return nil
	},
}

var editCollaboratorCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing collaborator",
	Args:  cobra.ExactArgs(1),
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
		var form *console.CollaboratorForm
		for _, c := range collaborators {
			if c.ID == args[0] {
				form = console.EditCollaboratorForm(c)
				break
			}
		}
		if form == nil {
			return fmt.Errorf("collaborator %s not found", args[0])
		}

		// Only flags that were set override the stored record.
		if cmd.Flags().Changed("full-name") {
			form.FullName, _ = cmd.Flags().GetString("full-name")
		}
		if cmd.Flags().Changed("email") {
			form.Email, _ = cmd.Flags().GetString("email")
		}
		if cmd.Flags().Changed("email2") {
			form.Email2, _ = cmd.Flags().GetString("email2")
		}
		if cmd.Flags().Changed("phone") {
			form.PhoneNumber, _ = cmd.Flags().GetString("phone")
		}
		if cmd.Flags().Changed("category") {
			categoryID, _ := cmd.Flags().GetInt64("category")
			form.CategoryID = &categoryID
		}

		updated, err := form.SubmitEdit(cmd.Context(), app.client)
		if err != nil {
			return fmt.Errorf("failed to update collaborator: %w", err)
		}

		fmt.Println("✓ Collaborator updated.")
		fmt.Printf("ID: %s\n", updated.ID)
		fmt.Printf("Name: %s\n", updated.FullName)
		return nil
	},
}

var toggleCollaboratorCmd = &cobra.Command{
	Use:   "toggle [id]",
	Short: "Toggle a collaborator's active status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireSession(); err != nil {
			return err
		}

		updated, err := app.client.DisableCollaborator(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to toggle collaborator: %w", err)
		}

		status := "inactive"
		if updated.IsActive {
			status = "active"
		}
		fmt.Printf("✓ Collaborator %s is now %s.\n", updated.ID, status)
		return nil
	},
}

func init() {
	collaboratorCmd.AddCommand(listCollaboratorsCmd)
	collaboratorCmd.AddCommand(addCollaboratorCmd)
	collaboratorCmd.AddCommand(editCollaboratorCmd)
	collaboratorCmd.AddCommand(toggleCollaboratorCmd)
	rootCmd.AddCommand(collaboratorCmd)

	listCollaboratorsCmd.Flags().StringP("search", "s", "", "Filter by full name or email")

	addCollaboratorCmd.Flags().String("id", "", "Collaborator id (matricule)")
	addCollaboratorCmd.Flags().String("full-name", "", "Full name")
	addCollaboratorCmd.Flags().String("email", "", "Primary email")
	addCollaboratorCmd.Flags().String("email2", "", "Secondary email")
	addCollaboratorCmd.Flags().String("phone", "", "Phone number")
	addCollaboratorCmd.Flags().Int64("category", 0, "Category id to assign")
	addCollaboratorCmd.Flags().Bool("inactive", false, "Create the collaborator inactive")
	addCollaboratorCmd.MarkFlagRequired("id")
	addCollaboratorCmd.MarkFlagRequired("full-name")
	addCollaboratorCmd.MarkFlagRequired("email")
	addCollaboratorCmd.MarkFlagRequired("phone")

	editCollaboratorCmd.Flags().String("full-name", "", "Full name")
	editCollaboratorCmd.Flags().String("email", "", "Primary email")
	editCollaboratorCmd.Flags().String("email2", "", "Secondary email")
	editCollaboratorCmd.Flags().String("phone", "", "Phone number")
	editCollaboratorCmd.Flags().Int64("category", 0, "Category id to assign")
}
