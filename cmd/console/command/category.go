package command

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/anas-cht/notifications-project/internal/console"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Module management commands",
	Long:  `Manage the platform's modules (categories): list and search them, add new ones with initial members, edit them, and toggle their status.`,
}

var listCategoriesCmd = &cobra.Command{
	Use:   "list",
	Short: "List modules, optionally filtered by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")

		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireSession(); err != nil {
			return err
		}

		screen := console.NewCategoryScreen(app.client, app.store, app.log)
		if err := screen.Load(cmd.Context()); err != nil {
			return err
		}

		if ok, err := app.store.TakePendingActionIf(console.ActionAddCategory); err == nil && ok {
			created, err := screen.OpenAddForm(cmd.Context(), console.NewPrompter(os.Stdin, os.Stdout))
			if err != nil {
				return fmt.Errorf("failed to add module: %w", err)
			}
			fmt.Printf("✓ Module %d added.\n\n", created.ID)
		}

		screen.Render(os.Stdout, search)
		return nil
	},
}

var addCategoryCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new module",
	RunE: func(cmd *cobra.Command, args []string) error {
		form := console.NewCategoryForm()
		form.Name, _ = cmd.Flags().GetString("name")
		form.Description, _ = cmd.Flags().GetString("description")
		if inactive, _ := cmd.Flags().GetBool("inactive"); inactive {
			form.Active = false
		}
		members, _ := cmd.Flags().GetStringSlice("member")

		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireSession(); err != nil {
			return err
		}

		// Initial members may only be collaborators without a category.
		if len(members) > 0 {
			collaborators, err := app.client.AllCollaborators(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get collaborators: %w", err)
			}
			eligible := console.EligibleRecipients(collaborators, "")
			for _, id := range members {
				found := false
				for _, c := range eligible {
					if c.ID == id {
						form.ToggleRecipient(c)
						found = true
						break
					}
				}
				if !found {
					return fmt.Errorf("collaborator %s is not eligible (unknown or already assigned)", id)
				}
			}
		}

		created, err := form.SubmitAdd(cmd.Context(), app.client)
		if err != nil {
			return fmt.Errorf("failed to add module: %w", err)
		}

		fmt.Println("✓ Module added.")
		fmt.Printf("ID: %d\n", created.ID)
		fmt.Printf("Name: %s\n", created.Description)
		return nil
	},
}

var editCategoryCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing module",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid module id: %w", err)
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireSession(); err != nil {
			return err
		}

		screen := console.NewCategoryScreen(app.client, app.store, app.log)
		if err := screen.Load(cmd.Context()); err != nil {
			return err
		}
		category, ok := screen.Find(id)
		if !ok {
			return fmt.Errorf("module %d not found", id)
		}

		form := console.EditCategoryForm(category)
		if cmd.Flags().Changed("name") {
			form.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("description") {
			form.Description, _ = cmd.Flags().GetString("description")
		}

		updated, err := form.SubmitEdit(cmd.Context(), app.client)
		if errors.Is(err, console.ErrNoFieldsChanged) {
			fmt.Println("Nothing to save, no fields changed.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to update module: %w", err)
		}

		fmt.Println("✓ Module updated.")
		fmt.Printf("ID: %d\n", updated.ID)
		fmt.Printf("Name: %s\n", updated.Description)
		return nil
	},
}

var toggleCategoryCmd = &cobra.Command{
	Use:   "toggle [id]",
	Short: "Toggle a module's active status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid module id: %w", err)
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		if _, err := app.requireSession(); err != nil {
			return err
		}

		updated, err := app.client.ChangeCategoryStatus(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to toggle module: %w", err)
		}

		status := "inactive"
		if updated.IsActive {
			status = "active"
		}
		fmt.Printf("✓ Module %d is now %s.\n", updated.ID, status)
		return nil
	},
}

func init() {
	categoryCmd.AddCommand(listCategoriesCmd)
	categoryCmd.AddCommand(addCategoryCmd)
	categoryCmd.AddCommand(editCategoryCmd)
	categoryCmd.AddCommand(toggleCategoryCmd)
	rootCmd.AddCommand(categoryCmd)

	listCategoriesCmd.Flags().StringP("search", "s", "", "Filter by module name")

	addCategoryCmd.Flags().String("name", "", "Module name")
	addCategoryCmd.Flags().String("description", "", "Module description")
	addCategoryCmd.Flags().StringSlice("member", nil, "Initial member id (repeatable)")
	addCategoryCmd.Flags().Bool("inactive", false, "Create the module inactive")
	addCategoryCmd.MarkFlagRequired("name")
	addCategoryCmd.MarkFlagRequired("description")

	editCategoryCmd.Flags().String("name", "", "Module name")
	editCategoryCmd.Flags().String("description", "", "Module description")
}
