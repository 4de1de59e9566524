package command

// auth.go handles the session commands: signin, whoami, and logout.

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/anas-cht/notifications-project/internal/api"
	"github.com/anas-cht/notifications-project/internal/console"
	"github.com/anas-cht/notifications-project/internal/session"
)

// signinCmd represents the signin command.
var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in to the notification platform",
	RunE: func(cmd *cobra.Command, args []string) error {
		var form console.SignInForm
		form.Email, _ = cmd.Flags().GetString("email")
		form.Password, _ = cmd.Flags().GetString("password")
		if errs := form.Validate(); !errs.OK() {
			return errs
		}

		app, err := newApp()
		if err != nil {
			return err
		}

		response, err := app.client.SignIn(cmd.Context(), api.SignInRequest{
			Email:    form.Email,
			Password: form.Password,
		})
		if err != nil {
			return fmt.Errorf("sign in failed: %w", err)
		}

		admin := session.Admin{
			ID:       response.AdminDTO.ID,
			FullName: response.AdminDTO.FullName,
			Email:    response.AdminDTO.Email,
			Phone:    response.AdminDTO.PhoneNumber,
		}
		if err := app.store.Login(admin, response.Token); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}

		fmt.Printf("✓ Signed in as %s <%s>\n", admin.FullName, admin.Email)
		return nil
	},
}

// whoamiCmd represents the whoami command.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in administrator",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		admin, err := app.requireSession()
		if err != nil {
			return err
		}

		fmt.Printf("ID: %s\n", admin.ID)
		fmt.Printf("Name: %s\n", admin.FullName)
		fmt.Printf("Email: %s\n", admin.Email)
		if admin.Phone != "" {
			fmt.Printf("Phone: %s\n", admin.Phone)
		}

		// The expiry claim is informational only, the token is opaque to
		// the console and verified server-side.
		if token, err := app.store.Token(); err == nil {
			claims := jwt.MapClaims{}
			if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
				if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
					fmt.Printf("Token expires: %s\n", exp.Time.Format(time.RFC1123))
				}
			}
		}
		return nil
	},
}

// logoutCmd represents the logout command.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.store.Logout(); err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
		fmt.Println("✓ Signed out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(signinCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(logoutCmd)

	signinCmd.Flags().StringP("email", "e", "", "Administrator email")
	signinCmd.Flags().StringP("password", "p", "", "Administrator password")
	signinCmd.MarkFlagRequired("email")
	signinCmd.MarkFlagRequired("password")
}
