package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCmd(app *App) *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.SignUp(app.Session, email, password, name); err != nil {
				return err
			}
			if err := app.Tokens.Save(app.Session.Token()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s!\n", app.Session.User().DisplayName)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (6 to 72 bytes)")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd(app *App) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.SignIn(app.Session, email, password); err != nil {
				return err
			}
			if err := app.Tokens.Save(app.Session.Token()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", app.Session.User().Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.RestoreSession(); err != nil {
				return err
			}
			if err := app.Auth.SignOut(app.Session); err != nil {
				return err
			}
			if err := app.Tokens.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.userID(); err != nil {
				return err
			}
			u := app.Session.User()
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", u.DisplayName, u.Email)
			return nil
		},
	}
}
