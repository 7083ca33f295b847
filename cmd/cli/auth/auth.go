package auth

import (
	"fmt"
	"net/http"

	"github.com/crucial707/fintrack/cmd/cli/client"
	"github.com/crucial707/fintrack/cmd/cli/config"
	"github.com/crucial707/fintrack/cmd/cli/output"
	"github.com/crucial707/fintrack/cmd/cli/root"
	"github.com/spf13/cobra"
)

// InitAuth registers signup, login, logout and me on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(signupCmd(), loginCmd(), logoutCmd(), meCmd())
}

type user struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

type authResult struct {
	User  user   `json:"user"`
	Token string `json:"token"`
}

// ==========================
// SIGNUP
// ==========================
func signupCmd() *cobra.Command {
	var fullName, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and store its token",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordOrPrompt(password, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			payload := map[string]string{"fullName": fullName, "email": email, "password": pw}
			return authenticate("/api/auth/signup", payload)
		},
	}

	cmd.Flags().StringVar(&fullName, "name", "", "full name (3-30 characters)")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password, at least 6 characters (prompted if omitted)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// ==========================
// LOGIN
// ==========================
func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the token locally",
		Long:  "Authenticate with the finance tracker API and store a token for subsequent CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordOrPrompt(password, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return authenticate("/api/auth/login", map[string]string{"email": email, "password": pw})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted if omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func authenticate(path string, payload map[string]string) error {
	c, err := client.New(false)
	if err != nil {
		return err
	}
	var out authResult
	msg, err := c.Do(http.MethodPost, path, payload, &out)
	if err != nil {
		return err
	}
	if out.Token == "" {
		return fmt.Errorf("no token returned")
	}
	if err := config.SaveToken(out.Token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	fmt.Printf("%s. Signed in as %s.\n", msg, out.User.Username)
	return nil
}

// ==========================
// LOGOUT
// ==========================
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the locally saved token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ClearToken(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

// ==========================
// ME
// ==========================
func meCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.New(true)
			if err != nil {
				return err
			}
			var u user
			if _, err := c.Do(http.MethodGet, "/api/auth/me", nil, &u); err != nil {
				return err
			}
			if root.JSONOutput() {
				return output.RenderJSON(u)
			}
			output.RenderTable([]string{"ID", "Username", "Email", "Full name"},
				[][]interface{}{{u.ID, u.Username, u.Email, u.FullName}})
			return nil
		},
	}
}
