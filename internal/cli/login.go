package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var username, password string
	var google bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the backend and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if google {
				// The OAuth flow finishes in a browser; we only print the
				// entry URL and remember where to land afterwards.
				_ = e.session.SetRedirectPath("/")
				fmt.Println("Open this URL in a browser to sign in with Google:")
				fmt.Println(e.client.GoogleLoginURL("/"))
				return nil
			}

			reader := bufio.NewReader(os.Stdin)
			if username == "" {
				fmt.Print("Username: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				username = strings.TrimSpace(line)
			}
			if password == "" {
				fmt.Print("Password: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return err
				}
				password = strings.TrimSpace(line)
			}

			resp, err := e.client.Login(ctx, username, password)
			if err != nil {
				return err
			}
			user := resp.User
			if user == "" {
				user = username
			}
			if err := e.session.Login(user, resp.Token); err != nil {
				return err
			}

			// Best effort: backends without CSRF protection simply 404 here.
			if info, err := e.client.FetchCSRF(ctx); err == nil && info.HeaderName != "" {
				_ = e.session.SetCSRF(info.HeaderName, info.Token)
			}

			color.Green("Logged in as %s", user)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted if omitted)")
	cmd.Flags().BoolVar(&google, "google", false, "print the Google OAuth login URL instead")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv()
			if err != nil {
				return err
			}
			if err := e.session.Logout(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user, verified against the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEnv()
			if err != nil {
				return err
			}
			username, err := e.client.Whoami(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(username)
			return nil
		},
	}
}
