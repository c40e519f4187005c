package cmd

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/leadpilot/leadpilot/internal/api"
	"github.com/leadpilot/leadpilot/internal/errors"
	"github.com/leadpilot/leadpilot/internal/session"
)

// googleLoginTimeout bounds the wait for the browser round trip.
const googleLoginTimeout = 5 * time.Minute

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long: `Manage authentication with the LeadPilot platform.

The auth command provides subcommands for creating an account, signing in
(with a password or with Google), signing out, and checking the current
session.

Credentials are stored obfuscated under the data directory
(default ~/.leadpilot).

Examples:
  leadpilot auth register --email user@example.com --name "Ada"
  leadpilot auth login --email user@example.com
  leadpilot auth google
  leadpilot auth status
  leadpilot auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// authLoginCmd signs in with email and optional password
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to LeadPilot",
	Long: `Sign in to the LeadPilot platform.

The platform supports both password-based and email-only sign-in; omit
--password to use the email-only flow. On success the session token is
stored locally and subsequent commands run authenticated.

Examples:
  leadpilot auth login --email user@example.com
  leadpilot auth login --email user@example.com --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" {
			return fmt.Errorf("--email is required")
		}

		ctx := cmd.Context()
		rt.ctrl.Initialize(ctx, "")

		err := rt.ctrl.Login(ctx, api.Credentials{Email: email, Password: password})
		if err != nil {
			if api.IsUnauthorized(err) {
				return errors.New(errors.ErrCodeAuthInvalidCreds, "invalid credentials").
					WithSuggestion("Check the email and password and try again").
					WithSuggestion("Use 'leadpilot auth register' if you do not have an account yet")
			}
			return fmt.Errorf("login failed: %w", err)
		}

		snap := rt.ctrl.Snapshot()
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", snap.User.Email)
		if snap.NeedsOnboarding() {
			fmt.Fprintln(cmd.OutOrStdout(), "Run 'leadpilot onboarding' to complete your business profile.")
		}
		return nil
	},
}

// authRegisterCmd creates a new account
var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a LeadPilot account",
	Long: `Create a new LeadPilot account and sign in.

Examples:
  leadpilot auth register --email user@example.com --name "Ada Lovelace"
  leadpilot auth register --email user@example.com --name "Ada" --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")
		password, _ := cmd.Flags().GetString("password")

		if email == "" {
			return fmt.Errorf("--email is required")
		}

		ctx := cmd.Context()
		rt.ctrl.Initialize(ctx, "")

		err := rt.ctrl.Register(ctx, api.Credentials{Email: email, Name: name, Password: password})
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Account created. Signed in as %s\n", email)
		fmt.Fprintln(cmd.OutOrStdout(), "Run 'leadpilot onboarding' to complete your business profile.")
		return nil
	},
}

// authGoogleCmd runs the Google OAuth browser round trip
var authGoogleCmd = &cobra.Command{
	Use:   "google",
	Short: "Sign in with Google",
	Long: `Sign in to LeadPilot with a Google account.

This starts a temporary listener on the loopback interface, prints the
Google authorization URL, and waits for the browser to redirect back.
Open the URL, approve the sign-in, and the terminal session completes
on its own.

Examples:
  leadpilot auth google`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), googleLoginTimeout)
		defer cancel()

		listener, err := session.NewCallbackListener()
		if err != nil {
			return fmt.Errorf("failed to start sign-in listener: %w", err)
		}
		defer listener.Close()

		authURL, err := rt.client.GoogleLoginURL(ctx)
		if err != nil {
			return fmt.Errorf("failed to get authorization URL: %w", err)
		}
		authURL = withRedirectURI(authURL, listener.RedirectURL())

		fmt.Fprintln(cmd.OutOrStdout(), "Open this URL in your browser to sign in:")
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", authURL)
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), "Waiting for the sign-in to complete...")

		callbackURL, err := listener.Wait(ctx)
		if err != nil {
			return errors.Wrap(errors.ErrCodeAuthCallbackIncomplete,
				"sign-in was not completed in time", err).
				WithSuggestion("Run 'leadpilot auth google' again and finish the browser flow")
		}

		rt.ctrl.Initialize(ctx, callbackURL)

		snap := rt.ctrl.Snapshot()
		if !snap.Authenticated() {
			msg := "sign-in failed"
			if snap.LastError != "" {
				msg = snap.LastError
			}
			return errors.New(errors.ErrCodeAuthCallbackFailed, msg).
				WithSuggestion("Run 'leadpilot auth google' to try again")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", snap.User.Email)
		if snap.NeedsOnboarding() {
			fmt.Fprintln(cmd.OutOrStdout(), "Run 'leadpilot onboarding' to complete your business profile.")
		}
		return nil
	},
}

// withRedirectURI adds the loopback redirect to the provider's
// authorization URL, escaping it and keeping any query the URL already has.
func withRedirectURI(authURL, redirect string) string {
	u, err := url.Parse(authURL)
	if err != nil {
		return authURL
	}
	q := u.Query()
	q.Set("redirect_uri", redirect)
	u.RawQuery = q.Encode()
	return u.String()
}

// authLogoutCmd signs out and clears stored credentials
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove credentials",
	Long: `Sign out of LeadPilot.

Local credentials are removed immediately; the server-side token
invalidation happens in the background and never blocks the command.

Examples:
  leadpilot auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if rt.creds.Token() == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
			return nil
		}

		if user := rt.creds.User(); user != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Signing out %s\n", user.Email)
		}

		rt.ctrl.Logout(cmd.Context())

		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}

// authStatusCmd shows the resolved session state
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	Long: `Show the current session state.

The stored token is verified against the platform; a token the server no
longer accepts is cleared and reported as signed out.

Examples:
  leadpilot auth status`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt.ctrl.Initialize(ctx, "")

		snap := rt.ctrl.Snapshot()
		out := cmd.OutOrStdout()

		switch {
		case snap.Authenticated():
			fmt.Fprintf(out, "Signed in as:  %s\n", snap.User.Email)
			if snap.User.Name != "" {
				fmt.Fprintf(out, "Name:          %s\n", snap.User.Name)
			}
			onboarding := "complete"
			if snap.NeedsOnboarding() {
				onboarding = "incomplete (run 'leadpilot onboarding')"
			}
			fmt.Fprintf(out, "Onboarding:    %s\n", onboarding)
			fmt.Fprintf(out, "API:           %s\n", rt.client.BaseURL())
		case snap.LastError != "":
			fmt.Fprintf(out, "Not signed in: %s\n", snap.LastError)
		default:
			fmt.Fprintln(out, "Not signed in.")
			fmt.Fprintln(out, "Use 'leadpilot auth login' or 'leadpilot auth google' to sign in.")
		}
		return nil
	},
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authGoogleCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)

	authLoginCmd.Flags().String("email", "", "Email address (required)")
	authLoginCmd.Flags().String("password", "", "Password (optional, omit for email-only sign-in)")

	authRegisterCmd.Flags().String("email", "", "Email address (required)")
	authRegisterCmd.Flags().String("name", "", "Display name")
	authRegisterCmd.Flags().String("password", "", "Password (optional)")

	rootCmd.AddCommand(authCmd)
}
