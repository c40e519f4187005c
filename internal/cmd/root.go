// Package cmd implements the leadpilot command-line interface.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leadpilot/leadpilot/internal/api"
	"github.com/leadpilot/leadpilot/internal/config"
	"github.com/leadpilot/leadpilot/internal/errors"
	"github.com/leadpilot/leadpilot/internal/log"
	"github.com/leadpilot/leadpilot/internal/session"
	"github.com/leadpilot/leadpilot/internal/store"
)

var (
	flagConfig   string
	flagAPIURL   string
	flagDataDir  string
	flagLogLevel string
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "leadpilot",
	Short: "AI-powered marketing campaigns from your terminal",
	Long: `leadpilot is the terminal client for the LeadPilot platform.
It generates marketing campaigns, tracks leads, and shows campaign
performance without leaving your shell.

Sign in with 'leadpilot auth login' or 'leadpilot auth google', complete
the one-time onboarding, then generate campaigns and work your leads.
Run 'leadpilot ui' for the full-screen interactive mode.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default is $HOME/.leadpilot/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "LeadPilot API base URL")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "directory for credentials and client state")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// runtime is the wired-up application: config, logger, credential store,
// API client, and session controller. Built once per invocation.
type runtime struct {
	cfg    config.Config
	logger *log.Logger
	creds  *store.Store
	client *api.Client
	ctrl   *session.Controller
}

var rt *runtime

// setup builds the runtime from config file, environment, and flags.
func setup(cmd *cobra.Command) error {
	var cfg config.Config
	var err error

	if flagConfig != "" {
		cfg, err = config.LoadFrom(flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	// Flags win over file and environment.
	if flagAPIURL != "" {
		cfg.APIURL = flagAPIURL
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagVerbose {
		cfg.LogLevel = "debug"
	}

	logger := log.New(log.Config{
		Level:  log.ParseLevel(cfg.LogLevel),
		Format: log.ParseFormat(cfg.LogFormat),
		Output: cmd.ErrOrStderr(),
	})
	log.SetDefaultLogger(logger)

	creds := store.Open(cfg.DataDir, logger)
	client := api.NewClient(cfg.APIURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithTokenSource(creds),
		api.WithLogger(logger),
	)

	rt = &runtime{
		cfg:    cfg,
		logger: logger,
		creds:  creds,
		client: client,
		ctrl:   session.NewController(client, creds, logger),
	}

	return nil
}

// requireAuth resolves the session and fails unless it ends Authenticated.
func requireAuth(ctx context.Context) error {
	hadToken := rt.creds.Token() != ""
	rt.ctrl.Initialize(ctx, "")

	snap := rt.ctrl.Snapshot()
	if !snap.Authenticated() {
		if snap.LastError != "" {
			fmt.Fprintln(rootCmd.ErrOrStderr(), snap.LastError)
			return errors.NewNotLoggedInError()
		}
		// A stored token the platform silently rejected was a session that
		// has since expired server-side.
		if hadToken {
			return errors.NewSessionExpiredError()
		}
		return errors.NewNotLoggedInError()
	}
	return nil
}

// requireOnboarded is requireAuth plus a completed business profile.
func requireOnboarded(ctx context.Context) error {
	if err := requireAuth(ctx); err != nil {
		return err
	}
	if rt.ctrl.Snapshot().NeedsOnboarding() {
		return errors.NewOnboardingRequiredError()
	}
	return nil
}

// apiFailure maps a failed platform call onto the coded errors that carry
// suggestions and drive the exit code; anything without a better mapping is
// wrapped with the action that failed.
func apiFailure(action string, err error) error {
	apiErr, ok := api.AsError(err)
	if !ok {
		return fmt.Errorf("%s: %w", action, err)
	}

	switch apiErr.Kind {
	case api.KindNetwork:
		return errors.NewAPIUnreachableError(rt.client.BaseURL(), err)
	case api.KindRateLimited:
		return errors.NewRateLimitedError("")
	case api.KindUnauthorized:
		return errors.NewSessionExpiredError()
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}
