package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/leadpilot/leadpilot/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit client configuration",
	Long: `Inspect and edit the client configuration.

Configuration is resolved from built-in defaults, the config file
(~/.leadpilot/config.yaml), and LEADPILOT_* environment variables,
in that order.

Examples:
  leadpilot config show
  leadpilot config set api_url https://staging.leadpilot.io
  leadpilot config set log_level debug`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// configShowCmd prints the resolved configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "api_url:          %s\n", rt.cfg.APIURL)
		fmt.Fprintf(out, "request_timeout:  %s\n", rt.cfg.RequestTimeout)
		fmt.Fprintf(out, "data_dir:         %s\n", rt.cfg.DataDir)
		fmt.Fprintf(out, "log_level:        %s\n", rt.cfg.LogLevel)
		fmt.Fprintf(out, "log_format:       %s\n", rt.cfg.LogFormat)
		return nil
	},
}

// configSetCmd writes one setting to the config file
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := strings.ToLower(args[0]), args[1]

		path := flagConfig
		if path == "" {
			path = config.Path()
		}

		// Re-read the file alone so environment and flag overrides are not
		// baked into it.
		cfg, err := config.LoadFrom(path)
		if err != nil {
			return err
		}

		switch key {
		case "api_url":
			cfg.APIURL = value
		case "request_timeout":
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration %q: %w", value, err)
			}
			cfg.RequestTimeout = d
		case "data_dir":
			cfg.DataDir = value
		case "log_level":
			cfg.LogLevel = value
		case "log_format":
			cfg.LogFormat = value
		default:
			return fmt.Errorf("unknown config key %q (valid: api_url, request_timeout, data_dir, log_level, log_format)", key)
		}

		if err := config.Save(cfg, path); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)

	rootCmd.AddCommand(configCmd)
}
