package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leadpilot/leadpilot/internal/errors"
)

var healthCmd = &cobra.Command{
	Use:    "health",
	Short:  "Check platform reachability",
	Hidden: true,
	Long: `Check that the LeadPilot platform is reachable.

This hits the unauthenticated health endpoint and reports the result.

Examples:
  leadpilot health
  leadpilot health --api-url https://staging.leadpilot.io`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := rt.client.Health(cmd.Context()); err != nil {
			return errors.NewAPIUnreachableError(rt.client.BaseURL(), err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s is reachable.\n", rt.client.BaseURL())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
