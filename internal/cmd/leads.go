package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leadpilot/leadpilot/internal/api"
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Track campaign leads",
	Long: `Track the leads your campaigns produce.

Examples:
  leadpilot leads list
  leadpilot leads set-status <id> hot`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// leadsListCmd lists leads
var leadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your leads",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := requireOnboarded(ctx); err != nil {
			return err
		}

		leads, err := rt.client.ListLeads(ctx)
		if err != nil {
			return apiFailure("failed to list leads", err)
		}

		out := cmd.OutOrStdout()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(leads)
		}

		if status, _ := cmd.Flags().GetString("status"); status != "" {
			filtered := leads[:0]
			for _, l := range leads {
				if l.Status == status {
					filtered = append(filtered, l)
				}
			}
			leads = filtered
		}

		if len(leads) == 0 {
			fmt.Fprintln(out, "No leads yet.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-24s  %-28s  %-6s  %s\n", "ID", "NAME", "EMAIL", "STATUS", "INTERACTION")
		for _, l := range leads {
			fmt.Fprintf(out, "%-36s  %-24s  %-28s  %-6s  %s\n",
				l.ID, l.Name, l.Email, l.Status, l.InteractionType)
		}
		return nil
	},
}

// leadsSetStatusCmd updates a lead's status
var leadsSetStatusCmd = &cobra.Command{
	Use:   "set-status <id> <status>",
	Short: "Update a lead's status",
	Long: `Update a lead's status to cold, warm, or hot.

Examples:
  leadpilot leads set-status 3f2a... warm`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := requireOnboarded(ctx); err != nil {
			return err
		}

		id, status := args[0], args[1]
		switch status {
		case api.LeadStatusCold, api.LeadStatusWarm, api.LeadStatusHot:
		default:
			return fmt.Errorf("status must be one of: %s", strings.Join([]string{
				api.LeadStatusCold, api.LeadStatusWarm, api.LeadStatusHot,
			}, ", "))
		}

		// The platform confirms with a message only; report the values we sent.
		if err := rt.client.UpdateLeadStatus(ctx, id, status); err != nil {
			return apiFailure("failed to update lead", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Lead %s is now %s.\n", id, status)
		return nil
	},
}

func init() {
	leadsCmd.AddCommand(leadsListCmd)
	leadsCmd.AddCommand(leadsSetStatusCmd)

	leadsListCmd.Flags().Bool("json", false, "Output as JSON")
	leadsListCmd.Flags().String("status", "", "Only show leads with this status (cold, warm, hot)")

	rootCmd.AddCommand(leadsCmd)
}
