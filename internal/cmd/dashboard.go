package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leadpilot/leadpilot/internal/api"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show campaign and lead stats",
	Long: `Show the dashboard aggregates: campaign count, lead count, emails
sent, and the lead status breakdown.

Examples:
  leadpilot dashboard
  leadpilot dashboard --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := requireOnboarded(ctx); err != nil {
			return err
		}

		stats, err := rt.client.Dashboard(ctx)
		if err != nil {
			return apiFailure("failed to load dashboard", err)
		}

		out := cmd.OutOrStdout()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}

		fmt.Fprintf(out, "Campaigns:    %d\n", stats.CampaignsCount)
		fmt.Fprintf(out, "Leads:        %d\n", stats.LeadsCount)
		fmt.Fprintf(out, "Emails sent:  %d\n", stats.TotalSent)

		if len(stats.LeadsByStatus) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Leads by status:")
			for _, status := range []string{api.LeadStatusHot, api.LeadStatusWarm, api.LeadStatusCold} {
				if count, ok := stats.LeadsByStatus[status]; ok {
					fmt.Fprintf(out, "  %-5s %d\n", status, count)
				}
			}
		}
		return nil
	},
}

func init() {
	dashboardCmd.Flags().Bool("json", false, "Output as JSON")
	rootCmd.AddCommand(dashboardCmd)
}
