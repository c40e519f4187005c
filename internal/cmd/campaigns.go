package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leadpilot/leadpilot/internal/api"
)

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "Manage marketing campaigns",
	Long: `Manage marketing campaigns: list, show, generate, send, and delete.

Campaign content is generated server-side from your business profile;
complete 'leadpilot onboarding' first.

Examples:
  leadpilot campaigns list
  leadpilot campaigns generate --type email --style persuasive
  leadpilot campaigns show <id>
  leadpilot campaigns send <id> --to a@example.com --to b@example.com
  leadpilot campaigns delete <id>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// campaignsListCmd lists campaigns
var campaignsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your campaigns",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := requireOnboarded(ctx); err != nil {
			return err
		}

		campaigns, err := rt.client.ListCampaigns(ctx)
		if err != nil {
			return apiFailure("failed to list campaigns", err)
		}

		out := cmd.OutOrStdout()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(campaigns)
		}

		if len(campaigns) == 0 {
			fmt.Fprintln(out, "No campaigns yet. Generate one with 'leadpilot campaigns generate'.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-14s  %-12s  %-10s  %s\n", "ID", "TYPE", "STYLE", "STATUS", "TITLE")
		for _, c := range campaigns {
			fmt.Fprintf(out, "%-36s  %-14s  %-12s  %-10s  %s\n",
				c.ID, c.CampaignType, c.Style, c.Status, c.Title)
		}
		return nil
	},
}

// campaignsShowCmd shows a single campaign with content
var campaignsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a campaign and its content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := requireOnboarded(ctx); err != nil {
			return err
		}

		campaign, err := rt.client.GetCampaign(ctx, args[0])
		if err != nil {
			return apiFailure("failed to load campaign", err)
		}

		out := cmd.OutOrStdout()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(campaign)
		}

		fmt.Fprintf(out, "Title:    %s\n", campaign.Title)
		fmt.Fprintf(out, "Type:     %s\n", campaign.CampaignType)
		fmt.Fprintf(out, "Style:    %s\n", campaign.Style)
		fmt.Fprintf(out, "Status:   %s\n", campaign.Status)
		fmt.Fprintf(out, "Created:  %s\n", campaign.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Fprintln(out)
		fmt.Fprintln(out, campaign.Content)
		return nil
	},
}

// campaignsGenerateCmd generates a new campaign
var campaignsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new campaign",
	Long: `Generate a new marketing campaign.

The platform writes the campaign from your business profile. Use --prompt
to steer the content beyond the profile.

Examples:
  leadpilot campaigns generate --type email
  leadpilot campaigns generate --type social_media --style casual
  leadpilot campaigns generate --type email --prompt "Focus on the spring discount"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := requireOnboarded(ctx); err != nil {
			return err
		}

		campaignType, _ := cmd.Flags().GetString("type")
		style, _ := cmd.Flags().GetString("style")
		prompt, _ := cmd.Flags().GetString("prompt")

		switch campaignType {
		case api.CampaignTypeEmail, api.CampaignTypeSocialMedia, api.CampaignTypeDirectMessage:
		default:
			return fmt.Errorf("--type must be one of: %s", strings.Join([]string{
				api.CampaignTypeEmail, api.CampaignTypeSocialMedia, api.CampaignTypeDirectMessage,
			}, ", "))
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Generating campaign...")

		campaign, err := rt.client.GenerateCampaign(ctx, api.GenerateCampaignRequest{
			CampaignType: campaignType,
			Style:        style,
			CustomPrompt: prompt,
		})
		if err != nil {
			return apiFailure("failed to generate campaign", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Generated %q (%s)\n", campaign.Title, campaign.ID)
		fmt.Fprintln(out)
		fmt.Fprintln(out, campaign.Content)
		return nil
	},
}

// campaignsSendCmd sends an email campaign
var campaignsSendCmd = &cobra.Command{
	Use:   "send <id>",
	Short: "Send an email campaign",
	Long: `Send an email campaign to the given recipients.

Examples:
  leadpilot campaigns send 3f2a... --to a@example.com --to b@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := requireOnboarded(ctx); err != nil {
			return err
		}

		recipients, _ := cmd.Flags().GetStringArray("to")
		if len(recipients) == 0 {
			return fmt.Errorf("at least one --to recipient is required")
		}

		if err := rt.client.SendEmailCampaign(ctx, args[0], recipients); err != nil {
			return apiFailure("failed to send campaign", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Campaign sent to %d recipient(s).\n", len(recipients))
		return nil
	},
}

// campaignsDeleteCmd deletes a campaign
var campaignsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a campaign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := requireOnboarded(ctx); err != nil {
			return err
		}

		if err := rt.client.DeleteCampaign(ctx, args[0]); err != nil {
			return apiFailure("failed to delete campaign", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Campaign deleted.")
		return nil
	},
}

func init() {
	campaignsCmd.AddCommand(campaignsListCmd)
	campaignsCmd.AddCommand(campaignsShowCmd)
	campaignsCmd.AddCommand(campaignsGenerateCmd)
	campaignsCmd.AddCommand(campaignsSendCmd)
	campaignsCmd.AddCommand(campaignsDeleteCmd)

	campaignsListCmd.Flags().Bool("json", false, "Output as JSON")
	campaignsShowCmd.Flags().Bool("json", false, "Output as JSON")

	campaignsGenerateCmd.Flags().String("type", api.CampaignTypeEmail, "Campaign type (email, social_media, direct_message)")
	campaignsGenerateCmd.Flags().String("style", api.CampaignStylePersuasive, "Writing style (persuasive, informative, casual)")
	campaignsGenerateCmd.Flags().String("prompt", "", "Extra instructions for the generator")

	campaignsSendCmd.Flags().StringArray("to", nil, "Recipient email (repeatable)")

	rootCmd.AddCommand(campaignsCmd)
}
