package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/leadpilot/leadpilot/internal/api"
)

var onboardingCmd = &cobra.Command{
	Use:   "onboarding",
	Short: "Complete your business profile",
	Long: `Complete the one-time business profile onboarding.

Campaign generation is tailored to your business; this wizard collects
the profile it works from: business type, industry, what you sell, who
you sell to, and your main campaign goal. All fields can be provided as
flags to skip the interactive wizard.

Examples:
  leadpilot onboarding
  leadpilot onboarding --business-type saas --industry fintech \
    --product "Expense tracking for freelancers" \
    --audience "Self-employed professionals in the EU" \
    --goal lead_generation`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := requireAuth(ctx); err != nil {
			return err
		}

		data := api.Onboarding{}
		data.BusinessType, _ = cmd.Flags().GetString("business-type")
		data.Industry, _ = cmd.Flags().GetString("industry")
		data.ProductService, _ = cmd.Flags().GetString("product")
		data.TargetAudience, _ = cmd.Flags().GetString("audience")
		data.CampaignGoal, _ = cmd.Flags().GetString("goal")

		if !onboardingComplete(data) {
			if err := runOnboardingForm(&data); err != nil {
				return err
			}
		}

		if err := rt.ctrl.CompleteOnboarding(ctx, data); err != nil {
			return fmt.Errorf("failed to save business profile: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Business profile saved.")
		fmt.Fprintln(cmd.OutOrStdout(), "Generate your first campaign with 'leadpilot campaigns generate'.")
		return nil
	},
}

func onboardingComplete(data api.Onboarding) bool {
	return data.BusinessType != "" &&
		data.Industry != "" &&
		data.ProductService != "" &&
		data.TargetAudience != "" &&
		data.CampaignGoal != ""
}

// runOnboardingForm collects any missing fields interactively.
func runOnboardingForm(data *api.Onboarding) error {
	required := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("this field is required")
		}
		return nil
	}

	var groups []*huh.Group

	if data.BusinessType == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title("What kind of business do you run?").
				Options(
					huh.NewOption("SaaS / Software", "saas"),
					huh.NewOption("E-commerce", "ecommerce"),
					huh.NewOption("Agency / Services", "agency"),
					huh.NewOption("Local business", "local"),
					huh.NewOption("Other", "other"),
				).
				Value(&data.BusinessType),
		))
	}

	if data.Industry == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Which industry are you in?").
				Description("e.g. fintech, health, education").
				Validate(required).
				Value(&data.Industry),
		))
	}

	if data.ProductService == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewText().
				Title("Describe your product or service").
				CharLimit(500).
				Validate(required).
				Value(&data.ProductService),
		))
	}

	if data.TargetAudience == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewText().
				Title("Who is your target audience?").
				CharLimit(500).
				Validate(required).
				Value(&data.TargetAudience),
		))
	}

	if data.CampaignGoal == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title("What is your main campaign goal?").
				Options(
					huh.NewOption("Generate new leads", "lead_generation"),
					huh.NewOption("Nurture existing leads", "lead_nurturing"),
					huh.NewOption("Grow brand awareness", "brand_awareness"),
					huh.NewOption("Drive direct sales", "sales"),
				).
				Value(&data.CampaignGoal),
		))
	}

	if len(groups) == 0 {
		return nil
	}

	return huh.NewForm(groups...).Run()
}

func init() {
	onboardingCmd.Flags().String("business-type", "", "Business type (saas, ecommerce, agency, local, other)")
	onboardingCmd.Flags().String("industry", "", "Industry")
	onboardingCmd.Flags().String("product", "", "Product or service description")
	onboardingCmd.Flags().String("audience", "", "Target audience description")
	onboardingCmd.Flags().String("goal", "", "Campaign goal (lead_generation, lead_nurturing, brand_awareness, sales)")

	rootCmd.AddCommand(onboardingCmd)
}
