package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/leadpilot/leadpilot/internal/api"
	"github.com/leadpilot/leadpilot/internal/session"
)

// onboardingView is the multi-step business-profile wizard shown after the
// first sign-in.
type onboardingView struct {
	ctx  context.Context
	ctrl *session.Controller

	form *huh.Form
	data api.Onboarding

	submitting bool
	errMsg     string
}

func newOnboardingView(ctx context.Context, ctrl *session.Controller) *onboardingView {
	v := &onboardingView{
		ctx:  ctx,
		ctrl: ctrl,
	}
	v.form = v.buildForm()
	return v
}

func (v *onboardingView) buildForm() *huh.Form {
	required := func(field string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", field)
			}
			return nil
		}
	}

	described := func(field string) func(string) error {
		return func(s string) error {
			if err := required(field)(s); err != nil {
				return err
			}
			if len(strings.TrimSpace(s)) < 10 {
				return fmt.Errorf("please provide at least 10 characters")
			}
			return nil
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("business_type").
				Title("What kind of business do you run?").
				Options(
					huh.NewOption("SaaS / Software", "saas"),
					huh.NewOption("E-commerce", "ecommerce"),
					huh.NewOption("Agency / Services", "agency"),
					huh.NewOption("Local business", "local"),
					huh.NewOption("Other", "other"),
				).
				Value(&v.data.BusinessType),
		).Title("Step 1 of 5"),

		huh.NewGroup(
			huh.NewInput().
				Key("industry").
				Title("Which industry are you in?").
				Description("e.g. fintech, health, education").
				Validate(required("industry")).
				Value(&v.data.Industry),
		).Title("Step 2 of 5"),

		huh.NewGroup(
			huh.NewText().
				Key("product_service").
				Title("Describe your product or service").
				CharLimit(500).
				Validate(described("product description")).
				Value(&v.data.ProductService),
		).Title("Step 3 of 5"),

		huh.NewGroup(
			huh.NewText().
				Key("target_audience").
				Title("Who is your target audience?").
				CharLimit(500).
				Validate(described("target audience")).
				Value(&v.data.TargetAudience),
		).Title("Step 4 of 5"),

		huh.NewGroup(
			huh.NewSelect[string]().
				Key("campaign_goal").
				Title("What is your main campaign goal?").
				Options(
					huh.NewOption("Generate new leads", "lead_generation"),
					huh.NewOption("Nurture existing leads", "lead_nurturing"),
					huh.NewOption("Grow brand awareness", "brand_awareness"),
					huh.NewOption("Drive direct sales", "sales"),
				).
				Value(&v.data.CampaignGoal),
		).Title("Step 5 of 5"),
	)
}

func (v *onboardingView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *onboardingView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case onboardingDoneMsg:
		v.submitting = false
		if msg.err != nil {
			v.errMsg = userFacingAuthError(msg.err)
			v.form = v.buildForm()
			return v, v.form.Init()
		}
		// Success updates the session; the guard moves to the dashboard.
		return v, nil
	}

	if v.submitting {
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
		if v.form.State == huh.StateCompleted {
			v.submitting = true
			v.errMsg = ""
			data := v.data
			return v, func() tea.Msg {
				return onboardingDoneMsg{err: v.ctrl.CompleteOnboarding(v.ctx, data)}
			}
		}
	}

	return v, cmd
}

func (v *onboardingView) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Set up your business profile") + "\n\n")

	if v.errMsg != "" {
		b.WriteString("  " + errorStyle.Render(v.errMsg) + "\n\n")
	}

	if v.submitting {
		b.WriteString("  " + spinnerHint.Render("Saving your profile…") + "\n")
		return b.String()
	}

	b.WriteString(v.form.View())
	return b.String()
}
