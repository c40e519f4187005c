package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leadpilot/leadpilot/internal/api"
)

// dashboardView shows the campaign and lead aggregates.
type dashboardView struct {
	ctx    context.Context
	client *api.Client

	stats   *api.DashboardStats
	loading bool
	errMsg  string
}

func newDashboardView(ctx context.Context, client *api.Client) *dashboardView {
	return &dashboardView{
		ctx:     ctx,
		client:  client,
		loading: true,
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.fetch()
}

func (v *dashboardView) fetch() tea.Cmd {
	return func() tea.Msg {
		stats, err := v.client.Dashboard(v.ctx)
		return statsMsg{stats: stats, err: err}
	}
}

func (v *dashboardView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case statsMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = userFacingAuthError(msg.err)
			return v, nil
		}
		v.errMsg = ""
		v.stats = msg.stats

	case tea.KeyMsg:
		if msg.String() == "r" {
			v.loading = true
			v.errMsg = ""
			return v, v.fetch()
		}
	}

	return v, nil
}

func (v *dashboardView) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Dashboard") + "\n\n")

	switch {
	case v.loading:
		b.WriteString("  " + spinnerHint.Render("Loading stats…") + "\n")
	case v.errMsg != "":
		b.WriteString("  " + errorStyle.Render(v.errMsg) + "\n")
		b.WriteString("  " + labelStyle.Render("Press r to retry.") + "\n")
	case v.stats != nil:
		b.WriteString(v.renderCards() + "\n\n")
		b.WriteString(v.renderLeadBreakdown())
		b.WriteString("\n  " + labelStyle.Render("Press r to refresh.") + "\n")
	}

	return b.String()
}

func (v *dashboardView) renderCards() string {
	card := func(label string, value int) string {
		return cardStyle.Render(fmt.Sprintf("%s\n%s",
			labelStyle.Render(label),
			valueStyle.Render(fmt.Sprintf("%d", value)),
		))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Campaigns", v.stats.CampaignsCount),
		card("Leads", v.stats.LeadsCount),
		card("Emails sent", v.stats.TotalSent),
	)
}

func (v *dashboardView) renderLeadBreakdown() string {
	if len(v.stats.LeadsByStatus) == 0 {
		return "  " + labelStyle.Render("No leads yet.") + "\n"
	}

	var b strings.Builder
	b.WriteString("  " + labelStyle.Render("Leads by status") + "\n")
	for _, status := range []string{api.LeadStatusHot, api.LeadStatusWarm, api.LeadStatusCold} {
		count, ok := v.stats.LeadsByStatus[status]
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("    %s %d\n", leadStatusStyle(status).Render(status), count))
	}
	return b.String()
}
