package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/leadpilot/leadpilot/internal/api"
)

// leadsView lists leads and lets the user cycle a lead's status.
type leadsView struct {
	ctx    context.Context
	client *api.Client

	table table.Model
	leads []api.Lead

	loading bool
	working bool
	errMsg  string
}

func newLeadsView(ctx context.Context, client *api.Client) *leadsView {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Email", Width: 28},
		{Title: "Interaction", Width: 14},
		{Title: "Status", Width: 8},
		{Title: "Created", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(14),
	)

	return &leadsView{
		ctx:     ctx,
		client:  client,
		table:   t,
		loading: true,
	}
}

func (v *leadsView) Init() tea.Cmd {
	return v.fetch()
}

func (v *leadsView) fetch() tea.Cmd {
	return func() tea.Msg {
		leads, err := v.client.ListLeads(v.ctx)
		return leadsMsg{leads: leads, err: err}
	}
}

func (v *leadsView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case leadsMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = userFacingAuthError(msg.err)
			return v, nil
		}
		v.errMsg = ""
		v.leads = msg.leads
		v.table.SetRows(leadRows(msg.leads))
		return v, nil

	case leadUpdatedMsg:
		v.working = false
		if msg.err != nil {
			v.errMsg = userFacingAuthError(msg.err)
			return v, nil
		}
		v.errMsg = ""
		// The status route confirms without returning the record; patch the
		// local copy with the status we submitted.
		for i := range v.leads {
			if v.leads[i].ID == msg.id {
				v.leads[i].Status = msg.status
				break
			}
		}
		v.table.SetRows(leadRows(v.leads))
		return v, nil

	case tea.KeyMsg:
		if v.working {
			return v, nil
		}
		switch msg.String() {
		case "s":
			if lead := v.selected(); lead != nil {
				v.working = true
				id, next := lead.ID, nextLeadStatus(lead.Status)
				return v, func() tea.Msg {
					err := v.client.UpdateLeadStatus(v.ctx, id, next)
					return leadUpdatedMsg{id: id, status: next, err: err}
				}
			}
		case "r":
			v.loading = true
			return v, v.fetch()
		}
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

func (v *leadsView) selected() *api.Lead {
	idx := v.table.Cursor()
	if idx < 0 || idx >= len(v.leads) {
		return nil
	}
	return &v.leads[idx]
}

// nextLeadStatus cycles cold → warm → hot → cold.
func nextLeadStatus(status string) string {
	switch status {
	case api.LeadStatusCold:
		return api.LeadStatusWarm
	case api.LeadStatusWarm:
		return api.LeadStatusHot
	default:
		return api.LeadStatusCold
	}
}

func leadRows(leads []api.Lead) []table.Row {
	rows := make([]table.Row, 0, len(leads))
	for _, l := range leads {
		rows = append(rows, table.Row{
			l.Name,
			l.Email,
			l.InteractionType,
			l.Status,
			l.CreatedAt.Format("2006-01-02"),
		})
	}
	return rows
}

func (v *leadsView) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Leads") + "\n\n")

	if v.errMsg != "" {
		b.WriteString("  " + errorStyle.Render(v.errMsg) + "\n\n")
	}

	switch {
	case v.loading:
		b.WriteString("  " + spinnerHint.Render("Loading leads…") + "\n")
	case len(v.leads) == 0:
		b.WriteString("  " + labelStyle.Render("No leads yet.") + "\n")
	default:
		b.WriteString(v.table.View() + "\n")
		b.WriteString("  " + labelStyle.Render("s cycle status • r refresh") + "\n")
	}

	return b.String()
}
