package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/leadpilot/leadpilot/internal/api"
)

// campaignsView lists campaigns and hosts the generate form.
type campaignsView struct {
	ctx    context.Context
	client *api.Client

	table     table.Model
	campaigns []api.Campaign

	form    *huh.Form
	genReq  api.GenerateCampaignRequest
	working bool

	loading bool
	errMsg  string
	notice  string
}

func newCampaignsView(ctx context.Context, client *api.Client) *campaignsView {
	columns := []table.Column{
		{Title: "Title", Width: 32},
		{Title: "Type", Width: 14},
		{Title: "Style", Width: 12},
		{Title: "Status", Width: 10},
		{Title: "Created", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return &campaignsView{
		ctx:     ctx,
		client:  client,
		table:   t,
		loading: true,
	}
}

// generating reports whether the generate form is capturing input, so the
// app knows not to steal number keys for navigation.
func (v *campaignsView) generating() bool {
	return v.form != nil
}

func (v *campaignsView) Init() tea.Cmd {
	return v.fetch()
}

func (v *campaignsView) fetch() tea.Cmd {
	return func() tea.Msg {
		campaigns, err := v.client.ListCampaigns(v.ctx)
		return campaignsMsg{campaigns: campaigns, err: err}
	}
}

func (v *campaignsView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case campaignsMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = userFacingAuthError(msg.err)
			return v, nil
		}
		v.errMsg = ""
		v.campaigns = msg.campaigns
		v.table.SetRows(campaignRows(msg.campaigns))
		return v, nil

	case campaignGeneratedMsg:
		v.working = false
		if msg.err != nil {
			v.errMsg = userFacingAuthError(msg.err)
			return v, nil
		}
		v.errMsg = ""
		v.notice = fmt.Sprintf("Generated %q", msg.campaign.Title)
		v.loading = true
		return v, v.fetch()

	case campaignDeletedMsg:
		v.working = false
		if msg.err != nil {
			v.errMsg = userFacingAuthError(msg.err)
			return v, nil
		}
		v.errMsg = ""
		v.notice = "Campaign deleted"
		v.loading = true
		return v, v.fetch()
	}

	if v.form != nil {
		return v.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && !v.working {
		switch keyMsg.String() {
		case "g":
			v.genReq = api.GenerateCampaignRequest{}
			v.form = v.buildGenerateForm()
			v.notice = ""
			return v, v.form.Init()
		case "d":
			if c := v.selected(); c != nil {
				v.working = true
				v.notice = ""
				id := c.ID
				return v, func() tea.Msg {
					return campaignDeletedMsg{id: id, err: v.client.DeleteCampaign(v.ctx, id)}
				}
			}
		case "r":
			v.loading = true
			v.notice = ""
			return v, v.fetch()
		}
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

func (v *campaignsView) updateForm(msg tea.Msg) (view, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		v.form = nil
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
		if v.form.State == huh.StateCompleted {
			req := v.genReq
			v.form = nil
			v.working = true
			return v, func() tea.Msg {
				campaign, err := v.client.GenerateCampaign(v.ctx, req)
				return campaignGeneratedMsg{campaign: campaign, err: err}
			}
		}
	}

	return v, cmd
}

func (v *campaignsView) buildGenerateForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("campaign_type").
				Title("Campaign type").
				Options(
					huh.NewOption("Email", api.CampaignTypeEmail),
					huh.NewOption("Social media", api.CampaignTypeSocialMedia),
					huh.NewOption("Direct message", api.CampaignTypeDirectMessage),
				).
				Value(&v.genReq.CampaignType),

			huh.NewSelect[string]().
				Key("style").
				Title("Writing style").
				Options(
					huh.NewOption("Persuasive", api.CampaignStylePersuasive),
					huh.NewOption("Informative", api.CampaignStyleInformative),
					huh.NewOption("Casual", api.CampaignStyleCasual),
				).
				Value(&v.genReq.Style),

			huh.NewText().
				Key("custom_prompt").
				Title("Extra instructions (optional)").
				CharLimit(500).
				Value(&v.genReq.CustomPrompt),
		),
	)
}

func (v *campaignsView) selected() *api.Campaign {
	idx := v.table.Cursor()
	if idx < 0 || idx >= len(v.campaigns) {
		return nil
	}
	return &v.campaigns[idx]
}

func campaignRows(campaigns []api.Campaign) []table.Row {
	rows := make([]table.Row, 0, len(campaigns))
	for _, c := range campaigns {
		rows = append(rows, table.Row{
			c.Title,
			c.CampaignType,
			c.Style,
			c.Status,
			c.CreatedAt.Format("2006-01-02"),
		})
	}
	return rows
}

func (v *campaignsView) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Campaigns") + "\n\n")

	if v.errMsg != "" {
		b.WriteString("  " + errorStyle.Render(v.errMsg) + "\n\n")
	}
	if v.notice != "" {
		b.WriteString("  " + successStyle.Render(v.notice) + "\n\n")
	}

	switch {
	case v.form != nil:
		b.WriteString(v.form.View())
		b.WriteString("\n  " + labelStyle.Render("esc to cancel") + "\n")
	case v.working:
		b.WriteString("  " + spinnerHint.Render("Working…") + "\n")
	case v.loading:
		b.WriteString("  " + spinnerHint.Render("Loading campaigns…") + "\n")
	case len(v.campaigns) == 0:
		b.WriteString("  " + labelStyle.Render("No campaigns yet. Press g to generate one.") + "\n")
	default:
		b.WriteString(v.table.View() + "\n")
		b.WriteString("  " + labelStyle.Render("g generate • d delete • r refresh") + "\n")
	}

	return b.String()
}
