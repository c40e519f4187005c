package tui

import (
	"github.com/leadpilot/leadpilot/internal/api"
	"github.com/leadpilot/leadpilot/internal/session"
)

// sessionInitializedMsg signals that Controller.Initialize returned.
type sessionInitializedMsg struct{}

// snapshotMsg carries a session state change into the program.
type snapshotMsg struct {
	snap session.Snapshot
}

// authDoneMsg carries the outcome of a login or register attempt.
type authDoneMsg struct {
	err error
}

// onboardingDoneMsg carries the outcome of the onboarding submission.
type onboardingDoneMsg struct {
	err error
}

// statsMsg carries the dashboard aggregates.
type statsMsg struct {
	stats *api.DashboardStats
	err   error
}

// campaignsMsg carries the campaign list.
type campaignsMsg struct {
	campaigns []api.Campaign
	err       error
}

// campaignGeneratedMsg carries a freshly generated campaign.
type campaignGeneratedMsg struct {
	campaign *api.Campaign
	err      error
}

// campaignDeletedMsg carries the outcome of a delete.
type campaignDeletedMsg struct {
	id  string
	err error
}

// leadsMsg carries the lead list.
type leadsMsg struct {
	leads []api.Lead
	err   error
}

// leadUpdatedMsg carries the outcome of a status change.
type leadUpdatedMsg struct {
	id     string
	status string
	err    error
}
