// Package tui is the interactive terminal application: login, onboarding
// wizard, dashboard, campaigns, and leads, in one bubbletea program.
//
// View selection is driven exclusively by the route guard: the app asks for
// a view, the guard decides what actually renders. No view ever forces
// navigation as a side effect of rendering.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/leadpilot/leadpilot/internal/api"
	"github.com/leadpilot/leadpilot/internal/guard"
	"github.com/leadpilot/leadpilot/internal/session"
)

// keyMap defines the global keyboard shortcuts
type keyMap struct {
	Dashboard key.Binding
	Campaigns key.Binding
	Leads     key.Binding
	Logout    key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Dashboard: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "dashboard"),
	),
	Campaigns: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "campaigns"),
	),
	Leads: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "leads"),
	),
	Logout: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "logout"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// view is a sub-model rendering one route.
type view interface {
	Init() tea.Cmd
	Update(tea.Msg) (view, tea.Cmd)
	View() string
}

// App is the root model.
type App struct {
	ctx    context.Context
	ctrl   *session.Controller
	client *api.Client

	snap      session.Snapshot
	requested guard.RouteName
	active    guard.RouteName
	current   view

	snapshots   chan session.Snapshot
	unsubscribe func()

	width    int
	height   int
	quitting bool
}

// NewApp creates the root model. The controller must not be initialized
// yet; the app drives Initialize itself so the loading view is visible
// while the session resolves.
func NewApp(ctx context.Context, ctrl *session.Controller, client *api.Client) *App {
	app := &App{
		ctx:       ctx,
		ctrl:      ctrl,
		client:    client,
		snap:      ctrl.Snapshot(),
		requested: guard.RouteDashboard,
		snapshots: make(chan session.Snapshot, 8),
	}

	app.unsubscribe = ctrl.Subscribe(func(snap session.Snapshot) {
		select {
		case app.snapshots <- snap:
		default:
		}
	})

	return app
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.initializeSession(),
		a.waitForSnapshot(),
	)
}

// initializeSession resolves the session off the UI loop.
func (a *App) initializeSession() tea.Cmd {
	return func() tea.Msg {
		a.ctrl.Initialize(a.ctx, "")
		return sessionInitializedMsg{}
	}
}

// waitForSnapshot forwards controller state changes into the program.
func (a *App) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{snap: <-a.snapshots}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			a.quitting = true
			a.unsubscribe()
			return a, tea.Quit

		case key.Matches(msg, keys.Logout):
			if a.snap.Authenticated() {
				a.ctrl.Logout(a.ctx)
				return a, nil
			}

		case key.Matches(msg, keys.Dashboard):
			if a.formInactive() {
				return a, a.request(guard.RouteDashboard)
			}
		case key.Matches(msg, keys.Campaigns):
			if a.formInactive() {
				return a, a.request(guard.RouteCampaigns)
			}
		case key.Matches(msg, keys.Leads):
			if a.formInactive() {
				return a, a.request(guard.RouteLeads)
			}
		}

	case snapshotMsg:
		a.snap = msg.snap
		return a, tea.Batch(a.route(), a.waitForSnapshot())

	case sessionInitializedMsg:
		a.snap = a.ctrl.Snapshot()
		return a, a.route()
	}

	if a.current != nil {
		next, cmd := a.current.Update(msg)
		a.current = next
		return a, cmd
	}

	return a, nil
}

// formInactive reports whether it is safe to treat number keys as
// navigation rather than text input.
func (a *App) formInactive() bool {
	switch a.current.(type) {
	case *loginView, *onboardingView:
		return false
	}
	if c, ok := a.current.(*campaignsView); ok && c.generating() {
		return false
	}
	return true
}

// request notes the desired route and re-runs the guard.
func (a *App) request(name guard.RouteName) tea.Cmd {
	a.requested = name
	return a.route()
}

// route asks the guard what actually renders and swaps the view if needed.
func (a *App) route() tea.Cmd {
	if !a.snap.Status.Terminal() {
		// Neutral loading state until the session resolves; no routing
		// decision is trusted before then.
		a.active = guard.RouteLoading
		a.current = nil
		return nil
	}

	resolved := guard.Resolve(a.snap, a.requested, nil)
	if resolved == a.active && a.current != nil {
		return nil
	}

	a.active = resolved
	switch resolved {
	case guard.RouteLogin:
		a.current = newLoginView(a.ctx, a.ctrl)
	case guard.RouteOnboarding:
		a.current = newOnboardingView(a.ctx, a.ctrl)
	case guard.RouteDashboard:
		a.current = newDashboardView(a.ctx, a.client)
	case guard.RouteCampaigns:
		a.current = newCampaignsView(a.ctx, a.client)
	case guard.RouteLeads:
		a.current = newLeadsView(a.ctx, a.client)
	default:
		a.current = nil
	}

	if a.current != nil {
		return a.current.Init()
	}
	return nil
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return "Bye.\n"
	}

	if !a.snap.Status.Terminal() || a.current == nil {
		return "\n  " + spinnerHint.Render("Connecting to LeadPilot…") + "\n"
	}

	body := a.current.View()
	return body + "\n" + a.statusBar()
}

// statusBar renders the bottom bar: identity, route, and key hints.
func (a *App) statusBar() string {
	identity := "not signed in"
	if a.snap.Authenticated() {
		identity = a.snap.User.Email
	}

	hints := "1 dashboard • 2 campaigns • 3 leads • ctrl+l logout • ctrl+c quit"
	if !a.snap.Authenticated() {
		hints = "ctrl+c quit"
	}

	return statusBarStyle.Render(fmt.Sprintf(" %s │ %s │ %s ", identity, a.active, hints))
}
