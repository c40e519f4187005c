// Package guard decides which view may render for a given session state.
//
// Decide is a pure function: the TUI consults it on every view change and
// never forces navigation anywhere else. The one rule that matters most:
// while the session is still loading, the guard always renders a
// placeholder and never redirects.
package guard

import (
	"github.com/leadpilot/leadpilot/internal/session"
)

// RouteName identifies a view.
type RouteName string

// The client's views.
const (
	RouteLoading    RouteName = "loading"
	RouteLogin      RouteName = "login"
	RouteOnboarding RouteName = "onboarding"
	RouteDashboard  RouteName = "dashboard"
	RouteCampaigns  RouteName = "campaigns"
	RouteLeads      RouteName = "leads"
)

// Route describes a view's access requirements.
type Route struct {
	Name RouteName

	// RequiresAuth gates the route on an authenticated session.
	RequiresAuth bool

	// RequiresOnboarding gates the route on a completed business profile.
	RequiresOnboarding bool

	// IsOnboarding marks the onboarding flow itself.
	IsOnboarding bool

	// PublicOnly marks routes that make no sense while authenticated
	// (the login view).
	PublicOnly bool
}

// Routes is the client's routing table.
var Routes = map[RouteName]Route{
	RouteLogin:      {Name: RouteLogin, PublicOnly: true},
	RouteOnboarding: {Name: RouteOnboarding, RequiresAuth: true, IsOnboarding: true},
	RouteDashboard:  {Name: RouteDashboard, RequiresAuth: true, RequiresOnboarding: true},
	RouteCampaigns:  {Name: RouteCampaigns, RequiresAuth: true, RequiresOnboarding: true},
	RouteLeads:      {Name: RouteLeads, RequiresAuth: true, RequiresOnboarding: true},
}

// Action is the guard's verdict.
type Action int

const (
	// Render means the requested route may be shown.
	Render Action = iota
	// Redirect means the requested route must be replaced by Target.
	Redirect
)

// Decision is the outcome of a guard evaluation.
type Decision struct {
	Action Action
	Target RouteName
}

func render() Decision               { return Decision{Action: Render} }
func redirect(to RouteName) Decision { return Decision{Action: Redirect, Target: to} }

// Decide evaluates the routing rules in order for the requested route.
func Decide(snap session.Snapshot, route Route) Decision {
	// Never redirect while the session is indeterminate.
	if snap.Status == session.StatusLoading || snap.Status == session.StatusUninitialized {
		return render()
	}

	authed := snap.Authenticated()

	if route.RequiresAuth && !authed {
		return redirect(RouteLogin)
	}

	if route.RequiresAuth && authed && snap.NeedsOnboarding() && !route.IsOnboarding {
		return redirect(RouteOnboarding)
	}

	if route.IsOnboarding && authed && !snap.NeedsOnboarding() {
		return redirect(RouteDashboard)
	}

	if route.PublicOnly && authed {
		if snap.NeedsOnboarding() {
			return redirect(RouteOnboarding)
		}
		return redirect(RouteDashboard)
	}

	return render()
}

// Resolve follows redirects until a route renders, so callers land directly
// on the final view. The routing table is acyclic by construction; the hop
// bound guards against a misconfigured custom table.
func Resolve(snap session.Snapshot, name RouteName, routes map[RouteName]Route) RouteName {
	if routes == nil {
		routes = Routes
	}

	current := name
	for hops := 0; hops < len(routes)+1; hops++ {
		route, ok := routes[current]
		if !ok {
			return current
		}
		decision := Decide(snap, route)
		if decision.Action == Render {
			return current
		}
		current = decision.Target
	}
	return current
}
