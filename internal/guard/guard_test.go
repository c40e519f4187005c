package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leadpilot/leadpilot/internal/api"
	"github.com/leadpilot/leadpilot/internal/session"
)

func snapAnonymous() session.Snapshot {
	return session.Snapshot{Status: session.StatusAnonymous}
}

func snapAuthenticated(onboarded bool) session.Snapshot {
	return session.Snapshot{
		Status: session.StatusAuthenticated,
		User:   &api.User{ID: "u1", Email: "a@example.com", OnboardingCompleted: onboarded},
	}
}

func TestDecide_NeverRedirectsWhileLoading(t *testing.T) {
	// The rule holds for every route, whatever its requirements.
	for status, statusName := range map[session.Status]string{
		session.StatusLoading:       "loading",
		session.StatusUninitialized: "uninitialized",
	} {
		for name, route := range Routes {
			decision := Decide(session.Snapshot{Status: status}, route)
			assert.Equal(t, Render, decision.Action,
				"%s route must render while %s", name, statusName)
		}
	}
}

func TestDecide_AnonymousRedirectsToLogin(t *testing.T) {
	for _, name := range []RouteName{RouteDashboard, RouteCampaigns, RouteLeads, RouteOnboarding} {
		decision := Decide(snapAnonymous(), Routes[name])
		assert.Equal(t, Redirect, decision.Action, "route %s", name)
		assert.Equal(t, RouteLogin, decision.Target, "route %s", name)
	}
}

func TestDecide_AnonymousMayRenderLogin(t *testing.T) {
	decision := Decide(snapAnonymous(), Routes[RouteLogin])
	assert.Equal(t, Render, decision.Action)
}

func TestDecide_UnonboardedRedirectsToOnboarding(t *testing.T) {
	snap := snapAuthenticated(false)

	for _, name := range []RouteName{RouteDashboard, RouteCampaigns, RouteLeads} {
		decision := Decide(snap, Routes[name])
		assert.Equal(t, Redirect, decision.Action, "route %s", name)
		assert.Equal(t, RouteOnboarding, decision.Target, "route %s", name)
	}

	decision := Decide(snap, Routes[RouteOnboarding])
	assert.Equal(t, Render, decision.Action, "the onboarding route itself must render")
}

func TestDecide_OnboardedSkipsOnboardingRoute(t *testing.T) {
	decision := Decide(snapAuthenticated(true), Routes[RouteOnboarding])
	assert.Equal(t, Redirect, decision.Action)
	assert.Equal(t, RouteDashboard, decision.Target)
}

func TestDecide_AuthenticatedLeavesLogin(t *testing.T) {
	decision := Decide(snapAuthenticated(true), Routes[RouteLogin])
	assert.Equal(t, Redirect, decision.Action)
	assert.Equal(t, RouteDashboard, decision.Target)

	decision = Decide(snapAuthenticated(false), Routes[RouteLogin])
	assert.Equal(t, Redirect, decision.Action)
	assert.Equal(t, RouteOnboarding, decision.Target)
}

func TestDecide_AuthenticatedRendersAppRoutes(t *testing.T) {
	snap := snapAuthenticated(true)
	for _, name := range []RouteName{RouteDashboard, RouteCampaigns, RouteLeads} {
		decision := Decide(snap, Routes[name])
		assert.Equal(t, Render, decision.Action, "route %s", name)
	}
}

func TestResolve_FollowsRedirectChain(t *testing.T) {
	tests := []struct {
		name      string
		snap      session.Snapshot
		requested RouteName
		want      RouteName
	}{
		{
			name:      "anonymous asking for leads lands on login",
			snap:      snapAnonymous(),
			requested: RouteLeads,
			want:      RouteLogin,
		},
		{
			name:      "unonboarded asking for dashboard lands on onboarding",
			snap:      snapAuthenticated(false),
			requested: RouteDashboard,
			want:      RouteOnboarding,
		},
		{
			name:      "onboarded asking for login lands on dashboard",
			snap:      snapAuthenticated(true),
			requested: RouteLogin,
			want:      RouteDashboard,
		},
		{
			name:      "loading stays where it is",
			snap:      session.Snapshot{Status: session.StatusLoading},
			requested: RouteCampaigns,
			want:      RouteCampaigns,
		},
		{
			name:      "unknown route passes through",
			snap:      snapAuthenticated(true),
			requested: RouteName("settings"),
			want:      RouteName("settings"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.snap, tt.requested, nil))
		})
	}
}

func TestResolve_BoundedOnCyclicTable(t *testing.T) {
	// Two PublicOnly-free routes that redirect to each other would loop
	// forever without the hop bound.
	cyclic := map[RouteName]Route{
		"a": {Name: "a", RequiresAuth: true},
		"b": {Name: "b", RequiresAuth: true},
	}

	// Anonymous: both redirect to login, which is absent from this table, so
	// Resolve must terminate and hand back login.
	got := Resolve(snapAnonymous(), "a", cyclic)
	assert.Equal(t, RouteLogin, got)
}
