// Package session owns the client-side authentication state machine.
//
// One Controller exists per process. It establishes the session at startup
// (stored token or OAuth callback), exposes the current state as immutable
// snapshots, and is the only layer allowed to mutate session state in
// response to an API error.
package session

import "github.com/leadpilot/leadpilot/internal/api"

// Status is the session lifecycle state.
type Status int

const (
	// StatusUninitialized means Initialize has not started yet.
	StatusUninitialized Status = iota
	// StatusLoading means the session is being resolved; no routing
	// decision should be trusted while in this state.
	StatusLoading
	// StatusAuthenticated means a token and a confirmed user are present.
	StatusAuthenticated
	// StatusAnonymous means no credential is held.
	StatusAnonymous
	// StatusError is a transient state after a profile-fetch failure while
	// authenticated; it always resolves to Anonymous, never a sink.
	StatusError
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	case StatusAnonymous:
		return "anonymous"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status is a resolved end state.
func (s Status) Terminal() bool {
	return s == StatusAuthenticated || s == StatusAnonymous
}

// Snapshot is an immutable view of the session, handed to subscribers and
// the route guard. The user record is a copy; mutating it has no effect.
type Snapshot struct {
	Status    Status
	User      *api.User
	LastError string
}

// Authenticated reports whether the snapshot carries a confirmed user.
func (s Snapshot) Authenticated() bool {
	return s.Status == StatusAuthenticated && s.User != nil
}

// NeedsOnboarding reports whether the authenticated user still has to
// complete the business-profile wizard.
func (s Snapshot) NeedsOnboarding() bool {
	return s.Authenticated() && !s.User.OnboardingCompleted
}
