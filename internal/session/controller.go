package session

import (
	"context"
	"sync"
	"time"

	"github.com/leadpilot/leadpilot/internal/api"
	"github.com/leadpilot/leadpilot/internal/log"
	"github.com/leadpilot/leadpilot/internal/store"
)

// logoutTimeout bounds the fire-and-forget server-side token invalidation.
const logoutTimeout = 5 * time.Second

// Controller is the session authentication state machine.
//
// Mutating operations (Initialize, Login, Register, CompleteOnboarding) are
// serialized with each other. Logout is synchronous and never waits for an
// in-flight operation: it bumps the operation sequence number, and any
// result from an operation that started before the logout is discarded
// instead of overwriting the newer state.
type Controller struct {
	client *api.Client
	creds  *store.Store
	logger *log.Logger

	// opMu serializes the network-bearing operations.
	opMu sync.Mutex

	mu          sync.Mutex
	status      Status
	user        *api.User
	lastError   string
	initialized bool
	seq         uint64

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// NewController creates the session controller. One instance is owned by
// the application root; there is no teardown.
func NewController(client *api.Client, creds *store.Store, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Controller{
		client: client,
		creds:  creds,
		logger: logger.With("component", "session"),
		status: StatusUninitialized,
		subs:   make(map[int]func(Snapshot)),
	}
}

// Snapshot returns the current session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		Status:    c.status,
		LastError: c.lastError,
	}
	if c.user != nil {
		user := *c.user
		snap.User = &user
	}
	return snap
}

// Subscribe registers fn to be called with a snapshot after every state
// change. Returns an unsubscribe function.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

// notify fans the snapshot out to subscribers, outside any lock.
func (c *Controller) notify(snap Snapshot) {
	c.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// setState transitions the state machine and notifies subscribers.
func (c *Controller) setState(status Status, user *api.User, lastError string) {
	c.mu.Lock()
	c.status = status
	c.user = user
	c.lastError = lastError
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

// Initialize resolves the session at process start. It runs once; later
// calls only strip any leftover callback parameters from rawURL without
// touching session state.
//
// rawURL is the URL the process was entered with: the OAuth loopback
// redirect during a Google sign-in round trip, or "" for a plain start.
// The returned string is rawURL with the callback parameters consumed, so
// a replay of the same URL does not re-process them.
func (c *Controller) Initialize(ctx context.Context, rawURL string) string {
	cb, cleaned := ParseCallback(rawURL)

	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		return cleaned
	}
	c.initialized = true
	seq := c.seq
	c.status = StatusLoading
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)

	c.opMu.Lock()
	defer c.opMu.Unlock()

	switch {
	case cb != nil && cb.Err != "":
		// Provider reported a failure; consume it and stay anonymous so a
		// replay of the same URL cannot re-raise the error.
		c.logger.Warn("oauth callback returned error", "error", cb.Err)
		c.commit(seq, StatusAnonymous, nil, "authentication failed: "+cb.Err, nil)

	case cb != nil && cb.Token != "":
		if !c.persistIfCurrent(seq, func() { c.creds.SetToken(cb.Token) }) {
			break
		}
		if user, err := c.fetchProfile(ctx); err == nil {
			c.commit(seq, StatusAuthenticated, user, "", func() {
				c.creds.SetUser(user)
			})
		} else {
			c.creds.Clear()
			c.commit(seq, StatusAnonymous, nil, c.initError(err), nil)
		}

	case c.creds.Token() != "":
		if user, err := c.fetchProfile(ctx); err == nil {
			c.commit(seq, StatusAuthenticated, user, "", func() {
				c.creds.SetUser(user)
			})
		} else {
			// A rejected stored token is indistinguishable from "never
			// logged in" for the user; it clears silently.
			c.creds.Clear()
			c.commit(seq, StatusAnonymous, nil, c.initError(err), nil)
		}

	default:
		c.commit(seq, StatusAnonymous, nil, "", nil)
	}

	return cleaned
}

// RefreshProfile re-fetches the profile for the current token and replaces
// the user record wholesale. On any failure it clears the credential store
// and downgrades to Anonymous; this is the only path allowed to do that
// involuntarily.
func (c *Controller) RefreshProfile(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	seq := c.seq
	c.mu.Unlock()

	user, err := c.fetchProfile(ctx)
	if err != nil {
		c.creds.Clear()
		c.commit(seq, StatusAnonymous, nil, c.initError(err), nil)
		return err
	}

	c.commit(seq, StatusAuthenticated, user, "", func() {
		c.creds.SetUser(user)
	})
	return nil
}

// Login authenticates with the given credentials. On success the session
// flips to Authenticated immediately: the login response already carries a
// trusted, freshly minted user record from the same round trip, so no
// second profile fetch is needed. On failure the current session state is
// left untouched and the error is returned for display.
func (c *Controller) Login(ctx context.Context, creds api.Credentials) error {
	return c.authenticate(ctx, creds, c.client.Login)
}

// Register creates an account and logs in, with the same optimistic
// semantics as Login.
func (c *Controller) Register(ctx context.Context, creds api.Credentials) error {
	return c.authenticate(ctx, creds, c.client.Register)
}

func (c *Controller) authenticate(ctx context.Context, creds api.Credentials,
	call func(context.Context, api.Credentials) (*api.AuthResult, error)) error {

	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	seq := c.seq
	c.mu.Unlock()

	result, err := call(ctx, creds)
	if err != nil {
		// A failed attempt must not log out an already-authenticated
		// session (re-auth flows hit this path).
		return err
	}

	user := result.User
	c.commit(seq, StatusAuthenticated, &user, "", func() {
		c.creds.Set(result.Token, &user)
	})
	return nil
}

// Logout clears the session synchronously. The user-visible state flips
// immediately regardless of server reachability; server-side token
// invalidation is fire-and-forget.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	c.seq++
	c.status = StatusAnonymous
	c.user = nil
	c.lastError = ""
	c.creds.Clear()
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)

	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), logoutTimeout)
		defer cancel()
		if err := c.client.Logout(ctx); err != nil {
			c.logger.Debug("server-side logout failed", "error", err.Error())
		}
	}()
}

// CompleteOnboarding submits the business profile. On success it re-fetches
// the profile so local state reflects what the server actually recorded;
// only if that re-fetch fails does it fall back to patching
// onboarding_completed locally, without ever logging the user out.
func (c *Controller) CompleteOnboarding(ctx context.Context, data api.Onboarding) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	seq := c.seq
	current := c.user
	c.mu.Unlock()

	if err := c.client.CompleteOnboarding(ctx, data); err != nil {
		return err
	}

	if user, err := c.fetchProfile(ctx); err == nil {
		c.commit(seq, StatusAuthenticated, user, "", func() {
			c.creds.SetUser(user)
		})
		return nil
	}

	// Optimistic local patch: the write succeeded, so mark onboarding done
	// and carry the submitted fields until the next successful fetch.
	if current != nil {
		patched := *current
		patched.OnboardingCompleted = true
		patched.BusinessType = data.BusinessType
		patched.Industry = data.Industry
		patched.ProductService = data.ProductService
		patched.TargetAudience = data.TargetAudience
		patched.CampaignGoal = data.CampaignGoal

		c.commit(seq, StatusAuthenticated, &patched, "", func() {
			c.creds.SetUser(&patched)
		})
	}

	return nil
}

// persistIfCurrent runs a credential write under the state lock, but only
// if no newer operation has superseded seq. Reports whether the write ran.
func (c *Controller) persistIfCurrent(seq uint64, fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq != seq {
		return false
	}
	fn()
	return true
}

// fetchProfile calls the profile endpoint with the current token.
func (c *Controller) fetchProfile(ctx context.Context) (*api.User, error) {
	return c.client.Profile(ctx)
}

// commit applies a state transition unless a newer operation (logout)
// superseded this one while its network call was in flight. persist, when
// given, writes the matching credentials; it runs under the same lock and
// the same seq check, and Logout clears the store under that lock too, so
// a superseded operation can never leave its token behind.
func (c *Controller) commit(seq uint64, status Status, user *api.User, lastError string, persist func()) {
	c.mu.Lock()
	if c.seq != seq {
		c.mu.Unlock()
		c.logger.Debug("discarding stale session transition", "status", status.String())
		return
	}
	if persist != nil {
		persist()
	}
	c.status = status
	c.user = user
	c.lastError = lastError
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

// initError decides what surfaces as LastError after a failed profile
// fetch. A rejected token reads as "never logged in" and stays silent;
// anything else is worth showing.
func (c *Controller) initError(err error) string {
	if api.IsUnauthorized(err) {
		return ""
	}
	return err.Error()
}
