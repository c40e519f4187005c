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

const (
	modeLogin    = "login"
	modeRegister = "register"
)

// loginView renders the sign-in / sign-up form. Failures render inline on
// the form; they never escape to the app as unhandled errors.
type loginView struct {
	ctx  context.Context
	ctrl *session.Controller

	form *huh.Form

	mode     string
	email    string
	password string
	name     string

	submitting bool
	errMsg     string
}

func newLoginView(ctx context.Context, ctrl *session.Controller) *loginView {
	v := &loginView{
		ctx:  ctx,
		ctrl: ctrl,
		mode: modeLogin,
	}
	v.form = v.buildForm()
	return v
}

func (v *loginView) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("mode").
				Title("Welcome to LeadPilot").
				Options(
					huh.NewOption("Sign in", modeLogin),
					huh.NewOption("Create an account", modeRegister),
				).
				Value(&v.mode),

			huh.NewInput().
				Key("email").
				Title("Email").
				Value(&v.email).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return fmt.Errorf("enter a valid email address")
					}
					return nil
				}),

			huh.NewInput().
				Key("name").
				Title("Name (for new accounts)").
				Value(&v.name),

			huh.NewInput().
				Key("password").
				Title("Password (leave empty for email-only sign-in)").
				EchoMode(huh.EchoModePassword).
				Value(&v.password),
		),
	)
}

func (v *loginView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *loginView) Update(msg tea.Msg) (view, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		v.submitting = false
		if msg.err != nil {
			// Surface the failure inline and let the user try again.
			v.errMsg = userFacingAuthError(msg.err)
			v.form = v.buildForm()
			return v, v.form.Init()
		}
		// Success flips the session; the guard swaps the view.
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
			return v, v.submit()
		}
	}

	return v, cmd
}

func (v *loginView) submit() tea.Cmd {
	creds := api.Credentials{
		Email:    strings.TrimSpace(v.email),
		Password: v.password,
		Name:     strings.TrimSpace(v.name),
	}
	mode := v.mode

	return func() tea.Msg {
		var err error
		if mode == modeRegister {
			err = v.ctrl.Register(v.ctx, creds)
		} else {
			err = v.ctrl.Login(v.ctx, creds)
		}
		return authDoneMsg{err: err}
	}
}

func (v *loginView) View() string {
	var b strings.Builder

	if v.errMsg != "" {
		b.WriteString("  " + errorStyle.Render(v.errMsg) + "\n\n")
	}

	if v.submitting {
		b.WriteString("  " + spinnerHint.Render("Signing in…") + "\n")
		return b.String()
	}

	b.WriteString(v.form.View())
	return b.String()
}

// userFacingAuthError turns API failures into form-level messages.
func userFacingAuthError(err error) string {
	apiErr, ok := api.AsError(err)
	if !ok {
		return "Sign-in failed. Please try again."
	}

	switch apiErr.Kind {
	case api.KindNetwork:
		return "Could not reach LeadPilot. Check your connection and try again."
	case api.KindUnauthorized:
		return "Invalid credentials."
	case api.KindValidation:
		if len(apiErr.Fields) > 0 {
			parts := make([]string, 0, len(apiErr.Fields))
			for field, msg := range apiErr.Fields {
				parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
			}
			return strings.Join(parts, "; ")
		}
		return apiErr.Message
	case api.KindRateLimited:
		return "Too many attempts. Wait a moment and try again."
	default:
		return apiErr.Message
	}
}
