package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeAuthNotLoggedIn        ErrorCode = "AUTH-001"
	ErrCodeAuthInvalidCreds       ErrorCode = "AUTH-002"
	ErrCodeAuthSessionExpired     ErrorCode = "AUTH-003"
	ErrCodeAuthCallbackFailed     ErrorCode = "AUTH-004"
	ErrCodeAuthCallbackIncomplete ErrorCode = "AUTH-005"

	// API errors (API-001 to API-099)
	ErrCodeAPIUnreachable ErrorCode = "API-001"
	ErrCodeAPIRateLimited ErrorCode = "API-002"

	// Onboarding errors (ONBOARD-001 to ONBOARD-099)
	ErrCodeOnboardingRequired ErrorCode = "ONBOARD-002"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigNotFound  ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid   ErrorCode = "CONFIG-002"
	ErrCodeConfigUnmarshal ErrorCode = "CONFIG-003"
)

// LeadPilotError represents an enhanced error with code, suggestions, and documentation
type LeadPilotError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *LeadPilotError) Error() string {
	var b strings.Builder

	// Error code and message
	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	// Add cause if present
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	// Add suggestions
	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	// Add documentation link
	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *LeadPilotError) Unwrap() error {
	return e.Cause
}

// New creates a new LeadPilotError
func New(code ErrorCode, message string) *LeadPilotError {
	return &LeadPilotError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new LeadPilotError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *LeadPilotError {
	return &LeadPilotError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *LeadPilotError) WithSuggestion(suggestion string) *LeadPilotError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *LeadPilotError) WithSuggestions(suggestions ...string) *LeadPilotError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *LeadPilotError) WithDocs(url string) *LeadPilotError {
	e.DocsURL = url
	return e
}

// Common error constructors for frequently used errors

// NewNotLoggedInError creates a not-logged-in error
func NewNotLoggedInError() *LeadPilotError {
	return New(ErrCodeAuthNotLoggedIn, "not logged in").
		WithSuggestion("Run 'leadpilot auth login --email <email>' to authenticate").
		WithSuggestion("Run 'leadpilot auth google' to sign in with Google").
		WithDocs("https://github.com/leadpilot/leadpilot#authentication")
}

// NewSessionExpiredError creates a session-expired error
func NewSessionExpiredError() *LeadPilotError {
	return New(ErrCodeAuthSessionExpired, "your session has expired").
		WithSuggestion("Run 'leadpilot auth login' to re-authenticate").
		WithDocs("https://github.com/leadpilot/leadpilot#authentication")
}

// NewAPIUnreachableError creates a network error
func NewAPIUnreachableError(baseURL string, cause error) *LeadPilotError {
	return Wrap(ErrCodeAPIUnreachable, fmt.Sprintf("could not reach the LeadPilot API at %s", baseURL), cause).
		WithSuggestion("Check your network connection").
		WithSuggestion("Verify the API URL with 'leadpilot config show' or the LEADPILOT_API_URL variable")
}

// NewRateLimitedError creates a rate limit error
func NewRateLimitedError(retryAfter string) *LeadPilotError {
	msg := "rate limit exceeded"
	if retryAfter != "" {
		msg += fmt.Sprintf(" (retry after: %s)", retryAfter)
	}

	return New(ErrCodeAPIRateLimited, msg).
		WithSuggestion("Wait a moment before retrying the request").
		WithDocs("https://github.com/leadpilot/leadpilot#rate-limits")
}

// NewOnboardingRequiredError creates an onboarding-required error
func NewOnboardingRequiredError() *LeadPilotError {
	return New(ErrCodeOnboardingRequired, "business profile onboarding is not complete").
		WithSuggestion("Run 'leadpilot onboarding' to complete your business profile").
		WithDocs("https://github.com/leadpilot/leadpilot#onboarding")
}

// NewConfigUnmarshalError creates a config parse error
func NewConfigUnmarshalError(path string, cause error) *LeadPilotError {
	return Wrap(ErrCodeConfigUnmarshal, fmt.Sprintf("failed to parse config file: %s", path), cause).
		WithSuggestion("Check the YAML syntax of the file").
		WithSuggestion("Remove the file to fall back to defaults")
}
