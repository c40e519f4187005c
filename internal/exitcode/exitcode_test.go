package exitcode

import (
	"errors"
	"fmt"
	"testing"

	lperrors "github.com/leadpilot/leadpilot/internal/errors"
)

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"Success", Success, 0},
		{"GeneralError", GeneralError, 1},
		{"UsageError", UsageError, 2},
		{"AuthError", AuthError, 3},
		{"NetworkError", NetworkError, 4},
		{"RateLimited", RateLimited, 5},
		{"Interrupted", Interrupted, 130},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.expected {
				t.Errorf("Exit code %s = %d, want %d", tt.name, tt.code, tt.expected)
			}
		})
	}
}

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil error returns success",
			err:      nil,
			expected: Success,
		},
		{
			name:     "coded auth error",
			err:      lperrors.NewNotLoggedInError(),
			expected: AuthError,
		},
		{
			name:     "coded session expired error",
			err:      lperrors.NewSessionExpiredError(),
			expected: AuthError,
		},
		{
			name:     "coded rate limit error",
			err:      lperrors.NewRateLimitedError(""),
			expected: RateLimited,
		},
		{
			name:     "coded network error",
			err:      lperrors.NewAPIUnreachableError("https://api.example.com", fmt.Errorf("refused")),
			expected: NetworkError,
		},
		{
			name:     "unauthorized message",
			err:      errors.New("server said unauthorized"),
			expected: AuthError,
		},
		{
			name:     "invalid credentials message",
			err:      errors.New("login failed: invalid credentials"),
			expected: AuthError,
		},
		{
			name:     "rate limit message",
			err:      errors.New("rate limit exceeded"),
			expected: RateLimited,
		},
		{
			name:     "raw api client rate limit",
			err:      errors.New("api: rate_limited (429): Too Many Requests"),
			expected: RateLimited,
		},
		{
			name:     "connection message",
			err:      errors.New("connection refused"),
			expected: NetworkError,
		},
		{
			name:     "timeout message",
			err:      errors.New("request timeout"),
			expected: NetworkError,
		},
		{
			name:     "unknown command",
			err:      errors.New(`unknown command "campains" for "leadpilot"`),
			expected: UsageError,
		},
		{
			name:     "anything else is general",
			err:      errors.New("something odd happened"),
			expected: GeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetermineExitCode(tt.err)
			if got != tt.expected {
				t.Errorf("DetermineExitCode(%v) = %d, want %d", tt.err, got, tt.expected)
			}
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	if got := GetExitCodeDescription(Success); got != "Success" {
		t.Errorf("unexpected description: %s", got)
	}
	if got := GetExitCodeDescription(99); got != "Unknown error" {
		t.Errorf("unexpected description for unknown code: %s", got)
	}
}
