package version

import (
	"strings"
	"testing"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()

	if info.Version != Version {
		t.Errorf("expected version %s, got %s", Version, info.Version)
	}
	if info.GoVersion == "" {
		t.Error("expected go version to be set")
	}
	if !strings.Contains(info.Platform, "/") {
		t.Errorf("expected platform in os/arch form, got %s", info.Platform)
	}
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:   "1.2.3",
		Commit:    "abcdef1234567890",
		Date:      "2026-01-02",
		GoVersion: "go1.24",
		Platform:  "linux/amd64",
	}

	s := info.String()
	if !strings.HasPrefix(s, "LeadPilot 1.2.3") {
		t.Errorf("unexpected version string: %s", s)
	}
	if !strings.Contains(s, "abcdef12") {
		t.Errorf("expected short commit, got: %s", s)
	}
	if strings.Contains(s, "abcdef123456") {
		t.Errorf("commit should be truncated to 8 characters: %s", s)
	}
}

func TestInfoShort(t *testing.T) {
	info := Info{Version: "1.2.3"}
	if info.Short() != "1.2.3" {
		t.Errorf("expected 1.2.3, got %s", info.Short())
	}
}
