package tui

import "testing"

func TestInCI(t *testing.T) {
	for _, env := range ciEnvVars {
		t.Setenv(env, "")
	}
	if InCI() {
		t.Fatal("InCI() = true with no CI variables set")
	}

	t.Setenv("GITHUB_ACTIONS", "true")
	if !InCI() {
		t.Error("InCI() = false with GITHUB_ACTIONS set")
	}
}

func TestIsInteractive_CI(t *testing.T) {
	t.Setenv("CI", "1")
	if IsInteractive() {
		t.Error("IsInteractive() must be false in CI")
	}
}
