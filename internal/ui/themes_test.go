package ui

import (
	"testing"
)

// Theme state is process-wide, so these tests run sequentially and restore
// the original theme when they finish.

func TestSetTheme(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	tests := []struct {
		name     string
		theme    string
		wantName string
	}{
		{"dark", "dark", "dark"},
		{"light", "light", "light"},
		{"none", "none", "none"},
		{"unknown falls back to dark", "solarized", "dark"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetTheme(tt.theme)
			if got := GetCurrentTheme().Name; got != tt.wantName {
				t.Errorf("SetTheme(%q) activated %q, want %q", tt.theme, got, tt.wantName)
			}
		})
	}
}

func TestInitThemeNoColorFlag(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	InitTheme(true)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("InitTheme(true) should disable colors, got %q", GetCurrentTheme().Name)
	}
	if ColorGreen() != "" || ColorReset() != "" {
		t.Error("no-color theme must return empty escape codes")
	}
}

func TestInitThemeRespectsNoColorEnv(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("NO_COLOR should disable colors, got %q", GetCurrentTheme().Name)
	}
}

func TestColorFunctionsFollowTheme(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	SetTheme("dark")
	if ColorRed() != DarkTheme.Error {
		t.Errorf("ColorRed() = %q, want the dark theme error color", ColorRed())
	}
	if ColorUnderline() != DarkTheme.Underline || ColorBold() != DarkTheme.Bold {
		t.Error("style accessors should follow the active theme")
	}

	SetTheme("light")
	if ColorBlue() != LightTheme.Primary {
		t.Errorf("ColorBlue() = %q, want the light theme primary color", ColorBlue())
	}
}
