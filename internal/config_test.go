package internal

import (
	"errors"
	"testing"
)

func TestSettingsNormalize(t *testing.T) {
	tests := []struct {
		name       string
		in         Settings
		wantBase   string
		wantOrigin string
	}{
		{
			name:       "defaults",
			in:         Settings{APIKey: "k"},
			wantBase:   DefaultBaseURL,
			wantOrigin: "http://localhost:8001",
		},
		{
			name:       "trailing slash trimmed",
			in:         Settings{APIKey: "k", BaseURL: "https://api.example.com/"},
			wantBase:   "https://api.example.com",
			wantOrigin: "https://api.example.com",
		},
		{
			name:       "origin from path base",
			in:         Settings{APIKey: "k", BaseURL: "https://api.example.com/support"},
			wantBase:   "https://api.example.com/support",
			wantOrigin: "https://api.example.com",
		},
		{
			name:       "explicit origin kept",
			in:         Settings{APIKey: "k", BaseURL: "https://api.example.com", Origin: "https://shop.example.com"},
			wantBase:   "https://api.example.com",
			wantOrigin: "https://shop.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if got.BaseURL != tt.wantBase {
				t.Errorf("BaseURL = %q, want %q", got.BaseURL, tt.wantBase)
			}
			if got.Origin != tt.wantOrigin {
				t.Errorf("Origin = %q, want %q", got.Origin, tt.wantOrigin)
			}
		})
	}
}

func TestSettingsURLs(t *testing.T) {
	s := Settings{APIKey: "k", BaseURL: "https://api.example.com/"}.Normalize()

	if got := s.ConfigURL(); got != "https://api.example.com/v1/widget/config" {
		t.Errorf("ConfigURL() = %q", got)
	}
	if got := s.ChatURL(); got != "https://api.example.com/v1/widget/chat" {
		t.Errorf("ChatURL() = %q", got)
	}
	if got := s.StylesheetURL(); got != "https://api.example.com/static/widget.css" {
		t.Errorf("StylesheetURL() = %q", got)
	}
}

func TestSettingsValidate(t *testing.T) {
	if err := (Settings{APIKey: "  "}).Validate(); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Validate() with blank key = %v, want ErrMissingAPIKey", err)
	}
	if err := (Settings{APIKey: "k"}).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestSettingsFromEnvAndMerge(t *testing.T) {
	t.Setenv(EnvAPIKey, " env-key ")
	t.Setenv(EnvAPIURL, "https://env.example.com")
	t.Setenv(EnvOrigin, "")
	t.Setenv(EnvStorage, "/tmp/env.db")

	env := SettingsFromEnv()
	if env.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want trimmed env-key", env.APIKey)
	}

	merged := env.Merge(Settings{APIKey: "flag-key", Origin: "https://shop.example.com"})
	if merged.APIKey != "flag-key" {
		t.Errorf("Merge should prefer override APIKey, got %q", merged.APIKey)
	}
	if merged.BaseURL != "https://env.example.com" {
		t.Errorf("Merge should keep BaseURL when override empty, got %q", merged.BaseURL)
	}
	if merged.Origin != "https://shop.example.com" {
		t.Errorf("Origin = %q", merged.Origin)
	}
	if merged.StoragePath != "/tmp/env.db" {
		t.Errorf("StoragePath = %q", merged.StoragePath)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.PrimaryColor != "#0ea5e9" {
		t.Errorf("PrimaryColor = %q", cfg.PrimaryColor)
	}
	if cfg.ChatTitle != "Support" {
		t.Errorf("ChatTitle = %q", cfg.ChatTitle)
	}
	if cfg.WelcomeMessage != OfflineWelcome {
		t.Errorf("WelcomeMessage = %q", cfg.WelcomeMessage)
	}
	if cfg.Position != "bottom-right" {
		t.Errorf("Position = %q", cfg.Position)
	}
}

func TestWidgetConfigTheme(t *testing.T) {
	bg := "#f8fafc"
	cfg := WidgetConfig{
		PrimaryColor:       "#123456",
		ChatTitle:          "Help",
		WelcomeMessage:     "Hi",
		Position:           "top-left",
		BackgroundColor:    &bg,
		SuggestedQuestions: []string{"Pricing?"},
	}
	s := Settings{APIKey: "k"}.Normalize()

	online := cfg.Theme(s, false)
	if online.BackgroundColor != bg {
		t.Errorf("online BackgroundColor = %q, want %q", online.BackgroundColor, bg)
	}
	if len(online.SuggestedQuestions) != 1 {
		t.Errorf("online SuggestedQuestions = %v", online.SuggestedQuestions)
	}
	if online.StylesheetURL != s.StylesheetURL() {
		t.Errorf("StylesheetURL = %q", online.StylesheetURL)
	}

	offline := cfg.Theme(s, true)
	if offline.BackgroundColor != "" || offline.SuggestedQuestions != nil {
		t.Errorf("offline theme should drop background and suggestions, got %+v", offline)
	}
	if !offline.Offline {
		t.Error("offline theme should be marked Offline")
	}
}

func TestWidgetConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     WidgetConfig
		wantErr bool
	}{
		{name: "complete", cfg: WidgetConfig{ChatTitle: "Help", PrimaryColor: "#123456"}},
		{name: "zero value", cfg: WidgetConfig{}, wantErr: true},
		{name: "blank title", cfg: WidgetConfig{ChatTitle: " ", PrimaryColor: "#123456"}, wantErr: true},
		{name: "no color", cfg: WidgetConfig{ChatTitle: "Help"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrIncompleteConfig) {
				t.Errorf("Validate() error = %v, want ErrIncompleteConfig", err)
			}
		})
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}
