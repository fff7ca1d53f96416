package internal

import (
	"errors"
	"net/url"
	"os"
	"strings"

	"github.com/iksnae/support-widget/internal/ui"
)

const (
	// DefaultBaseURL is used when no API URL is supplied
	DefaultBaseURL = "http://localhost:8001"
	// APIKeyHeader carries the tenant API key on every request
	APIKeyHeader = "ASST-API-Key"

	EnvAPIKey  = "WIDGET_API_KEY"
	EnvAPIURL  = "WIDGET_API_URL"
	EnvOrigin  = "WIDGET_ORIGIN"
	EnvStorage = "WIDGET_STORAGE"
)

// Settings are the values a host supplies when embedding the widget
type Settings struct {
	APIKey      string
	BaseURL     string
	Origin      string
	StoragePath string
}

// SettingsFromEnv reads settings from WIDGET_* environment variables
func SettingsFromEnv() Settings {
	return Settings{
		APIKey:      strings.TrimSpace(os.Getenv(EnvAPIKey)),
		BaseURL:     strings.TrimSpace(os.Getenv(EnvAPIURL)),
		Origin:      strings.TrimSpace(os.Getenv(EnvOrigin)),
		StoragePath: strings.TrimSpace(os.Getenv(EnvStorage)),
	}
}

// Merge returns s with every non-empty field of override applied
func (s Settings) Merge(override Settings) Settings {
	if v := strings.TrimSpace(override.APIKey); v != "" {
		s.APIKey = v
	}
	if v := strings.TrimSpace(override.BaseURL); v != "" {
		s.BaseURL = v
	}
	if v := strings.TrimSpace(override.Origin); v != "" {
		s.Origin = v
	}
	if v := strings.TrimSpace(override.StoragePath); v != "" {
		s.StoragePath = v
	}
	return s
}

// Normalize applies defaults: base URL without trailing slash and an origin
// derived from it when none was given.
func (s Settings) Normalize() Settings {
	s.APIKey = strings.TrimSpace(s.APIKey)
	s.BaseURL = strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if s.Origin == "" {
		s.Origin = originOf(s.BaseURL)
	}
	return s
}

// Validate reports ErrMissingAPIKey when no API key is set
func (s Settings) Validate() error {
	if strings.TrimSpace(s.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func (s Settings) APIBase() string { return s.BaseURL + "/v1/widget" }
func (s Settings) StaticBase() string { return s.BaseURL + "/static" }
func (s Settings) ConfigURL() string { return s.APIBase() + "/config" }
func (s Settings) ChatURL() string { return s.APIBase() + "/chat" }
func (s Settings) StylesheetURL() string { return s.StaticBase() + "/widget.css" }

func originOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Scheme + "://" + u.Host
}

// WidgetConfig is the tenant configuration served by the config endpoint
type WidgetConfig struct {
	TenantID           string   `json:"tenant_id,omitempty" yaml:"tenant_id,omitempty"`
	PrimaryColor       string   `json:"primary_color" yaml:"primary_color"`
	ChatTitle          string   `json:"chat_title" yaml:"chat_title"`
	WelcomeMessage     string   `json:"welcome_message" yaml:"welcome_message"`
	Position           string   `json:"position" yaml:"position"`
	BackgroundColor    *string  `json:"background_color,omitempty" yaml:"background_color,omitempty"`
	BotName            string   `json:"bot_name,omitempty" yaml:"bot_name,omitempty"`
	LogoURL            string   `json:"logo_url,omitempty" yaml:"logo_url,omitempty"`
	SuggestedQuestions []string `json:"suggested_questions,omitempty" yaml:"suggested_questions,omitempty"`
}

// ErrIncompleteConfig marks a config without a title or primary color
var ErrIncompleteConfig = errors.New("config is missing chat_title or primary_color")

// Validate rejects configs that cannot theme the widget, including the
// zero value decoded from a JSON null body
func (c WidgetConfig) Validate() error {
	if strings.TrimSpace(c.ChatTitle) == "" || strings.TrimSpace(c.PrimaryColor) == "" {
		return ErrIncompleteConfig
	}
	return nil
}

// OfflineWelcome is the welcome message of the degraded widget
const OfflineWelcome = "Customer service is currently unavailable. Please try again later."

// DefaultConfig is the fallback rendered when the config cannot be loaded
func DefaultConfig() WidgetConfig {
	return WidgetConfig{
		PrimaryColor:   "#0ea5e9",
		ChatTitle:      "Support",
		WelcomeMessage: OfflineWelcome,
		Position:       ui.DefaultPosition,
	}
}

// Theme maps a config onto the UI builder's input
func (c WidgetConfig) Theme(s Settings, offline bool) ui.Theme {
	theme := ui.Theme{
		PrimaryColor:  c.PrimaryColor,
		Title:         c.ChatTitle,
		Welcome:       c.WelcomeMessage,
		Position:      c.Position,
		BotName:       c.BotName,
		LogoURL:       c.LogoURL,
		StylesheetURL: s.StylesheetURL(),
		Offline:       offline,
	}
	if !offline {
		if c.BackgroundColor != nil {
			theme.BackgroundColor = *c.BackgroundColor
		}
		theme.SuggestedQuestions = c.SuggestedQuestions
	}
	return theme
}
