package internal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/iksnae/support-widget/testutil"
)

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		file      string
		content   string
		wantTitle string
		wantErr   bool
	}{
		{
			name:      "yaml",
			file:      "widget.yaml",
			content:   "chat_title: Help\nprimary_color: \"#123456\"\nposition: top-left\nsuggested_questions:\n  - Pricing?\n",
			wantTitle: "Help",
		},
		{
			name:      "json",
			file:      "widget.json",
			content:   testutil.FullConfigJSON,
			wantTitle: "Chat with Acme",
		},
		{
			name:    "incomplete",
			file:    "partial.yaml",
			content: "welcome_message: Hi\n",
			wantErr: true,
		},
		{
			name:    "invalid",
			file:    "broken.yaml",
			content: "chat_title: [unclosed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write config: %v", err)
			}

			cfg, err := LoadConfigFile(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadConfigFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Errorf("error should be *ParseError, got %T", err)
				}
				return
			}
			if cfg.ChatTitle != tt.wantTitle {
				t.Errorf("ChatTitle = %q, want %q", cfg.ChatTitle, tt.wantTitle)
			}
		})
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadConfigFile() error = %v, want not-exist", err)
	}
}

func TestStaticFetcher(t *testing.T) {
	cfg := &WidgetConfig{ChatTitle: "Help"}
	got, err := StaticFetcher{Config: cfg}.FetchConfig(context.Background())
	if err != nil || got.ChatTitle != "Help" {
		t.Fatalf("FetchConfig() = %+v, %v", got, err)
	}
	got.ChatTitle = "changed"
	if cfg.ChatTitle != "Help" {
		t.Error("FetchConfig() should return a copy")
	}

	if _, err := (StaticFetcher{}).FetchConfig(context.Background()); err == nil {
		t.Error("empty StaticFetcher should fail")
	}
}
