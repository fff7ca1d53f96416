package internal

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type stubFetcher struct {
	cfg   *WidgetConfig
	err   error
	calls int
}

func (f *stubFetcher) FetchConfig(context.Context) (*WidgetConfig, error) {
	f.calls++
	return f.cfg, f.err
}

func TestLoadConfigSuccess(t *testing.T) {
	f := &stubFetcher{cfg: &WidgetConfig{ChatTitle: "Help", PrimaryColor: "#123456", Position: "top-left"}}

	cfg, degraded := LoadConfig(context.Background(), f)
	if degraded {
		t.Error("LoadConfig() should not be degraded on success")
	}
	if cfg.ChatTitle != "Help" {
		t.Errorf("ChatTitle = %q", cfg.ChatTitle)
	}
	if f.calls != 1 {
		t.Errorf("fetch calls = %d, want 1", f.calls)
	}
}

func TestLoadConfigFailureDegrades(t *testing.T) {
	f := &stubFetcher{
		cfg: &WidgetConfig{ChatTitle: "partial"},
		err: &ConfigError{URL: "u", Op: "decode", Err: errors.New("unexpected EOF")},
	}

	cfg, degraded := LoadConfig(context.Background(), f)
	if !degraded {
		t.Error("LoadConfig() should be degraded on failure")
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("LoadConfig() = %+v, want DefaultConfig()", cfg)
	}
	if f.calls != 1 {
		t.Errorf("fetch calls = %d, want no retry", f.calls)
	}
}
