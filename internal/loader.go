package internal

import "context"

// ConfigFetcher fetches the tenant config once
type ConfigFetcher interface {
	FetchConfig(ctx context.Context) (*WidgetConfig, error)
}

// LoadConfig runs the one-shot config fetch. On any failure it logs the
// cause and returns DefaultConfig with degraded set; a partially fetched
// config is never returned. There is no retry and no cache.
func LoadConfig(ctx context.Context, f ConfigFetcher) (cfg WidgetConfig, degraded bool) {
	fetched, err := f.FetchConfig(ctx)
	if err != nil {
		LogError("Support AI Widget: %v", err)
		return DefaultConfig(), true
	}
	LogDebug("Loaded widget config %q (position %s)", fetched.ChatTitle, fetched.Position)
	return *fetched, false
}
