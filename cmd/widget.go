package cmd

import (
	"context"
	"fmt"

	"github.com/iksnae/support-widget/internal"
)

// resolveSettings layers flags over the environment
func resolveSettings() internal.Settings {
	return internal.SettingsFromEnv().Merge(internal.Settings{
		APIKey:      apiKey,
		BaseURL:     apiURL,
		Origin:      origin,
		StoragePath: storagePath,
	}).Normalize()
}

// openSessionStore opens the persistent session store, or an in-memory one
// when ephemeral is set. The returned func releases the database.
func openSessionStore(settings internal.Settings, ephemeral bool) (internal.SessionStore, func(), error) {
	if ephemeral {
		return internal.NewMemorySessionStore(""), func() {}, nil
	}

	path := settings.StoragePath
	if path == "" {
		var err error
		path, err = internal.DefaultStoragePath()
		if err != nil {
			return nil, nil, err
		}
	}

	db, err := internal.OpenDatabase(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open session storage: %w", err)
	}
	internal.LogDebug("Using session storage %s for %s", path, settings.Origin)

	closeDB := func() {
		if err := db.Close(); err != nil {
			internal.LogWarn("Failed to close session storage: %v", err)
		}
	}
	return internal.NewSQLiteSessionStore(internal.NewStorage(db), settings.Origin), closeDB, nil
}

// mountWidget mounts a widget, serving the config from configFile instead
// of the backend when one is given
func mountWidget(ctx context.Context, settings internal.Settings, sessions internal.SessionStore, configFile string) (*internal.Widget, error) {
	var opts internal.Options
	if configFile != "" {
		cfg, err := internal.LoadConfigFile(configFile)
		if err != nil {
			return nil, err
		}
		opts.Fetcher = internal.StaticFetcher{Config: cfg}
	}
	return internal.Mount(ctx, settings, sessions, opts)
}
