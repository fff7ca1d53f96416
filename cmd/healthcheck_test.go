package cmd

import (
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/support-widget/testutil"
)

func TestHealthcheckCommand(t *testing.T) {
	out, err := execute(t, "healthcheck", "--help")
	if err != nil {
		t.Fatalf("healthcheck command failed: %v", err)
	}
	if out == "" {
		t.Error("healthcheck --help should produce output")
	}
}

func TestHealthcheckVerboseFlag(t *testing.T) {
	if healthcheckCmd.Flag("verbose") == nil {
		t.Error("healthcheck command should have --verbose flag")
	}
	if healthcheckCmd.Flags().ShorthandLookup("v") == nil {
		t.Error("healthcheck command should have -v flag")
	}
}

func TestHealthcheckPasses(t *testing.T) {
	api := testutil.NewMockAPI(t)
	storage := filepath.Join(t.TempDir(), "storage.db")

	out, err := execute(t, "healthcheck", "--verbose", "--api-key", "k", "--api-url", api.URL, "--storage", storage)
	if err != nil {
		t.Fatalf("healthcheck failed: %v\n%s", err, out)
	}
	for _, want := range []string{"API key configured", "Session storage ready", `Config loaded: "Help"`, "Stylesheet served", "Health check passed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestHealthcheckConfigFailure(t *testing.T) {
	api := testutil.NewMockAPI(t)
	api.SetConfig(http.StatusForbidden, `{"detail":"invalid key"}`)

	out, err := execute(t, "healthcheck", "--api-key", "bad", "--api-url", api.URL, "--storage", filepath.Join(t.TempDir(), "s.db"))
	if err == nil {
		t.Fatal("healthcheck should fail when the config cannot be loaded")
	}
	if !strings.Contains(out, "Config fetch failed") {
		t.Errorf("output missing config failure\n%s", out)
	}
}

func TestHealthcheckMissingKey(t *testing.T) {
	_, err := execute(t, "healthcheck")
	if err == nil || !strings.Contains(err.Error(), "missing API key") {
		t.Errorf("healthcheck without key error = %v", err)
	}
}
