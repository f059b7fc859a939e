package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWhenDefaultFileMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DefaultModel != DefaultModel {
		t.Errorf("DefaultModel = %q, want %q", cfg.DefaultModel, DefaultModel)
	}
	if cfg.MaxInputLength != DefaultMaxInputLength {
		t.Errorf("MaxInputLength = %d, want %d", cfg.MaxInputLength, DefaultMaxInputLength)
	}
	if cfg.Provider != DefaultProvider {
		t.Errorf("Provider = %q, want %q", cfg.Provider, DefaultProvider)
	}
	if !strings.HasSuffix(cfg.StorePath, filepath.Join(".config", "gemini", "commands.json")) {
		t.Errorf("unexpected StorePath %q", cfg.StorePath)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadOverridesAndRelativeStore(t *testing.T) {
	path := writeConfig(t, `
default_model = "gemini-2.5-pro"
max_input_length = 2000
store_path = "cmds.json"
log_level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DefaultModel != "gemini-2.5-pro" {
		t.Errorf("DefaultModel = %q", cfg.DefaultModel)
	}
	if cfg.MaxInputLength != 2000 {
		t.Errorf("MaxInputLength = %d", cfg.MaxInputLength)
	}
	if want := filepath.Join(filepath.Dir(path), "cmds.json"); cfg.StorePath != want {
		t.Errorf("StorePath = %q, want %q", cfg.StorePath, want)
	}
	if cfg.Provider != DefaultProvider {
		t.Errorf("Provider should keep default, got %q", cfg.Provider)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"negative max", "max_input_length = -1", "max_input_length"},
		{"empty model", `default_model = ""`, "default_model"},
		{"unset api key var", `api_key = "${GEMRUN_TEST_UNSET_KEY}"`, "GEMRUN_TEST_UNSET_KEY"},
		{"bad toml", "default_model = ", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestGetAPIKeyExpandsEnv(t *testing.T) {
	t.Setenv("GEMRUN_TEST_KEY", "secret")
	cfg := &Config{APIKey: "${GEMRUN_TEST_KEY}"}

	if got := cfg.GetAPIKey(); got != "secret" {
		t.Errorf("GetAPIKey() = %q, want %q", got, "secret")
	}
	if got := (&Config{}).GetAPIKey(); got != "" {
		t.Errorf("empty APIKey should expand to empty, got %q", got)
	}
}
