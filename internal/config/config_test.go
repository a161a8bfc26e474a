package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadFilePartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "[display]\ncurrency_symbol = \"€\"\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Display.CurrencySymbol != "€" {
		t.Errorf("currency = %q, want €", cfg.Display.CurrencySymbol)
	}
	if cfg.General.Backend != "sqlite" || cfg.Display.Theme != "flexoki-dark" || cfg.Log.Level != "warn" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadFileRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[general\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	want := DefaultConfig()
	want.General.DataDir = "/tmp/mm"
	want.General.Backend = "file"
	want.Display.Theme = "tokyo-night"

	if err := SaveFile(path, want); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDataDir, "/data")
	t.Setenv(EnvBackend, "FILE")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvCurrency, "£")

	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	if cfg.General.DataDir != "/data" || cfg.General.Backend != "file" ||
		cfg.Log.Level != "debug" || cfg.Display.CurrencySymbol != "£" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadUsesXDGAndDotenv(t *testing.T) {
	cfgHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)
	// Registers restoration of the variable, then leaves it unset so .env applies.
	t.Setenv(EnvBackend, "")
	_ = os.Unsetenv(EnvBackend)

	if err := SaveFile(filepath.Join(cfgHome, "moneymoves", "config.toml"), DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after save")
	}

	work := t.TempDir()
	if err := os.WriteFile(filepath.Join(work, ".env"), []byte(EnvBackend+"=memory\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(work)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.Backend != "memory" {
		t.Errorf("backend = %q, want memory from .env", cfg.General.Backend)
	}
}

func TestResolvedDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg")
	cfg := DefaultConfig()
	if got := cfg.ResolvedDataDir(); got != filepath.Join("/xdg", "moneymoves") {
		t.Errorf("ResolvedDataDir = %q", got)
	}
	cfg.General.DataDir = "/mine"
	if got := cfg.ResolvedDataDir(); got != "/mine" {
		t.Errorf("ResolvedDataDir = %q, want /mine", got)
	}
}

func TestNamespaceDefaultsToStore(t *testing.T) {
	if ns := DefaultConfig().General.Namespace; ns != "" {
		t.Errorf("default namespace = %q, want empty", ns)
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveFile(path, DefaultConfig()); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "namespace") {
		t.Errorf("saved config pins a namespace:\n%s", data)
	}
}
