package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AG66666678/lookcc/internal/core"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.UI.RefreshIntervalSeconds != 60 {
		t.Errorf("default refresh = %d, want 60", cfg.UI.RefreshIntervalSeconds)
	}
	if cfg.UI.WarnThreshold != 0.20 {
		t.Errorf("default warn = %f, want 0.20", cfg.UI.WarnThreshold)
	}
	if cfg.UI.CritThreshold != 0.05 {
		t.Errorf("default crit = %f, want 0.05", cfg.UI.CritThreshold)
	}
	if !cfg.AutoDetect {
		t.Error("auto detect should default to on")
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UI.RefreshIntervalSeconds != 60 {
		t.Error("should return defaults for missing file")
	}
}

func TestLoadFromValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	content := `{
  "ui": {
    "refresh_interval_seconds": 10,
    "warn_threshold": 0.30,
    "crit_threshold": 0.10
  },
  "accounts": [
    {"id": "gateway-main", "api_key_env": "GATEWAY_KEY", "endpoint": "https://gw.example.com"},
    {"id": "openrouter-work", "api_key": "sk-or-abc", "endpoint": "https://openrouter.ai/api/v1"}
  ]
}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.UI.RefreshIntervalSeconds != 10 {
		t.Errorf("refresh = %d, want 10", cfg.UI.RefreshIntervalSeconds)
	}
	if cfg.UI.WarnThreshold != 0.30 {
		t.Errorf("warn = %f, want 0.30", cfg.UI.WarnThreshold)
	}
	if len(cfg.Accounts) != 2 {
		t.Fatalf("accounts count = %d, want 2", len(cfg.Accounts))
	}
	if cfg.Accounts[0].ID != "gateway-main" {
		t.Errorf("first account ID = %s, want gateway-main", cfg.Accounts[0].ID)
	}
	if cfg.Accounts[1].Endpoint != "https://openrouter.ai/api/v1" {
		t.Errorf("second endpoint = %s", cfg.Accounts[1].Endpoint)
	}
}

func TestLoadFromClampsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	content := `{"ui": {"refresh_interval_seconds": -5, "warn_threshold": 0, "crit_threshold": -1}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.UI.RefreshIntervalSeconds != 60 {
		t.Errorf("refresh = %d, want clamped to 60", cfg.UI.RefreshIntervalSeconds)
	}
	if cfg.UI.WarnThreshold != 0.20 {
		t.Errorf("warn = %f, want clamped to 0.20", cfg.UI.WarnThreshold)
	}
	if cfg.UI.CritThreshold != 0.05 {
		t.Errorf("crit = %f, want clamped to 0.05", cfg.UI.CritThreshold)
	}
}

func TestLoadFromInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if cfg.UI.RefreshIntervalSeconds != 60 {
		t.Error("invalid file should yield defaults alongside the error")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	want := DefaultConfig()
	want.UI.RefreshIntervalSeconds = 15
	want.Accounts = []core.Account{{ID: "gw", APIKey: "sk-1", Endpoint: "https://gw.example.com"}}

	if err := SaveTo(path, want); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if got.UI.RefreshIntervalSeconds != 15 {
		t.Errorf("refresh = %d, want 15", got.UI.RefreshIntervalSeconds)
	}
	if len(got.Accounts) != 1 || got.Accounts[0].ID != "gw" {
		t.Errorf("accounts = %+v", got.Accounts)
	}
}

func TestSaveAutoDetectedPreservesConfigured(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	cfg := DefaultConfig()
	cfg.Accounts = []core.Account{{ID: "manual", APIKey: "sk-m", Endpoint: "https://gw.example.com"}}
	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	detected := []core.Account{{ID: "openrouter-auto", APIKeyEnv: "OPENROUTER_API_KEY", Endpoint: "https://openrouter.ai/api/v1"}}
	if err := SaveAutoDetectedTo(path, detected); err != nil {
		t.Fatalf("SaveAutoDetectedTo() error: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if len(got.Accounts) != 1 || got.Accounts[0].ID != "manual" {
		t.Errorf("configured accounts lost: %+v", got.Accounts)
	}
	if len(got.AutoDetectedAccounts) != 1 || got.AutoDetectedAccounts[0].ID != "openrouter-auto" {
		t.Errorf("auto-detected accounts = %+v", got.AutoDetectedAccounts)
	}
}

func TestEffectiveAccounts(t *testing.T) {
	dir := t.TempDir()
	credPath := filepath.Join(dir, "credentials.json")
	if err := SaveCredentialTo(credPath, "stored", "sk-from-store"); err != nil {
		t.Fatalf("SaveCredentialTo() error: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Accounts = []core.Account{
		{ID: "stored", Endpoint: "https://gw.example.com"},
		{ID: "literal", APIKey: "sk-lit", Endpoint: "https://gw2.example.com"},
	}
	cfg.AutoDetectedAccounts = []core.Account{
		{ID: "stored", Endpoint: "https://shadowed.example.com"},
		{ID: "env-only", APIKeyEnv: "SOME_KEY", Endpoint: "https://gw3.example.com"},
	}

	accounts, err := effectiveAccountsFrom(cfg, credPath)
	if err != nil {
		t.Fatalf("effectiveAccountsFrom() error: %v", err)
	}

	if len(accounts) != 3 {
		t.Fatalf("accounts count = %d, want 3", len(accounts))
	}
	if accounts[0].ID != "stored" || accounts[0].APIKey != "sk-from-store" {
		t.Errorf("stored account = %+v, want key from credentials store", accounts[0])
	}
	if accounts[0].Endpoint != "https://gw.example.com" {
		t.Error("configured account should win over auto-detected duplicate")
	}
	if accounts[1].APIKey != "sk-lit" {
		t.Error("literal key should pass through untouched")
	}
	if accounts[2].APIKey != "" || accounts[2].APIKeyEnv != "SOME_KEY" {
		t.Errorf("env account = %+v, want env name kept and no literal key", accounts[2])
	}
}
