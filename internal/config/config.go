package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/AG66666678/lookcc/internal/core"
)

type UIConfig struct {
	RefreshIntervalSeconds int     `json:"refresh_interval_seconds"`
	WarnThreshold          float64 `json:"warn_threshold"`
	CritThreshold          float64 `json:"crit_threshold"`
}

type Config struct {
	UI                   UIConfig       `json:"ui"`
	AutoDetect           bool           `json:"auto_detect"`
	Accounts             []core.Account `json:"accounts"`
	AutoDetectedAccounts []core.Account `json:"auto_detected_accounts"`
}

func DefaultConfig() Config {
	return Config{
		AutoDetect: true,
		UI: UIConfig{
			RefreshIntervalSeconds: 60,
			WarnThreshold:          0.20,
			CritThreshold:          0.05,
		},
	}
}

func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "lookcc")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "lookcc")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "settings.json")
}

func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.UI.RefreshIntervalSeconds <= 0 {
		cfg.UI.RefreshIntervalSeconds = 60
	}
	if cfg.UI.WarnThreshold <= 0 {
		cfg.UI.WarnThreshold = 0.20
	}
	if cfg.UI.CritThreshold <= 0 {
		cfg.UI.CritThreshold = 0.05
	}

	return cfg, nil
}

// saveMu guards read-modify-write cycles on the config file.
var saveMu sync.Mutex

func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

func SaveTo(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// SaveAutoDetected persists auto-detected accounts into the config file
// (read-modify-write).
func SaveAutoDetected(accounts []core.Account) error {
	return SaveAutoDetectedTo(ConfigPath(), accounts)
}

func SaveAutoDetectedTo(path string, accounts []core.Account) error {
	saveMu.Lock()
	defer saveMu.Unlock()

	cfg, err := LoadFrom(path)
	if err != nil {
		cfg = DefaultConfig()
	}
	cfg.AutoDetectedAccounts = accounts
	return SaveTo(path, cfg)
}

// EffectiveAccounts merges configured and auto-detected accounts, then fills
// in API keys from the credentials store for accounts that carry neither a
// literal key nor an env var name. The merged accounts are usable even when
// the credentials store fails to load; the error is reported alongside.
func EffectiveAccounts(cfg Config) ([]core.Account, error) {
	return effectiveAccountsFrom(cfg, CredentialsPath())
}

func effectiveAccountsFrom(cfg Config, credPath string) ([]core.Account, error) {
	accounts := core.MergeAccounts(cfg.Accounts, cfg.AutoDetectedAccounts)
	creds, err := LoadCredentialsFrom(credPath)
	if err != nil {
		return accounts, err
	}
	return creds.Apply(accounts), nil
}
