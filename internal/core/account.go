package core

import (
	"os"
	"strings"
)

// Account holds the credentials for one gateway account. Credentials are
// immutable inputs to a detection session; nothing in this package mutates
// or caches them between refreshes.
type Account struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	APIKey    string `json:"api_key,omitempty"`
	APIKeyEnv string `json:"api_key_env,omitempty"`
	Endpoint  string `json:"endpoint,omitempty"`
}

// ResolveAPIKey returns the literal key when set, otherwise the value of
// the configured environment variable.
func (a Account) ResolveAPIKey() string {
	if a.APIKey != "" {
		return a.APIKey
	}
	if a.APIKeyEnv != "" {
		return os.Getenv(a.APIKeyEnv)
	}
	return ""
}

// DisplayName returns the human-facing label for the account.
func (a Account) DisplayName() string {
	if strings.TrimSpace(a.Name) != "" {
		return a.Name
	}
	return a.ID
}

// MergeAccounts combines configured and auto-detected accounts. Configured
// entries win on ID collisions; order is preserved, configured first.
// Entries without an ID are dropped.
func MergeAccounts(configured, detected []Account) []Account {
	out := make([]Account, 0, len(configured)+len(detected))
	seen := make(map[string]bool, len(configured))
	for _, group := range [][]Account{configured, detected} {
		for _, a := range group {
			if a.ID == "" || seen[a.ID] {
				continue
			}
			seen[a.ID] = true
			out = append(out, a)
		}
	}
	return out
}
