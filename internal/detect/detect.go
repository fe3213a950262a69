// Package detect implements auto-detection of gateway credentials configured
// on the workstation.
package detect

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/AG66666678/lookcc/internal/core"
)

// Result holds the full auto-detection result.
type Result struct {
	Accounts []core.Account
}

// envMapping maps credential environment variables to account templates.
// EndpointEnvs are tried in order; a mapping with a FixedEndpoint needs no
// endpoint variable at all.
var envMapping = []struct {
	KeyEnv        string
	EndpointEnvs  []string
	FixedEndpoint string
	AccountID     string
	Name          string
}{
	{
		KeyEnv:        "OPENROUTER_API_KEY",
		FixedEndpoint: "https://openrouter.ai/api/v1",
		AccountID:     "openrouter-auto",
		Name:          "OpenRouter (env)",
	},
	{
		KeyEnv:       "OPENAI_API_KEY",
		EndpointEnvs: []string{"OPENAI_API_BASE", "OPENAI_BASE_URL"},
		AccountID:    "openai-gateway-auto",
		Name:         "OpenAI gateway (env)",
	},
	{
		KeyEnv:       "ANTHROPIC_AUTH_TOKEN",
		EndpointEnvs: []string{"ANTHROPIC_BASE_URL"},
		AccountID:    "anthropic-gateway-auto",
		Name:         "Anthropic gateway (env)",
	},
}

// AutoDetect scans environment variables for gateway credentials and returns
// auto-generated account entries. Keys are referenced by variable name, never
// copied into the result.
func AutoDetect() Result {
	var result Result

	for _, mapping := range envMapping {
		key := os.Getenv(mapping.KeyEnv)
		if key == "" {
			continue
		}

		endpoint := mapping.FixedEndpoint
		if endpoint == "" {
			for _, envVar := range mapping.EndpointEnvs {
				if v := os.Getenv(envVar); v != "" {
					endpoint = v
					break
				}
			}
		}
		if endpoint == "" {
			log.Printf("[detect] Found %s=%s but no endpoint in %s, skipping",
				mapping.KeyEnv, maskKey(key), strings.Join(mapping.EndpointEnvs, "/"))
			continue
		}

		log.Printf("[detect] Found %s=%s with endpoint %s", mapping.KeyEnv, maskKey(key), endpoint)

		addAccount(&result, core.Account{
			ID:        mapping.AccountID,
			Name:      mapping.Name,
			APIKeyEnv: mapping.KeyEnv,
			Endpoint:  endpoint,
		})
	}

	return result
}

// maskKey shortens a key for logging.
func maskKey(val string) string {
	if len(val) < 10 {
		return "****"
	}
	return val[:4] + "..." + val[len(val)-4:]
}

// addAccount adds a new account if one with the same ID doesn't already exist.
func addAccount(result *Result, acct core.Account) {
	for _, existing := range result.Accounts {
		if existing.ID == acct.ID {
			return
		}
	}
	result.Accounts = append(result.Accounts, acct)
}

// Summary returns a human-readable summary of what was detected.
func (r Result) Summary() string {
	var sb strings.Builder
	if len(r.Accounts) == 0 {
		sb.WriteString("No gateway credentials detected in the environment.\n")
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("Auto-configured %d account(s):\n", len(r.Accounts)))
	for _, a := range r.Accounts {
		sb.WriteString(fmt.Sprintf("  • %s (key from %s, endpoint %s)\n", a.ID, a.APIKeyEnv, a.Endpoint))
	}
	return sb.String()
}
