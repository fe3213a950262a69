package detect

import (
	"strings"
	"testing"

	"github.com/AG66666678/lookcc/internal/core"
)

// clearEnv blanks every variable the detector reads so ambient credentials
// on the test machine cannot leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		"OPENROUTER_API_KEY",
		"OPENAI_API_KEY", "OPENAI_API_BASE", "OPENAI_BASE_URL",
		"ANTHROPIC_AUTH_TOKEN", "ANTHROPIC_BASE_URL",
	} {
		t.Setenv(v, "")
	}
}

func TestAutoDetectEmptyEnvironment(t *testing.T) {
	clearEnv(t)

	result := AutoDetect()
	if len(result.Accounts) != 0 {
		t.Fatalf("accounts = %+v, want none", result.Accounts)
	}
	if !strings.Contains(result.Summary(), "No gateway credentials") {
		t.Errorf("summary = %q", result.Summary())
	}
}

func TestAutoDetectOpenRouterKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "sk-or-v1-abcdef123456")

	result := AutoDetect()
	if len(result.Accounts) != 1 {
		t.Fatalf("accounts count = %d, want 1", len(result.Accounts))
	}

	acct := result.Accounts[0]
	if acct.ID != "openrouter-auto" {
		t.Errorf("ID = %q, want openrouter-auto", acct.ID)
	}
	if acct.Endpoint != "https://openrouter.ai/api/v1" {
		t.Errorf("endpoint = %q", acct.Endpoint)
	}
	if acct.APIKeyEnv != "OPENROUTER_API_KEY" {
		t.Errorf("key env = %q", acct.APIKeyEnv)
	}
	if acct.APIKey != "" {
		t.Error("literal key must not be copied into the account")
	}
}

func TestAutoDetectOpenAIKeyWithoutEndpoint(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test-abcdef123456")

	result := AutoDetect()
	if len(result.Accounts) != 0 {
		t.Fatalf("key without endpoint should be skipped, got %+v", result.Accounts)
	}
}

func TestAutoDetectOpenAIEndpointFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test-abcdef123456")
	t.Setenv("OPENAI_BASE_URL", "https://gw.example.com/v1")

	result := AutoDetect()
	if len(result.Accounts) != 1 {
		t.Fatalf("accounts count = %d, want 1", len(result.Accounts))
	}
	if result.Accounts[0].Endpoint != "https://gw.example.com/v1" {
		t.Errorf("endpoint = %q, want value from OPENAI_BASE_URL", result.Accounts[0].Endpoint)
	}
}

func TestAutoDetectOpenAIEndpointPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test-abcdef123456")
	t.Setenv("OPENAI_API_BASE", "https://primary.example.com/v1")
	t.Setenv("OPENAI_BASE_URL", "https://secondary.example.com/v1")

	result := AutoDetect()
	if len(result.Accounts) != 1 {
		t.Fatalf("accounts count = %d, want 1", len(result.Accounts))
	}
	if result.Accounts[0].Endpoint != "https://primary.example.com/v1" {
		t.Errorf("endpoint = %q, want OPENAI_API_BASE to win", result.Accounts[0].Endpoint)
	}
}

func TestAutoDetectAnthropicGateway(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_AUTH_TOKEN", "sk-ant-abcdef123456")
	t.Setenv("ANTHROPIC_BASE_URL", "https://claude-gw.example.com")

	result := AutoDetect()
	if len(result.Accounts) != 1 {
		t.Fatalf("accounts count = %d, want 1", len(result.Accounts))
	}

	acct := result.Accounts[0]
	if acct.ID != "anthropic-gateway-auto" {
		t.Errorf("ID = %q", acct.ID)
	}
	if acct.APIKeyEnv != "ANTHROPIC_AUTH_TOKEN" {
		t.Errorf("key env = %q", acct.APIKeyEnv)
	}
}

func TestAutoDetectMultipleCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "sk-or-v1-abcdef123456")
	t.Setenv("ANTHROPIC_AUTH_TOKEN", "sk-ant-abcdef123456")
	t.Setenv("ANTHROPIC_BASE_URL", "https://claude-gw.example.com")

	result := AutoDetect()
	if len(result.Accounts) != 2 {
		t.Fatalf("accounts count = %d, want 2", len(result.Accounts))
	}
	if result.Accounts[0].ID != "openrouter-auto" || result.Accounts[1].ID != "anthropic-gateway-auto" {
		t.Errorf("order = %s, %s", result.Accounts[0].ID, result.Accounts[1].ID)
	}

	summary := result.Summary()
	if !strings.Contains(summary, "openrouter-auto") || !strings.Contains(summary, "anthropic-gateway-auto") {
		t.Errorf("summary missing accounts: %q", summary)
	}
}

func TestAddAccountDeduplicates(t *testing.T) {
	var result Result
	addAccount(&result, core.Account{ID: "dup", Endpoint: "https://a.example.com"})
	addAccount(&result, core.Account{ID: "dup", Endpoint: "https://b.example.com"})

	if len(result.Accounts) != 1 {
		t.Fatalf("accounts count = %d, want 1", len(result.Accounts))
	}
	if result.Accounts[0].Endpoint != "https://a.example.com" {
		t.Error("first entry should win")
	}
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"sk-or-v1-abcdef123456", "sk-o...3456"},
		{"short", "****"},
		{"", "****"},
	}
	for _, tt := range tests {
		if got := maskKey(tt.in); got != tt.want {
			t.Errorf("maskKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
