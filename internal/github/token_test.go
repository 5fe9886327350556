package github

import (
	"context"
	"testing"
)

func TestResolveAuthTokenExplicitWins(t *testing.T) {
	t.Setenv("GH_TOKEN_PSW", "psw-token")
	t.Setenv("GITHUB_TOKEN", "env-token")

	tok, src, err := ResolveAuthToken(context.Background(), " explicit-token ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok != "explicit-token" || src != AuthTokenSourceExplicit {
		t.Errorf("got (%q, %s), want (explicit-token, explicit)", tok, src)
	}
}

func TestResolveAuthTokenPSWEnvPrecedence(t *testing.T) {
	t.Setenv("GH_TOKEN_PSW", "psw-token")
	t.Setenv("GITHUB_TOKEN", "env-token")

	tok, src, err := ResolveAuthToken(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok != "psw-token" || src != AuthTokenSourcePSWEnv {
		t.Errorf("got (%q, %s), want (psw-token, env:GH_TOKEN_PSW)", tok, src)
	}
}

func TestResolveAuthTokenGitHubTokenFallback(t *testing.T) {
	t.Setenv("GH_TOKEN_PSW", "")
	t.Setenv("GITHUB_TOKEN", "env-token")

	tok, src, err := ResolveAuthToken(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok != "env-token" || src != AuthTokenSourceEnv {
		t.Errorf("got (%q, %s), want (env-token, env:GITHUB_TOKEN)", tok, src)
	}
}

func TestNewClientRequiresContext(t *testing.T) {
	//nolint:staticcheck // explicitly exercising the nil-ctx guard
	if _, err := NewClient(nil, "tok"); err == nil {
		t.Fatal("expected error for nil context")
	}
}
