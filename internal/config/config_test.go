package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/oauth2"
)

func TestNew_BackendURLFromEnv(t *testing.T) {
	t.Setenv(BackendURLEnv, " http://localhost:8001/ ")

	cfg, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BackendURL != "http://localhost:8001" {
		t.Errorf("expected %q, got %q", "http://localhost:8001", cfg.BackendURL)
	}
}

func TestNew_BackendURLFromDotenv(t *testing.T) {
	t.Setenv(BackendURLEnv, "")
	dir := t.TempDir()
	content := "# backend\n" + BackendURLEnv + "=https://tasks.example.com\n"
	if err := os.WriteFile(filepath.Join(dir, EnvFile), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BackendURL != "https://tasks.example.com" {
		t.Errorf("expected dotenv URL, got %q", cfg.BackendURL)
	}
}

func TestNew_EnvironmentWinsOverDotenv(t *testing.T) {
	t.Setenv(BackendURLEnv, "http://env")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, EnvFile), []byte(BackendURLEnv+"=http://file\n"), 0600); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BackendURL != "http://env" {
		t.Errorf("expected %q, got %q", "http://env", cfg.BackendURL)
	}
}

func TestRequireBackendURL(t *testing.T) {
	t.Setenv(BackendURLEnv, "")

	cfg, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !errors.Is(cfg.RequireBackendURL(), ErrNoBackendURL) {
		t.Errorf("expected ErrNoBackendURL, got %v", cfg.RequireBackendURL())
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigDir(); got != filepath.Join("/tmp/xdg", AppName) {
		t.Errorf("unexpected config dir %q", got)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := &Config{Dir: filepath.Join(t.TempDir(), "nested")}

	if cfg.HasToken() {
		t.Fatal("expected no token")
	}
	if err := cfg.SaveToken(&oauth2.Token{AccessToken: "abc", TokenType: "Bearer"}); err != nil {
		t.Fatalf("failed to save token: %v", err)
	}
	info, err := os.Stat(cfg.TokenPath())
	if err != nil {
		t.Fatalf("token file missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}

	token, err := cfg.LoadToken()
	if err != nil {
		t.Fatalf("failed to load token: %v", err)
	}
	if token.AccessToken != "abc" {
		t.Errorf("expected access token %q, got %q", "abc", token.AccessToken)
	}

	if err := cfg.RemoveToken(); err != nil {
		t.Fatalf("failed to remove token: %v", err)
	}
	if cfg.HasToken() {
		t.Error("expected token to be removed")
	}
}

func TestLoadToken_Empty(t *testing.T) {
	cfg := &Config{Dir: t.TempDir()}
	if err := os.WriteFile(cfg.TokenPath(), []byte(`{"token_type":"Bearer"}`), 0600); err != nil {
		t.Fatalf("failed to write token: %v", err)
	}
	if _, err := cfg.LoadToken(); err == nil {
		t.Error("expected error for token without access token")
	}
}
