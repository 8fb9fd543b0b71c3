package configuration

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnv_ReadsExistingFiles(t *testing.T) {
	tmp := t.TempDir()
	envFile := filepath.Join(tmp, ".env")
	if err := os.WriteFile(envFile, []byte("STOREFRONT_TEST_ENV_LOAD=ok\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", envFile, err)
	}

	_ = os.Unsetenv("STOREFRONT_TEST_ENV_LOAD")

	n, err := LoadEnv([]string{envFile, filepath.Join(tmp, ".env.local")})
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 env file loaded, got %d", n)
	}
	if got := os.Getenv("STOREFRONT_TEST_ENV_LOAD"); got != "ok" {
		t.Fatalf("expected env var loaded, got %q", got)
	}
}

func TestLoadEnv_NoFiles(t *testing.T) {
	tmp := t.TempDir()

	n, err := LoadEnv([]string{filepath.Join(tmp, ".env")})
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no env files loaded, got %d", n)
	}
}

func TestRateLimitOptions_Validate(t *testing.T) {
	opts := RateLimitOptions{GlobalRPS: -1}
	if err := opts.Validate(); err == nil {
		t.Fatal("expected error for negative GlobalRPS")
	}

	opts.GlobalRPS = 100
	if err := opts.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
