// cliparse/cliparse_test.go
package cliparse

import (
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("VOTER_HASH_SALT", "test-salt")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.AllowedOrigin != "*" {
		t.Errorf("expected default origin *, got %s", cfg.AllowedOrigin)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("VOTER_HASH_SALT", "test-salt")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_DefaultPort(t *testing.T) {
	t.Setenv("VOTER_HASH_SALT", "test-salt")

	cfg, err := ParseFlags([]string{"-d", "file:test.db"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 5000 {
		t.Errorf("expected default port 5000, got %d", cfg.Port)
	}
}

func TestParseFlags_MissingDatabaseURL(t *testing.T) {
	t.Setenv("VOTER_HASH_SALT", "test-salt")

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error for missing database URL")
	}
}

func TestParseFlags_MissingSalt(t *testing.T) {
	if _, err := ParseFlags([]string{"-d", "file:test.db"}); err == nil {
		t.Error("expected error for missing voter hash salt")
	}
}

func TestParseFlags_BadDatabaseType(t *testing.T) {
	t.Setenv("VOTER_HASH_SALT", "test-salt")

	if _, err := ParseFlags([]string{"-d", "file:test.db", "-t", "mongo"}); err == nil {
		t.Error("expected error for unsupported database type")
	}
}
