package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestRead_Defaults(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: \"s3cret\"\n")

	cfg, err := read(path)
	if err != nil {
		t.Fatalf("read() error = %v", err)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.JWT.ExpireHours != 100 {
		t.Errorf("JWT.ExpireHours = %d, want 100", cfg.JWT.ExpireHours)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Security.BcryptCost != 10 {
		t.Errorf("Security.BcryptCost = %d, want 10", cfg.Security.BcryptCost)
	}
}

func TestRead_EnvOverride(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 5000\njwt:\n  secret: \"s3cret\"\n")
	t.Setenv("DEVC_SERVER_PORT", "9000")

	cfg, err := read(path)
	if err != nil {
		t.Fatalf("read() error = %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
}

func TestRead_MissingSecret(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 5000\n")

	if _, err := read(path); err == nil {
		t.Error("read() without jwt.secret error = nil, want error")
	}
}

func TestRead_MissingFile(t *testing.T) {
	if _, err := read(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("read() on missing file error = nil, want error")
	}
}

func TestLoad_Once(t *testing.T) {
	first, err := Load(writeConfig(t, "jwt:\n  secret: \"first\"\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	second, err := Load(writeConfig(t, "jwt:\n  secret: \"second\"\n"))
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if first != second || second.JWT.Secret != "first" {
		t.Errorf("second Load() = %+v, want the first config", second.JWT)
	}
}
