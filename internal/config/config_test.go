package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const minimalYAML = `
storage:
  dsn: "postgres://localhost/test"
jwt:
  secret: "s3cret"
`

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeYAML(t, minimalYAML))
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.JWT.Issuer != "taskforge" {
		t.Errorf("issuer = %q", cfg.JWT.Issuer)
	}
	if cfg.AccessTTL() != 24*time.Hour {
		t.Errorf("access ttl = %v", cfg.AccessTTL())
	}
	if cfg.TenantTTL() != 30*time.Second {
		t.Errorf("tenant ttl = %v", cfg.TenantTTL())
	}
	if cfg.Rate.Login.Limit != 10 || cfg.LoginWindow() != time.Minute {
		t.Errorf("rate defaults: %d / %v", cfg.Rate.Login.Limit, cfg.LoginWindow())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_ACCESS_TTL", "1h")
	t.Setenv("RATE_ENABLED", "true")

	cfg, err := Load(writeYAML(t, minimalYAML))
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Error("JWT_SECRET no pisó el YAML")
	}
	if cfg.AccessTTL() != time.Hour {
		t.Errorf("access ttl = %v", cfg.AccessTTL())
	}
	if !cfg.Rate.Enabled {
		t.Error("RATE_ENABLED no aplicado")
	}
}

func TestLoad_RequiredFields(t *testing.T) {
	if _, err := Load(writeYAML(t, `jwt: {secret: s}`)); err == nil {
		t.Error("sin DSN debe fallar")
	}
	if _, err := Load(writeYAML(t, `storage: {dsn: x}`)); err == nil {
		t.Error("sin secret debe fallar")
	}
	if _, err := Load(writeYAML(t, minimalYAML+"\n  access_ttl: nope\n")); err == nil {
		t.Error("duración inválida debe fallar")
	}
}
