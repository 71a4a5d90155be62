package config

import (
	"os"
	"path/filepath"
	"testing"

	_ "github.com/restgate/registry-engine/pkg/adapters/dbprofile/postgres"
	_ "github.com/restgate/registry-engine/pkg/adapters/dbprofile/sqlite"
)

func writeConfig(t *testing.T, dir, env, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "config."+env+".yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_SelectsFileByEnv(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "dev", `
port: "9000"
database:
  profile: SQL_LCL
  path: /tmp/dev.db
`)
	chdir(t, dir)
	t.Setenv("ENV", "dev")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "dev" {
		t.Errorf("Env = %q, want dev", cfg.Env)
	}
	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.Database.Profile != "SQL_LCL" {
		t.Errorf("Profile = %q, want SQL_LCL", cfg.Database.Profile)
	}
}

func TestLoad_DefaultsToProd(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "prod", `
database:
  profile: POS_LCL
`)
	chdir(t, dir)
	t.Setenv("ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "prod" {
		t.Errorf("absent ENV must select prod, got %q", cfg.Env)
	}
	if cfg.Port != "8000" {
		t.Errorf("default Port = %q, want 8000", cfg.Port)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "dev", `
port: "9000"
database:
  profile: POS_LCL
`)
	chdir(t, dir)
	t.Setenv("ENV", "dev")
	t.Setenv("PORT", "9100")
	t.Setenv("DB_PASSWORD", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9100" {
		t.Errorf("env var must override YAML, got %q", cfg.Port)
	}
	if cfg.Database.Password != "from-env" {
		t.Error("password must come from environment")
	}
}

func TestLoad_UnknownProfileFails(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "dev", `
database:
  profile: POS_XYZ
`)
	chdir(t, dir)
	t.Setenv("ENV", "dev")

	if _, err := Load(); err == nil {
		t.Fatal("unknown profile must be a load error")
	}
}

func TestLoad_MissingFileFails(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ENV", "nonexistent")

	if _, err := Load(); err == nil {
		t.Fatal("missing config file must be a load error")
	}
}

func TestLoad_ParsesCORSOrigins(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "dev", `
cors:
  allow_origins: "https://a.example.com, https://b.example.com"
database:
  profile: POS_LCL
`)
	chdir(t, dir)
	t.Setenv("ENV", "dev")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.CORS.AllowOrigins) != len(want) {
		t.Fatalf("AllowOrigins = %v", cfg.CORS.AllowOrigins)
	}
	for i := range want {
		if cfg.CORS.AllowOrigins[i] != want[i] {
			t.Errorf("AllowOrigins[%d] = %q, want %q", i, cfg.CORS.AllowOrigins[i], want[i])
		}
	}
}
