package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.ServerPort)
	}
	if cfg.DB.Driver != "postgres" {
		t.Errorf("expected postgres driver, got %s", cfg.DB.Driver)
	}
	if cfg.Uploads.URLPrefix != "/uploads" {
		t.Errorf("unexpected upload prefix %s", cfg.Uploads.URLPrefix)
	}
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := `
serverPort: "9000"
db:
  driver: sqlite
  sqlitePath: /tmp/x.db
uploads:
  dir: /srv/uploads
redis:
  addr: localhost:6379
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("UPLOAD_DIR", "/var/uploads")
	t.Setenv("ALLOWED_ORIGINS", "http://a, http://b ,")

	cfg, err := Load([]string{"-port", "7000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerPort != "7000" {
		t.Errorf("flag should win, got %s", cfg.ServerPort)
	}
	if cfg.DB.Driver != "sqlite" || cfg.DB.SQLitePath != "/tmp/x.db" {
		t.Errorf("file values not applied: %+v", cfg.DB)
	}
	if cfg.Uploads.Dir != "/var/uploads" {
		t.Errorf("env should override file, got %s", cfg.Uploads.Dir)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "http://a" || cfg.AllowedOrigins[1] != "http://b" {
		t.Errorf("expected 2 trimmed origins, got %q", cfg.AllowedOrigins)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.Channel != "totem:events" {
		t.Errorf("unexpected redis config: %+v", cfg.Redis)
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DB_DRIVER", "mysql")
	if _, err := Load(nil); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestLoadRejectsEmptyOrigins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("allowedOrigins: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("ALLOWED_ORIGINS", "")

	if _, err := Load(nil); err == nil {
		t.Fatal("expected error for empty allowed origins")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load([]string{"-config", filepath.Join(t.TempDir(), "nope.yaml")}); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadDotenvFile(t *testing.T) {
	if _, ok := os.LookupEnv("JWT_SECRET"); ok {
		t.Skip("JWT_SECRET already set in the environment")
	}
	t.Setenv("CONFIG_PATH", "")
	t.Cleanup(func() { os.Unsetenv("JWT_SECRET") })

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("JWT_SECRET=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load([]string{"-env-file", path})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Admin.JWTSecret != "from-dotenv" {
		t.Errorf("Expected JWT secret from dotenv, got %q", cfg.Admin.JWTSecret)
	}
}
