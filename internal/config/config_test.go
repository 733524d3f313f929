package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingDefaultFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 5001 {
		t.Fatalf("port = %d, want 5001", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Fatal("defaults should be development mode")
	}
	if cfg.Database.Driver != "mysql" {
		t.Fatalf("driver = %q", cfg.Database.Driver)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("explicit missing file must fail")
	}
}

func TestLoadOverridesAndValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := []byte(`
port: 8080
env: production
jwt_secret: topsecret
database:
  driver: sqlite
  path: notes.db
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 || cfg.IsDev() {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.Path != "notes.db" {
		t.Fatalf("database = %+v", cfg.Database)
	}
	// Untouched keys keep their defaults.
	if cfg.RedisURL == "" {
		t.Fatal("redis url default lost")
	}

	bad := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(bad, []byte("port: 99999\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Fatal("out-of-range port must fail validation")
	}
}

func TestMySQLDSN(t *testing.T) {
	db := DatabaseConfig{
		User: "root", Password: "pw", Host: "db", Port: 3306,
		Name: "inknote", Charset: "utf8mb4",
	}
	want := "root:pw@tcp(db:3306)/inknote?charset=utf8mb4&parseTime=True&loc=Local"
	if got := db.MySQLDSN(); got != want {
		t.Fatalf("dsn = %q, want %q", got, want)
	}

	db.DSN = "verbatim"
	if got := db.MySQLDSN(); got != "verbatim" {
		t.Fatalf("dsn = %q, want verbatim override", got)
	}
}
