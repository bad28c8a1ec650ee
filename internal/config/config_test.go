package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("expected default driver postgres, got %s", cfg.Database.Driver)
	}
	if cfg.Database.Host != "db" {
		t.Errorf("expected default host db, got %s", cfg.Database.Host)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("expected default port 5432, got %d", cfg.Database.Port)
	}
	if cfg.Database.Name != "genealogy" || cfg.Database.User != "genealogy" {
		t.Errorf("expected genealogy defaults, got %s/%s", cfg.Database.Name, cfg.Database.User)
	}
	if cfg.Attachments.Dir != "/attachments" {
		t.Errorf("expected default attachments dir /attachments, got %s", cfg.Attachments.Dir)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("ATTACHMENTS_DIR", "/data/files")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("expected driver sqlite, got %s", cfg.Database.Driver)
	}
	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("expected overridden path, got %s", cfg.Database.Path)
	}
	if cfg.Database.Port != 5433 {
		t.Errorf("expected port 5433, got %d", cfg.Database.Port)
	}
	if cfg.Attachments.Dir != "/data/files" {
		t.Errorf("expected overridden attachments dir, got %s", cfg.Attachments.Dir)
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestDSN(t *testing.T) {
	pg := DatabaseConfig{
		Driver: DriverPostgres, Host: "db", Port: 5432,
		Name: "genealogy", User: "u", Password: "p",
	}
	want := "postgres://u:p@db:5432/genealogy?sslmode=disable"
	if got := pg.DSN(); got != want {
		t.Errorf("postgres DSN mismatch: got %s, want %s", got, want)
	}

	lite := DatabaseConfig{Driver: DriverSQLite, Path: "/tmp/x.db"}
	if got := lite.DSN(); got != "/tmp/x.db" {
		t.Errorf("sqlite DSN should be the path, got %s", got)
	}
}
