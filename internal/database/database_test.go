package database

import (
	"path/filepath"
	"testing"

	"spendlog/internal/config"
	"spendlog/internal/models"
)

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "spend", SSLMode: "disable"}

	want := "host=db port=5432 user=u password=p dbname=spend sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestConfig_MigrateURL(t *testing.T) {
	cfg := &Config{Host: "db", Port: "5432", User: "u", Password: "p@ss", DBName: "spend", SSLMode: "require"}

	want := "postgres://u:p%40ss@db:5432/spend?sslmode=require"
	if got := cfg.MigrateURL(); got != want {
		t.Errorf("MigrateURL() = %q, want %q", got, want)
	}
}

func TestNewManager_SQLite(t *testing.T) {
	cfg := &Config{
		Driver:     config.BackendSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "nested", "spendlog.db"),
	}

	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	defer m.Close()

	if err := m.Prepare(); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if !m.DB().Migrator().HasTable(&models.Expense{}) {
		t.Error("expected expenses table to exist")
	}
	if !m.DB().Migrator().HasTable(&models.User{}) {
		t.Error("expected users table to exist")
	}
}

func TestNewManager_UnsupportedDriver(t *testing.T) {
	if _, err := NewManager(&Config{Driver: "oracle"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
