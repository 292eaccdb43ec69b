package db

import (
	"testing"

	"github.com/pocketledger/backend/config"
	"github.com/pocketledger/backend/internal/integration/persistence/model"
)

func TestOpen_SQLiteBackend(t *testing.T) {
	cfg := &config.Config{
		Storage: config.StorageConfig{Backend: config.BackendSQLite, SQLitePath: ":memory:"},
	}

	database, err := Open(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer database.Close()

	if database.Backend() != config.BackendSQLite {
		t.Errorf("expected sqlite backend, got %s", database.Backend())
	}
	if !database.HealthCheck() {
		t.Error("expected healthy database")
	}

	models := make([]interface{}, 0)
	for _, m := range model.All() {
		models = append(models, m)
	}
	if err := database.AutoMigrate(models...); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	if !database.DB().Migrator().HasTable("budget_sets") {
		t.Error("expected budget_sets table")
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(&config.Config{Storage: config.StorageConfig{Backend: "firestore"}})
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
