package shared

import (
	"context"
	"testing"
)

func TestSchema(t *testing.T) {
	ctx := context.Background()

	t.Run("steps load in version order with both directions", func(t *testing.T) {
		steps, err := schemaSteps()
		if err != nil {
			t.Fatalf("failed to load schema: %v", err)
		}
		if len(steps) == 0 || steps[0].name != "create_kv" {
			t.Fatalf("expected the kv step first, got %+v", steps)
		}
		for i, s := range steps {
			if s.up == "" || s.down == "" {
				t.Errorf("step %d is missing SQL: %+v", s.version, s)
			}
			if i > 0 && s.version <= steps[i-1].version {
				t.Errorf("steps out of order at %d", s.version)
			}
		}
	})

	t.Run("migrate is idempotent", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		first, err := Migrate(ctx, db)
		if err != nil {
			t.Fatalf("first migrate: %v", err)
		}
		second, err := Migrate(ctx, db)
		if err != nil {
			t.Fatalf("second migrate: %v", err)
		}

		steps, _ := schemaSteps()
		if first != len(steps) || second != 0 {
			t.Errorf("expected %d then 0 applied, got %d then %d", len(steps), first, second)
		}

		var recorded int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&recorded); err != nil {
			t.Fatalf("failed to read schema_version: %v", err)
		}
		if recorded != len(steps) {
			t.Errorf("expected %d recorded versions, got %d", len(steps), recorded)
		}
	})

	t.Run("reset discards stored data and keeps the schema", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if _, err := Migrate(ctx, db); err != nil {
			t.Fatalf("migrate: %v", err)
		}
		if _, err := db.Exec("INSERT INTO kv (key, value) VALUES ('favorites', '[]')"); err != nil {
			t.Fatalf("insert: %v", err)
		}

		if err := ResetSchema(ctx, db); err != nil {
			t.Fatalf("reset: %v", err)
		}

		var keys int
		if err := db.QueryRow("SELECT COUNT(*) FROM kv").Scan(&keys); err != nil {
			t.Fatalf("kv table should exist after reset: %v", err)
		}
		if keys != 0 {
			t.Errorf("expected empty kv after reset, got %d rows", keys)
		}
	})

	t.Run("reset on a fresh database", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := ResetSchema(ctx, db); err != nil {
			t.Fatalf("reset: %v", err)
		}
		if _, err := db.Exec("SELECT 1 FROM kv LIMIT 1"); err != nil {
			t.Errorf("kv table should exist: %v", err)
		}
	})
}
