package shared

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

// Schema steps are embedded as sql/NNNN_name_up.sql with a matching _down.sql.
//
//go:embed sql/*.sql
var schemaFS embed.FS

type schemaStep struct {
	version int
	name    string
	up      string
	down    string
}

// schemaSteps returns the embedded steps in version order.
func schemaSteps() ([]schemaStep, error) {
	ups, err := fs.Glob(schemaFS, "sql/*_up.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list schema files: %w", err)
	}

	steps := make([]schemaStep, 0, len(ups))
	for _, upFile := range ups {
		base := strings.TrimSuffix(strings.TrimPrefix(upFile, "sql/"), "_up.sql")
		prefix, name, ok := strings.Cut(base, "_")
		if !ok {
			return nil, fmt.Errorf("schema file %s has no version prefix", upFile)
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("schema file %s: bad version %q", upFile, prefix)
		}

		up, err := schemaFS.ReadFile(upFile)
		if err != nil {
			return nil, err
		}
		down, err := schemaFS.ReadFile(strings.TrimSuffix(upFile, "_up.sql") + "_down.sql")
		if err != nil {
			return nil, fmt.Errorf("schema step %d (%s) has no down file: %w", version, name, err)
		}
		steps = append(steps, schemaStep{version: version, name: name, up: string(up), down: string(down)})
	}

	sort.Slice(steps, func(i, j int) bool { return steps[i].version < steps[j].version })
	for i := 1; i < len(steps); i++ {
		if steps[i].version == steps[i-1].version {
			return nil, fmt.Errorf("duplicate schema version %d", steps[i].version)
		}
	}
	return steps, nil
}

// appliedVersions returns the recorded schema versions, creating the bookkeeping table when missing.
func appliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return nil, fmt.Errorf("failed to create schema_version: %w", err)
	}

	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_version")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema_version: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// Migrate brings db up to the latest embedded schema and reports how many steps it applied.
func Migrate(ctx context.Context, db *sql.DB) (int, error) {
	steps, err := schemaSteps()
	if err != nil {
		return 0, err
	}
	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, step := range steps {
		if applied[step.version] {
			continue
		}
		err := inTx(ctx, db, step.up, "INSERT INTO schema_version (version, name) VALUES (?, ?)", step.version, step.name)
		if err != nil {
			return n, fmt.Errorf("failed to apply schema %d (%s): %w", step.version, step.name, err)
		}
		n++
	}
	return n, nil
}

// ResetSchema runs every applied step's down SQL, newest first, then migrates again.
// All stored data, favorites included, is discarded.
func ResetSchema(ctx context.Context, db *sql.DB) error {
	steps, err := schemaSteps()
	if err != nil {
		return err
	}
	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}

	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		if !applied[step.version] {
			continue
		}
		if err := inTx(ctx, db, step.down, "DELETE FROM schema_version WHERE version = ?", step.version); err != nil {
			return fmt.Errorf("failed to revert schema %d (%s): %w", step.version, step.name, err)
		}
	}

	if _, err := Migrate(ctx, db); err != nil {
		return err
	}
	return nil
}

// inTx runs a schema script and its bookkeeping statement in one transaction.
// The sqlite3 driver executes every statement of a multi-statement script.
func inTx(ctx context.Context, db *sql.DB, script, record string, args ...any) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, record, args...); err != nil {
		return err
	}
	return tx.Commit()
}
