package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_departments",
		SQL: `CREATE TABLE IF NOT EXISTS departments (
  id   BIGSERIAL PRIMARY KEY,
  name TEXT      NOT NULL UNIQUE
);`,
	},
	{
		Name: "create_table_accounts",
		SQL: `CREATE TABLE IF NOT EXISTS accounts (
  id            BIGSERIAL PRIMARY KEY,
  username      TEXT      NOT NULL UNIQUE,
  password_hash TEXT      NOT NULL,
  role          TEXT      NOT NULL,
  department_id BIGINT    NULL REFERENCES departments (id)
);`,
	},
	{
		Name: "create_table_files",
		SQL: `CREATE TABLE IF NOT EXISTS files (
  id             BIGSERIAL PRIMARY KEY,
  filename       TEXT      NOT NULL,
  size           BIGINT    NOT NULL CHECK (size >= 0),
  mime_type      TEXT      NOT NULL,
  visibility     TEXT      NOT NULL,
  owner_id       BIGINT    NOT NULL REFERENCES accounts (id),
  department_id  BIGINT    NULL,
  metadata       JSONB     NULL,
  download_count BIGINT    NOT NULL DEFAULT 0
);`,
	},
	{
		Name: "create_index_accounts_department",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_accounts_department_id ON accounts (department_id);`,
	},
	{
		Name: "create_index_files_owner",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_files_owner_id ON files (owner_id);`,
	},
	{
		Name: "create_index_files_department",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_files_department_id ON files (department_id);`,
	},
	{
		Name: "create_index_files_visibility",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_files_visibility ON files (visibility);`,
	},
}

// EnsureMigrated checks if the 'accounts' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, dbHost string) error {
	start := time.Now()

	logJSON(map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.accounts') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		logJSON(map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			logJSON(map[string]any{
				"component":      "database",
				"event":          "db_migration_failed",
				"status":         "error",
				"migration_step": step.Name,
				"error_message":  err.Error(),
				"db_host":        dbHost,
				"duration_ms":    time.Since(start).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(data map[string]any) {
	data["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
