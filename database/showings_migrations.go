package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"
)

const migrationsTableName = "schema_migrations"

// migration именованная миграция схемы, применяется один раз
type migration struct {
	name  string
	apply func(*sql.Tx) error
}

// showingsMigrations миграции базы показов в порядке применения
var showingsMigrations = []migration{
	{
		name: "001_showings_schema",
		apply: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS showings (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					import_id INTEGER NOT NULL,
					broker TEXT NOT NULL DEFAULT '',
					showing_date TEXT NOT NULL,            -- YYYY-MM-DD
					object TEXT NOT NULL DEFAULT '',
					status TEXT NOT NULL DEFAULT '',
					FOREIGN KEY(import_id) REFERENCES showing_imports(id) ON DELETE CASCADE
				);

				CREATE TABLE IF NOT EXISTS showing_imports (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					source TEXT NOT NULL,
					has_status INTEGER NOT NULL DEFAULT 0,
					rows_count INTEGER NOT NULL DEFAULT 0,
					imported_at TIMESTAMP NOT NULL
				);
			`)
			return err
		},
	},
	{
		name: "002_showings_indexes",
		apply: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE INDEX IF NOT EXISTS idx_showings_import ON showings(import_id);
				CREATE INDEX IF NOT EXISTS idx_showings_date ON showings(showing_date);
				CREATE INDEX IF NOT EXISTS idx_showings_object ON showings(object);
			`)
			return err
		},
	},
}

// MigrateShowingsSchema применяет недостающие миграции
func MigrateShowingsSchema(db *sql.DB) error {
	if _, err := db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`, migrationsTableName)); err != nil {
		return fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}

	for _, m := range showingsMigrations {
		applied, err := isMigrationApplied(db, m.name)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %s: %w", m.name, err)
		}
		if err := m.apply(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to apply migration %s: %w", m.name, err)
		}
		query := fmt.Sprintf(`INSERT INTO %s(name, applied_at) VALUES(?, ?)`, migrationsTableName)
		if _, err := tx.Exec(query, m.name, time.Now()); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to mark migration %s as applied: %w", m.name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %s: %w", m.name, err)
		}

		log.Printf("[Migrations] %s applied successfully", m.name)
	}

	return nil
}

func isMigrationApplied(db *sql.DB, name string) (bool, error) {
	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE name = ?`, migrationsTableName)
	if err := db.QueryRow(query, name).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", name, err)
	}
	return count > 0, nil
}

// AppliedMigrations имена примененных миграций в порядке применения
func AppliedMigrations(db *sql.DB) ([]string, error) {
	rows, err := db.Query(fmt.Sprintf(`SELECT name FROM %s ORDER BY name`, migrationsTableName))
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
