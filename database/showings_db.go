package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"brokersearch/internal/domain/models"
)

const storedDateLayout = "2006-01-02"

// ErrNoImports в базе еще нет ни одной загрузки показов
var ErrNoImports = errors.New("showings database is empty: run import first")

// DBConfig настройки пула соединений
type DBConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ShowingsDB хранилище снимков журнала показов в SQLite.
// Каждый импорт заменяет предыдущий снимок целиком.
type ShowingsDB struct {
	conn *sql.DB
	path string
}

// ImportInfo сведения о загрузке
type ImportInfo struct {
	ID         int64     `json:"id"`
	Source     string    `json:"source"`
	HasStatus  bool      `json:"has_status"`
	RowsCount  int       `json:"rows_count"`
	ImportedAt time.Time `json:"imported_at"`
}

// NewShowingsDB открывает базу показов
func NewShowingsDB(dbPath string) (*ShowingsDB, error) {
	return NewShowingsDBWithConfig(dbPath, DBConfig{})
}

// NewShowingsDBWithConfig открывает базу показов с настройками пула
func NewShowingsDBWithConfig(dbPath string, config DBConfig) (*ShowingsDB, error) {
	conn, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open showings database: %w", err)
	}

	if config.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(config.MaxOpenConns)
	} else {
		conn.SetMaxOpenConns(1)
	}
	if config.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(config.MaxIdleConns)
	}
	if config.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(config.ConnMaxLifetime)
	} else {
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping showings database: %w", err)
	}

	if err := MigrateShowingsSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize showings schema: %w", err)
	}

	return &ShowingsDB{conn: conn, path: dbPath}, nil
}

// Close закрывает подключение
func (db *ShowingsDB) Close() error {
	return db.conn.Close()
}

// GetDB возвращает sql.DB для прямого доступа
func (db *ShowingsDB) GetDB() *sql.DB {
	return db.conn
}

// Path путь к файлу базы
func (db *ShowingsDB) Path() string {
	return db.path
}

// ReplaceSnapshot сохраняет снимок показов вместо предыдущего в одной транзакции
func (db *ShowingsDB) ReplaceSnapshot(ctx context.Context, set *models.ShowingSet) (*ImportInfo, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM showings`); err != nil {
		return nil, fmt.Errorf("failed to clear showings: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM showing_imports`); err != nil {
		return nil, fmt.Errorf("failed to clear imports: %w", err)
	}

	info := &ImportInfo{
		Source:     set.Source,
		HasStatus:  set.HasStatus,
		RowsCount:  len(set.Rows),
		ImportedAt: time.Now(),
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO showing_imports(source, has_status, rows_count, imported_at) VALUES(?, ?, ?, ?)`,
		info.Source, info.HasStatus, info.RowsCount, info.ImportedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert import: %w", err)
	}
	if info.ID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("failed to get import id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO showings(import_id, broker, showing_date, object, status) VALUES(?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range set.Rows {
		if _, err := stmt.ExecContext(ctx, info.ID, row.Broker, row.Date.Format(storedDateLayout), row.Object, row.Status); err != nil {
			return nil, fmt.Errorf("failed to insert showing: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	log.Printf("[ShowingsDB] imported %d showings from %s", info.RowsCount, info.Source)
	return info, nil
}

// LastImport сведения о текущем снимке
func (db *ShowingsDB) LastImport(ctx context.Context) (*ImportInfo, error) {
	var info ImportInfo
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, source, has_status, rows_count, imported_at FROM showing_imports ORDER BY id DESC LIMIT 1`,
	).Scan(&info.ID, &info.Source, &info.HasStatus, &info.RowsCount, &info.ImportedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoImports
		}
		return nil, fmt.Errorf("failed to get last import: %w", err)
	}
	return &info, nil
}

// Load читает текущий снимок в порядке исходного файла
func (db *ShowingsDB) Load(ctx context.Context) (*models.ShowingSet, error) {
	info, err := db.LastImport(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT broker, showing_date, object, status FROM showings WHERE import_id = ? ORDER BY id`, info.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query showings: %w", err)
	}
	defer rows.Close()

	set := &models.ShowingSet{
		Rows:      make([]models.Showing, 0, info.RowsCount),
		HasStatus: info.HasStatus,
		Source:    db.path,
		LoadedAt:  time.Now(),
	}
	for rows.Next() {
		var s models.Showing
		var date string
		if err := rows.Scan(&s.Broker, &date, &s.Object, &s.Status); err != nil {
			return nil, fmt.Errorf("failed to scan showing: %w", err)
		}
		if s.Date, err = time.ParseInLocation(storedDateLayout, date, time.Local); err != nil {
			return nil, fmt.Errorf("failed to parse stored date %q: %w", date, err)
		}
		set.Rows = append(set.Rows, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read showings: %w", err)
	}

	return set, nil
}
