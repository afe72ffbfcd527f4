package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"portfolio/internal/models"
)

const defaultRecentLimit = 20

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(dataDir string) (*SQLiteStorage, error) {
	// Ensure data directory exists with secure permissions (0750)
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "portfolio.db")
	log.Printf("Initializing load history at: %s", dbPath)

	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_synchronous=NORMAL&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS loads (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		state TEXT NOT NULL,
		article_count INTEGER NOT NULL DEFAULT 0,
		error_kind TEXT,
		error_detail TEXT,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_loads_started_at ON loads(started_at);`

	_, err := db.Exec(schema)
	return err
}

// RecordLoad stores the outcome of one session load
func (s *SQLiteStorage) RecordLoad(ctx context.Context, record models.LoadRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO loads (id, source, state, article_count, error_kind, error_detail, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Source,
		string(record.State),
		record.ArticleCount,
		record.ErrorKind,
		record.ErrorDetail,
		record.StartedAt.UTC(),
		record.FinishedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record load %s: %w", record.ID, err)
	}
	return nil
}

// RecentLoads returns the latest loads, newest first
func (s *SQLiteStorage) RecentLoads(ctx context.Context, limit int) ([]models.LoadRecord, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, state, article_count, COALESCE(error_kind, ''), COALESCE(error_detail, ''), started_at, finished_at
		FROM loads
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query loads: %w", err)
	}
	defer rows.Close()

	var records []models.LoadRecord
	for rows.Next() {
		var (
			record models.LoadRecord
			state  string
		)
		if err := rows.Scan(
			&record.ID,
			&record.Source,
			&state,
			&record.ArticleCount,
			&record.ErrorKind,
			&record.ErrorDetail,
			&record.StartedAt,
			&record.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan load: %w", err)
		}
		record.State = models.LoadState(state)
		records = append(records, record)
	}
	return records, rows.Err()
}

// CleanupOldLoads removes history entries older than retention
func (s *SQLiteStorage) CleanupOldLoads(retention time.Duration) error {
	cutoff := time.Now().Add(-retention).UTC()

	result, err := s.db.Exec("DELETE FROM loads WHERE started_at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("failed to cleanup loads: %w", err)
	}

	if removed, err := result.RowsAffected(); err == nil && removed > 0 {
		log.Printf("Removed %d load history entries older than %v", removed, retention)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
