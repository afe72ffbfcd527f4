package storage

import (
	"context"
	"time"

	"portfolio/internal/models"
)

// Storage keeps the history of session loads
type Storage interface {
	RecordLoad(ctx context.Context, record models.LoadRecord) error
	RecentLoads(ctx context.Context, limit int) ([]models.LoadRecord, error)
	CleanupOldLoads(retention time.Duration) error
	Close() error
}

// NewStorage opens the load history kept in dataDir
func NewStorage(dataDir string) (Storage, error) {
	return NewSQLiteStorage(dataDir)
}
