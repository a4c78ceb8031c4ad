package seasonality

import (
	"context"
	"time"

	"relatorios/internal/config"
	"relatorios/internal/storage"
)

type SyncService struct {
	db     *storage.DB
	client *Client
	cfg    config.Config
}

func NewSyncService(db *storage.DB, cfg config.Config) *SyncService {
	return &SyncService{db: db, client: NewClient(cfg), cfg: cfg}
}

// Sync replaces the cached reference table with the warehouse copy.
func (s *SyncService) Sync(ctx context.Context) (int, error) {
	rows, err := s.client.GetReferenceTable(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.db.UpsertSeasonality(rows); err != nil {
		return 0, err
	}
	_ = s.db.SetMetadata("seasonality.last_sync", time.Now().UTC().Format(time.RFC3339))
	return len(rows), nil
}
