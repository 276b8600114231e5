package catalog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"itemdeck/internal/config"
	"itemdeck/internal/storage"
)

const lastSyncKey = "items.last_sync"

type SyncService struct {
	db     *storage.DB
	client *Client
	cfg    config.Config
	logger *slog.Logger
}

type SyncResult struct {
	SnapshotID int64
	ItemCount  int
	Malformed  int
	UpToDate   bool
}

func NewSyncService(db *storage.DB, cfg config.Config, opts ...ClientOption) *SyncService {
	client := NewClient(cfg, opts...)
	return &SyncService{db: db, client: client, cfg: cfg, logger: client.logger}
}

// Sync stores a new raw snapshot of the items endpoint. Without force it does nothing while the
// last sync is younger than SnapshotMaxAgeHours.
func (s *SyncService) Sync(ctx context.Context, force bool) (SyncResult, error) {
	if !force {
		fresh, err := s.snapshotIsFresh()
		if err != nil {
			return SyncResult{}, err
		}
		if fresh {
			s.logger.Info("items snapshot is fresh, skipping sync")
			return SyncResult{UpToDate: true}, nil
		}
	}

	body, err := s.client.FetchItemsPayload(ctx, force)
	if err != nil {
		return SyncResult{}, err
	}
	items, malformed, err := DecodeItems(body)
	if err != nil {
		return SyncResult{}, err
	}

	source := strings.TrimRight(s.cfg.ItemsAPIBaseURL, "/") + "/items"
	id, err := s.db.InsertSnapshot(source, s.cfg.ItemsAPILanguage, body, len(items))
	if err != nil {
		return SyncResult{}, err
	}
	if err := s.db.SetMetadata(lastSyncKey, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return SyncResult{}, err
	}

	s.logger.Info("items snapshot stored", "snapshot", id, "items", len(items), "malformed", malformed, "bytes", len(body))
	return SyncResult{SnapshotID: id, ItemCount: len(items), Malformed: malformed}, nil
}

func (s *SyncService) snapshotIsFresh() (bool, error) {
	last, err := s.db.GetMetadata(lastSyncKey)
	if err != nil {
		return false, err
	}
	if last == nil || s.cfg.SnapshotMaxAgeHours <= 0 {
		return false, nil
	}
	parsed, err := time.Parse(time.RFC3339, *last)
	if err != nil {
		return false, nil
	}
	return time.Since(parsed) < time.Duration(s.cfg.SnapshotMaxAgeHours)*time.Hour, nil
}
