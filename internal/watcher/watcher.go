package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"itemdeck/internal/catalog"
	"itemdeck/internal/config"
	"itemdeck/internal/pipeline"
	"itemdeck/internal/storage"
)

// Service keeps the stored item set current: each cycle syncs the item API and, when a new
// snapshot arrived, reprocesses it and refreshes the export files.
type Service struct {
	db        *storage.DB
	cfg       config.Config
	logger    *slog.Logger
	sync      *catalog.SyncService
	processor *pipeline.ProcessingService
}

type CycleResult struct {
	Synced    bool
	Processed int
	Exported  []string
}

func NewService(db *storage.DB, cfg config.Config, logger *slog.Logger, opts ...catalog.ClientOption) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	opts = append([]catalog.ClientOption{catalog.WithLogger(logger)}, opts...)
	return &Service{
		db:        db,
		cfg:       cfg,
		logger:    logger,
		sync:      catalog.NewSyncService(db, cfg, opts...),
		processor: pipeline.NewProcessingService(db, cfg, logger),
	}
}

func (s *Service) Run(ctx context.Context) error {
	interval := time.Duration(s.cfg.WatchIntervalSec) * time.Second
	if interval <= 0 {
		interval = time.Hour
	}
	for {
		if _, err := s.RunCycle(ctx); err != nil {
			s.logger.Error("watch cycle failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
}

func (s *Service) RunCycle(ctx context.Context) (CycleResult, error) {
	synced, err := s.sync.Sync(ctx, false)
	if err != nil {
		return CycleResult{}, err
	}
	if synced.UpToDate {
		return CycleResult{}, nil
	}

	res, err := s.processor.ProcessLatestSnapshot()
	if err != nil {
		return CycleResult{}, err
	}
	out := CycleResult{Synced: true, Processed: res.ShopCount}

	if s.cfg.WatchAutoExport {
		jsonPath := filepath.Join(s.cfg.OutputDir, "items.json")
		if err := pipeline.ExportItemsToJSON(res.Items, jsonPath); err != nil {
			return out, err
		}
		xlsxPath := filepath.Join(s.cfg.OutputDir, "items.xlsx")
		if err := pipeline.ExportItemsToXLSX(res.Items, xlsxPath, s.cfg.ExportPlainText); err != nil {
			return out, err
		}
		out.Exported = []string{jsonPath, xlsxPath}
	}

	s.logger.Info("watch cycle done", "snapshot", synced.SnapshotID, "items", synced.ItemCount, "processed", out.Processed, "exported", len(out.Exported))
	return out, nil
}
