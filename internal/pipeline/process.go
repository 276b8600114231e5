package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"itemdeck/internal"
	"itemdeck/internal/catalog"
	"itemdeck/internal/config"
	"itemdeck/internal/storage"
)

type ProcessingService struct {
	db     *storage.DB
	cfg    config.Config
	logger *slog.Logger
}

func NewProcessingService(db *storage.DB, cfg config.Config, logger *slog.Logger) *ProcessingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProcessingService{db: db, cfg: cfg, logger: logger}
}

type ProcessResult struct {
	RunID      string
	SnapshotID int64
	RawCount   int
	Malformed  int
	ShopCount  int
	StatCount  int
	Items      []internal.ProcessedItem
}

// OptionsFromConfig applies the configured tier table, falling back to the defaults.
func OptionsFromConfig(cfg config.Config) Options {
	opts := DefaultOptions()
	if len(cfg.TierThresholds) == 0 {
		return opts
	}
	thresholds := make([]TierThreshold, 0, len(cfg.TierThresholds))
	for _, th := range cfg.TierThresholds {
		thresholds = append(thresholds, TierThreshold{MinCost: th.MinCost, Tier: th.Tier})
	}
	opts.TierThresholds = thresholds
	return opts
}

func (s *ProcessingService) ProcessLatestSnapshot() (ProcessResult, error) {
	snap, err := s.db.LatestSnapshot()
	if err != nil {
		return ProcessResult{}, err
	}
	s.logger.Debug("processing snapshot", "snapshot", snap.ID, "fetchedAt", snap.FetchedAt)
	return s.processPayload(snap.ID, snap.Payload)
}

// ProcessFile runs the pipeline over a local items payload instead of a stored snapshot.
func (s *ProcessingService) ProcessFile(path string) (ProcessResult, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return ProcessResult{}, err
	}
	return s.processPayload(0, payload)
}

func (s *ProcessingService) processPayload(snapshotID int64, payload []byte) (ProcessResult, error) {
	start := time.Now()

	all, malformed, err := catalog.DecodeItems(payload)
	if err != nil {
		return ProcessResult{}, fmt.Errorf("decode items: %w", err)
	}
	if malformed > 0 {
		s.logger.Warn("skipped malformed item records", "count", malformed)
	}

	shop := FilterShopItems(all)
	items := ProcessItems(shop, all, OptionsFromConfig(s.cfg))

	statCount := 0
	for _, item := range items {
		statCount += len(item.Stats)
	}

	run := internal.ProcessRun{
		ID:         uuid.NewString(),
		SnapshotID: snapshotID,
		RawCount:   len(all),
		ShopCount:  len(items),
		StatCount:  statCount,
		StartedAt:  start.UTC().Format(time.RFC3339),
		DurationMs: time.Since(start).Milliseconds(),
	}
	runID, err := s.db.SaveRun(run, items)
	if err != nil {
		return ProcessResult{}, fmt.Errorf("save run: %w", err)
	}

	s.logger.Info("items processed", "run", runID, "raw", len(all), "shop", len(items), "stats", statCount, "ms", run.DurationMs)
	return ProcessResult{
		RunID:      runID,
		SnapshotID: snapshotID,
		RawCount:   len(all),
		Malformed:  malformed,
		ShopCount:  len(items),
		StatCount:  statCount,
		Items:      items,
	}, nil
}
