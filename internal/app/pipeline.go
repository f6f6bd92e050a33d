package app

import (
	"context"
	"fmt"
	"time"

	"github.com/exportiq/tradescore/internal/adapters/dataset"
	"github.com/exportiq/tradescore/internal/domain/clean"
	"github.com/exportiq/tradescore/internal/domain/feature"
	"github.com/exportiq/tradescore/internal/domain/normalize"
	"github.com/exportiq/tradescore/pkg/logger"
	"github.com/exportiq/tradescore/pkg/metrics"
)

// PipelineReport summarizes one batch pipeline run.
type PipelineReport struct {
	RawRows        int `json:"raw_rows"`
	Normalized     int `json:"normalized"`
	DroppedBadDate int `json:"dropped_bad_date"`
	DroppedMissing int `json:"dropped_missing"`
	DroppedBadID   int `json:"dropped_bad_id"`
	Deduplicated   int `json:"deduplicated"`
	Persisted      int `json:"persisted"`
}

// StartPipeline prepares the service for a batch run only: it opens the
// dataset store and skips scorer and matcher setup. The pipeline runner
// never serves requests, so a missing scorer artifact must not stop it.
func (s *Service) StartPipeline(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	store, err := dataset.NewStore(s.cfg.DatasetDriver, s.eventStorePath())
	if err != nil {
		return fmt.Errorf("open dataset store: %w", err)
	}
	s.store = store
	s.started = true
	s.logger.Info(ctx, "pipeline runner started",
		logger.String("raw_events_path", s.cfg.RawEventsPath),
		logger.String("dataset_driver", s.cfg.DatasetDriver),
	)
	return nil
}

// RunPipeline executes the batch pipeline: raw feed → normalize → clean →
// enrich → persist canonical dataset. Each stage fully materializes its
// output before the next begins; there is no streaming or partial
// evaluation, and no mid-run cancellation.
func (s *Service) RunPipeline(ctx context.Context) (PipelineReport, error) {
	var report PipelineReport

	stageStart := time.Now()
	raw, err := dataset.ReadRaw(s.cfg.RawEventsPath)
	if err != nil {
		metrics.RecordDatasetLoadError()
		return report, fmt.Errorf("load raw dataset: %w", err)
	}
	report.RawRows = len(raw)

	events, nstats := normalize.New().Normalize(raw)
	report.Normalized = len(events)
	report.DroppedBadDate = nstats.DroppedBadDate
	report.DroppedMissing = nstats.DroppedMissing
	metrics.RecordPipelineRows("normalize", len(events))
	metrics.RecordPipelineDropped("normalize", nstats.DroppedBadDate+nstats.DroppedMissing)
	metrics.RecordPipelineStageDuration("normalize", time.Since(stageStart).Seconds())

	stageStart = time.Now()
	cleaned, cstats := clean.Clean(events)
	report.DroppedBadID = cstats.DroppedBadID
	report.Deduplicated = cstats.Deduplicated
	metrics.RecordPipelineRows("clean", cstats.Output)
	metrics.RecordPipelineDropped("clean", cstats.DroppedBadID+cstats.Deduplicated)
	metrics.RecordPipelineStageDuration("clean", time.Since(stageStart).Seconds())

	stageStart = time.Now()
	enriched := feature.Enrich(cleaned)
	metrics.RecordPipelineRows("enrich", len(enriched))
	metrics.RecordPipelineStageDuration("enrich", time.Since(stageStart).Seconds())

	if err := s.store.SaveEvents(ctx, enriched); err != nil {
		return report, fmt.Errorf("persist canonical dataset: %w", err)
	}
	report.Persisted = len(enriched)

	s.logger.Info(ctx, "pipeline run complete",
		logger.Int("raw_rows", report.RawRows),
		logger.Int("persisted", report.Persisted),
		logger.Int("dropped_bad_date", report.DroppedBadDate),
		logger.Int("dropped_missing", report.DroppedMissing),
		logger.Int("dropped_bad_id", report.DroppedBadID),
		logger.Int("deduplicated", report.Deduplicated),
	)
	return report, nil
}
