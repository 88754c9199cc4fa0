package writer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/authz"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/log"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/metrics"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/platform"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/translate"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/types"
)

// Outcome reports one completed write: how many records were committed,
// which categories were skipped for missing authorization, and the
// platform-assigned record IDs.
type Outcome struct {
	EntityID  string
	RecordIDs []string
	Written   int
	Skipped   []types.Category
	WrittenAt time.Time
}

// Coordinator translates a domain entity into a record batch and submits it
// as one atomic platform write. The engine is a secondary sync path: a
// failure here must never roll back the app's primary save.
type Coordinator struct {
	client   platform.Client
	registry *authz.Registry

	mu        sync.Mutex
	lastWrite time.Time // diagnostics only, never used for conflict resolution
}

// NewCoordinator creates a coordinator over the platform client and
// authorization registry.
func NewCoordinator(client platform.Client, registry *authz.Registry) *Coordinator {
	return &Coordinator{client: client, registry: registry}
}

// Write translates the entity and submits the resulting batch. The batch
// either fully succeeds or fully fails; there is no partial-record retry.
// Records in unauthorized categories are skipped before submission, except
// the symptom fallback record, which is always attempted best-effort.
//
// Re-submitting the same entity appends new platform records; the platform
// is append-only from this engine's perspective.
func (c *Coordinator) Write(ctx context.Context, entity types.Entity) (*Outcome, error) {
	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.WriteDuration)

	logger := log.WithEntityID(entity.EntityID())

	records := translate.EntityRecords(entity, c.registry.WriteAuthorized)
	if len(records) == 0 {
		metrics.WritesTotal.WithLabelValues("no_data").Inc()
		return nil, platform.ErrNoWritableData
	}

	batch, skipped := c.partition(records)
	for _, category := range skipped {
		metrics.RecordsSkippedTotal.WithLabelValues(string(category)).Inc()
	}
	if len(batch) == 0 {
		metrics.WritesTotal.WithLabelValues("no_data").Inc()
		logger.Warn().
			Int("skipped", len(skipped)).
			Msg("every record skipped for missing authorization, nothing to write")
		return nil, platform.ErrNoWritableData
	}

	ids, err := c.client.SaveBatch(ctx, batch)
	if err != nil {
		metrics.WritesTotal.WithLabelValues("failed").Inc()
		logger.Error().Err(err).Int("records", len(batch)).Msg("batch write failed")
		return nil, fmt.Errorf("batch write failed: %w", err)
	}

	now := time.Now()
	c.mu.Lock()
	c.lastWrite = now
	c.mu.Unlock()

	metrics.WritesTotal.WithLabelValues("success").Inc()
	metrics.RecordsWrittenTotal.Add(float64(len(batch)))
	logger.Info().
		Int("records", len(batch)).
		Int("skipped", len(skipped)).
		Msg("entity synchronized")

	return &Outcome{
		EntityID:  entity.EntityID(),
		RecordIDs: ids,
		Written:   len(batch),
		Skipped:   skipped,
		WrittenAt: now,
	}, nil
}

// partition splits translated records into the submit batch and the skipped
// categories. Fallback-flagged records are never skipped.
func (c *Coordinator) partition(records []types.TranslatedRecord) ([]types.TranslatedRecord, []types.Category) {
	var batch []types.TranslatedRecord
	var skipped []types.Category
	for _, rec := range records {
		if rec.Metadata[translate.MetadataFallback] == "true" {
			batch = append(batch, rec)
			continue
		}
		if c.registry.WriteAuthorized(rec.Category) {
			batch = append(batch, rec)
		} else {
			skipped = append(skipped, rec.Category)
		}
	}
	return batch, skipped
}

// LastWriteTime returns the diagnostics-only marker of the most recent
// successful write.
func (c *Coordinator) LastWriteTime() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastWrite
}
