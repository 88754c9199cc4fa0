package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/authz"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/events"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/fetch"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/log"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/observe"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/platform"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/types"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/writer"
)

// Config holds engine construction parameters. Zero-valued category lists
// default to the full closed sets.
type Config struct {
	ReadCategories  []types.Category
	WriteCategories []types.Category

	// CoalesceWindow debounces bursts of change notifications. Zero means
	// every notification refreshes.
	CoalesceWindow time.Duration
}

// Engine is the synchronization facade the app talks to. It owns the
// authorization registry, the write coordinator, the fetch aggregator, the
// observation hub, and the event broker, and publishes consolidated state
// for the presentation layer.
//
// Published state (snapshot, medication list) is mutated only from the
// hub's dispatcher or under the engine mutex; readers get full-replacement
// values, never partial merges.
type Engine struct {
	client   platform.Client
	registry *authz.Registry
	writer   *writer.Coordinator
	fetcher  *fetch.Aggregator
	hub      *observe.Hub
	broker   *events.Broker
	cfg      Config

	mu          sync.RWMutex
	snapshot    *types.HealthSnapshot
	medications []types.MedicationRecord

	stopOnce sync.Once
}

// New wires an engine over the given platform client.
func New(client platform.Client, cfg Config) *Engine {
	if len(cfg.ReadCategories) == 0 {
		cfg.ReadCategories = types.ReadCategories
	}
	if len(cfg.WriteCategories) == 0 {
		cfg.WriteCategories = types.WriteCategories
	}

	registry := authz.NewRegistry(client)
	e := &Engine{
		client:   client,
		registry: registry,
		writer:   writer.NewCoordinator(client, registry),
		fetcher:  fetch.NewAggregator(client),
		broker:   events.NewBroker(),
		cfg:      cfg,
	}
	e.hub = observe.NewHub(client, observe.Config{
		CoalesceWindow: cfg.CoalesceWindow,
		OnChange:       e.refresh,
	})
	return e
}

// Start begins observation and schedules the initial fetch. Repeated calls
// re-register the watch set without stacking duplicates.
func (e *Engine) Start() error {
	e.broker.Start()

	if err := e.hub.Start(e.observable()); err != nil {
		return fmt.Errorf("starting observation: %w", err)
	}

	// Initial population goes through the dispatcher like every refresh.
	e.hub.Foreground()
	logger := log.WithComponent("engine")
	logger.Info().
		Int("read_categories", len(e.cfg.ReadCategories)).
		Int("write_categories", len(e.cfg.WriteCategories)).
		Msg("engine started")
	return nil
}

// Stop cancels observation and shuts down the broker. An in-flight refresh
// completes first. Safe to call more than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		e.hub.Stop()
		e.broker.Stop()
		logger := log.WithComponent("engine")
		logger.Info().Msg("engine stopped")
	})
}

// observable filters the read set down to categories that emit change
// callbacks. Profile characteristics are effectively immutable and have no
// watch surface.
func (e *Engine) observable() []types.Category {
	var out []types.Category
	for _, c := range e.cfg.ReadCategories {
		if c == types.CategoryDateOfBirth || c == types.CategoryBiologicalSex {
			continue
		}
		out = append(out, c)
	}
	return out
}

// RequestAuthorization presents the combined permission prompt for the
// configured read and write sets.
func (e *Engine) RequestAuthorization(ctx context.Context) error {
	if err := e.registry.RequestAccess(ctx, e.cfg.ReadCategories, e.cfg.WriteCategories); err != nil {
		return err
	}
	e.publish(&events.Event{
		Type:    events.EventAuthorizationChanged,
		Message: "authorization request completed",
	})
	return nil
}

// AuthorizationStatus returns the current platform decision for one pair.
func (e *Engine) AuthorizationStatus(category types.Category, dir types.Direction) types.AuthorizationStatus {
	return e.registry.Status(category, dir)
}

// NeedsAttention reports whether any configured write category lacks
// authorization.
func (e *Engine) NeedsAttention() bool {
	return e.registry.NeedsAttention(e.cfg.WriteCategories)
}

// DeniedCategories returns the configured categories with an explicit
// platform denial in either direction.
func (e *Engine) DeniedCategories() []types.Category {
	all := make([]types.Category, 0, len(e.cfg.ReadCategories)+len(e.cfg.WriteCategories))
	all = append(all, e.cfg.WriteCategories...)
	all = append(all, e.cfg.ReadCategories...)
	return e.registry.Denied(all)
}

// Write synchronizes one domain entity to the platform and publishes the
// outcome. The entity's primary save has already happened; a failure here
// is reported, never propagated into the app's data layer.
func (e *Engine) Write(ctx context.Context, entity types.Entity) (*writer.Outcome, error) {
	outcome, err := e.writer.Write(ctx, entity)
	if err != nil {
		e.publish(&events.Event{
			Type:    events.EventWriteFailed,
			Message: err.Error(),
			Metadata: map[string]string{
				"entity_id": entity.EntityID(),
			},
		})
		return nil, err
	}

	e.publish(&events.Event{
		Type:    events.EventWriteCompleted,
		Message: fmt.Sprintf("%d records written", outcome.Written),
		Metadata: map[string]string{
			"entity_id": outcome.EntityID,
		},
		Payload: outcome,
	})
	return outcome, nil
}

// CurrentSnapshot returns the last published snapshot, or nil before the
// first fetch completes. Callers must treat it as read-only.
func (e *Engine) CurrentSnapshot() *types.HealthSnapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot
}

// ActiveMedications returns the published medications still active now.
func (e *Engine) ActiveMedications() []types.MedicationRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var active []types.MedicationRecord
	for _, m := range e.medications {
		if m.IsActive {
			active = append(active, m)
		}
	}
	return active
}

// MedicationHistory returns the full published medication list, most
// recently started first.
func (e *Engine) MedicationHistory() []types.MedicationRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]types.MedicationRecord, len(e.medications))
	copy(out, e.medications)
	return out
}

// Foreground signals an app-foreground transition: authorization and
// published state are refreshed through the dispatcher.
func (e *Engine) Foreground() {
	e.hub.Foreground()
}

// RefreshSnapshot fetches and publishes synchronously. Intended for
// one-shot callers that never Start the engine; a running engine refreshes
// through the hub instead.
func (e *Engine) RefreshSnapshot(ctx context.Context) *types.HealthSnapshot {
	e.refresh(ctx, observe.Trigger{Source: observe.SourceForeground})
	return e.CurrentSnapshot()
}

// LastWriteTime returns the diagnostics marker of the most recent
// successful write.
func (e *Engine) LastWriteTime() time.Time {
	return e.writer.LastWriteTime()
}

// ActiveWatches returns the number of live platform watch registrations.
func (e *Engine) ActiveWatches() int {
	return e.hub.ActiveWatches()
}

// Subscribe returns a channel of engine events for the presentation layer.
func (e *Engine) Subscribe() events.Subscriber {
	return e.broker.Subscribe()
}

// Unsubscribe releases a subscription.
func (e *Engine) Unsubscribe(sub events.Subscriber) {
	e.broker.Unsubscribe(sub)
}

// refresh is the dispatcher callback: fetch everything, replace published
// state, announce. Foreground triggers additionally re-read authorization,
// since decisions may have changed in the platform's settings surface
// while the app was away.
func (e *Engine) refresh(ctx context.Context, trigger observe.Trigger) {
	logger := log.WithComponent("engine")

	if trigger.Source == observe.SourceForeground {
		all := make([]types.Category, 0, len(e.cfg.ReadCategories)+len(e.cfg.WriteCategories))
		all = append(all, e.cfg.ReadCategories...)
		all = append(all, e.cfg.WriteCategories...)
		e.registry.RefreshAll(all)
	}

	snapshot := e.fetcher.FetchAll(ctx)
	e.mu.Lock()
	e.snapshot = snapshot
	e.mu.Unlock()
	e.publish(&events.Event{
		Type:    events.EventSnapshotUpdated,
		Message: string(trigger.Source),
		Payload: snapshot,
	})

	if !e.medicationsRelevant(trigger) {
		return
	}
	meds, err := e.fetcher.FetchMedications(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("medication fetch failed, keeping prior list")
		return
	}
	e.mu.Lock()
	e.medications = meds
	e.mu.Unlock()
	e.publish(&events.Event{
		Type:    events.EventMedicationsUpdated,
		Message: fmt.Sprintf("%d medications", len(meds)),
		Payload: meds,
	})
}

// medicationsRelevant limits medication re-fetches to triggers that can
// change the list.
func (e *Engine) medicationsRelevant(trigger observe.Trigger) bool {
	return trigger.Source == observe.SourceForeground ||
		trigger.Category == types.CategoryMedications
}

func (e *Engine) publish(event *events.Event) {
	event.ID = uuid.New().String()
	e.broker.Publish(event)
}
