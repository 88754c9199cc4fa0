package observe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/log"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/metrics"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/platform"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/types"
)

// Source identifies what caused a refresh trigger.
type Source string

const (
	// SourceNotification is a platform change callback for a watched category.
	SourceNotification Source = "notification"
	// SourceForeground is an app-foreground transition.
	SourceForeground Source = "foreground"
)

// Trigger is one dequeued refresh cause. Category is set for notification
// triggers only.
type Trigger struct {
	Source   Source
	Category types.Category
}

// Config holds hub construction parameters.
type Config struct {
	// CoalesceWindow, when positive, absorbs triggers arriving within the
	// window after a dequeue into a single refresh. Zero disables
	// coalescing and every queued trigger refreshes.
	CoalesceWindow time.Duration

	// OnChange runs on the dispatcher goroutine for each refresh. All
	// published-state mutation happens inside it, serially.
	OnChange func(ctx context.Context, trigger Trigger)
}

// Hub registers platform change watches and funnels their callbacks, plus
// foreground transitions, through a single dispatcher goroutine. Callbacks
// arrive on arbitrary platform goroutines; the dispatcher serializes them
// so OnChange never runs concurrently with itself.
type Hub struct {
	client   platform.Client
	onChange func(ctx context.Context, trigger Trigger)
	coalesce time.Duration

	mu      sync.Mutex
	handles map[types.Category]platform.Handle
	started bool

	notifyCh chan Trigger
	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewHub creates a hub over the platform client. OnChange must be set
// before Start.
func NewHub(client platform.Client, cfg Config) *Hub {
	return &Hub{
		client:   client,
		onChange: cfg.OnChange,
		coalesce: cfg.CoalesceWindow,
		handles:  make(map[types.Category]platform.Handle),
		notifyCh: make(chan Trigger, 16),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start registers one watch per category and enables background delivery
// for each. Any prior registrations are cancelled first, so a repeated
// Start replaces the watch set instead of stacking duplicates. A category
// whose registration fails is logged and left unobserved; the remaining
// categories are unaffected.
func (h *Hub) Start(categories []types.Category) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	select {
	case <-h.stopCh:
		return fmt.Errorf("hub already stopped")
	default:
	}

	logger := log.WithComponent("observe")

	for category, handle := range h.handles {
		handle.Cancel()
		delete(h.handles, category)
		metrics.WatchesActive.Dec()
	}

	var failed int
	for _, category := range categories {
		handle, err := h.client.Watch(category, h.notify)
		if err != nil {
			failed++
			metrics.WatchRegistrationFailures.WithLabelValues(string(category)).Inc()
			logger.Warn().Err(err).
				Str("category", string(category)).
				Msg("watch registration failed, category unobserved")
			continue
		}
		h.handles[category] = handle
		metrics.WatchesActive.Inc()

		if err := h.client.EnableBackgroundDelivery(category); err != nil {
			logger.Warn().Err(err).
				Str("category", string(category)).
				Msg("background delivery unavailable, foreground refresh only")
		}
	}

	if !h.started {
		h.started = true
		go h.run()
	}

	logger.Info().
		Int("watched", len(h.handles)).
		Int("failed", failed).
		Msg("observation started")
	return nil
}

// Foreground enqueues a refresh for an app-foreground transition. Changes
// made while the process was suspended produce no callbacks, so the
// snapshot is re-fetched unconditionally.
func (h *Hub) Foreground() {
	select {
	case <-h.stopCh:
		return
	default:
	}

	select {
	case h.notifyCh <- Trigger{Source: SourceForeground}:
	default:
		// A refresh is already queued; it will pick up the same state.
		metrics.NotificationsCoalesced.Inc()
	}
}

// Stop cancels every watch, disables background delivery, and waits for
// the dispatcher to finish. An in-flight refresh completes; queued
// triggers behind it are discarded. Safe to call more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		h.mu.Lock()
		for category, handle := range h.handles {
			handle.Cancel()
			delete(h.handles, category)
			metrics.WatchesActive.Dec()

			if err := h.client.DisableBackgroundDelivery(category); err != nil {
				logger := log.WithComponent("observe")
				logger.Warn().Err(err).
					Str("category", string(category)).
					Msg("failed to disable background delivery")
			}
		}
		started := h.started
		h.mu.Unlock()

		close(h.stopCh)
		if started {
			<-h.done
		}
		logger := log.WithComponent("observe")
		logger.Info().Msg("observation stopped")
	})
}

// ActiveWatches returns the number of live watch registrations.
func (h *Hub) ActiveWatches() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handles)
}

// notify is the platform change callback. It never fetches or mutates
// state itself; it only enqueues for the dispatcher. A full queue means a
// refresh is already pending, so the trigger folds into it.
func (h *Hub) notify(category types.Category) {
	metrics.NotificationsTotal.WithLabelValues(string(category)).Inc()

	select {
	case <-h.stopCh:
		return
	default:
	}

	select {
	case h.notifyCh <- Trigger{Source: SourceNotification, Category: category}:
	default:
		metrics.NotificationsCoalesced.Inc()
	}
}

// run is the dispatcher loop: dequeue, optionally absorb a burst, refresh.
func (h *Hub) run() {
	defer close(h.done)

	ctx := context.Background()
	for {
		select {
		case trigger := <-h.notifyCh:
			h.absorbBurst()
			h.onChange(ctx, trigger)
		case <-h.stopCh:
			return
		}
	}
}

// absorbBurst drains triggers arriving within the coalesce window so a
// flurry of callbacks produces one refresh.
func (h *Hub) absorbBurst() {
	if h.coalesce <= 0 {
		return
	}

	timer := time.NewTimer(h.coalesce)
	defer timer.Stop()
	for {
		select {
		case <-h.notifyCh:
			metrics.NotificationsCoalesced.Inc()
		case <-timer.C:
			return
		case <-h.stopCh:
			return
		}
	}
}
