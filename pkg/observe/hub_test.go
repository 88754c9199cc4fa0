package observe

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/platform/platformtest"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/types"
)

func waitTrigger(t *testing.T, ch <-chan Trigger) Trigger {
	t.Helper()
	select {
	case trigger := <-ch:
		return trigger
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for refresh trigger")
		return Trigger{}
	}
}

// TestStart_RepeatedReplacesWatches: starting twice with two categories
// leaves exactly two live registrations, not four.
func TestStart_RepeatedReplacesWatches(t *testing.T) {
	fake := platformtest.New()
	hub := NewHub(fake, Config{OnChange: func(context.Context, Trigger) {}})
	defer hub.Stop()

	categories := []types.Category{types.CategoryHeartRate, types.CategoryStepCount}
	require.NoError(t, hub.Start(categories))
	require.NoError(t, hub.Start(categories))

	assert.Equal(t, 1, fake.WatchCount(types.CategoryHeartRate))
	assert.Equal(t, 1, fake.WatchCount(types.CategoryStepCount))
	assert.Equal(t, 2, hub.ActiveWatches())
}

// TestNotification_TriggersRefresh verifies a platform callback reaches
// OnChange with the originating category.
func TestNotification_TriggersRefresh(t *testing.T) {
	fake := platformtest.New()
	triggers := make(chan Trigger, 1)
	hub := NewHub(fake, Config{OnChange: func(_ context.Context, trigger Trigger) {
		triggers <- trigger
	}})
	defer hub.Stop()

	require.NoError(t, hub.Start([]types.Category{types.CategoryHeartRate}))
	fake.Notify(types.CategoryHeartRate)

	trigger := waitTrigger(t, triggers)
	assert.Equal(t, SourceNotification, trigger.Source)
	assert.Equal(t, types.CategoryHeartRate, trigger.Category)
}

// TestForeground_TriggersRefresh: a foreground transition re-fetches even
// with no platform callback.
func TestForeground_TriggersRefresh(t *testing.T) {
	fake := platformtest.New()
	triggers := make(chan Trigger, 1)
	hub := NewHub(fake, Config{OnChange: func(_ context.Context, trigger Trigger) {
		triggers <- trigger
	}})
	defer hub.Stop()

	require.NoError(t, hub.Start(nil))
	hub.Foreground()

	trigger := waitTrigger(t, triggers)
	assert.Equal(t, SourceForeground, trigger.Source)
}

// TestStart_RegistrationFailureIsolated: one category failing to register
// must not take the others down with it.
func TestStart_RegistrationFailureIsolated(t *testing.T) {
	fake := platformtest.New()
	fake.WatchErr[types.CategoryHeartRate] = errors.New("observation quota exceeded")
	hub := NewHub(fake, Config{OnChange: func(context.Context, Trigger) {}})
	defer hub.Stop()

	err := hub.Start([]types.Category{types.CategoryHeartRate, types.CategoryStepCount})
	require.NoError(t, err)

	assert.Equal(t, 0, fake.WatchCount(types.CategoryHeartRate))
	assert.Equal(t, 1, fake.WatchCount(types.CategoryStepCount))
	assert.Equal(t, 1, hub.ActiveWatches())
}

// TestStart_EnablesBackgroundDelivery checks the wake-on-change flag is
// set on start and cleared on stop.
func TestStart_EnablesBackgroundDelivery(t *testing.T) {
	fake := platformtest.New()
	hub := NewHub(fake, Config{OnChange: func(context.Context, Trigger) {}})

	require.NoError(t, hub.Start([]types.Category{types.CategorySleep}))
	assert.True(t, fake.BackgroundEnabled(types.CategorySleep))

	hub.Stop()
	assert.False(t, fake.BackgroundEnabled(types.CategorySleep))
}

// TestStop_Idempotent: stopping twice is safe, cancels every watch, and
// later callbacks are ignored.
func TestStop_Idempotent(t *testing.T) {
	fake := platformtest.New()
	var calls atomic.Int64
	hub := NewHub(fake, Config{OnChange: func(context.Context, Trigger) {
		calls.Add(1)
	}})

	require.NoError(t, hub.Start([]types.Category{types.CategoryHeartRate}))
	hub.Stop()
	hub.Stop()

	assert.Equal(t, 0, fake.WatchCount(types.CategoryHeartRate))
	assert.Equal(t, 0, hub.ActiveWatches())

	hub.Foreground()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(0), calls.Load())
}

// TestStop_WaitsForInFlightRefresh: Stop returns only after a refresh
// that already started has finished.
func TestStop_WaitsForInFlightRefresh(t *testing.T) {
	fake := platformtest.New()
	started := make(chan struct{})
	var finished atomic.Bool
	hub := NewHub(fake, Config{OnChange: func(context.Context, Trigger) {
		close(started)
		time.Sleep(100 * time.Millisecond)
		finished.Store(true)
	}})

	require.NoError(t, hub.Start(nil))
	hub.Foreground()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("refresh never started")
	}

	hub.Stop()
	assert.True(t, finished.Load(), "in-flight refresh must complete before Stop returns")
}

// TestCoalesceWindow: a burst of callbacks inside the window produces a
// single refresh.
func TestCoalesceWindow(t *testing.T) {
	fake := platformtest.New()
	var calls atomic.Int64
	hub := NewHub(fake, Config{
		CoalesceWindow: 100 * time.Millisecond,
		OnChange: func(context.Context, Trigger) {
			calls.Add(1)
		},
	})
	defer hub.Stop()

	require.NoError(t, hub.Start([]types.Category{types.CategoryHeartRate}))
	for i := 0; i < 5; i++ {
		fake.Notify(types.CategoryHeartRate)
	}

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int64(1), calls.Load())
}
