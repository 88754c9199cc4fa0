package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/events"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/platform"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/platform/platformtest"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/types"
)

func waitEvent(t *testing.T, sub events.Subscriber, want events.EventType) *events.Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case event := <-sub:
			if event.Type == want {
				return event
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s event", want)
			return nil
		}
	}
}

func heartRateSample(value float64) platform.Sample {
	now := time.Now()
	return platform.Sample{
		ID:       "s-hr",
		Category: types.CategoryHeartRate,
		Value:    value,
		Unit:     "count/min",
		Start:    now,
		End:      now,
	}
}

// TestStart_PublishesInitialSnapshot: starting the engine fetches and
// publishes without any change notification.
func TestStart_PublishesInitialSnapshot(t *testing.T) {
	fake := platformtest.New()
	fake.Samples[types.CategoryHeartRate] = []platform.Sample{heartRateSample(62)}

	e := New(fake, Config{})
	sub := e.Subscribe()
	defer e.Unsubscribe(sub)

	require.NoError(t, e.Start())
	defer e.Stop()

	waitEvent(t, sub, events.EventSnapshotUpdated)
	snapshot := e.CurrentSnapshot()
	require.NotNil(t, snapshot)
	v, ok := snapshot.Value(types.MetricHeartRate)
	require.True(t, ok)
	assert.Equal(t, 62.0, v)
}

// TestNotification_ReplacesSnapshot: a platform change callback produces a
// fresh full-replacement snapshot.
func TestNotification_ReplacesSnapshot(t *testing.T) {
	fake := platformtest.New()
	fake.Samples[types.CategoryHeartRate] = []platform.Sample{heartRateSample(62)}

	e := New(fake, Config{})
	sub := e.Subscribe()
	defer e.Unsubscribe(sub)
	require.NoError(t, e.Start())
	defer e.Stop()
	waitEvent(t, sub, events.EventSnapshotUpdated)
	waitEvent(t, sub, events.EventMedicationsUpdated) // initial refresh fully drained

	fake.Samples[types.CategoryHeartRate] = append(fake.Samples[types.CategoryHeartRate], heartRateSample(78))
	fake.Notify(types.CategoryHeartRate)

	event := waitEvent(t, sub, events.EventSnapshotUpdated)
	snapshot := event.Payload.(*types.HealthSnapshot)
	v, ok := snapshot.Value(types.MetricHeartRate)
	require.True(t, ok)
	assert.Equal(t, 78.0, v)
}

// TestWrite_PublishesOutcome: successful writes announce completion with
// the outcome attached.
func TestWrite_PublishesOutcome(t *testing.T) {
	fake := platformtest.New()
	fake.AuthorizeAllWrites()

	e := New(fake, Config{})
	sub := e.Subscribe()
	defer e.Unsubscribe(sub)
	require.NoError(t, e.Start())
	defer e.Stop()

	meal := types.Meal{
		ID:    "meal-1",
		AteAt: time.Now(),
		Items: []types.MealItem{{Calories: 400}},
	}
	outcome, err := e.Write(context.Background(), meal)
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Written)

	event := waitEvent(t, sub, events.EventWriteCompleted)
	assert.Equal(t, "meal-1", event.Metadata["entity_id"])
	assert.False(t, e.LastWriteTime().IsZero())
}

// TestWrite_FailurePublishedNotSwallowed: a failed write both returns the
// error and publishes a failure event for the UI notice.
func TestWrite_FailurePublishedNotSwallowed(t *testing.T) {
	fake := platformtest.New()
	fake.AuthorizeAllWrites()
	fake.SaveErr = errors.New("platform unavailable")

	e := New(fake, Config{})
	sub := e.Subscribe()
	defer e.Unsubscribe(sub)
	require.NoError(t, e.Start())
	defer e.Stop()

	meal := types.Meal{
		ID:    "meal-1",
		AteAt: time.Now(),
		Items: []types.MealItem{{Calories: 400}},
	}
	_, err := e.Write(context.Background(), meal)
	require.Error(t, err)

	event := waitEvent(t, sub, events.EventWriteFailed)
	assert.Equal(t, "meal-1", event.Metadata["entity_id"])
}

// TestForeground_RefreshesMedications: the medication list is re-fetched
// on foreground and exposed split into active and history views.
func TestForeground_RefreshesMedications(t *testing.T) {
	fake := platformtest.New()
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	fake.Medications = []platform.RawMedication{
		{ID: "m-1", Name: "Mesalamine", Dosage: "800mg", Start: now.AddDate(0, -1, 0)},
		{ID: "m-2", Name: "Prednisone", Dosage: "10mg", Start: now.AddDate(0, -2, 0), End: yesterday},
	}

	e := New(fake, Config{})
	sub := e.Subscribe()
	defer e.Unsubscribe(sub)
	require.NoError(t, e.Start())
	defer e.Stop()

	waitEvent(t, sub, events.EventMedicationsUpdated)

	active := e.ActiveMedications()
	require.Len(t, active, 1)
	assert.Equal(t, "Mesalamine", active[0].Name)
	assert.Len(t, e.MedicationHistory(), 2)
}

// TestRequestAuthorization_UpdatesStatusAndAnnounces verifies the prompt
// flow grants undecided pairs and publishes the change.
func TestRequestAuthorization_UpdatesStatusAndAnnounces(t *testing.T) {
	fake := platformtest.New()

	e := New(fake, Config{})
	sub := e.Subscribe()
	defer e.Unsubscribe(sub)
	require.NoError(t, e.Start())
	defer e.Stop()

	assert.True(t, e.NeedsAttention())
	require.NoError(t, e.RequestAuthorization(context.Background()))
	waitEvent(t, sub, events.EventAuthorizationChanged)

	assert.False(t, e.NeedsAttention())
	assert.Equal(t, types.AuthorizationAuthorized,
		e.AuthorizationStatus(types.CategoryDietaryEnergy, types.DirectionWrite))
	assert.Empty(t, e.DeniedCategories())
}

// TestRefreshSnapshot_OneShot: the synchronous refresh works without Start
// for CLI-style callers.
func TestRefreshSnapshot_OneShot(t *testing.T) {
	fake := platformtest.New()
	fake.Samples[types.CategoryHeartRate] = []platform.Sample{heartRateSample(70)}

	e := New(fake, Config{})
	snapshot := e.RefreshSnapshot(context.Background())

	require.NotNil(t, snapshot)
	v, ok := snapshot.Value(types.MetricHeartRate)
	require.True(t, ok)
	assert.Equal(t, 70.0, v)
}

// TestStop_Idempotent: stopping twice never panics and tears down watches.
func TestStop_Idempotent(t *testing.T) {
	fake := platformtest.New()
	e := New(fake, Config{})
	require.NoError(t, e.Start())

	e.Stop()
	e.Stop()
	assert.Equal(t, 0, e.ActiveWatches())
}
