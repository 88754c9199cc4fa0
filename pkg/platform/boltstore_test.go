package platform

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/types"
)

func openTestPlatform(t *testing.T) *BoltPlatform {
	t.Helper()
	p, err := NewBoltPlatform(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestRequestAuthorization_KeepsPriorDecisions(t *testing.T) {
	p := openTestPlatform(t)
	ctx := context.Background()

	require.NoError(t, p.SetAuthorization(types.CategoryDietaryEnergy, types.DirectionWrite, types.AuthorizationDenied))
	require.NoError(t, p.RequestAuthorization(ctx,
		nil, []types.Category{types.CategoryDietaryEnergy, types.CategoryDietaryWater}))

	assert.Equal(t, types.AuthorizationDenied,
		p.AuthorizationStatus(types.CategoryDietaryEnergy, types.DirectionWrite))
	assert.Equal(t, types.AuthorizationAuthorized,
		p.AuthorizationStatus(types.CategoryDietaryWater, types.DirectionWrite))
	assert.Equal(t, types.AuthorizationNotDetermined,
		p.AuthorizationStatus(types.CategoryDietaryProtein, types.DirectionWrite))
}

// TestSaveBatch_AtomicOnUnauthorized: an unauthorized record anywhere in
// the batch means nothing commits, including records before it.
func TestSaveBatch_AtomicOnUnauthorized(t *testing.T) {
	p := openTestPlatform(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, p.SetAuthorization(types.CategoryDietaryEnergy, types.DirectionWrite, types.AuthorizationAuthorized))

	_, err := p.SaveBatch(ctx, []types.TranslatedRecord{
		{Category: types.CategoryDietaryEnergy, Value: 350, Unit: "kcal", Start: now, End: now},
		{Category: types.CategoryDietaryProtein, Value: 25, Unit: "g", Start: now, End: now},
	})
	require.Error(t, err)
	assert.True(t, IsNotAuthorized(err))

	_, err = p.LatestSample(ctx, types.CategoryDietaryEnergy)
	assert.True(t, IsNoData(err), "authorized record must roll back with the batch")
}

func TestSaveBatch_CommitsAndReadsBack(t *testing.T) {
	p := openTestPlatform(t)
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)

	require.NoError(t, p.SetAuthorization(types.CategoryDietaryEnergy, types.DirectionWrite, types.AuthorizationAuthorized))

	ids, err := p.SaveBatch(ctx, []types.TranslatedRecord{
		{Category: types.CategoryDietaryEnergy, Value: 350, Unit: "kcal", Start: now.Add(-time.Hour), End: now.Add(-time.Hour)},
		{Category: types.CategoryDietaryEnergy, Value: 420, Unit: "kcal", Start: now, End: now},
	})
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	latest, err := p.LatestSample(ctx, types.CategoryDietaryEnergy)
	require.NoError(t, err)
	assert.Equal(t, 420.0, latest.Value)

	samples, err := p.SampleRange(ctx, types.CategoryDietaryEnergy, now.Add(-2*time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, samples, 2)
}

// TestSaveBatch_NotifiesWatchersAfterCommit: watches fire once per touched
// category, only for committed batches.
func TestSaveBatch_NotifiesWatchersAfterCommit(t *testing.T) {
	p := openTestPlatform(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, p.SetAuthorization(types.CategoryDietaryEnergy, types.DirectionWrite, types.AuthorizationAuthorized))

	notified := make(chan types.Category, 1)
	handle, err := p.Watch(types.CategoryDietaryEnergy, func(c types.Category) {
		notified <- c
	})
	require.NoError(t, err)
	defer handle.Cancel()

	// A failed batch must not notify.
	_, err = p.SaveBatch(ctx, []types.TranslatedRecord{
		{Category: types.CategoryDietaryProtein, Value: 1, Unit: "g", Start: now, End: now},
	})
	require.Error(t, err)

	_, err = p.SaveBatch(ctx, []types.TranslatedRecord{
		{Category: types.CategoryDietaryEnergy, Value: 350, Unit: "kcal", Start: now, End: now},
	})
	require.NoError(t, err)

	select {
	case c := <-notified:
		assert.Equal(t, types.CategoryDietaryEnergy, c)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not fire after commit")
	}
}

func TestWatch_CancelStopsDelivery(t *testing.T) {
	p := openTestPlatform(t)

	fired := make(chan struct{}, 1)
	handle, err := p.Watch(types.CategoryMedications, func(types.Category) {
		fired <- struct{}{}
	})
	require.NoError(t, err)

	handle.Cancel()
	handle.Cancel() // idempotent

	require.NoError(t, p.AddMedication(RawMedication{Name: "Mesalamine", Start: time.Now()}))
	select {
	case <-fired:
		t.Fatal("cancelled watch must not fire")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMedicationRange_WindowFilter(t *testing.T) {
	p := openTestPlatform(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, p.AddMedication(RawMedication{Name: "recent", Start: now.AddDate(0, -1, 0)}))
	require.NoError(t, p.AddMedication(RawMedication{Name: "old", Start: now.AddDate(-1, 0, 0)}))

	meds, err := p.MedicationRange(ctx, now.AddDate(0, -3, 0), now)
	require.NoError(t, err)
	require.Len(t, meds, 1)
	assert.Equal(t, "recent", meds[0].Name)
}

func TestCharacteristics_RoundTrip(t *testing.T) {
	p := openTestPlatform(t)
	ctx := context.Background()

	dob := time.Date(1988, 4, 12, 0, 0, 0, 0, time.UTC)
	require.NoError(t, p.SetCharacteristics(Characteristics{DateOfBirth: &dob, BiologicalSex: "female"}))

	ch, err := p.Characteristics(ctx)
	require.NoError(t, err)
	require.NotNil(t, ch.DateOfBirth)
	assert.True(t, ch.DateOfBirth.Equal(dob))
	assert.Equal(t, "female", ch.BiologicalSex)
}

func TestAddSample_BypassesAuthorizationAndNotifies(t *testing.T) {
	p := openTestPlatform(t)
	ctx := context.Background()
	now := time.Now()

	fired := make(chan types.Category, 1)
	handle, err := p.Watch(types.CategoryHeartRate, func(c types.Category) {
		fired <- c
	})
	require.NoError(t, err)
	defer handle.Cancel()

	require.NoError(t, p.AddSample(Sample{
		Category: types.CategoryHeartRate,
		Value:    64,
		Unit:     "count/min",
		Start:    now,
		End:      now,
	}))

	latest, err := p.LatestSample(ctx, types.CategoryHeartRate)
	require.NoError(t, err)
	assert.Equal(t, 64.0, latest.Value)

	select {
	case c := <-fired:
		assert.Equal(t, types.CategoryHeartRate, c)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not fire for direct sample")
	}
}
