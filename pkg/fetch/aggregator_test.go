package fetch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/platform"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/platform/platformtest"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/types"
)

func addSample(f *platformtest.Fake, category types.Category, value float64, unit string) {
	f.Samples[category] = append(f.Samples[category], platform.Sample{
		Category: category,
		Value:    value,
		Unit:     unit,
		Start:    time.Now(),
		End:      time.Now(),
	})
}

// TestFetchAll_PartialTolerance: a failing heart-rate sub-query must not
// fail the aggregate; the other metrics are still populated and heart rate
// is simply absent.
func TestFetchAll_PartialTolerance(t *testing.T) {
	fake := platformtest.New()
	addSample(fake, types.CategoryRestingHeartRate, 61, "count/min")
	addSample(fake, types.CategoryRespiratoryRate, 15, "count/min")
	addSample(fake, types.CategoryOxygenSaturation, 98, "%")
	addSample(fake, types.CategoryBloodGlucose, 94, "mg/dL")
	addSample(fake, types.CategoryBloodPressureSystolic, 118, "mmHg")
	addSample(fake, types.CategoryBloodPressureDiastolic, 76, "mmHg")
	addSample(fake, types.CategoryBodyMass, 70, "kg")
	addSample(fake, types.CategoryHeight, 175, "cm")
	addSample(fake, types.CategoryStepCount, 8200, "count")
	fake.SampleErr[types.CategoryHeartRate] = errors.New("query timed out")

	agg := NewAggregator(fake)
	snapshot := agg.FetchAll(context.Background())

	require.NotNil(t, snapshot)
	assert.False(t, snapshot.CapturedAt.IsZero())

	_, ok := snapshot.Value(types.MetricHeartRate)
	assert.False(t, ok, "failed sub-query must leave the metric absent")

	for _, m := range []types.Metric{
		types.MetricRestingHeartRate,
		types.MetricRespiratoryRate,
		types.MetricOxygenSaturation,
		types.MetricBloodGlucose,
		types.MetricBloodPressureSystolic,
		types.MetricBloodPressureDiastolic,
		types.MetricBodyMass,
		types.MetricHeight,
		types.MetricStepCount,
	} {
		_, ok := snapshot.Value(m)
		assert.True(t, ok, "metric %s should be populated", m)
	}
}

// TestFetchAll_NormalizesUnits verifies incoming values are converted to
// canonical units before landing in the snapshot.
func TestFetchAll_NormalizesUnits(t *testing.T) {
	fake := platformtest.New()
	addSample(fake, types.CategoryRespiratoryRate, 0.25, "count/s")
	addSample(fake, types.CategoryOxygenSaturation, 0.97, "fraction")

	snapshot := NewAggregator(fake).FetchAll(context.Background())

	rr, ok := snapshot.Value(types.MetricRespiratoryRate)
	require.True(t, ok)
	assert.InDelta(t, 15.0, rr, 1e-9)

	spo2, ok := snapshot.Value(types.MetricOxygenSaturation)
	require.True(t, ok)
	assert.InDelta(t, 97.0, spo2, 1e-9)
}

// TestFetchAll_DropsInvalidRecord verifies a malformed record is dropped
// without aborting the cycle.
func TestFetchAll_DropsInvalidRecord(t *testing.T) {
	fake := platformtest.New()
	addSample(fake, types.CategoryHeartRate, 72, "furlongs")
	addSample(fake, types.CategoryStepCount, 4000, "count")

	snapshot := NewAggregator(fake).FetchAll(context.Background())

	_, ok := snapshot.Value(types.MetricHeartRate)
	assert.False(t, ok)
	steps, ok := snapshot.Value(types.MetricStepCount)
	assert.True(t, ok)
	assert.Equal(t, 4000.0, steps)
}

// TestFetchAll_SleepIntervals verifies the range query feeds both the
// interval list and the total-hours metric.
func TestFetchAll_SleepIntervals(t *testing.T) {
	fake := platformtest.New()
	now := time.Now()
	fake.Samples[types.CategorySleep] = []platform.Sample{
		{Category: types.CategorySleep, Start: now.Add(-8 * time.Hour), End: now.Add(-2 * time.Hour)},
		{Category: types.CategorySleep, Start: now.Add(-90 * time.Minute), End: now.Add(-30 * time.Minute)},
	}

	snapshot := NewAggregator(fake).FetchAll(context.Background())

	assert.Len(t, snapshot.Sleep, 2)
	hours, ok := snapshot.Value(types.MetricSleepHours)
	require.True(t, ok)
	assert.InDelta(t, 7.0, hours, 1e-9)
}

// TestFetchMedications_ActiveWindowHeuristic covers the window-boundary
// classification: distant future => active, yesterday => inactive, no end
// date => active.
func TestFetchMedications_ActiveWindowHeuristic(t *testing.T) {
	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)

	fake := platformtest.New()
	fake.Medications = []platform.RawMedication{
		{ID: "m1", Name: "forever", Start: now.Add(-time.Hour), End: now.AddDate(150, 0, 0)},
		{ID: "m2", Name: "finished", Start: now.Add(-2 * time.Hour), End: yesterday},
		{ID: "m3", Name: "open-ended", Start: now.Add(-3 * time.Hour)},
		{ID: "m4", Name: "tapering", Start: now.Add(-4 * time.Hour), End: now.AddDate(0, 1, 0)},
	}

	records, err := NewAggregator(fake).FetchMedications(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 4)

	byID := make(map[string]types.MedicationRecord)
	for _, r := range records {
		byID[r.ID] = r
	}

	assert.True(t, byID["m1"].IsActive, "distant-future end date means active")
	assert.Nil(t, byID["m1"].EndDate, "distant-future end reads as no end date")
	assert.False(t, byID["m2"].IsActive, "ended yesterday means inactive")
	assert.True(t, byID["m3"].IsActive, "no end date means active")
	assert.True(t, byID["m4"].IsActive, "future end date means active")

	// Sorted by start date descending.
	for i := 1; i < len(records); i++ {
		assert.False(t, records[i].StartDate.After(records[i-1].StartDate))
	}
}

// TestFetchMedications_Window verifies only the trailing 3 months are
// queried.
func TestFetchMedications_Window(t *testing.T) {
	now := time.Now()
	fake := platformtest.New()
	fake.Medications = []platform.RawMedication{
		{ID: "recent", Start: now.AddDate(0, -1, 0)},
		{ID: "ancient", Start: now.AddDate(0, -6, 0)},
	}

	records, err := NewAggregator(fake).FetchMedications(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "recent", records[0].ID)
}
