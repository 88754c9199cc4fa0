package fetch

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/log"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/metrics"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/platform"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/translate"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/types"
)

// distantFutureYears is the window-boundary heuristic: a medication end date
// this far out means the platform recorded "no end date".
const distantFutureYears = 100

// medicationWindowMonths is the trailing query window for medications.
const medicationWindowMonths = 3

// sleepWindow is the trailing range queried for sleep intervals.
const sleepWindow = 24 * time.Hour

// numericCategories are the point-query metrics fanned out on every cycle.
var numericCategories = []types.Category{
	types.CategoryHeartRate,
	types.CategoryRestingHeartRate,
	types.CategoryRespiratoryRate,
	types.CategoryOxygenSaturation,
	types.CategoryBloodGlucose,
	types.CategoryBloodPressureSystolic,
	types.CategoryBloodPressureDiastolic,
	types.CategoryBodyMass,
	types.CategoryHeight,
	types.CategoryStepCount,
	types.CategoryActiveEnergy,
}

// Aggregator fans out parallel queries across unrelated metrics and joins
// them into one consolidated snapshot.
type Aggregator struct {
	client platform.Client
	now    func() time.Time
}

// NewAggregator creates an aggregator over the given platform client.
func NewAggregator(client platform.Client) *Aggregator {
	return &Aggregator{client: client, now: time.Now}
}

// FetchAll issues every sub-query concurrently and joins when all complete.
// A failed sub-query leaves its metric absent from the snapshot instead of
// failing the aggregate: partial success as a whole is the policy.
func (a *Aggregator) FetchAll(ctx context.Context) *types.HealthSnapshot {
	timer := metrics.NewTimer()
	defer func() {
		timer.ObserveDuration(metrics.FetchDuration)
		metrics.FetchCyclesTotal.Inc()
	}()

	logger := log.WithComponent("fetch")
	snapshot := &types.HealthSnapshot{
		CapturedAt: a.now(),
		Values:     make(map[types.Metric]float64),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, category := range numericCategories {
		wg.Add(1)
		go func(category types.Category) {
			defer wg.Done()

			sample, err := a.client.LatestSample(ctx, category)
			if err != nil {
				if !platform.IsNoData(err) {
					metrics.FetchMetricFailures.WithLabelValues(string(category)).Inc()
					logger.Warn().Err(err).Str("category", string(category)).Msg("sub-query failed, metric absent")
				}
				return
			}

			metric, ok := translate.MetricForCategory(category)
			if !ok {
				return
			}
			value, err := translate.NormalizeValue(category, sample.Value, sample.Unit)
			if err != nil {
				// Malformed record: drop it, keep the cycle going.
				metrics.FetchMetricFailures.WithLabelValues(string(category)).Inc()
				logger.Warn().Err(err).Str("category", string(category)).Msg("dropping invalid record")
				return
			}

			mu.Lock()
			snapshot.Values[metric] = value
			mu.Unlock()
		}(category)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		chars, err := a.client.Characteristics(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("characteristics query failed")
			return
		}
		mu.Lock()
		snapshot.DateOfBirth = chars.DateOfBirth
		snapshot.BiologicalSex = chars.BiologicalSex
		mu.Unlock()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		end := a.now()
		samples, err := a.client.SampleRange(ctx, types.CategorySleep, end.Add(-sleepWindow), end)
		if err != nil {
			metrics.FetchMetricFailures.WithLabelValues(string(types.CategorySleep)).Inc()
			logger.Warn().Err(err).Msg("sleep range query failed")
			return
		}
		if len(samples) == 0 {
			return
		}

		var intervals []types.SleepInterval
		var total time.Duration
		for _, s := range samples {
			if s.End.Before(s.Start) {
				continue // malformed interval, drop it
			}
			intervals = append(intervals, types.SleepInterval{Start: s.Start, End: s.End})
			total += s.End.Sub(s.Start)
		}
		mu.Lock()
		snapshot.Sleep = intervals
		snapshot.Values[types.MetricSleepHours] = total.Hours()
		mu.Unlock()
	}()

	// Join point: suspends until every sub-fetch completed or failed.
	wg.Wait()
	return snapshot
}

// FetchMedications queries the trailing 3-month window and sorts by start
// date descending. IsActive applies the window-boundary heuristic: an end
// date beyond ~100 years out is treated as "no end date".
func (a *Aggregator) FetchMedications(ctx context.Context) ([]types.MedicationRecord, error) {
	now := a.now()
	start := now.AddDate(0, -medicationWindowMonths, 0)

	raw, err := a.client.MedicationRange(ctx, start, now)
	if err != nil {
		return nil, err
	}

	records := make([]types.MedicationRecord, 0, len(raw))
	for _, m := range raw {
		records = append(records, a.toMedicationRecord(m, now))
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].StartDate.After(records[j].StartDate)
	})
	return records, nil
}

func (a *Aggregator) toMedicationRecord(m platform.RawMedication, now time.Time) types.MedicationRecord {
	record := types.MedicationRecord{
		ID:         m.ID,
		Name:       m.Name,
		Dosage:     m.Dosage,
		StartDate:  m.Start,
		Provenance: types.ProvenancePlatform,
		Privacy:    types.PrivacySensitive,
	}
	if m.Source == string(types.ProvenanceManual) {
		record.Provenance = types.ProvenanceManual
	}

	distantFuture := now.AddDate(distantFutureYears, 0, 0)
	switch {
	case m.End.IsZero():
		record.IsActive = true
	case m.End.After(distantFuture):
		// Effectively no end date.
		record.IsActive = true
	default:
		end := m.End
		record.EndDate = &end
		record.IsActive = end.After(now)
	}
	return record
}
