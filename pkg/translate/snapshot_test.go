package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/types"
)

// TestNormalizeValue covers the unit conversions applied to incoming
// platform samples.
func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		name     string
		category types.Category
		value    float64
		unit     string
		want     float64
		wantErr  bool
	}{
		{
			name:     "canonical unit passes through",
			category: types.CategoryHeartRate,
			value:    72,
			unit:     "count/min",
			want:     72,
		},
		{
			name:     "per-second rate to per-minute",
			category: types.CategoryRespiratoryRate,
			value:    0.25,
			unit:     "count/s",
			want:     15,
		},
		{
			name:     "fraction to percent",
			category: types.CategoryOxygenSaturation,
			value:    0.98,
			unit:     "fraction",
			want:     98,
		},
		{
			name:     "g/L to mg/dL",
			category: types.CategoryBloodGlucose,
			value:    1.1,
			unit:     "g/L",
			want:     110.00000000000001, // 1.1 * 100 in float64
		},
		{
			name:     "pounds to kilograms",
			category: types.CategoryBodyMass,
			value:    150,
			unit:     "lb",
			want:     150 * 0.45359237,
		},
		{
			name:     "meters to centimeters",
			category: types.CategoryHeight,
			value:    1.75,
			unit:     "m",
			want:     175,
		},
		{
			name:     "unknown unit is malformed data",
			category: types.CategoryHeartRate,
			value:    72,
			unit:     "furlongs",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeValue(tt.category, tt.value, tt.unit)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

// TestMetricForCategory verifies numeric read categories map to snapshot
// metrics and non-numeric ones do not.
func TestMetricForCategory(t *testing.T) {
	m, ok := MetricForCategory(types.CategoryHeartRate)
	assert.True(t, ok)
	assert.Equal(t, types.MetricHeartRate, m)

	_, ok = MetricForCategory(types.CategoryMedications)
	assert.False(t, ok)

	_, ok = MetricForCategory(types.CategorySleep)
	assert.False(t, ok)
}
