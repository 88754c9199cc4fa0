package translate

import (
	"fmt"

	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/types"
)

// Conversion factors for incoming sample normalization. Each factor is the
// defined ratio between units, not a measurement-derived approximation.
const (
	secondsPerMinute   = 60.0
	percentPerFraction = 100.0
	mmHgPerKPa         = 760.0 / 101.325
	kgPerPound         = 0.45359237
	cmPerMeter         = 100.0
	mgdLPerGramPerL    = 100.0
	hoursPerSecond     = 1.0 / 3600.0
)

// MetricForCategory maps a read category to its snapshot metric. Categories
// with no numeric metric (medications, profile traits, sleep) return false.
func MetricForCategory(c types.Category) (types.Metric, bool) {
	switch c {
	case types.CategoryHeartRate:
		return types.MetricHeartRate, true
	case types.CategoryRestingHeartRate:
		return types.MetricRestingHeartRate, true
	case types.CategoryRespiratoryRate:
		return types.MetricRespiratoryRate, true
	case types.CategoryOxygenSaturation:
		return types.MetricOxygenSaturation, true
	case types.CategoryBloodGlucose:
		return types.MetricBloodGlucose, true
	case types.CategoryBloodPressureSystolic:
		return types.MetricBloodPressureSystolic, true
	case types.CategoryBloodPressureDiastolic:
		return types.MetricBloodPressureDiastolic, true
	case types.CategoryBodyMass:
		return types.MetricBodyMass, true
	case types.CategoryHeight:
		return types.MetricHeight, true
	case types.CategoryStepCount:
		return types.MetricStepCount, true
	case types.CategoryActiveEnergy:
		return types.MetricActiveEnergy, true
	}
	return "", false
}

// NormalizeValue converts an incoming platform value from its declared unit
// to the category's canonical unit. Values already in the canonical unit
// pass through. Unknown units are malformed data: the caller logs and drops
// the single record.
func NormalizeValue(c types.Category, value float64, unit string) (float64, error) {
	canonical := c.Unit()
	if unit == canonical {
		return value, nil
	}

	switch {
	case canonical == "count/min" && unit == "count/s":
		return value * secondsPerMinute, nil
	case canonical == "%" && unit == "fraction":
		return value * percentPerFraction, nil
	case canonical == "mmHg" && unit == "kPa":
		return value * mmHgPerKPa, nil
	case canonical == "mg/dL" && unit == "g/L":
		return value * mgdLPerGramPerL, nil
	case canonical == "kg" && unit == "lb":
		return value * kgPerPound, nil
	case canonical == "cm" && unit == "m":
		return value * cmPerMeter, nil
	case canonical == "hr" && unit == "s":
		return value * hoursPerSecond, nil
	}
	return 0, fmt.Errorf("no conversion from %q to %q for category %s", unit, canonical, c)
}
