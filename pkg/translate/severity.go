package translate

import (
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/types"
)

// PainSeverity maps the app's 0-3 pain vocabulary onto the platform's
// 4-point severity scale.
func PainSeverity(p types.PainLevel) types.Severity {
	switch p {
	case types.PainNone:
		return types.SeverityNotPresent
	case types.PainMild:
		return types.SeverityMild
	case types.PainModerate:
		return types.SeverityModerate
	case types.PainSevere:
		return types.SeveritySevere
	}
	return types.SeverityNotPresent
}

// UrgencySeverity maps the app's 0-3 urgency vocabulary onto the platform's
// severity scale. Urgency has no "not present" rung: its minimum maps to
// mild.
func UrgencySeverity(u types.UrgencyLevel) types.Severity {
	switch u {
	case types.UrgencyNone, types.UrgencyMild:
		return types.SeverityMild
	case types.UrgencyModerate:
		return types.SeverityModerate
	case types.UrgencySevere:
		return types.SeveritySevere
	}
	return types.SeverityMild
}
