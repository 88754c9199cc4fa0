package translate

import (
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/types"
)

// MetadataFallback marks the best-effort record emitted when no specific
// rule produced an authorized record. The write coordinator never skips a
// record carrying this flag.
const MetadataFallback = "fallback"

// SymptomRecords applies the tie-breakable multi-rule symptom mapping:
//
//  1. non-zero pain emits an abdominal-cramps record (pain severity table)
//  2. a hard stool classification emits a constipation-leaning record
//  3. a loose stool classification emits a diarrhea-leaning record
//     (urgency severity table)
//
// Each rule is independently gated by writeAuthorized for its target
// category. If no rule produces an authorized record, exactly one generic
// abdominal-cramps fallback is emitted regardless of authorization so the
// symptom is never silently dropped.
//
// Pure given the predicate; record order carries no meaning.
func SymptomRecords(s types.Symptom, writeAuthorized func(types.Category) bool) []types.TranslatedRecord {
	var records []types.TranslatedRecord

	emit := func(category types.Category, severity types.Severity, fallback bool) {
		meta := entityMetadata(s, "symptom")
		meta["severity"] = severity.String()
		if fallback {
			meta[MetadataFallback] = "true"
		}
		records = append(records, types.TranslatedRecord{
			Category: category,
			Value:    float64(severity),
			Unit:     category.Unit(),
			Start:    s.LoggedAt,
			End:      s.LoggedAt,
			Metadata: meta,
		})
	}

	if s.Pain != types.PainNone && writeAuthorized(types.CategoryAbdominalCramps) {
		emit(types.CategoryAbdominalCramps, PainSeverity(s.Pain), false)
	}
	if s.Stool.Hard() && writeAuthorized(types.CategoryConstipation) {
		severity := PainSeverity(s.Pain)
		if severity == types.SeverityNotPresent {
			severity = types.SeverityMild
		}
		emit(types.CategoryConstipation, severity, false)
	}
	if s.Stool.Loose() && writeAuthorized(types.CategoryDiarrhea) {
		emit(types.CategoryDiarrhea, UrgencySeverity(s.Urgency), false)
	}

	if len(records) == 0 {
		emit(types.CategoryAbdominalCramps, PainSeverity(s.Pain), true)
	}
	return records
}

// EntityRecords dispatches translation for every entity kind the engine
// accepts. Total: unhandled kinds translate to nothing rather than failing.
// Medication records are platform-owned clinical data and are never written
// back.
func EntityRecords(e types.Entity, writeAuthorized func(types.Category) bool) []types.TranslatedRecord {
	switch v := e.(type) {
	case types.Meal:
		return MealRecords(v)
	case *types.Meal:
		return MealRecords(*v)
	case types.Symptom:
		return SymptomRecords(v, writeAuthorized)
	case *types.Symptom:
		return SymptomRecords(*v, writeAuthorized)
	case types.WaterIntake:
		return WaterRecords(v)
	case *types.WaterIntake:
		return WaterRecords(*v)
	case types.MedicationRecord, *types.MedicationRecord:
		return nil
	}
	return nil
}
