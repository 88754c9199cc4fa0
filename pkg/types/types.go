package types

import (
	"time"
)

// Category identifies one kind of health data on the external platform.
// Authorization is tracked per (category, direction) pair.
type Category string

const (
	// Write categories (derived from domain entities)
	CategoryDietaryEnergy        Category = "dietary.energy"
	CategoryDietaryProtein       Category = "dietary.protein"
	CategoryDietaryCarbohydrates Category = "dietary.carbohydrates"
	CategoryDietaryFat           Category = "dietary.fat"
	CategoryDietaryFiber         Category = "dietary.fiber"
	CategoryDietarySugar         Category = "dietary.sugar"
	CategoryDietarySodium        Category = "dietary.sodium"
	CategoryDietaryWater         Category = "dietary.water"
	CategoryAbdominalCramps      Category = "symptom.abdominal_cramps"
	CategoryConstipation         Category = "symptom.constipation"
	CategoryDiarrhea             Category = "symptom.diarrhea"

	// Read categories (observed and aggregated into snapshots)
	CategoryHeartRate              Category = "vitals.heart_rate"
	CategoryRestingHeartRate       Category = "vitals.resting_heart_rate"
	CategoryRespiratoryRate        Category = "vitals.respiratory_rate"
	CategoryOxygenSaturation       Category = "vitals.oxygen_saturation"
	CategoryBloodGlucose           Category = "vitals.blood_glucose"
	CategoryBloodPressureSystolic  Category = "vitals.blood_pressure_systolic"
	CategoryBloodPressureDiastolic Category = "vitals.blood_pressure_diastolic"
	CategoryBodyMass               Category = "body.mass"
	CategoryHeight                 Category = "body.height"
	CategoryStepCount              Category = "activity.step_count"
	CategoryActiveEnergy           Category = "activity.active_energy"
	CategorySleep                  Category = "sleep.analysis"
	CategoryMedications            Category = "clinical.medications"
	CategoryDateOfBirth            Category = "profile.date_of_birth"
	CategoryBiologicalSex          Category = "profile.biological_sex"
)

// WriteCategories lists every category this engine may write to.
var WriteCategories = []Category{
	CategoryDietaryEnergy,
	CategoryDietaryProtein,
	CategoryDietaryCarbohydrates,
	CategoryDietaryFat,
	CategoryDietaryFiber,
	CategoryDietarySugar,
	CategoryDietarySodium,
	CategoryDietaryWater,
	CategoryAbdominalCramps,
	CategoryConstipation,
	CategoryDiarrhea,
}

// ReadCategories lists every category this engine reads or observes.
var ReadCategories = []Category{
	CategoryHeartRate,
	CategoryRestingHeartRate,
	CategoryRespiratoryRate,
	CategoryOxygenSaturation,
	CategoryBloodGlucose,
	CategoryBloodPressureSystolic,
	CategoryBloodPressureDiastolic,
	CategoryBodyMass,
	CategoryHeight,
	CategoryStepCount,
	CategoryActiveEnergy,
	CategorySleep,
	CategoryMedications,
	CategoryDateOfBirth,
	CategoryBiologicalSex,
}

// Unit returns the canonical unit records in this category are denominated
// in. Total over the closed category set; unknown categories return "".
func (c Category) Unit() string {
	switch c {
	case CategoryDietaryEnergy, CategoryActiveEnergy:
		return "kcal"
	case CategoryDietaryProtein, CategoryDietaryCarbohydrates, CategoryDietaryFat,
		CategoryDietaryFiber, CategoryDietarySugar, CategoryDietarySodium:
		return "g"
	case CategoryDietaryWater:
		return "L"
	case CategoryAbdominalCramps, CategoryConstipation, CategoryDiarrhea:
		return "severity"
	case CategoryHeartRate, CategoryRestingHeartRate, CategoryRespiratoryRate:
		return "count/min"
	case CategoryOxygenSaturation:
		return "%"
	case CategoryBloodGlucose:
		return "mg/dL"
	case CategoryBloodPressureSystolic, CategoryBloodPressureDiastolic:
		return "mmHg"
	case CategoryBodyMass:
		return "kg"
	case CategoryHeight:
		return "cm"
	case CategoryStepCount:
		return "count"
	case CategorySleep:
		return "hr"
	case CategoryMedications, CategoryDateOfBirth, CategoryBiologicalSex:
		return ""
	}
	return ""
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, k := range WriteCategories {
		if c == k {
			return true
		}
	}
	for _, k := range ReadCategories {
		if c == k {
			return true
		}
	}
	return false
}

// Direction distinguishes read and write authorization for a category.
type Direction string

const (
	DirectionRead  Direction = "read"
	DirectionWrite Direction = "write"
)

// AuthorizationStatus is the platform's decision for one (category,
// direction) pair. It is always read fresh from the platform; the engine
// caches it only for display.
type AuthorizationStatus string

const (
	AuthorizationNotDetermined AuthorizationStatus = "not_determined"
	AuthorizationDenied        AuthorizationStatus = "denied"
	AuthorizationAuthorized    AuthorizationStatus = "authorized"
)

// Severity is the platform's 4-point clinical severity scale for
// category-valued symptom records.
type Severity int

const (
	SeverityNotPresent Severity = iota
	SeverityMild
	SeverityModerate
	SeveritySevere
)

// String returns the severity name used in record metadata.
func (s Severity) String() string {
	switch s {
	case SeverityNotPresent:
		return "not_present"
	case SeverityMild:
		return "mild"
	case SeverityModerate:
		return "moderate"
	case SeveritySevere:
		return "severe"
	}
	return "unknown"
}

// PainLevel is the app's 0-3 pain vocabulary.
type PainLevel int

const (
	PainNone PainLevel = iota
	PainMild
	PainModerate
	PainSevere
)

// StoolType is the Bristol stool classification, 1 (hard) through 7 (liquid).
type StoolType int

const (
	StoolType1 StoolType = iota + 1
	StoolType2
	StoolType3
	StoolType4
	StoolType5
	StoolType6
	StoolType7
)

// Hard reports whether the classification falls in the constipation-leaning
// range.
func (s StoolType) Hard() bool { return s == StoolType1 || s == StoolType2 }

// Loose reports whether the classification falls in the diarrhea-leaning
// range.
func (s StoolType) Loose() bool { return s == StoolType6 || s == StoolType7 }

// UrgencyLevel is the app's 0-3 bowel urgency vocabulary.
type UrgencyLevel int

const (
	UrgencyNone UrgencyLevel = iota
	UrgencyMild
	UrgencyModerate
	UrgencySevere
)

// Entity is implemented by every domain entity the engine can synchronize.
// Entity shapes are owned by the app's core data layer; the engine only
// translates them.
type Entity interface {
	EntityID() string
	Owner() string
	OccurredAt() time.Time
}

// MealItem is one line item of a meal with its nutrition snapshot.
// Zero-valued nutrients mean "not present" and sum as zero.
type MealItem struct {
	Name     string  `json:"name" yaml:"name"`
	Calories float64 `json:"calories" yaml:"calories"`
	Protein  float64 `json:"protein" yaml:"protein"`   // grams
	Carbs    float64 `json:"carbs" yaml:"carbs"`       // grams
	Fat      float64 `json:"fat" yaml:"fat"`           // grams
	Fiber    float64 `json:"fiber" yaml:"fiber"`       // grams
	Sugar    float64 `json:"sugar" yaml:"sugar"`       // grams
	SodiumMg float64 `json:"sodiumMg" yaml:"sodiumMg"` // milligrams
}

// Meal is a logged meal with zero or more line items.
type Meal struct {
	ID     string     `json:"id" yaml:"id"`
	UserID string     `json:"userId" yaml:"userId"`
	Name   string     `json:"name" yaml:"name"`
	AteAt  time.Time  `json:"ateAt" yaml:"ateAt"`
	Items  []MealItem `json:"items" yaml:"items"`
}

func (m Meal) EntityID() string      { return m.ID }
func (m Meal) Owner() string         { return m.UserID }
func (m Meal) OccurredAt() time.Time { return m.AteAt }

// Symptom is one logged gut symptom entry.
type Symptom struct {
	ID       string       `json:"id" yaml:"id"`
	UserID   string       `json:"userId" yaml:"userId"`
	LoggedAt time.Time    `json:"loggedAt" yaml:"loggedAt"`
	Pain     PainLevel    `json:"pain" yaml:"pain"`
	Stool    StoolType    `json:"stool" yaml:"stool"`
	Urgency  UrgencyLevel `json:"urgency" yaml:"urgency"`
	Notes    string       `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func (s Symptom) EntityID() string      { return s.ID }
func (s Symptom) Owner() string         { return s.UserID }
func (s Symptom) OccurredAt() time.Time { return s.LoggedAt }

// WaterIntake is one logged drink in milliliters.
type WaterIntake struct {
	ID       string    `json:"id" yaml:"id"`
	UserID   string    `json:"userId" yaml:"userId"`
	DrankAt  time.Time `json:"drankAt" yaml:"drankAt"`
	AmountML float64   `json:"amountMl" yaml:"amountMl"`
}

func (w WaterIntake) EntityID() string      { return w.ID }
func (w WaterIntake) Owner() string         { return w.UserID }
func (w WaterIntake) OccurredAt() time.Time { return w.DrankAt }

// Provenance records where a medication entry originated.
type Provenance string

const (
	ProvenancePlatform Provenance = "platform"
	ProvenanceManual   Provenance = "manual"
)

// PrivacyClass tags medication records for the app's privacy handling.
type PrivacyClass string

const (
	PrivacyStandard  PrivacyClass = "standard"
	PrivacySensitive PrivacyClass = "sensitive"
)

// MedicationRecord is one medication with its validity window. An absent or
// distant-future end date means the medication is still active.
type MedicationRecord struct {
	ID         string       `json:"id" yaml:"id"`
	UserID     string       `json:"userId" yaml:"userId"`
	Name       string       `json:"name" yaml:"name"`
	Dosage     string       `json:"dosage" yaml:"dosage"`
	StartDate  time.Time    `json:"startDate" yaml:"startDate"`
	EndDate    *time.Time   `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	IsActive   bool         `json:"isActive" yaml:"isActive"`
	Provenance Provenance   `json:"provenance" yaml:"provenance"`
	Privacy    PrivacyClass `json:"privacy" yaml:"privacy"`
}

func (m MedicationRecord) EntityID() string      { return m.ID }
func (m MedicationRecord) Owner() string         { return m.UserID }
func (m MedicationRecord) OccurredAt() time.Time { return m.StartDate }

// TranslatedRecord is one outgoing unit shaped for the platform's write API.
// Records are ephemeral: built immediately before a write, discarded after.
type TranslatedRecord struct {
	Category Category          `json:"category"`
	Value    float64           `json:"value"`
	Unit     string            `json:"unit"`
	Start    time.Time         `json:"start"`
	End      time.Time         `json:"end"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Metric names one consolidated snapshot field.
type Metric string

const (
	MetricHeartRate              Metric = "heart_rate"
	MetricRestingHeartRate       Metric = "resting_heart_rate"
	MetricRespiratoryRate        Metric = "respiratory_rate"
	MetricOxygenSaturation       Metric = "oxygen_saturation"
	MetricBloodGlucose           Metric = "blood_glucose"
	MetricBloodPressureSystolic  Metric = "blood_pressure_systolic"
	MetricBloodPressureDiastolic Metric = "blood_pressure_diastolic"
	MetricBodyMass               Metric = "body_mass"
	MetricHeight                 Metric = "height"
	MetricStepCount              Metric = "step_count"
	MetricActiveEnergy           Metric = "active_energy"
	MetricSleepHours             Metric = "sleep_hours"
)

// SleepInterval is one contiguous sleep period from the platform.
type SleepInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// HealthSnapshot is a full-replacement consolidated view of the monitored
// metrics at one capture time. Absent map keys mean the metric could not be
// fetched in that cycle; snapshots are never merged field-by-field.
type HealthSnapshot struct {
	CapturedAt    time.Time          `json:"capturedAt"`
	Values        map[Metric]float64 `json:"values"`
	DateOfBirth   *time.Time         `json:"dateOfBirth,omitempty"`
	BiologicalSex string             `json:"biologicalSex,omitempty"`
	Sleep         []SleepInterval    `json:"sleep,omitempty"`
}

// Value returns the metric value and whether it was captured.
func (s *HealthSnapshot) Value(m Metric) (float64, bool) {
	if s == nil || s.Values == nil {
		return 0, false
	}
	v, ok := s.Values[m]
	return v, ok
}
