package platform

import (
	"context"
	"time"

	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/types"
)

// NotifyFunc is invoked when new data appears in a watched category. This is
// the only place in the engine where the platform's callback style surfaces;
// everything above the Client boundary is written in direct style.
type NotifyFunc func(category types.Category)

// Handle owns one live watch registration. Cancel is idempotent.
type Handle interface {
	Cancel()
}

// Sample is one quantity value read back from the platform.
type Sample struct {
	ID       string            `json:"id"`
	Category types.Category    `json:"category"`
	Value    float64           `json:"value"`
	Unit     string            `json:"unit"`
	Start    time.Time         `json:"start"`
	End      time.Time         `json:"end"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// RawMedication is a medication record as the platform stores it. A zero End
// means the platform recorded no end date.
type RawMedication struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Dosage string    `json:"dosage"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end,omitzero"`
	Source string    `json:"source"`
}

// Characteristics are the static profile traits the platform exposes.
type Characteristics struct {
	DateOfBirth   *time.Time `json:"dateOfBirth,omitempty"`
	BiologicalSex string     `json:"biologicalSex,omitempty"`
}

// Client is the external health platform's contract. The platform is not
// under this engine's control; the engine only consumes these primitives.
type Client interface {
	// AuthorizationStatus reflects the platform's current decision for one
	// (category, direction) pair. Synchronous; an unreachable platform reads
	// as NotDetermined.
	AuthorizationStatus(category types.Category, dir types.Direction) types.AuthorizationStatus

	// RequestAuthorization presents one combined permission prompt for the
	// given read and write category sets. Categories the user already decided
	// are not re-prompted.
	RequestAuthorization(ctx context.Context, read, write []types.Category) error

	// SaveBatch writes all records in one atomic operation: the batch either
	// fully succeeds or fully fails. Returns the platform-assigned record IDs.
	SaveBatch(ctx context.Context, records []types.TranslatedRecord) ([]string, error)

	// LatestSample returns the most recent sample in a category, or ErrNoData.
	LatestSample(ctx context.Context, category types.Category) (*Sample, error)

	// SampleRange returns samples in [start, end) ordered by start time.
	SampleRange(ctx context.Context, category types.Category, start, end time.Time) ([]Sample, error)

	// MedicationRange returns medication records whose start falls in
	// [start, end).
	MedicationRange(ctx context.Context, start, end time.Time) ([]RawMedication, error)

	// Characteristics returns the static profile traits.
	Characteristics(ctx context.Context) (Characteristics, error)

	// Watch registers a long-lived change callback for one category. The
	// caller owns the returned handle; at most one handle per category should
	// be live at a time.
	Watch(category types.Category, fn NotifyFunc) (Handle, error)

	// EnableBackgroundDelivery allows the watch callback for a category to
	// fire while the app is suspended.
	EnableBackgroundDelivery(category types.Category) error

	// DisableBackgroundDelivery reverses EnableBackgroundDelivery.
	DisableBackgroundDelivery(category types.Category) error
}
