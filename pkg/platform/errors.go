package platform

import (
	"errors"
	"fmt"

	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/types"
)

var (
	// ErrUnavailable means the device or runtime lacks the health platform
	// capability. Fatal to the engine's features; not retryable.
	ErrUnavailable = errors.New("health platform unavailable")

	// ErrNoData means a query succeeded but returned nothing. Not an error
	// condition for callers; surfaced so they can represent an absent result.
	ErrNoData = errors.New("no data for category")

	// ErrNoWritableData means translation produced an empty batch, so no
	// write was issued.
	ErrNoWritableData = errors.New("entity produced no writable records")
)

// NotAuthorizedError means a category-specific permission is missing.
// Recoverable by directing the user to the platform's settings surface.
type NotAuthorizedError struct {
	Category  types.Category
	Direction types.Direction
}

func (e *NotAuthorizedError) Error() string {
	return fmt.Sprintf("not authorized to %s category %s", e.Direction, e.Category)
}

// InvalidDataError marks a malformed record from the platform. The record is
// logged and dropped; it does not abort the batch it arrived in.
type InvalidDataError struct {
	Category types.Category
	Reason   string
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("invalid record in category %s: %s", e.Category, e.Reason)
}

// IsNoData reports whether err represents an empty query result.
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoData)
}

// IsNotAuthorized reports whether err is a missing-permission error.
func IsNotAuthorized(err error) bool {
	var na *NotAuthorizedError
	return errors.As(err, &na)
}
