package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/platform/platformtest"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/types"
)

// TestRequestAccess_GrantsUndecided verifies the combined prompt grants
// undecided categories and leaves prior decisions alone.
func TestRequestAccess_GrantsUndecided(t *testing.T) {
	fake := platformtest.New()
	fake.Deny(types.CategoryDietarySodium, types.DirectionWrite)

	registry := NewRegistry(fake)
	err := registry.RequestAccess(context.Background(),
		[]types.Category{types.CategoryStepCount},
		[]types.Category{types.CategoryDietaryEnergy, types.CategoryDietarySodium},
	)
	assert.NoError(t, err)

	assert.Equal(t, types.AuthorizationAuthorized,
		registry.Status(types.CategoryStepCount, types.DirectionRead))
	assert.Equal(t, types.AuthorizationAuthorized,
		registry.Status(types.CategoryDietaryEnergy, types.DirectionWrite))
	// The earlier denial stands: no re-prompt for decided categories.
	assert.Equal(t, types.AuthorizationDenied,
		registry.Status(types.CategoryDietarySodium, types.DirectionWrite))
}

// TestRequestAccess_Error verifies a failed prompt propagates.
func TestRequestAccess_Error(t *testing.T) {
	fake := platformtest.New()
	fake.RequestErr = errors.New("prompt dismissed")

	registry := NewRegistry(fake)
	err := registry.RequestAccess(context.Background(), nil,
		[]types.Category{types.CategoryDietaryEnergy})
	assert.Error(t, err)
}

// TestStatus_AlwaysFresh verifies Status reflects the platform even after
// the cache was populated with an older decision.
func TestStatus_AlwaysFresh(t *testing.T) {
	fake := platformtest.New()
	fake.Authorize(types.CategoryDietaryEnergy, types.DirectionWrite)

	registry := NewRegistry(fake)
	assert.Equal(t, types.AuthorizationAuthorized,
		registry.Status(types.CategoryDietaryEnergy, types.DirectionWrite))

	// The user revokes in platform settings; the next Status call must see it.
	fake.Deny(types.CategoryDietaryEnergy, types.DirectionWrite)
	assert.Equal(t, types.AuthorizationDenied,
		registry.Status(types.CategoryDietaryEnergy, types.DirectionWrite))

	// The display cache holds the refreshed value.
	assert.Equal(t, types.AuthorizationDenied,
		registry.CachedStatus(types.CategoryDietaryEnergy, types.DirectionWrite))
}

// TestNeedsAttention distinguishes the aggregate predicates.
func TestNeedsAttention(t *testing.T) {
	fake := platformtest.New()
	fake.Authorize(types.CategoryDietaryEnergy, types.DirectionWrite)

	registry := NewRegistry(fake)
	categories := []types.Category{types.CategoryDietaryEnergy, types.CategoryDietaryProtein}

	// Protein is NotDetermined: attention needed, but nothing denied.
	assert.True(t, registry.NeedsAttention(categories))
	assert.Empty(t, registry.Denied(categories))

	fake.Deny(types.CategoryDietaryProtein, types.DirectionWrite)
	assert.Equal(t, []types.Category{types.CategoryDietaryProtein}, registry.Denied(categories))

	fake.Authorize(types.CategoryDietaryProtein, types.DirectionWrite)
	assert.False(t, registry.NeedsAttention(categories))
}

// TestWriteAuthorized verifies the write gate reads fresh state.
func TestWriteAuthorized(t *testing.T) {
	fake := platformtest.New()
	registry := NewRegistry(fake)

	assert.False(t, registry.WriteAuthorized(types.CategoryDietaryEnergy))
	fake.Authorize(types.CategoryDietaryEnergy, types.DirectionWrite)
	assert.True(t, registry.WriteAuthorized(types.CategoryDietaryEnergy))
}
