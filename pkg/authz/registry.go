package authz

import (
	"context"
	"fmt"
	"sync"

	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/log"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/metrics"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/platform"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/types"
)

type statusKey struct {
	category types.Category
	dir      types.Direction
}

// Registry tracks per-(category, direction) authorization state. The
// platform is the source of truth: Status always reads fresh; the internal
// cache exists only so display code can render the last known table without
// touching the platform.
type Registry struct {
	client platform.Client

	mu    sync.RWMutex
	cache map[statusKey]types.AuthorizationStatus
}

// NewRegistry creates a registry over the given platform client.
func NewRegistry(client platform.Client) *Registry {
	return &Registry{
		client: client,
		cache:  make(map[statusKey]types.AuthorizationStatus),
	}
}

// RequestAccess presents one combined permission prompt for the read and
// write category sets. Categories the user already decided are not
// re-prompted. On success the cache is refreshed for every requested pair.
func (r *Registry) RequestAccess(ctx context.Context, read, write []types.Category) error {
	logger := log.WithComponent("authz")

	if err := r.client.RequestAuthorization(ctx, read, write); err != nil {
		metrics.AuthorizationRequestsTotal.WithLabelValues("error").Inc()
		logger.Error().Err(err).Msg("authorization request failed")
		return fmt.Errorf("authorization request failed: %w", err)
	}

	r.refresh(read, types.DirectionRead)
	r.refresh(write, types.DirectionWrite)
	metrics.AuthorizationRequestsTotal.WithLabelValues("granted").Inc()
	logger.Info().
		Int("read_categories", len(read)).
		Int("write_categories", len(write)).
		Msg("authorization granted")
	return nil
}

// Status returns the current platform decision for one pair. Always fresh;
// never memoized across calls. The display cache is updated as a side
// effect.
func (r *Registry) Status(category types.Category, dir types.Direction) types.AuthorizationStatus {
	status := r.client.AuthorizationStatus(category, dir)

	r.mu.Lock()
	r.cache[statusKey{category, dir}] = status
	r.mu.Unlock()
	return status
}

// CachedStatus returns the last refreshed decision for display. Never use
// this for write decisions.
func (r *Registry) CachedStatus(category types.Category, dir types.Direction) types.AuthorizationStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.cache[statusKey{category, dir}]; ok {
		return s
	}
	return types.AuthorizationNotDetermined
}

// RefreshAll re-reads both directions for an explicit category list. Called
// after any permission-affecting event: app foreground, explicit request.
func (r *Registry) RefreshAll(categories []types.Category) {
	r.refresh(categories, types.DirectionRead)
	r.refresh(categories, types.DirectionWrite)

	denied := 0
	r.mu.RLock()
	for _, s := range r.cache {
		if s == types.AuthorizationDenied {
			denied++
		}
	}
	r.mu.RUnlock()
	metrics.CategoriesDenied.Set(float64(denied))
}

func (r *Registry) refresh(categories []types.Category, dir types.Direction) {
	for _, c := range categories {
		status := r.client.AuthorizationStatus(c, dir)
		r.mu.Lock()
		r.cache[statusKey{c, dir}] = status
		r.mu.Unlock()
	}
}

// WriteAuthorized reports whether a category may be written right now. Reads
// fresh platform state so a stale cache can never green-light a write.
func (r *Registry) WriteAuthorized(category types.Category) bool {
	return r.Status(category, types.DirectionWrite) == types.AuthorizationAuthorized
}

// NeedsAttention reports whether any category's write status is not
// Authorized. NotDetermined counts: it can still be resolved in-flow with a
// prompt.
func (r *Registry) NeedsAttention(categories []types.Category) bool {
	for _, c := range categories {
		if r.Status(c, types.DirectionWrite) != types.AuthorizationAuthorized {
			return true
		}
	}
	return false
}

// Denied returns the categories with an explicit denial in either direction.
// Distinguished from NotDetermined because fixing a denial requires the user
// to leave the app for the platform's settings surface.
func (r *Registry) Denied(categories []types.Category) []types.Category {
	var denied []types.Category
	for _, c := range categories {
		if r.Status(c, types.DirectionRead) == types.AuthorizationDenied ||
			r.Status(c, types.DirectionWrite) == types.AuthorizationDenied {
			denied = append(denied, c)
		}
	}
	return denied
}
