// Package platformtest provides a configurable in-memory platform.Client
// fake shared by the engine's package tests.
package platformtest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/platform"
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/types"
)

type authKey struct {
	Category  types.Category
	Direction types.Direction
}

// Fake is an in-memory platform.Client with failure injection. The zero
// state answers NotDetermined everywhere, holds no samples, and grants any
// requested authorization.
type Fake struct {
	mu sync.Mutex

	auth       map[authKey]types.AuthorizationStatus
	RequestErr error

	Saved   [][]types.TranslatedRecord // committed batches
	SaveErr error

	Samples   map[types.Category][]platform.Sample
	SampleErr map[types.Category]error

	Medications   []platform.RawMedication
	MedicationErr error

	Profile platform.Characteristics

	watchers  map[types.Category]map[int]platform.NotifyFunc
	nextWatch int
	WatchErr  map[types.Category]error

	background map[types.Category]bool
}

// New creates an empty fake.
func New() *Fake {
	return &Fake{
		auth:       make(map[authKey]types.AuthorizationStatus),
		Samples:    make(map[types.Category][]platform.Sample),
		SampleErr:  make(map[types.Category]error),
		watchers:   make(map[types.Category]map[int]platform.NotifyFunc),
		WatchErr:   make(map[types.Category]error),
		background: make(map[types.Category]bool),
	}
}

// Authorize marks one pair Authorized.
func (f *Fake) Authorize(category types.Category, dir types.Direction) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auth[authKey{category, dir}] = types.AuthorizationAuthorized
}

// Deny marks one pair Denied.
func (f *Fake) Deny(category types.Category, dir types.Direction) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auth[authKey{category, dir}] = types.AuthorizationDenied
}

// AuthorizeAllWrites marks every write category Authorized.
func (f *Fake) AuthorizeAllWrites() {
	for _, c := range types.WriteCategories {
		f.Authorize(c, types.DirectionWrite)
	}
}

func (f *Fake) AuthorizationStatus(category types.Category, dir types.Direction) types.AuthorizationStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.auth[authKey{category, dir}]; ok {
		return s
	}
	return types.AuthorizationNotDetermined
}

func (f *Fake) RequestAuthorization(ctx context.Context, read, write []types.Category) error {
	if f.RequestErr != nil {
		return f.RequestErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range read {
		k := authKey{c, types.DirectionRead}
		if _, decided := f.auth[k]; !decided {
			f.auth[k] = types.AuthorizationAuthorized
		}
	}
	for _, c := range write {
		k := authKey{c, types.DirectionWrite}
		if _, decided := f.auth[k]; !decided {
			f.auth[k] = types.AuthorizationAuthorized
		}
	}
	return nil
}

func (f *Fake) SaveBatch(ctx context.Context, records []types.TranslatedRecord) ([]string, error) {
	if f.SaveErr != nil {
		return nil, f.SaveErr // nothing committed: all-or-nothing
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	batch := make([]types.TranslatedRecord, len(records))
	copy(batch, records)
	f.Saved = append(f.Saved, batch)

	ids := make([]string, len(records))
	for i := range records {
		ids[i] = fmt.Sprintf("rec-%d-%d", len(f.Saved), i)
	}
	return ids, nil
}

// CommittedRecords returns every record across all committed batches.
func (f *Fake) CommittedRecords() []types.TranslatedRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []types.TranslatedRecord
	for _, b := range f.Saved {
		all = append(all, b...)
	}
	return all
}

func (f *Fake) LatestSample(ctx context.Context, category types.Category) (*platform.Sample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.SampleErr[category]; err != nil {
		return nil, err
	}
	samples := f.Samples[category]
	if len(samples) == 0 {
		return nil, platform.ErrNoData
	}
	s := samples[len(samples)-1]
	return &s, nil
}

func (f *Fake) SampleRange(ctx context.Context, category types.Category, start, end time.Time) ([]platform.Sample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.SampleErr[category]; err != nil {
		return nil, err
	}
	var out []platform.Sample
	for _, s := range f.Samples[category] {
		if !s.Start.Before(start) && s.Start.Before(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *Fake) MedicationRange(ctx context.Context, start, end time.Time) ([]platform.RawMedication, error) {
	if f.MedicationErr != nil {
		return nil, f.MedicationErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []platform.RawMedication
	for _, m := range f.Medications {
		if !m.Start.Before(start) && m.Start.Before(end) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *Fake) Characteristics(ctx context.Context) (platform.Characteristics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Profile, nil
}

func (f *Fake) Watch(category types.Category, fn platform.NotifyFunc) (platform.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.WatchErr[category]; err != nil {
		return nil, err
	}
	if f.watchers[category] == nil {
		f.watchers[category] = make(map[int]platform.NotifyFunc)
	}
	id := f.nextWatch
	f.nextWatch++
	f.watchers[category][id] = fn
	return &fakeHandle{fake: f, category: category, id: id}, nil
}

func (f *Fake) EnableBackgroundDelivery(category types.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.background[category] = true
	return nil
}

func (f *Fake) DisableBackgroundDelivery(category types.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.background, category)
	return nil
}

// BackgroundEnabled reports the wake-on-change flag for a category.
func (f *Fake) BackgroundEnabled(category types.Category) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.background[category]
}

// WatchCount returns the number of live watch registrations for a category.
func (f *Fake) WatchCount(category types.Category) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.watchers[category])
}

// Notify fires every live watch callback for a category, synchronously.
func (f *Fake) Notify(category types.Category) {
	f.mu.Lock()
	fns := make([]platform.NotifyFunc, 0, len(f.watchers[category]))
	for _, fn := range f.watchers[category] {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn(category)
	}
}

type fakeHandle struct {
	fake     *Fake
	category types.Category
	id       int
	once     sync.Once
}

func (h *fakeHandle) Cancel() {
	h.once.Do(func() {
		h.fake.mu.Lock()
		defer h.fake.mu.Unlock()
		if m := h.fake.watchers[h.category]; m != nil {
			delete(m, h.id)
		}
	})
}
