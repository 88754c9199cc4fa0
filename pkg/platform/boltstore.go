package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/types"
)

var (
	// Bucket names
	bucketSamples        = []byte("samples") // nested: one sub-bucket per category
	bucketAuthorizations = []byte("authorizations")
	bucketMedications    = []byte("medications")
	bucketProfile        = []byte("profile")
)

var keyCharacteristics = []byte("characteristics")

// BoltPlatform implements Client on top of a local BoltDB file. It backs the
// gutsync daemon and integration-style tests: SaveBatch runs in a single
// transaction, so the all-or-nothing batch contract holds for real, and
// committed saves trigger registered watches in-process.
type BoltPlatform struct {
	db *bolt.DB

	mu         sync.Mutex
	watchers   map[types.Category]map[int]NotifyFunc
	nextWatch  int
	background map[types.Category]bool
}

// NewBoltPlatform opens (or creates) the platform store under dataDir.
func NewBoltPlatform(dataDir string) (*BoltPlatform, error) {
	dbPath := filepath.Join(dataDir, "gutsync.db")

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// Create buckets
	err = db.Update(func(tx *bolt.Tx) error {
		buckets := [][]byte{
			bucketSamples,
			bucketAuthorizations,
			bucketMedications,
			bucketProfile,
		}
		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltPlatform{
		db:         db,
		watchers:   make(map[types.Category]map[int]NotifyFunc),
		background: make(map[types.Category]bool),
	}, nil
}

// Close closes the underlying database.
func (p *BoltPlatform) Close() error {
	return p.db.Close()
}

// sampleKey orders samples by start time within a category bucket.
func sampleKey(start time.Time, id string) []byte {
	return []byte(fmt.Sprintf("%020d:%s", start.UnixNano(), id))
}

func authKey(category types.Category, dir types.Direction) []byte {
	return []byte(string(category) + "/" + string(dir))
}

// AuthorizationStatus reads the stored decision for one pair. Missing
// entries read as NotDetermined.
func (p *BoltPlatform) AuthorizationStatus(category types.Category, dir types.Direction) types.AuthorizationStatus {
	status := types.AuthorizationNotDetermined
	_ = p.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAuthorizations)
		if data := b.Get(authKey(category, dir)); data != nil {
			status = types.AuthorizationStatus(data)
		}
		return nil
	})
	return status
}

// RequestAuthorization simulates the combined permission prompt. Pairs the
// user already decided keep their decision; undecided pairs are granted.
func (p *BoltPlatform) RequestAuthorization(ctx context.Context, read, write []types.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAuthorizations)
		grant := func(cats []types.Category, dir types.Direction) error {
			for _, c := range cats {
				key := authKey(c, dir)
				if b.Get(key) != nil {
					continue // already decided, no re-prompt
				}
				if err := b.Put(key, []byte(types.AuthorizationAuthorized)); err != nil {
					return err
				}
			}
			return nil
		}
		if err := grant(read, types.DirectionRead); err != nil {
			return err
		}
		return grant(write, types.DirectionWrite)
	})
}

// SetAuthorization forces one pair to a specific status. Simulation hook for
// the CLI and tests; the real platform only changes decisions through its
// own settings surface.
func (p *BoltPlatform) SetAuthorization(category types.Category, dir types.Direction, status types.AuthorizationStatus) error {
	return p.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketAuthorizations).Put(authKey(category, dir), []byte(status))
	})
}

// SaveBatch writes every record in one transaction. The platform enforces
// write authorization per record; any unauthorized or unknown category fails
// the whole batch and nothing is written.
func (p *BoltPlatform) SaveBatch(ctx context.Context, records []types.TranslatedRecord) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(records))
	touched := make(map[types.Category]bool)

	err := p.db.Update(func(tx *bolt.Tx) error {
		samples := tx.Bucket(bucketSamples)
		auth := tx.Bucket(bucketAuthorizations)

		for _, rec := range records {
			if !rec.Category.Valid() {
				return fmt.Errorf("unknown category %q in batch", rec.Category)
			}
			if status := auth.Get(authKey(rec.Category, types.DirectionWrite)); status == nil ||
				types.AuthorizationStatus(status) != types.AuthorizationAuthorized {
				return &NotAuthorizedError{Category: rec.Category, Direction: types.DirectionWrite}
			}

			b, err := samples.CreateBucketIfNotExists([]byte(rec.Category))
			if err != nil {
				return err
			}

			sample := Sample{
				ID:       uuid.New().String(),
				Category: rec.Category,
				Value:    rec.Value,
				Unit:     rec.Unit,
				Start:    rec.Start,
				End:      rec.End,
				Metadata: rec.Metadata,
			}
			data, err := json.Marshal(sample)
			if err != nil {
				return err
			}
			if err := b.Put(sampleKey(sample.Start, sample.ID), data); err != nil {
				return err
			}
			ids = append(ids, sample.ID)
			touched[rec.Category] = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for c := range touched {
		p.notify(c)
	}
	return ids, nil
}

// LatestSample returns the most recent sample for a category, or ErrNoData.
// Malformed stored records are skipped, not fatal.
func (p *BoltPlatform) LatestSample(ctx context.Context, category types.Category) (*Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var sample *Sample
	err := p.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSamples).Bucket([]byte(category))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var s Sample
			if err := json.Unmarshal(v, &s); err != nil {
				continue
			}
			sample = &s
			return nil
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if sample == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoData, category)
	}
	return sample, nil
}

// SampleRange returns samples with start in [start, end), ordered ascending.
func (p *BoltPlatform) SampleRange(ctx context.Context, category types.Category, start, end time.Time) ([]Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var samples []Sample
	err := p.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSamples).Bucket([]byte(category))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		min := sampleKey(start, "")
		for k, v := c.Seek(min); k != nil; k, v = c.Next() {
			var s Sample
			if err := json.Unmarshal(v, &s); err != nil {
				continue // malformed record, drop it
			}
			if !s.Start.Before(end) {
				break
			}
			samples = append(samples, s)
		}
		return nil
	})
	return samples, err
}

// AddSample stores one sample directly, bypassing write authorization.
// Simulation hook standing in for other apps and devices feeding the shared
// store; registered watches for the category fire.
func (p *BoltPlatform) AddSample(s Sample) error {
	if !s.Category.Valid() {
		return fmt.Errorf("unknown category %q", s.Category)
	}
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	err := p.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.Bucket(bucketSamples).CreateBucketIfNotExists([]byte(s.Category))
		if err != nil {
			return err
		}
		data, err := json.Marshal(s)
		if err != nil {
			return err
		}
		return b.Put(sampleKey(s.Start, s.ID), data)
	})
	if err != nil {
		return err
	}
	p.notify(s.Category)
	return nil
}

// AddMedication stores one medication record. The platform owns clinical
// records; this entry point stands in for another app or clinician feed
// writing to the shared store. Registered medication watches fire.
func (p *BoltPlatform) AddMedication(med RawMedication) error {
	if med.ID == "" {
		med.ID = uuid.New().String()
	}
	err := p.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(med)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketMedications).Put(sampleKey(med.Start, med.ID), data)
	})
	if err != nil {
		return err
	}
	p.notify(types.CategoryMedications)
	return nil
}

// MedicationRange returns medications whose start falls in [start, end).
func (p *BoltPlatform) MedicationRange(ctx context.Context, start, end time.Time) ([]RawMedication, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var meds []RawMedication
	err := p.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketMedications).Cursor()
		min := sampleKey(start, "")
		for k, v := c.Seek(min); k != nil; k, v = c.Next() {
			var m RawMedication
			if err := json.Unmarshal(v, &m); err != nil {
				continue
			}
			if !m.Start.Before(end) {
				break
			}
			meds = append(meds, m)
		}
		return nil
	})
	return meds, err
}

// SetCharacteristics stores the profile traits. Simulation hook.
func (p *BoltPlatform) SetCharacteristics(ch Characteristics) error {
	return p.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(ch)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketProfile).Put(keyCharacteristics, data)
	})
}

// Characteristics returns the stored profile traits.
func (p *BoltPlatform) Characteristics(ctx context.Context) (Characteristics, error) {
	var ch Characteristics
	if err := ctx.Err(); err != nil {
		return ch, err
	}
	err := p.db.View(func(tx *bolt.Tx) error {
		if data := tx.Bucket(bucketProfile).Get(keyCharacteristics); data != nil {
			return json.Unmarshal(data, &ch)
		}
		return nil
	})
	return ch, err
}

// Watch registers a change callback for one category.
func (p *BoltPlatform) Watch(category types.Category, fn NotifyFunc) (Handle, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("cannot watch unknown category %q", category)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.watchers[category] == nil {
		p.watchers[category] = make(map[int]NotifyFunc)
	}
	id := p.nextWatch
	p.nextWatch++
	p.watchers[category][id] = fn

	return &boltHandle{platform: p, category: category, id: id}, nil
}

// EnableBackgroundDelivery marks a category for wake-on-change delivery. The
// local store delivers in-process either way; the flag is tracked so the
// daemon reports the same registration state the real platform would.
func (p *BoltPlatform) EnableBackgroundDelivery(category types.Category) error {
	if !category.Valid() {
		return fmt.Errorf("unknown category %q", category)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.background[category] = true
	return nil
}

// DisableBackgroundDelivery reverses EnableBackgroundDelivery.
func (p *BoltPlatform) DisableBackgroundDelivery(category types.Category) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.background, category)
	return nil
}

// BackgroundDeliveryEnabled reports the wake-on-change flag for a category.
func (p *BoltPlatform) BackgroundDeliveryEnabled(category types.Category) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.background[category]
}

func (p *BoltPlatform) notify(category types.Category) {
	p.mu.Lock()
	fns := make([]NotifyFunc, 0, len(p.watchers[category]))
	for _, fn := range p.watchers[category] {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	// Callbacks run outside the lock so a watcher may re-enter the platform.
	for _, fn := range fns {
		go fn(category)
	}
}

type boltHandle struct {
	platform *BoltPlatform
	category types.Category
	id       int
	once     sync.Once
}

// Cancel removes the watch registration. Safe to call more than once.
func (h *boltHandle) Cancel() {
	h.once.Do(func() {
		h.platform.mu.Lock()
		defer h.platform.mu.Unlock()
		if m := h.platform.watchers[h.category]; m != nil {
			delete(m, h.id)
		}
	})
}
