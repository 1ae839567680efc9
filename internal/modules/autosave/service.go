// README: Periodic autosave of the working snapshot and restore lookup.
package autosave

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"tourcalc/internal/modules/trip"
)

var ErrNoAutosave = errors.New("no autosave available")

// SnapshotSource is satisfied by *trip.Session.
type SnapshotSource interface {
	Current() (trip.Params, int64)
}

// Snapshot is what the slot holds.
type Snapshot struct {
	SavedAt  time.Time   `json:"savedAt"`
	Revision int64       `json:"revision"`
	Params   trip.Params `json:"params"`
}

type slotPayload struct {
	SavedAt  time.Time       `json:"savedAt"`
	Revision int64           `json:"revision"`
	Params   json.RawMessage `json:"params"`
}

type Service struct {
	source   SnapshotSource
	store    SlotStore
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	lastRev int64
}

// NewService takes the current revision as already saved, so an untouched
// session never overwrites the slot left by a previous run.
func NewService(source SnapshotSource, store SlotStore, interval time.Duration) *Service {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	_, rev := source.Current()
	return &Service{source: source, store: store, interval: interval, now: time.Now, lastRev: rev}
}

func (s *Service) RunScheduler(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Flush(ctx); err != nil {
				log.Printf("[AUTOSAVE] action=flush failed: %v", err)
			}
		}
	}
}

// Flush writes the snapshot when its revision moved since the last write.
// It reports whether a write happened.
func (s *Service) Flush(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, rev := s.source.Current()
	if rev == s.lastRev {
		return false, nil
	}
	params, err := trip.Encode(p)
	if err != nil {
		return false, err
	}
	data, err := json.Marshal(slotPayload{SavedAt: s.now().UTC(), Revision: rev, Params: params})
	if err != nil {
		return false, err
	}
	if err := s.store.Put(ctx, data); err != nil {
		return false, err
	}
	s.lastRev = rev
	return true, nil
}

// Latest returns the autosaved snapshot. A payload that no longer decodes is
// reported as trip.ErrInvalidSnapshot.
func (s *Service) Latest(ctx context.Context) (Snapshot, error) {
	data, err := s.store.Get(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	var payload slotPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return Snapshot{}, fmt.Errorf("%w: autosave payload: %v", trip.ErrInvalidSnapshot, err)
	}
	p, err := trip.Decode(payload.Params)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{SavedAt: payload.SavedAt, Revision: payload.Revision, Params: p}, nil
}
