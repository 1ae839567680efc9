// README: Single owner of the current trip snapshot; every edit swaps in a new one.
package trip

import (
	"log"
	"sync"

	"tourcalc/internal/types"
)

// Session holds the one snapshot being edited. Edits run the pure reconciler or
// edit functions and then replace the snapshot whole; failed edits change nothing.
type Session struct {
	mu         sync.Mutex
	params     Params
	revision   int64
	reconciler *Reconciler
	observer   EditObserver
}

// EditObserver is told about every edit attempt; nil disables it.
type EditObserver interface {
	Edit(action string, err error)
}

func NewSession(initial Params, reconciler *Reconciler) *Session {
	return &Session{params: initial.Clone(), reconciler: reconciler}
}

// Observe registers o before the session is shared.
func (s *Session) Observe(o EditObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = o
}

// Current returns a copy of the snapshot and its revision.
func (s *Session) Current() (Params, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params.Clone(), s.revision
}

// Revision reports how many times the snapshot has been replaced.
func (s *Session) Revision() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Replace swaps in a validated snapshot, e.g. a loaded or restored trip.
func (s *Session) Replace(p Params) (Params, error) {
	if err := Validate(p); err != nil {
		return Params{}, err
	}
	return s.apply("replace", func(Params) (Params, error) { return p, nil })
}

func (s *Session) SetDuration(days int) (Params, error) {
	return s.apply("set_duration", func(cur Params) (Params, error) {
		return s.reconciler.SetDuration(cur, days), nil
	})
}

func (s *Session) SetExtraDays(role Role, side Side, days int) (Params, error) {
	return s.apply("set_extra_days", func(cur Params) (Params, error) {
		return s.reconciler.SetExtraDays(cur, role, side, days), nil
	})
}

func (s *Session) ReplaceVector(name Vector, values []float64) (Params, error) {
	return s.apply("replace_vector", func(cur Params) (Params, error) {
		return ReplaceVector(cur, name, values)
	})
}

func (s *Session) SetDailyCost(name Vector, index int, value float64) (Params, error) {
	return s.apply("set_daily_cost", func(cur Params) (Params, error) {
		return SetDailyCost(cur, name, index, value)
	})
}

func (s *Session) FillVector(name Vector) (Params, error) {
	return s.apply("fill_vector", func(cur Params) (Params, error) {
		return FillVector(cur, name)
	})
}

func (s *Session) AddHotelStay(name string, costPerNight float64) (Params, error) {
	return s.apply("add_hotel", func(cur Params) (Params, error) {
		return AddHotelStay(cur, s.reconciler.NewID(), name, costPerNight)
	})
}

func (s *Session) RemoveHotelStay(id types.ID) (Params, error) {
	return s.apply("remove_hotel", func(cur Params) (Params, error) {
		return RemoveHotelStay(cur, id)
	})
}

func (s *Session) UpdateHotelStay(stay HotelStay) (Params, error) {
	return s.apply("update_hotel", func(cur Params) (Params, error) {
		return UpdateHotelStay(cur, stay)
	})
}

func (s *Session) Patch(patch ScalarPatch) (Params, error) {
	return s.apply("patch", func(cur Params) (Params, error) {
		return patch.Apply(cur)
	})
}

func (s *Session) apply(action string, fn func(Params) (Params, error)) (Params, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.params.Clone())
	if s.observer != nil {
		s.observer.Edit(action, err)
	}
	if err != nil {
		log.Printf("[TRIP] action=%s rejected: %v", action, err)
		return Params{}, err
	}
	s.params = next.Clone()
	s.revision++
	return next, nil
}
