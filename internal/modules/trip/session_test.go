package trip

import (
	"errors"
	"sync"
	"testing"
)

func TestSessionEditsReplaceSnapshot(t *testing.T) {
	s := NewSession(DefaultParams(), newTestReconciler(0))

	p, err := s.SetDuration(9)
	if err != nil {
		t.Fatalf("SetDuration: %v", err)
	}
	if p.DurationDays != 9 || s.Revision() != 1 {
		t.Fatalf("duration=%d revision=%d", p.DurationDays, s.Revision())
	}

	cur, rev := s.Current()
	cur.BikeDailyRentalCosts[0] = 999
	again, _ := s.Current()
	if again.BikeDailyRentalCosts[0] == 999 || rev != 1 {
		t.Fatal("Current must return a copy")
	}
}

func TestSessionFailedEditLeavesSnapshot(t *testing.T) {
	s := NewSession(DefaultParams(), newTestReconciler(0))
	before, _ := s.Current()

	if _, err := s.RemoveHotelStay("1"); !errors.Is(err, ErrLastStay) {
		t.Fatalf("expected ErrLastStay, got %v", err)
	}
	bad := DefaultParams()
	bad.FuelDailyCosts = bad.FuelDailyCosts[:2]
	if _, err := s.Replace(bad); !errors.Is(err, ErrInvalidSnapshot) {
		t.Fatalf("expected ErrInvalidSnapshot, got %v", err)
	}

	after, rev := s.Current()
	if rev != 0 {
		t.Fatalf("revision = %d, want 0", rev)
	}
	b1, _ := Encode(before)
	b2, _ := Encode(after)
	if string(b1) != string(b2) {
		t.Fatal("failed edits changed the snapshot")
	}
}

func TestSessionConcurrentEdits(t *testing.T) {
	s := NewSession(DefaultParams(), newTestReconciler(0))
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _ = s.SetDuration(n % 10)
			_, _ = s.SetExtraDays(RoleDriver, SideAfter, n%3)
		}(i)
	}
	wg.Wait()

	p, rev := s.Current()
	if rev != 40 {
		t.Fatalf("revision = %d, want 40", rev)
	}
	if err := Validate(p); err != nil {
		t.Fatalf("snapshot invalid after concurrent edits: %v", err)
	}
}

type editLog struct {
	actions []string
	failed  int
}

func (l *editLog) Edit(action string, err error) {
	l.actions = append(l.actions, action)
	if err != nil {
		l.failed++
	}
}

func TestSessionObserver(t *testing.T) {
	s := NewSession(DefaultParams(), newTestReconciler(0))
	obs := &editLog{}
	s.Observe(obs)

	_, _ = s.SetDuration(5)
	_, _ = s.RemoveHotelStay("1")
	if len(obs.actions) != 2 || obs.actions[0] != "set_duration" || obs.failed != 1 {
		t.Fatalf("observer saw %+v", obs)
	}
}
