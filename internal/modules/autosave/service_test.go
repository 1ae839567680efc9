package autosave

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"tourcalc/internal/modules/trip"
)

type memSlot struct {
	mu   sync.Mutex
	data []byte
	puts int
}

func (m *memSlot) Put(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.puts++
	return nil
}

func (m *memSlot) Get(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNoAutosave
	}
	return m.data, nil
}

func newSession() *trip.Session {
	return trip.NewSession(trip.DefaultParams(), trip.NewReconciler(trip.ReconcilerConfig{}))
}

func TestFlushSkipsUnchangedRevision(t *testing.T) {
	ctx := context.Background()
	sess := newSession()
	slot := &memSlot{}
	svc := NewService(sess, slot, time.Minute)

	if wrote, err := svc.Flush(ctx); err != nil || wrote {
		t.Fatalf("untouched session must not be written: wrote=%v err=%v", wrote, err)
	}
	if _, err := svc.Latest(ctx); !errors.Is(err, ErrNoAutosave) {
		t.Fatalf("expected ErrNoAutosave, got %v", err)
	}

	if _, err := sess.SetDuration(9); err != nil {
		t.Fatalf("SetDuration: %v", err)
	}
	if wrote, err := svc.Flush(ctx); err != nil || !wrote {
		t.Fatalf("changed session must be written: wrote=%v err=%v", wrote, err)
	}
	if wrote, _ := svc.Flush(ctx); wrote {
		t.Fatal("second flush without edits wrote again")
	}
	if slot.puts != 1 {
		t.Fatalf("puts = %d, want 1", slot.puts)
	}

	snap, err := svc.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if snap.Revision != 1 || snap.Params.DurationDays != 9 || snap.SavedAt.IsZero() {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestLatestRejectsCorruptSlot(t *testing.T) {
	slot := &memSlot{data: []byte(`{"savedAt":"2026-01-01T00:00:00Z","revision":3,"params":{"tripName":"x"}}`)}
	svc := NewService(newSession(), slot, time.Minute)
	if _, err := svc.Latest(context.Background()); !errors.Is(err, trip.ErrInvalidSnapshot) {
		t.Fatalf("expected ErrInvalidSnapshot, got %v", err)
	}
	slot.data = []byte(`not json`)
	if _, err := svc.Latest(context.Background()); !errors.Is(err, trip.ErrInvalidSnapshot) {
		t.Fatalf("expected ErrInvalidSnapshot, got %v", err)
	}
}

func TestRunSchedulerStopsOnCancel(t *testing.T) {
	sess := newSession()
	slot := &memSlot{}
	svc := NewService(sess, slot, 5*time.Millisecond)
	_, _ = sess.SetExtraDays(trip.RoleGuide, trip.SideBefore, 2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.RunScheduler(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for {
		if _, err := slot.Get(ctx); err == nil {
			break
		}
		select {
		case <-deadline:
			t.Fatal("scheduler never wrote the slot")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestRedisStore(t *testing.T) {
	redisAddr := os.Getenv("TOURCALC_REDIS_ADDR")
	if redisAddr == "" {
		t.Skip("TOURCALC_REDIS_ADDR not set; skipping integration test")
	}
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	ctx := context.Background()
	key := "tourcalc:autosave:test:" + time.Now().Format("150405.000000")
	store := NewRedisStore(rdb, key, time.Minute)
	defer rdb.Del(ctx, key)

	if _, err := store.Get(ctx); !errors.Is(err, ErrNoAutosave) {
		t.Fatalf("expected ErrNoAutosave, got %v", err)
	}
	sess := newSession()
	svc := NewService(sess, store, time.Minute)
	_, _ = sess.SetDuration(4)
	if _, err := svc.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	snap, err := svc.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if snap.Params.DurationDays != 4 {
		t.Fatalf("duration = %d, want 4", snap.Params.DurationDays)
	}
	if ttl := rdb.TTL(ctx, key).Val(); ttl <= 0 {
		t.Fatalf("expected a ttl on the slot, got %v", ttl)
	}
}
