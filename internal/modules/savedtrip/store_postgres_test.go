package savedtrip

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tourcalc/internal/modules/trip"
)

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TOURCALC_TEST_DSN")
	if dsn == "" {
		t.Skip("TOURCALC_TEST_DSN not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	store := NewPostgresStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if err := store.ReplaceAll(ctx, nil); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	svc := NewService(store)
	saved, err := svc.Save(ctx, "pg", trip.DefaultParams())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := svc.Load(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Name != "pg" || loaded.Params.ParticipantCount != 8 {
		t.Fatalf("unexpected load: %+v", loaded)
	}
	if err := svc.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, saved.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
