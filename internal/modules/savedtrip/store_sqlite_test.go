package savedtrip

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	_ "modernc.org/sqlite"

	"tourcalc/internal/modules/trip"
)

func TestSQLiteStoreSQLShape(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	store := NewSQLiteStore(db)
	ctx := context.Background()
	created := time.Date(2026, 4, 2, 10, 30, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO tour_calc").
		WithArgs("t1", "Alps", "2026-04-02T10:30:00.000000000Z", `{"a":1}`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	if err := store.Save(ctx, Record{ID: "t1", Name: "Alps", CreatedAt: created, Data: []byte(`{"a":1}`)}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	mock.ExpectExec("DELETE FROM tour_calc WHERE id").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := store.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	mock.ExpectQuery("SELECT id, name, created_at, trip_data FROM tour_calc WHERE id").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "trip_data"}))
	if _, err := store.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM tour_calc").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO tour_calc").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()
	if err := store.ReplaceAll(ctx, []Record{{ID: "x", CreatedAt: created}}); err == nil {
		t.Fatal("expected ReplaceAll to fail")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func openTempSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "trips.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	store := NewSQLiteStore(db)
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTempSQLite(t)
	svc := newTestService(store)

	first, err := svc.Save(ctx, "first", trip.DefaultParams())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, err := svc.Save(ctx, "second", trip.DefaultParams())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("unexpected order: %+v", list)
	}
	if !list[1].Date.Equal(first.Date) {
		t.Fatalf("date = %v, want %v", list[1].Date, first.Date)
	}

	loaded, err := svc.Load(ctx, first.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Params.DurationDays != 7 || len(loaded.Params.HotelStays) != 1 {
		t.Fatalf("unexpected snapshot: %+v", loaded.Params)
	}

	if err := store.ReplaceAll(ctx, []Record{{ID: "only", Name: "Only", CreatedAt: first.Date, Data: mustEncode(t, trip.DefaultParams())}}); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	recs, err := store.List(ctx)
	if err != nil || len(recs) != 1 || recs[0].ID != "only" {
		t.Fatalf("after ReplaceAll: %v %+v", err, recs)
	}
	if err := store.Delete(ctx, "only"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "only"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
