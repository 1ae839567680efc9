// README: Saved trip store backed by PostgreSQL (table tour_calc, jsonb payload).
package savedtrip

import (
	"context"
	_ "embed"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tourcalc/internal/types"
)

//go:embed migrations/0001_init.sql
var postgresSchema string

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, postgresSchema)
	return err
}

func (s *PostgresStore) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, name, created_at, trip_data
        FROM tour_calc
        ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Name, &r.CreatedAt, &r.Data); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Get(ctx context.Context, id types.ID) (Record, error) {
	var r Record
	err := s.db.QueryRow(ctx, `
        SELECT id, name, created_at, trip_data
        FROM tour_calc
        WHERE id = $1`, id,
	).Scan(&r.ID, &r.Name, &r.CreatedAt, &r.Data)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return r, err
}

func (s *PostgresStore) Save(ctx context.Context, r Record) error {
	_, err := s.db.Exec(ctx, upsertPostgres, r.ID, r.Name, r.CreatedAt, r.Data)
	return err
}

func (s *PostgresStore) Delete(ctx context.Context, id types.ID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM tour_calc WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceAll swaps the whole table content in one transaction.
func (s *PostgresStore) ReplaceAll(ctx context.Context, records []Record) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM tour_calc`)
	for _, r := range records {
		batch.Queue(upsertPostgres, r.ID, r.Name, r.CreatedAt, r.Data)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const upsertPostgres = `
        INSERT INTO tour_calc (id, name, created_at, trip_data)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO UPDATE
        SET name = EXCLUDED.name, created_at = EXCLUDED.created_at, trip_data = EXCLUDED.trip_data`
