package aiusage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists quota buckets. Consume must check and deduct atomically.
type Store interface {
	EnsureSchema(ctx context.Context) error
	// Consume deducts one generation, resetting the bucket to allowance when
	// month is newer than the stored one. It reports false when nothing was
	// deducted (bucket missing or empty).
	Consume(ctx context.Context, scope, month string, allowance int) (bool, error)
	// Ensure creates the bucket with allowance if it does not exist.
	Ensure(ctx context.Context, scope, month string, allowance int) error
	Get(ctx context.Context, scope string) (Usage, error)
}

var errNoBucket = errors.New("quota bucket not found")

const schema = `CREATE TABLE IF NOT EXISTS advisory_usage (
    scope TEXT PRIMARY KEY,
    generations_remaining INT NOT NULL,
    last_reset_month TEXT NOT NULL
)`

// PostgresStore handles advisory_usage persistence on postgres.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schema)
	return err
}

func (s *PostgresStore) Consume(ctx context.Context, scope, month string, allowance int) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE advisory_usage SET
			generations_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE generations_remaining - 1 END,
			last_reset_month = $1
		WHERE scope = $3 AND (last_reset_month < $1 OR generations_remaining > 0)
	`, month, allowance, scope)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresStore) Ensure(ctx context.Context, scope, month string, allowance int) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO advisory_usage (scope, generations_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (scope) DO NOTHING
	`, scope, allowance, month)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, scope string) (Usage, error) {
	u := Usage{Scope: scope}
	err := s.db.QueryRow(ctx,
		`SELECT generations_remaining, last_reset_month FROM advisory_usage WHERE scope = $1`, scope,
	).Scan(&u.Remaining, &u.Month)
	if errors.Is(err, pgx.ErrNoRows) {
		return Usage{}, errNoBucket
	}
	return u, err
}

// SQLiteStore is the same table on the local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *SQLiteStore) Consume(ctx context.Context, scope, month string, allowance int) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE advisory_usage SET
			generations_remaining = CASE WHEN last_reset_month != ? THEN ? - 1 ELSE generations_remaining - 1 END,
			last_reset_month = ?
		WHERE scope = ? AND (last_reset_month < ? OR generations_remaining > 0)
	`, month, allowance, month, scope, month)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) Ensure(ctx context.Context, scope, month string, allowance int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO advisory_usage (scope, generations_remaining, last_reset_month)
		VALUES (?, ?, ?)
		ON CONFLICT (scope) DO NOTHING
	`, scope, allowance, month)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, scope string) (Usage, error) {
	u := Usage{Scope: scope}
	err := s.db.QueryRowContext(ctx,
		`SELECT generations_remaining, last_reset_month FROM advisory_usage WHERE scope = ?`, scope,
	).Scan(&u.Remaining, &u.Month)
	if errors.Is(err, sql.ErrNoRows) {
		return Usage{}, errNoBucket
	}
	return u, err
}
