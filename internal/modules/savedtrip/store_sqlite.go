// README: Local saved trip store on SQLite (pure Go driver), same columns as tour_calc.
package savedtrip

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tourcalc/internal/types"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS tour_calc (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	created_at TEXT NOT NULL,
	trip_data TEXT NOT NULL
)`

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore expects an open handle; see infra.NewSQLite.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create tour_calc table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at, trip_data FROM tour_calc ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("select saved trips: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Record
	for rows.Next() {
		r, err := scanSQLite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Get(ctx context.Context, id types.ID) (Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, created_at, trip_data FROM tour_calc WHERE id = ?`, id)
	r, err := scanSQLite(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return r, err
}

func (s *SQLiteStore) Save(ctx context.Context, r Record) error {
	if _, err := s.db.ExecContext(ctx, upsertSQLite, sqliteArgs(r)...); err != nil {
		return fmt.Errorf("upsert saved trip: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id types.ID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tour_calc WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete saved trip: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ReplaceAll(ctx context.Context, records []Record) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tour_calc`); err != nil {
		return fmt.Errorf("clear saved trips: %w", err)
	}
	for _, r := range records {
		if _, err := tx.ExecContext(ctx, upsertSQLite, sqliteArgs(r)...); err != nil {
			return fmt.Errorf("insert saved trip %s: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

// sqliteTime is fixed width so created_at sorts lexically.
const sqliteTime = "2006-01-02T15:04:05.000000000Z"

const upsertSQLite = `INSERT INTO tour_calc (id, name, created_at, trip_data) VALUES (?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET name = excluded.name, created_at = excluded.created_at, trip_data = excluded.trip_data`

func sqliteArgs(r Record) []any {
	return []any{r.ID, r.Name, r.CreatedAt.UTC().Format(sqliteTime), string(r.Data)}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSQLite(row scanner) (Record, error) {
	var r Record
	var created, data string
	if err := row.Scan(&r.ID, &r.Name, &created, &data); err != nil {
		return Record{}, err
	}
	t, err := time.Parse(sqliteTime, created)
	if err != nil {
		return Record{}, fmt.Errorf("saved trip %s: bad created_at: %w", r.ID, err)
	}
	r.CreatedAt = t
	r.Data = []byte(data)
	return r, nil
}
