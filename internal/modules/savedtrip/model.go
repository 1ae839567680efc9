// README: Saved trip records and the repository contract shared by the stores.
package savedtrip

import (
	"context"
	"errors"
	"time"

	"tourcalc/internal/types"
)

var (
	ErrNotFound      = errors.New("saved trip not found")
	ErrBadRequest    = errors.New("bad request")
	ErrInvalidBackup = errors.New("invalid backup")
)

// DefaultName is used when neither the caller nor the snapshot names the trip.
const DefaultName = "Untitled Trip"

// Record is the stored form of a saved trip. Data holds the encoded snapshot
// and is decoded only when the trip is loaded.
type Record struct {
	ID        types.ID
	Name      string
	CreatedAt time.Time
	Data      []byte
}

// Repository is implemented by PostgresStore and SQLiteStore.
// List returns the newest records first.
type Repository interface {
	List(ctx context.Context) ([]Record, error)
	Get(ctx context.Context, id types.ID) (Record, error)
	Save(ctx context.Context, r Record) error
	Delete(ctx context.Context, id types.ID) error
	ReplaceAll(ctx context.Context, records []Record) error
}

type ImportMode string

const (
	ImportMerge     ImportMode = "merge"
	ImportOverwrite ImportMode = "overwrite"
)

// ParseImportMode defaults to merge, which never drops existing trips.
func ParseImportMode(s string) (ImportMode, error) {
	switch ImportMode(s) {
	case "", ImportMerge:
		return ImportMerge, nil
	case ImportOverwrite:
		return ImportOverwrite, nil
	}
	return "", ErrBadRequest
}
