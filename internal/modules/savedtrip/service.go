// README: Saved trip service (save, list, load, delete, JSON backup import/export).
package savedtrip

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"tourcalc/internal/modules/trip"
	"tourcalc/internal/types"
)

type Service struct {
	repo  Repository
	now   func() time.Time
	newID func() types.ID
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now, newID: types.NewID}
}

// Save stores a copy of p under a fresh id.
func (s *Service) Save(ctx context.Context, name string, p trip.Params) (trip.SavedTrip, error) {
	if err := trip.Validate(p); err != nil {
		return trip.SavedTrip{}, err
	}
	data, err := trip.Encode(p)
	if err != nil {
		return trip.SavedTrip{}, err
	}
	saved := trip.SavedTrip{
		ID:     s.newID(),
		Name:   displayName(name, p.TripName),
		Date:   s.now().UTC(),
		Params: p.Clone(),
	}
	rec := Record{ID: saved.ID, Name: saved.Name, CreatedAt: saved.Date, Data: data}
	if err := s.repo.Save(ctx, rec); err != nil {
		return trip.SavedTrip{}, err
	}
	log.Printf("[SAVEDTRIP] action=save id=%s name=%q", saved.ID, saved.Name)
	return saved, nil
}

// List returns every readable saved trip. Rows whose payload no longer decodes
// are logged and left out.
func (s *Service) List(ctx context.Context) ([]trip.SavedTrip, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]trip.SavedTrip, 0, len(recs))
	for _, r := range recs {
		st, err := toSavedTrip(r)
		if err != nil {
			log.Printf("[SAVEDTRIP] action=list skip id=%s: %v", r.ID, err)
			continue
		}
		out = append(out, st)
	}
	return out, nil
}

// Load returns the saved trip with a validated snapshot.
func (s *Service) Load(ctx context.Context, id types.ID) (trip.SavedTrip, error) {
	if strings.TrimSpace(id) == "" {
		return trip.SavedTrip{}, ErrBadRequest
	}
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return trip.SavedTrip{}, err
	}
	return toSavedTrip(r)
}

func (s *Service) Delete(ctx context.Context, id types.ID) error {
	if strings.TrimSpace(id) == "" {
		return ErrBadRequest
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("[SAVEDTRIP] action=delete id=%s", id)
	return nil
}

// ExportBackup renders every saved trip as an indented JSON array.
func (s *Service) ExportBackup(ctx context.Context) ([]byte, error) {
	trips, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(trips, "", "  ")
}

// BackupFilename is the download name for a backup taken at t.
func BackupFilename(t time.Time) string {
	return "tourcalc_backup_" + t.Format("2006-01-02") + ".json"
}

type backupEntry struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Date   string          `json:"date"`
	Params json.RawMessage `json:"params"`
}

// ImportBackup reads a JSON array of saved trips. Overwrite replaces the whole
// store; merge puts the imported trips first and keeps the first trip seen for
// each id. A single invalid element rejects the import.
func (s *Service) ImportBackup(ctx context.Context, data []byte, mode ImportMode) (int, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil || entries == nil {
		return 0, fmt.Errorf("%w: expected a JSON array of saved trips", ErrInvalidBackup)
	}

	now := s.now().UTC()
	imported := make([]Record, 0, len(entries))
	for i, raw := range entries {
		rec, err := s.parseEntry(raw, now)
		if err != nil {
			return 0, fmt.Errorf("%w: element %d: %v", ErrInvalidBackup, i, err)
		}
		imported = append(imported, rec)
	}

	records := dedupe(imported)
	if mode == ImportMerge {
		existing, err := s.repo.List(ctx)
		if err != nil {
			return 0, err
		}
		records = dedupe(append(imported, existing...))
	}
	if err := s.repo.ReplaceAll(ctx, records); err != nil {
		return 0, err
	}
	log.Printf("[SAVEDTRIP] action=import mode=%s imported=%d total=%d", mode, len(imported), len(records))
	return len(imported), nil
}

func (s *Service) parseEntry(raw json.RawMessage, now time.Time) (Record, error) {
	var e backupEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Record{}, err
	}
	if len(e.Params) == 0 || string(e.Params) == "null" {
		return Record{}, fmt.Errorf("missing params")
	}
	p, err := trip.Decode(e.Params)
	if err != nil {
		return Record{}, err
	}
	encoded, err := trip.Encode(p)
	if err != nil {
		return Record{}, err
	}
	id := strings.TrimSpace(e.ID)
	if id == "" {
		id = s.newID()
	}
	return Record{
		ID:        id,
		Name:      displayName(e.Name, p.TripName),
		CreatedAt: parseDate(e.Date, now),
		Data:      encoded,
	}, nil
}

func toSavedTrip(r Record) (trip.SavedTrip, error) {
	p, err := trip.Decode(r.Data)
	if err != nil {
		return trip.SavedTrip{}, err
	}
	return trip.SavedTrip{ID: r.ID, Name: r.Name, Date: r.CreatedAt, Params: p}, nil
}

func dedupe(recs []Record) []Record {
	seen := make(map[types.ID]bool, len(recs))
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	return out
}

func displayName(name, tripName string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	if n := strings.TrimSpace(tripName); n != "" {
		return n
	}
	return DefaultName
}

// parseDate accepts RFC 3339 or a plain date; anything else becomes fallback.
func parseDate(s string, fallback time.Time) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return fallback
}
