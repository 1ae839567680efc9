// README: Smoke cases for the pricing API plus DB, Redis and load checks.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"tourcalc/internal/modules/autosave"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

type tripView struct {
	Params struct {
		DurationDays int `json:"durationDays"`
		HotelStays   []struct {
			Nights int `json:"nights"`
		} `json:"hotelStays"`
	} `json:"params"`
	Breakdown struct {
		TotalCost               float64 `json:"totalCost"`
		SuggestedPricePerPerson float64 `json:"suggestedPricePerPerson"`
	} `json:"breakdown"`
	Revision int64 `json:"revision"`
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "SKIP", Note: "dsn not set"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: "SKIP", Note: "redis not set"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Migration: apply (optional)",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: "SKIP", Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				sql, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				for _, s := range splitSQL(string(sql)) {
					if _, err := r.db.Exec(ctx, s); err != nil {
						return Result{Status: "FAIL", Note: err.Error()}
					}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Migration: tables exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "SKIP", Note: "dsn not set"}
				}
				tables, err := extractTables(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: "FAIL", Note: err.Error()}
					}
					if !exists {
						return Result{Status: "FAIL", Note: "missing table: " + t}
					}
				}
				return Result{Status: "PASS"}
			},
		},
		httpCase("API: health", http.MethodGet, base+"/health", nil, 200),
		httpCase("API: current trip", http.MethodGet, base+"/api/trip", nil, 200),
		httpCase("API: unknown vector -> 400", http.MethodPost, base+"/api/trip/vectors/nope/fill", nil, 400),
		httpCase("API: duration without days -> 400", http.MethodPost, base+"/api/trip/duration", map[string]any{}, 400),
		httpCase("API: export CSV", http.MethodGet, base+"/api/export/csv", nil, 200),
		httpCase("API: export PDF", http.MethodGet, base+"/api/export/pdf", nil, 200),
		httpCase("API: saved trip list", http.MethodGet, base+"/api/trips", nil, 200),
		{
			Name: "Trip: duration edit keeps hotel nights in step",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				var view tripView
				if err := r.doJSON(ctx, http.MethodPost, base+"/api/trip/duration", map[string]int{"days": 10}, &view); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				nights := 0
				for _, s := range view.Params.HotelStays {
					nights += s.Nights
				}
				if view.Params.DurationDays != 10 || nights != 10 {
					return Result{Status: "FAIL", Note: fmt.Sprintf("duration=%d nights=%d", view.Params.DurationDays, nights)}
				}
				return Result{Status: "PASS", Latency: time.Since(start), Note: fmt.Sprintf("price=%.2f", view.Breakdown.SuggestedPricePerPerson)}
			},
		},
		{
			Name: "Trip: concurrent edits each bump the revision",
			Run: func(ctx context.Context, r *Runner) Result {
				return concurrentEdits(ctx, r, base)
			},
		},
		{
			Name: "Saved trips: save, load, delete",
			Run: func(ctx context.Context, r *Runner) Result {
				var saved struct {
					ID string `json:"id"`
				}
				if err := r.doJSON(ctx, http.MethodPost, base+"/api/trips", map[string]string{"name": "bench"}, &saved); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if err := r.doJSON(ctx, http.MethodPost, base+"/api/trips/"+saved.ID+"/load", nil, nil); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if err := r.doJSON(ctx, http.MethodDelete, base+"/api/trips/"+saved.ID, nil, nil); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS", Note: "id=" + saved.ID}
			},
		},
		{
			Name: "Autosave: slot present in redis",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: "SKIP", Note: "redis not set"}
				}
				ttl, err := r.redis.TTL(ctx, autosave.DefaultKey).Result()
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if ttl == -2*time.Nanosecond {
					return Result{Status: "SKIP", Note: "no autosave yet"}
				}
				return Result{Status: "PASS", Note: "ttl=" + ttl.String()}
			},
		},
		{
			Name: "Load: breakdown reads",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/trip/breakdown")
			},
		},
	}
}

func httpCase(name, method, url string, payload any, want int) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			resp, err := r.send(ctx, method, url, payload)
			if err != nil {
				return Result{Status: "FAIL", Note: err.Error()}
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			latency := time.Since(start)
			if resp.StatusCode != want {
				return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("status=%d want=%d", resp.StatusCode, want)}
			}
			return Result{Status: "PASS", Latency: latency}
		},
	}
}

func (r *Runner) send(ctx context.Context, method, url string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return r.httpc.Do(req)
}

// doJSON expects a 2xx answer and decodes it into out when out is not nil.
func (r *Runner) doJSON(ctx context.Context, method, url string, payload, out any) error {
	resp, err := r.send(ctx, method, url, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status=%d %s", method, url, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func concurrentEdits(ctx context.Context, r *Runner, base string) Result {
	var before tripView
	if err := r.doJSON(ctx, http.MethodGet, base+"/api/trip", nil, &before); err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}

	wg := sync.WaitGroup{}
	var mu sync.Mutex
	failed := 0
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := r.doJSON(ctx, http.MethodPost, base+"/api/trip/duration", map[string]int{"days": 5 + i%5}, nil)
			if err != nil {
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	var after tripView
	if err := r.doJSON(ctx, http.MethodGet, base+"/api/trip", nil, &after); err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}
	got := after.Revision - before.Revision
	if failed > 0 || got != int64(r.cfg.Concurrency) {
		return Result{Status: "FAIL", Note: fmt.Sprintf("failed=%d revisions=%d want=%d", failed, got, r.cfg.Concurrency)}
	}
	return Result{Status: "PASS", Note: fmt.Sprintf("revisions=%d", got)}
}

func perfLoad(ctx context.Context, r *Runner, url string) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count int64
	var errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				resp, err := r.send(ctx, http.MethodGet, url, nil)
				if err != nil {
					mu.Lock()
					errCount++
					mu.Unlock()
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				_ = resp.Body.Close()
				mu.Lock()
				count++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: "FAIL", Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: "PASS", Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	matches := re.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	parts := strings.Split(strings.Join(filtered, "\n"), ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
