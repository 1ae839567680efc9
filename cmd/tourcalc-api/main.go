// README: Entry point; loads config, wires services, starts HTTP server and the autosave scheduler.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"tourcalc/internal/ai"
	"tourcalc/internal/config"
	httptransport "tourcalc/internal/http"
	"tourcalc/internal/infra"
	"tourcalc/internal/maps"
	"tourcalc/internal/metrics"
	"tourcalc/internal/modules/advisory"
	"tourcalc/internal/modules/aiusage"
	"tourcalc/internal/modules/autosave"
	"tourcalc/internal/modules/export"
	"tourcalc/internal/modules/fuel"
	"tourcalc/internal/modules/pricing"
	"tourcalc/internal/modules/savedtrip"
	"tourcalc/internal/modules/trip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg.Store)
	if err != nil {
		log.Fatal(err)
	}
	defer st.close()

	m := metrics.New()
	session := trip.NewSession(trip.DefaultParams(), trip.NewReconciler(trip.ReconcilerConfig{
		MinDuration: cfg.Trip.MinDuration,
	}))
	session.Observe(m)

	pricingSvc := pricing.NewService(m)
	savedSvc := savedtrip.NewService(st.trips)

	gen, err := ai.New(ctx, ai.Settings{
		Provider:     cfg.AI.Provider,
		GeminiAPIKey: cfg.AI.GeminiKey,
		GeminiModel:  cfg.AI.GeminiModel,
		OpenAIAPIKey: cfg.AI.OpenAIKey,
		OpenAIModel:  cfg.AI.OpenAIModel,
	})
	switch {
	case errors.Is(err, ai.ErrDisabled):
		log.Printf("[MAIN] advisory disabled: no %s api key", cfg.AI.Provider)
		gen = nil
	case err != nil:
		log.Fatalf("ai init: %v", err)
	}
	if c, ok := gen.(interface{ Close() }); ok {
		defer c.Close()
	}
	advisorySvc := advisory.NewService(gen, cfg.AI.Timeout)
	defer advisorySvc.Close()

	var quotaSvc *aiusage.Service
	if cfg.AI.MonthlyQuota > 0 {
		quotaSvc = aiusage.NewService(st.usage, cfg.AI.MonthlyQuota)
	}

	var autosaveSvc *autosave.Service
	if cfg.Redis.Addr != "" {
		rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Fatal(err)
		}
		defer rdb.Close()
		autosaveSvc = autosave.NewService(session, autosave.NewRedisStore(rdb, autosave.DefaultKey, cfg.Autosave.TTL), cfg.Autosave.Interval)
	} else {
		log.Printf("[MAIN] autosave disabled: TOURCALC_REDIS_ADDR not set")
	}

	deps := httptransport.ServerDeps{
		Session:     session,
		Pricing:     pricingSvc,
		SavedTrip:   savedSvc,
		Advisory:    advisorySvc,
		Quota:       quotaSvc,
		Autosave:    autosaveSvc,
		Fuel:        fuel.NewService(nil),
		Metrics:     m,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	}

	if cfg.Maps.APIKey != "" {
		routes, err := maps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		places, err := maps.NewPlacesService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		deps.Fuel = fuel.NewService(routes)
		deps.Hotels = places
	}

	if cfg.Backup.Bucket != "" {
		client, err := infra.NewS3(ctx, infra.S3Config{
			Region:          cfg.Backup.Region,
			Endpoint:        cfg.Backup.Endpoint,
			AccessKeyID:     cfg.Backup.AccessKey,
			SecretAccessKey: cfg.Backup.SecretKey,
			PathStyle:       cfg.Backup.PathStyle,
		})
		if err != nil {
			log.Fatal(err)
		}
		deps.Uploader = export.NewBackupUploader(client, cfg.Backup.Bucket, cfg.Backup.Prefix)
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httptransport.NewServer(deps).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("[MAIN] listening on %s", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if autosaveSvc != nil {
		g.Go(func() error {
			autosaveSvc.RunScheduler(gctx)
			// Last chance to keep edits made since the previous tick.
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if _, err := autosaveSvc.Flush(flushCtx); err != nil {
				log.Printf("[MAIN] final autosave failed: %v", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
	log.Printf("[MAIN] stopped")
}

type stores struct {
	trips savedtrip.Repository
	usage aiusage.Store
	close func()
}

// openStores picks the database backend and makes sure its tables exist.
func openStores(ctx context.Context, cfg config.StoreConfig) (stores, error) {
	var st stores
	switch cfg.Driver {
	case "postgres":
		pool, err := infra.NewDB(ctx, cfg.DSN)
		if err != nil {
			return st, err
		}
		trips := savedtrip.NewPostgresStore(pool)
		st = stores{trips: trips, usage: aiusage.NewPostgresStore(pool), close: pool.Close}
		if err := trips.EnsureSchema(ctx); err != nil {
			pool.Close()
			return stores{}, err
		}
	default:
		db, err := infra.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return st, err
		}
		trips := savedtrip.NewSQLiteStore(db)
		st = stores{trips: trips, usage: aiusage.NewSQLiteStore(db), close: func() { _ = db.Close() }}
		if err := trips.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return stores{}, err
		}
	}
	if err := st.usage.EnsureSchema(ctx); err != nil {
		st.close()
		return stores{}, err
	}
	return st, nil
}
