// Package refresh drives periodic reloads of the polling store from the
// live source, falling back to seed data when scraping has never
// produced anything.
package refresh

import (
	"context"
	"log/slog"
	"time"

	"ukpolling/models"
	"ukpolling/store"
)

// Scraper is the slice of the scrape pipeline the refresher needs.
type Scraper interface {
	Scrape(ctx context.Context) ([]models.PollRecord, error)
}

// Refresher periodically replaces the store's contents with a fresh
// scrape.
type Refresher struct {
	scraper    Scraper
	store      *store.Store
	interval   time.Duration
	liveSource string
}

// New builds a refresher. liveSource names the origin recorded in the
// store when a live scrape succeeds (e.g. "wikipedia").
func New(scraper Scraper, st *store.Store, interval time.Duration, liveSource string) *Refresher {
	return &Refresher{
		scraper:    scraper,
		store:      st,
		interval:   interval,
		liveSource: liveSource,
	}
}

// Refresh runs one scrape-and-load pass and returns the number of
// records loaded. A failed or empty scrape never empties the store; if
// the store has never held data, the static seed batch is loaded so the
// API always has something to serve.
func (r *Refresher) Refresh(ctx context.Context) int {
	records, err := r.scraper.Scrape(ctx)
	if err != nil {
		slog.Error("live scrape failed", slog.Any("error", err))
	} else if len(records) > 0 {
		return r.store.Load(records, r.liveSource)
	} else {
		slog.Warn("live scrape returned no records")
	}

	if r.store.Status().TotalPolls == 0 {
		slog.Info("loading seed data as fallback")
		return r.store.Load(store.SeedPolls(), "seed_data")
	}
	return 0
}

// Run refreshes immediately and then on every interval tick until the
// context is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	r.Refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("refresh loop started", slog.Duration("interval", r.interval))
	for {
		select {
		case <-ticker.C:
			r.Refresh(ctx)
		case <-ctx.Done():
			slog.Debug("refresh loop stopped")
			return
		}
	}
}
