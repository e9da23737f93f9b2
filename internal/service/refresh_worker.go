package service

import (
	"context"
	"log"
	"time"
)

// RefreshWorker periodically re-ingests trending posts into the feed store.
// A failed refresh keeps the current collection; the worker just retries on
// the next tick.
type RefreshWorker struct {
	feed     *FeedService
	interval time.Duration
}

// NewRefreshWorker creates a periodic feed refresh worker.
func NewRefreshWorker(feed *FeedService, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{
		feed:     feed,
		interval: interval,
	}
}

// Start runs the refresh loop until the context is cancelled. The first
// refresh happens immediately so the store is seeded at boot.
func (w *RefreshWorker) Start(ctx context.Context) {
	log.Printf("refresh-worker: starting (interval=%s)", w.interval)

	w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.refresh(ctx)
		case <-ctx.Done():
			log.Println("refresh-worker: stopping (context cancelled)")
			return
		}
	}
}

func (w *RefreshWorker) refresh(ctx context.Context) {
	start := time.Now()
	if err := w.feed.Refresh(ctx); err != nil {
		log.Printf("refresh-worker: refresh failed, keeping current feed: %v", err)
		return
	}
	log.Printf("refresh-worker: feed refreshed in %s", time.Since(start).Round(time.Millisecond))
}
