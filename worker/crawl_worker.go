package worker

import (
	"context"
	"log/slog"
	"time"

	"pundit-watch/internal/crawler"
	"pundit-watch/internal/enrich"
	"pundit-watch/internal/model"
	"pundit-watch/internal/storage"
)

// CrawlWorker runs the crawl pipeline on an interval and persists new
// articles to the store. The store's seen markers give cross-run dedup on top
// of the crawler's per-run set; the per-run set is reset between runs so each
// run deduplicates only within itself.
type CrawlWorker struct {
	Crawler  *crawler.Crawler
	Store    *storage.RedisStore
	Enricher *enrich.Fetcher // optional; nil skips full-content fetching
	Interval time.Duration
}

func (w *CrawlWorker) Start(ctx context.Context) error {
	if w.Interval <= 0 {
		w.Interval = 30 * time.Minute
	}

	// initial run
	w.runOnce(ctx)

	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *CrawlWorker) runOnce(ctx context.Context) {
	w.Crawler.Reset()
	articles, reports := w.Crawler.CrawlAll(ctx)
	for _, r := range reports {
		if r.Status == model.StatusFailed {
			slog.Warn("crawl-worker: source failed", "source", r.SourceID, "error", r.Error)
		}
	}

	stored := 0
	for _, a := range articles {
		seen, err := w.Store.Seen(ctx, a.ContentHash())
		if err != nil {
			slog.Error("crawl-worker: seen check error", "url", a.URL, "error", err)
			continue
		}
		if seen {
			continue
		}
		if w.Enricher != nil {
			a = w.Enricher.Enrich(ctx, a)
		}
		if err := w.Store.SaveArticle(ctx, a); err != nil {
			slog.Error("crawl-worker: store error", "url", a.URL, "error", err)
			continue
		}
		stored++
	}
	slog.Info("crawl-worker: run completed", "crawled", len(articles), "stored", stored)
}
