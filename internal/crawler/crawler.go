package crawler

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"pundit-watch/internal/dedup"
	"pundit-watch/internal/fetch"
	"pundit-watch/internal/model"
	"pundit-watch/internal/relevance"
	"pundit-watch/internal/source"
)

// Params tunes a crawl run. Zero values fall back to defaults.
type Params struct {
	MaxArticlesPerSource int
	LookbackHours        int
	RequestTimeout       time.Duration
	Pacing               time.Duration // delay between sources, not per request
	RelevanceKeywords    []string
	ScrapePathKeywords   []string
}

func (p *Params) fillDefaults() {
	if p.MaxArticlesPerSource <= 0 {
		p.MaxArticlesPerSource = 20
	}
	if p.LookbackHours <= 0 {
		p.LookbackHours = 24
	}
	if p.RequestTimeout <= 0 {
		p.RequestTimeout = 15 * time.Second
	}
	if p.Pacing <= 0 {
		p.Pacing = time.Second
	}
}

// Crawler visits configured sources strictly in order, one at a time, and
// aggregates deduplicated articles. Sources are independent: one failing
// source contributes nothing and the run continues.
type Crawler struct {
	sources []model.SourceConfig
	params  Params
	seen    *dedup.Set

	// sleep is swapped out in tests so pacing doesn't slow them down.
	sleep func(ctx context.Context, d time.Duration)
	now   func() time.Time
}

func New(sources []model.SourceConfig, params Params) *Crawler {
	params.fillDefaults()
	return &Crawler{
		sources: sources,
		params:  params,
		seen:    dedup.NewSet(),
		sleep:   pause,
		now:     time.Now,
	}
}

// CrawlAll runs the full pipeline: fetch each source, filter and deduplicate,
// pace between sources, then sort the aggregate by publish time descending
// (stable, so ties keep source-processing order). One report per configured
// source is returned alongside the articles so partial failure is observable.
func (c *Crawler) CrawlAll(ctx context.Context) ([]model.Article, []model.SourceReport) {
	client := fetch.New(c.params.RequestTimeout)
	defer client.Close()

	opts := source.Options{
		Fetcher:      client,
		Relevance:    relevance.New(c.params.RelevanceKeywords),
		MaxArticles:  c.params.MaxArticlesPerSource,
		Lookback:     time.Duration(c.params.LookbackHours) * time.Hour,
		PathKeywords: c.params.ScrapePathKeywords,
		Now:          c.now,
	}

	var articles []model.Article
	reports := make([]model.SourceReport, 0, len(c.sources))

	for i, cfg := range c.sources {
		if i > 0 {
			c.sleep(ctx, c.params.Pacing)
		}
		report := model.SourceReport{SourceID: cfg.ID, SourceName: cfg.Name}

		adapter, err := source.New(cfg, opts)
		if err != nil {
			slog.Error("crawler: skipping source", "source", cfg.ID, "error", err)
			report.Status = model.StatusFailed
			report.Error = err.Error()
			reports = append(reports, report)
			continue
		}

		res, err := adapter.Fetch(ctx)
		if err != nil {
			slog.Error("crawler: source failed", "source", cfg.ID, "error", err)
			report.Status = model.StatusFailed
			report.Error = err.Error()
			reports = append(reports, report)
			continue
		}

		report.Found = len(res.Articles)
		for _, art := range res.Articles {
			if c.seen.Admit(art) {
				articles = append(articles, art)
				report.Kept++
			}
		}
		if res.Skipped > 0 {
			report.Status = model.StatusPartial
		} else {
			report.Status = model.StatusOK
		}
		reports = append(reports, report)
		slog.Info("crawler: source done", "source", cfg.ID, "found", report.Found, "kept", report.Kept, "status", report.Status)
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
	return articles, reports
}

// Reset clears the deduplication set so the crawler can be reused across
// independent sessions.
func (c *Crawler) Reset() {
	c.seen.Reset()
}

// pause waits for d or until ctx is cancelled, whichever comes first.
func pause(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
