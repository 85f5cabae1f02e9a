package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pundit-watch/internal/fetch"
	"pundit-watch/internal/model"
	"pundit-watch/internal/relevance"
)

// ErrUnknownSourceType is returned by New for a source whose type is outside
// the closed feed/api/webScrape set.
var ErrUnknownSourceType = errors.New("source: unknown source type")

// Result is what one adapter produced for one source in one run. Skipped
// counts entries dropped during parsing (missing fields, unparsable payload
// pieces); the crawler uses it to distinguish a clean run from a partial one.
type Result struct {
	Articles []model.Article
	Skipped  int
}

// Adapter turns a source's raw payload into candidate articles. Fetch returns
// an error only for source-level failures (transport, whole-payload parse);
// per-entry trouble degrades to Skipped counts, and a non-success HTTP status
// degrades to an empty Result.
type Adapter interface {
	Fetch(ctx context.Context) (Result, error)
}

// Options carries the collaborators and tuning shared by all three adapter
// variants. Now is injectable so recency-cutoff behavior is testable against
// a fixed clock.
type Options struct {
	Fetcher      *fetch.Client
	Relevance    *relevance.Filter
	MaxArticles  int           // bounds raw candidates before filtering
	Lookback     time.Duration // recency window for feed/api sources
	PathKeywords []string      // topic path fragments for webScrape sources
	Now          func() time.Time
}

func (o *Options) fillDefaults() {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.MaxArticles <= 0 {
		o.MaxArticles = 20
	}
	if o.Lookback <= 0 {
		o.Lookback = 24 * time.Hour
	}
	if o.Relevance == nil {
		o.Relevance = relevance.New(nil)
	}
	if len(o.PathKeywords) == 0 {
		o.PathKeywords = defaultPathKeywords
	}
}

// New resolves a source config to its adapter. The set of variants is closed;
// resolution happens once at configuration-load time, not per fetch.
func New(cfg model.SourceConfig, opts Options) (Adapter, error) {
	opts.fillDefaults()
	switch cfg.Type {
	case model.SourceTypeFeed:
		return &feedAdapter{cfg: cfg, opts: opts}, nil
	case model.SourceTypeAPI:
		return &apiAdapter{cfg: cfg, opts: opts}, nil
	case model.SourceTypeWebScrape:
		return &scrapeAdapter{cfg: cfg, opts: opts}, nil
	default:
		return nil, fmt.Errorf("%w: %q (source %s)", ErrUnknownSourceType, cfg.Type, cfg.ID)
	}
}
