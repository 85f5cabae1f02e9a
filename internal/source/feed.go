package source

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"pundit-watch/internal/model"
)

// feedAdapter ingests RSS/Atom documents via gofeed.
type feedAdapter struct {
	cfg  model.SourceConfig
	opts Options
}

func (a *feedAdapter) Fetch(ctx context.Context) (Result, error) {
	body, err := a.opts.Fetcher.Get(ctx, a.cfg.URL)
	if err != nil {
		return Result{}, fmt.Errorf("feed %s: %w", a.cfg.ID, err)
	}
	if len(body) == 0 {
		return Result{}, nil
	}
	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return Result{}, fmt.Errorf("feed %s: parse: %w", a.cfg.ID, err)
	}

	now := a.opts.Now().UTC()
	cutoff := now.Add(-a.opts.Lookback)

	items := feed.Items
	if len(items) > a.opts.MaxArticles {
		items = items[:a.opts.MaxArticles]
	}

	var res Result
	for _, it := range items {
		if it == nil || strings.TrimSpace(it.Link) == "" || strings.TrimSpace(it.Title) == "" {
			res.Skipped++
			continue
		}
		published := resolveFeedTime(it, now)
		// Strict cutoff: an entry at exactly now-lookback is out.
		if !published.After(cutoff) {
			continue
		}
		if !a.opts.Relevance.Match(it.Title, it.Description) {
			continue
		}
		art := model.Article{
			URL:          strings.TrimSpace(it.Link),
			Title:        strings.TrimSpace(it.Title),
			SourceName:   a.cfg.Name,
			SourceType:   model.SourceTypeFeed,
			PublishedAt:  published,
			Description:  strings.TrimSpace(it.Description),
			ThumbnailURL: feedThumbnail(it),
			Metadata:     map[string]string{"feed_url": a.cfg.URL},
		}
		if it.Author != nil {
			art.Author = strings.TrimSpace(it.Author.Name)
		}
		res.Articles = append(res.Articles, art)
	}
	slog.Info("feed: fetched", "source", a.cfg.ID, "entries", len(items), "kept", len(res.Articles))
	return res, nil
}

// resolveFeedTime picks the entry timestamp with precedence published →
// updated → now, normalized to UTC.
func resolveFeedTime(it *gofeed.Item, now time.Time) time.Time {
	if it.PublishedParsed != nil {
		return it.PublishedParsed.UTC()
	}
	if it.UpdatedParsed != nil {
		return it.UpdatedParsed.UTC()
	}
	return now
}

// feedThumbnail extracts an image URL with precedence: media thumbnail,
// media content typed as image, enclosure typed as image.
func feedThumbnail(it *gofeed.Item) string {
	if media, ok := it.Extensions["media"]; ok {
		for _, th := range media["thumbnail"] {
			if u := strings.TrimSpace(th.Attrs["url"]); u != "" {
				return u
			}
		}
		for _, c := range media["content"] {
			if c.Attrs["medium"] == "image" || strings.HasPrefix(c.Attrs["type"], "image/") {
				if u := strings.TrimSpace(c.Attrs["url"]); u != "" {
					return u
				}
			}
		}
	}
	for _, enc := range it.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && strings.TrimSpace(enc.URL) != "" {
			return strings.TrimSpace(enc.URL)
		}
	}
	if it.Image != nil {
		return strings.TrimSpace(it.Image.URL)
	}
	return ""
}
