package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pundit-watch/internal/model"
)

// apiAdapter ingests JSON search-API responses: a top-level object holding a
// list of article objects under one of a few conventional field names.
type apiAdapter struct {
	cfg  model.SourceConfig
	opts Options
}

// listFields are tried in order when locating the item list.
var listFields = []string{"articles", "results", "items", "data"}

// timeFields are tried in order when resolving an item's publish time.
var timeFields = []string{"publishedAt", "published_at", "datePublished", "pubDate", "published", "date", "created_at"}

func (a *apiAdapter) Fetch(ctx context.Context) (Result, error) {
	body, err := a.opts.Fetcher.Get(ctx, a.cfg.URL)
	if err != nil {
		return Result{}, fmt.Errorf("api %s: %w", a.cfg.ID, err)
	}
	if len(body) == 0 {
		return Result{}, nil
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return Result{}, fmt.Errorf("api %s: decode: %w", a.cfg.ID, err)
	}

	var raw []json.RawMessage
	for _, field := range listFields {
		if msg, ok := payload[field]; ok {
			if err := json.Unmarshal(msg, &raw); err == nil {
				break
			}
			raw = nil
		}
	}
	if raw == nil {
		return Result{}, fmt.Errorf("api %s: no item list in response", a.cfg.ID)
	}
	if len(raw) > a.opts.MaxArticles {
		raw = raw[:a.opts.MaxArticles]
	}

	now := a.opts.Now().UTC()
	cutoff := now.Add(-a.opts.Lookback)

	var res Result
	for _, msg := range raw {
		var item map[string]any
		if err := json.Unmarshal(msg, &item); err != nil {
			res.Skipped++
			continue
		}
		urlStr := firstString(item, "url", "link", "webUrl")
		title := firstString(item, "title", "headline")
		if urlStr == "" || title == "" {
			res.Skipped++
			continue
		}
		published := resolveAPITime(item, now)
		if !published.After(cutoff) {
			continue
		}
		desc := firstString(item, "description", "summary", "abstract")
		if !a.opts.Relevance.Match(title, desc) {
			continue
		}
		art := model.Article{
			URL:          urlStr,
			Title:        title,
			SourceName:   a.cfg.Name,
			SourceType:   model.SourceTypeAPI,
			PublishedAt:  published,
			Description:  desc,
			Author:       firstString(item, "author", "byline"),
			ThumbnailURL: apiImage(item),
			Metadata:     map[string]string{"api_url": a.cfg.URL},
		}
		if section := firstString(item, "section", "sectionName", "category"); section != "" {
			art.Metadata["section"] = section
		}
		res.Articles = append(res.Articles, art)
	}
	slog.Info("api: fetched", "source", a.cfg.ID, "items", len(raw), "kept", len(res.Articles))
	return res, nil
}

// resolveAPITime tries the known timestamp field variants in order, falling
// back to now when none parses. Offsets and the Z suffix both normalize to a
// single UTC representation.
func resolveAPITime(item map[string]any, now time.Time) time.Time {
	for _, field := range timeFields {
		s, ok := item[field].(string)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		if t, ok := parseAPITime(strings.TrimSpace(s)); ok {
			return t
		}
	}
	return now
}

var apiTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseAPITime(s string) (time.Time, bool) {
	for _, layout := range apiTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// apiImage accepts an image only when the field is a structured object with a
// url; a bare string value is ignored.
func apiImage(item map[string]any) string {
	for _, field := range []string{"image", "thumbnail", "urlToImage"} {
		obj, ok := item[field].(map[string]any)
		if !ok {
			continue
		}
		if u, ok := obj["url"].(string); ok && strings.TrimSpace(u) != "" {
			return strings.TrimSpace(u)
		}
	}
	return ""
}

// firstString returns the first non-empty string value among the named fields.
func firstString(item map[string]any, fields ...string) string {
	for _, f := range fields {
		if s, ok := item[f].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}
