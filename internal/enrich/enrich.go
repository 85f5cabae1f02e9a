package enrich

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"pundit-watch/internal/fetch"
	"pundit-watch/internal/model"
)

// maxContentLen caps extracted body text, in runes.
const maxContentLen = 10000

// structural elements removed before any text is inspected.
const chromeSelector = "script, style, nav, header, footer, aside"

// bylineSelector locates an author credit on the article page.
const bylineSelector = "[rel=author], .byline, .author"

// Fetcher performs the optional secondary fetch that fills in an article's
// full body text and may refine its author and timestamp from the article's
// own page. Every failure mode returns the input unchanged.
type Fetcher struct {
	client *fetch.Client
	// bodySelector matches the site-specific article body container and is
	// tried before the generic fallbacks.
	bodySelector string
}

// New creates a Fetcher. bodySelector may be empty, in which case only the
// generic container fallbacks apply.
func New(client *fetch.Client, bodySelector string) *Fetcher {
	if strings.TrimSpace(bodySelector) == "" {
		bodySelector = "[itemprop=articleBody], .article-body"
	}
	return &Fetcher{client: client, bodySelector: bodySelector}
}

// Enrich fetches a's own page and returns a copy with FullContent set, and
// PublishedAt/Author overwritten when the page offers stronger signals. On a
// failed fetch, unparsable HTML, or a page with no recognizable content
// container, the input is returned unchanged.
func (f *Fetcher) Enrich(ctx context.Context, a model.Article) model.Article {
	body, err := f.client.Get(ctx, a.URL)
	if err != nil || len(body) == 0 {
		slog.Debug("enrich: page unavailable", "url", a.URL, "error", err)
		return a
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		slog.Debug("enrich: parse failed", "url", a.URL, "error", err)
		return a
	}
	doc.Find(chromeSelector).Remove()

	text := extractBody(doc, f.bodySelector)
	if text == "" {
		return a
	}
	a.FullContent = text

	if t, ok := pageTime(doc); ok {
		a.PublishedAt = t
	}
	if author := strings.TrimSpace(doc.Find(bylineSelector).First().Text()); author != "" {
		a.Author = author
	}
	return a
}

// extractBody tries the configured body marker, then a generic article
// element, then generic main/content containers. The first non-empty match
// wins and extraction stops.
func extractBody(doc *goquery.Document, bodySelector string) string {
	for _, sel := range []string{bodySelector, "article", "main, #content, .content"} {
		text := normalizeWhitespace(doc.Find(sel).First().Text())
		if text != "" {
			return truncate(text, maxContentLen)
		}
	}
	return ""
}

// pageTime reads the first machine-readable time element. A missing or
// unparsable datetime leaves the caller's value untouched.
func pageTime(doc *goquery.Document) (time.Time, bool) {
	dt, ok := doc.Find("time[datetime]").First().Attr("datetime")
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, strings.TrimSpace(dt)); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
