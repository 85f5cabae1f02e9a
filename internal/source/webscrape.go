package source

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"pundit-watch/internal/model"
)

// defaultPathKeywords are the topic path fragments a listing-page anchor must
// contain to count as an article link.
var defaultPathKeywords = []string{
	"/jim-cramer",
	"/mad-money",
	"/lightning-round",
}

// minTitleLen is the shortest anchor/heading text accepted as a title, in
// runes. Anything shorter is navigation chrome, not an article.
const minTitleLen = 10

// scrapeAdapter ingests raw HTML listing pages. List pages carry no reliable
// publish date, so every article gets the crawl timestamp, and the keyword
// path match stands in for the relevance filter.
type scrapeAdapter struct {
	cfg  model.SourceConfig
	opts Options
}

func (a *scrapeAdapter) Fetch(ctx context.Context) (Result, error) {
	body, err := a.opts.Fetcher.Get(ctx, a.cfg.URL)
	if err != nil {
		return Result{}, fmt.Errorf("webscrape %s: %w", a.cfg.ID, err)
	}
	if len(body) == 0 {
		return Result{}, nil
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("webscrape %s: parse: %w", a.cfg.ID, err)
	}
	base, err := url.Parse(a.cfg.URL)
	if err != nil {
		return Result{}, fmt.Errorf("webscrape %s: base url: %w", a.cfg.ID, err)
	}

	crawledAt := a.opts.Now().UTC()
	seen := make(map[string]struct{})

	var res Result
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if !a.matchesPath(href) {
			return true
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			res.Skipped++
			return true
		}
		resolved := base.ResolveReference(ref).String()
		if _, dup := seen[resolved]; dup {
			return true
		}

		title := strings.TrimSpace(sel.Text())
		if utf8.RuneCountInString(title) < minTitleLen {
			// Short anchor text is usually "Read more" or an icon; the
			// enclosing heading tends to carry the real headline.
			if h := sel.Closest("h1, h2, h3, h4"); h.Length() > 0 {
				title = strings.TrimSpace(h.Text())
			}
		}
		if utf8.RuneCountInString(title) < minTitleLen {
			res.Skipped++
			return true
		}

		seen[resolved] = struct{}{}
		res.Articles = append(res.Articles, model.Article{
			URL:         resolved,
			Title:       title,
			SourceName:  a.cfg.Name,
			SourceType:  model.SourceTypeWebScrape,
			PublishedAt: crawledAt,
			Metadata:    map[string]string{"page_url": a.cfg.URL},
		})
		return len(res.Articles) < a.opts.MaxArticles
	})
	slog.Info("webscrape: fetched", "source", a.cfg.ID, "kept", len(res.Articles), "skipped", res.Skipped)
	return res, nil
}

func (a *scrapeAdapter) matchesPath(href string) bool {
	href = strings.ToLower(href)
	for _, kw := range a.opts.PathKeywords {
		if strings.Contains(href, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
