package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pundit-watch/internal/model"
)

var testNow = time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)

func rssServer(t *testing.T, items ...string) *httptest.Server {
	t.Helper()
	doc := `<?xml version="1.0"?><rss version="2.0"><channel><title>t</title>`
	for _, it := range items {
		doc += it
	}
	doc += "</channel></rss>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, doc)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func item(title, link string, published time.Time) string {
	return "<item><title>" + title + "</title><link>" + link + "</link><pubDate>" +
		published.Format(time.RFC1123Z) + "</pubDate></item>"
}

func newTestCrawler(sources []model.SourceConfig) (*Crawler, *int) {
	c := New(sources, Params{Pacing: time.Millisecond})
	sleeps := 0
	c.sleep = func(ctx context.Context, d time.Duration) { sleeps++ }
	c.now = func() time.Time { return testNow }
	return c, &sleeps
}

func TestCrawlAllAggregatesAndSorts(t *testing.T) {
	feed1 := rssServer(t,
		item("Cramer pick alpha today", "https://example.com/alpha", testNow.Add(-time.Hour)),
		item("Cramer pick beta today", "https://example.com/beta", testNow.Add(-2*time.Hour)),
		item("Cramer tie one tonight", "https://example.com/tie1", testNow.Add(-3*time.Hour)),
		item("Cramer tie two tonight", "https://example.com/tie2", testNow.Add(-3*time.Hour)),
	)
	feed2 := rssServer(t,
		// Exact duplicate of beta, arriving from a different source.
		item("Cramer pick beta today", "https://example.com/beta", testNow.Add(-2*time.Hour)),
		item("Cramer pick gamma today", "https://example.com/gamma", testNow.Add(-30*time.Minute)),
	)

	c, _ := newTestCrawler([]model.SourceConfig{
		{ID: "one", URL: feed1.URL, Type: model.SourceTypeFeed, Name: "Feed One"},
		{ID: "two", URL: feed2.URL, Type: model.SourceTypeFeed, Name: "Feed Two"},
	})
	articles, reports := c.CrawlAll(context.Background())

	wantOrder := []string{
		"https://example.com/gamma", // -30m
		"https://example.com/alpha", // -1h
		"https://example.com/beta",  // -2h, kept from feed one only
		"https://example.com/tie1",  // -3h, source order preserved
		"https://example.com/tie2",
	}
	if len(articles) != len(wantOrder) {
		t.Fatalf("expected %d articles, got %d", len(wantOrder), len(articles))
	}
	for i, want := range wantOrder {
		if articles[i].URL != want {
			t.Errorf("position %d: got %s, want %s", i, articles[i].URL, want)
		}
	}

	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].Status != model.StatusOK || reports[0].Kept != 4 {
		t.Errorf("feed one report: %+v", reports[0])
	}
	// Feed two found two candidates but only one survived deduplication.
	if reports[1].Found != 2 || reports[1].Kept != 1 {
		t.Errorf("feed two report: %+v", reports[1])
	}
}

func TestCrawlAllContinuesPastFailures(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	good := rssServer(t, item("Cramer survives the outage", "https://example.com/ok", testNow.Add(-time.Hour)))

	c, _ := newTestCrawler([]model.SourceConfig{
		{ID: "down", URL: deadURL, Type: model.SourceTypeFeed, Name: "Down"},
		{ID: "bogus", URL: "http://example.com", Type: "carrier-pigeon", Name: "Bogus"},
		{ID: "good", URL: good.URL, Type: model.SourceTypeFeed, Name: "Good"},
	})
	articles, reports := c.CrawlAll(context.Background())

	if len(articles) != 1 || articles[0].URL != "https://example.com/ok" {
		t.Fatalf("expected only the healthy source's article, got %+v", articles)
	}
	if len(reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(reports))
	}
	if reports[0].Status != model.StatusFailed || reports[0].Error == "" {
		t.Errorf("dead source should report failed with reason: %+v", reports[0])
	}
	if reports[1].Status != model.StatusFailed {
		t.Errorf("unknown type should report failed: %+v", reports[1])
	}
	if reports[2].Status != model.StatusOK {
		t.Errorf("healthy source should report ok: %+v", reports[2])
	}
}

func TestCrawlAllPacesBetweenSources(t *testing.T) {
	feed := rssServer(t, item("Cramer pacing check item", "https://example.com/p", testNow.Add(-time.Hour)))
	c, sleeps := newTestCrawler([]model.SourceConfig{
		{ID: "a", URL: feed.URL, Type: model.SourceTypeFeed},
		{ID: "b", URL: feed.URL, Type: model.SourceTypeFeed},
		{ID: "c", URL: feed.URL, Type: model.SourceTypeFeed},
	})
	c.CrawlAll(context.Background())
	// One delay per source transition, none after the last.
	if *sleeps != 2 {
		t.Errorf("expected 2 pacing delays, got %d", *sleeps)
	}
}

func TestResetAllowsReadmission(t *testing.T) {
	feed := rssServer(t, item("Cramer repeat run article", "https://example.com/r", testNow.Add(-time.Hour)))
	c, _ := newTestCrawler([]model.SourceConfig{
		{ID: "a", URL: feed.URL, Type: model.SourceTypeFeed},
	})
	first, _ := c.CrawlAll(context.Background())
	second, _ := c.CrawlAll(context.Background())
	if len(first) != 1 || len(second) != 0 {
		t.Fatalf("dedup set must persist across runs without reset: %d then %d", len(first), len(second))
	}
	c.Reset()
	third, _ := c.CrawlAll(context.Background())
	if len(third) != 1 {
		t.Fatalf("reset should allow readmission, got %d", len(third))
	}
}
