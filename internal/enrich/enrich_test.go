package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"pundit-watch/internal/fetch"
	"pundit-watch/internal/model"
)

func newEnricher(t *testing.T, bodySelector string) *Fetcher {
	t.Helper()
	client := fetch.New(5 * time.Second)
	t.Cleanup(client.Close)
	return New(client, bodySelector)
}

func servePage(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, html)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEnrichExtractsBodyAndStripsChrome(t *testing.T) {
	srv := servePage(t, `<html><head><script>var x = "ignore me";</script><style>.a{}</style></head>
		<body><nav>Home News Markets</nav><header>Site header</header>
		<article><p>Cramer told viewers    to buy
		the dip.</p></article>
		<footer>Copyright</footer><aside>Related links</aside></body></html>`)

	a := newEnricher(t, "").Enrich(context.Background(), model.Article{URL: srv.URL, Title: "t"})
	if a.FullContent != "Cramer told viewers to buy the dip." {
		t.Errorf("unexpected content: %q", a.FullContent)
	}
	if strings.Contains(a.FullContent, "ignore me") || strings.Contains(a.FullContent, "Site header") {
		t.Errorf("structural chrome leaked into content: %q", a.FullContent)
	}
}

func TestEnrichSelectorPriority(t *testing.T) {
	srv := servePage(t, `<html><body>
		<div class="article-body">Marker body wins the priority order here.</div>
		<article>Generic article text that should lose.</article>
		<main>Main container text that should lose.</main>
	</body></html>`)
	a := newEnricher(t, "").Enrich(context.Background(), model.Article{URL: srv.URL, Title: "t"})
	if a.FullContent != "Marker body wins the priority order here." {
		t.Errorf("expected marker body, got %q", a.FullContent)
	}

	srv2 := servePage(t, `<html><body>
		<article>Generic article text takes over now.</article>
		<main>Main container text that should lose.</main>
	</body></html>`)
	a = newEnricher(t, "").Enrich(context.Background(), model.Article{URL: srv2.URL, Title: "t"})
	if a.FullContent != "Generic article text takes over now." {
		t.Errorf("expected article element, got %q", a.FullContent)
	}
}

func TestEnrichOverwritesTimeAndAuthor(t *testing.T) {
	srv := servePage(t, `<html><body>
		<article>
		<time datetime="2026-08-01T09:30:00Z">August 1</time>
		<span class="byline">Kevin Stankiewicz</span>
		<p>Cramer backed the pick on air.</p>
		</article></body></html>`)

	orig := model.Article{URL: srv.URL, Title: "t", Author: "wire desk", PublishedAt: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)}
	a := newEnricher(t, "").Enrich(context.Background(), orig)
	want := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
	if !a.PublishedAt.Equal(want) {
		t.Errorf("expected page time %v, got %v", want, a.PublishedAt)
	}
	if a.Author != "Kevin Stankiewicz" {
		t.Errorf("expected byline author, got %q", a.Author)
	}
}

func TestEnrichBadTimeLeavesValue(t *testing.T) {
	srv := servePage(t, `<html><body><article>
		<time datetime="not-a-date">sometime</time>
		<p>Cramer content with a broken timestamp.</p>
		</article></body></html>`)
	orig := model.Article{URL: srv.URL, Title: "t", PublishedAt: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)}
	a := newEnricher(t, "").Enrich(context.Background(), orig)
	if !a.PublishedAt.Equal(orig.PublishedAt) {
		t.Errorf("unparsable datetime must not overwrite: got %v", a.PublishedAt)
	}
	if a.FullContent == "" {
		t.Errorf("content extraction should still succeed")
	}
}

func TestEnrichNotFoundReturnsInputUnchanged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	orig := model.Article{URL: srv.URL, Title: "t", Description: "d", PublishedAt: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)}
	a := newEnricher(t, "").Enrich(context.Background(), orig)
	if !reflect.DeepEqual(a, orig) {
		t.Fatalf("404 must return the input unchanged: %+v vs %+v", a, orig)
	}
}

func TestEnrichNoContainerReturnsInputUnchanged(t *testing.T) {
	srv := servePage(t, `<html><body><p>loose text with no recognized container</p></body></html>`)
	orig := model.Article{URL: srv.URL, Title: "t"}
	a := newEnricher(t, "").Enrich(context.Background(), orig)
	if !reflect.DeepEqual(a, orig) {
		t.Fatalf("no-container page must return the input unchanged")
	}
}

func TestEnrichTruncatesContent(t *testing.T) {
	long := strings.Repeat("buy ", 5000) // 20k chars
	srv := servePage(t, `<html><body><article>`+long+`</article></body></html>`)
	a := newEnricher(t, "").Enrich(context.Background(), model.Article{URL: srv.URL, Title: "t"})
	if got := len([]rune(a.FullContent)); got > 10000 {
		t.Fatalf("content exceeds cap: %d runes", got)
	}
	if len(a.FullContent) == 0 {
		t.Fatalf("expected truncated content, got none")
	}
}
