package model

import (
	"testing"
	"time"
)

func TestContentHashDeterministic(t *testing.T) {
	h1 := ContentHash("https://example.com/a", "Cramer's top picks")
	h2 := ContentHash("https://example.com/a", "Cramer's top picks")
	if h1 != h2 {
		t.Fatalf("same inputs produced different hashes: %s vs %s", h1, h2)
	}
	if len(h1) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(h1))
	}
}

func TestContentHashSensitivity(t *testing.T) {
	base := ContentHash("https://example.com/a", "title")
	if ContentHash("https://example.com/b", "title") == base {
		t.Errorf("different URLs should not collide")
	}
	if ContentHash("https://example.com/a", "other") == base {
		t.Errorf("different titles should not collide")
	}
	// The separator prevents ambiguity between url/title boundaries.
	if ContentHash("https://example.com/ab", "c") == ContentHash("https://example.com/a", "bc") {
		t.Errorf("boundary shift should not collide")
	}
}

func TestArticleContentHashIgnoresOtherFields(t *testing.T) {
	a := Article{URL: "https://example.com/a", Title: "Lightning Round picks"}
	b := a
	b.Description = "something else"
	b.Author = "someone"
	b.PublishedAt = time.Now()
	b.SourceName = "another source"
	if a.ContentHash() != b.ContentHash() {
		t.Fatalf("hash must depend only on url and title")
	}
	if a.ContentHash() != ContentHash(a.URL, a.Title) {
		t.Fatalf("method and function disagree")
	}
}
