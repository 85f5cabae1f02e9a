package dedup

import (
	"testing"

	"pundit-watch/internal/model"
)

func TestAdmitRejectsDuplicates(t *testing.T) {
	s := NewSet()
	a := model.Article{URL: "https://example.com/a", Title: "Cramer on tech stocks"}
	if !s.Admit(a) {
		t.Fatalf("first admit should succeed")
	}
	if s.Admit(a) {
		t.Fatalf("second admit of same article should fail")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 fingerprint, got %d", s.Len())
	}
}

func TestAdmitIgnoresNonIdentityFields(t *testing.T) {
	s := NewSet()
	a := model.Article{URL: "https://example.com/a", Title: "Cramer on tech stocks", SourceName: "feed one"}
	b := model.Article{URL: "https://example.com/a", Title: "Cramer on tech stocks", SourceName: "feed two", Description: "different"}
	if !s.Admit(a) {
		t.Fatalf("first admit should succeed")
	}
	// Same url+title arriving from a different source is still a duplicate.
	if s.Admit(b) {
		t.Fatalf("cross-source duplicate should be rejected")
	}
}

func TestReset(t *testing.T) {
	s := NewSet()
	a := model.Article{URL: "https://example.com/a", Title: "Cramer on tech stocks"}
	s.Admit(a)
	s.Reset()
	if s.Len() != 0 {
		t.Fatalf("reset should clear the set")
	}
	if !s.Admit(a) {
		t.Fatalf("admit after reset should succeed")
	}
}
