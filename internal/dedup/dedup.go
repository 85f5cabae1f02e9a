package dedup

import "pundit-watch/internal/model"

// Set is a session-scoped collection of content fingerprints. Its lifetime
// equals the owning crawler's; cross-run persistence is the caller's concern
// (see storage.RedisStore, which layers on the same hash key).
type Set struct {
	seen map[string]struct{}
}

func NewSet() *Set {
	return &Set{seen: make(map[string]struct{})}
}

// Admit returns true and records the article's fingerprint if it has not been
// seen in this session; otherwise it returns false and leaves the set
// unchanged. Admission is immediate, so a duplicate later in the same source
// or in a later source is rejected identically.
func (s *Set) Admit(a model.Article) bool {
	h := a.ContentHash()
	if _, ok := s.seen[h]; ok {
		return false
	}
	s.seen[h] = struct{}{}
	return true
}

// Len reports how many distinct fingerprints have been admitted.
func (s *Set) Len() int {
	return len(s.seen)
}

// Reset clears the set so one crawler can be reused across independent
// sessions.
func (s *Set) Reset() {
	s.seen = make(map[string]struct{})
}
