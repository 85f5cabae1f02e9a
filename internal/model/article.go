package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// SourceType identifies how a source's payload is fetched and parsed.
type SourceType string

const (
	SourceTypeFeed      SourceType = "feed"
	SourceTypeAPI       SourceType = "api"
	SourceTypeWebScrape SourceType = "webScrape"
)

// SourceConfig describes a single configured source. It is read-only to the
// crawler; the registry order is the order sources are visited.
type SourceConfig struct {
	ID   string     `json:"id" yaml:"id" mapstructure:"id"`
	URL  string     `json:"url" yaml:"url" mapstructure:"url"`
	Type SourceType `json:"type" yaml:"type" mapstructure:"type"`
	Name string     `json:"name" yaml:"name" mapstructure:"name"`
}

// Article is the canonical record produced by a crawl.
type Article struct {
	URL          string            `json:"url" yaml:"url"`
	Title        string            `json:"title" yaml:"title"`
	SourceName   string            `json:"source_name" yaml:"source_name"`
	SourceType   SourceType        `json:"source_type" yaml:"source_type"`
	PublishedAt  time.Time         `json:"published_at" yaml:"published_at"` // always UTC
	Description  string            `json:"description,omitempty" yaml:"description,omitempty"`
	FullContent  string            `json:"full_content,omitempty" yaml:"full_content,omitempty"`
	Author       string            `json:"author,omitempty" yaml:"author,omitempty"`
	ThumbnailURL string            `json:"thumbnail_url,omitempty" yaml:"thumbnail_url,omitempty"`
	VideoURL     string            `json:"video_url,omitempty" yaml:"video_url,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// ContentHash returns the article's deduplication fingerprint. It is always
// recomputed from the current URL and Title, never stored.
func (a Article) ContentHash() string {
	return ContentHash(a.URL, a.Title)
}

// ContentHash computes the hex SHA-256 of url + "|" + title. Two articles
// with equal URL and Title always collide, regardless of other fields.
func ContentHash(url, title string) string {
	sum := sha256.Sum256([]byte(url + "|" + title))
	return hex.EncodeToString(sum[:])
}

// ReportStatus classifies a source's outcome within one crawl run.
type ReportStatus string

const (
	StatusOK      ReportStatus = "ok"
	StatusPartial ReportStatus = "partial"
	StatusFailed  ReportStatus = "failed"
)

// SourceReport records what a single source contributed to a run. The crawler
// returns one per configured source so that partial failure is observable to
// callers rather than only logged.
type SourceReport struct {
	SourceID   string       `json:"source_id" yaml:"source_id"`
	SourceName string       `json:"source_name" yaml:"source_name"`
	Status     ReportStatus `json:"status" yaml:"status"`
	Found      int          `json:"found" yaml:"found"` // candidates after adapter filtering
	Kept       int          `json:"kept" yaml:"kept"`   // admitted past deduplication
	Error      string       `json:"error,omitempty" yaml:"error,omitempty"`
}
