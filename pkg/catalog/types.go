// Package catalog implements the append-only cat catalog: a lightweight
// master index (catlist.json), monthly detail shards (cats/YYYY-MM.json),
// and the rolling creative notes record (creative_notes.json).
//
// The index is the source of truth for numbering and hourly idempotency.
// Detail entries carry the generation context (prompts, stories, style picks)
// and are keyed back to the index by number within the same month.
package catalog

import (
	"time"
)

// Entry status values recorded in the index.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Catalog file names, relative to the working directory.
const (
	IndexFile = "catlist.json"
	NotesFile = "creative_notes.json"
	ShardDir  = "cats"
)

// IndexEntry is a lightweight record in the master append-only list.
type IndexEntry struct {
	Number      int    `json:"number,omitempty"`
	Timestamp   string `json:"timestamp"`
	URL         string `json:"url,omitempty"`
	Model       string `json:"model,omitempty"`
	Status      string `json:"status,omitempty"`
	Error       string `json:"error,omitempty"`
	Title       string `json:"title,omitempty"`
	Inspiration string `json:"inspiration,omitempty"`
}

// Succeeded reports whether the entry recorded a successful generation.
// Entries written before the status field existed count as successful.
func (e IndexEntry) Succeeded() bool {
	return e.Status == "" || e.Status == StatusSuccess
}

// DetailEntry is the richer per-cat record stored in a monthly shard.
type DetailEntry struct {
	Number          int               `json:"number,omitempty"`
	Prompt          string            `json:"prompt,omitempty"`
	Story           string            `json:"story,omitempty"`
	Idea            string            `json:"idea,omitempty"`
	Title           string            `json:"title,omitempty"`
	Inspiration     string            `json:"inspiration,omitempty"`
	NewsInspiration []string          `json:"news_inspiration,omitempty"`
	AvoidList       []string          `json:"avoid_list,omitempty"`
	StylePicks      map[string]string `json:"style_picks,omitempty"`
	CommentID       int64             `json:"comment_id,omitempty"`
}

// CreativeNotes is the rolling summary used to bias future generation away
// from recently overused themes. It is overwritten wholesale on rotation.
type CreativeNotes struct {
	AvoidList []string `json:"avoid_list"`
	UpdatedAt string   `json:"updated_at,omitempty"`
}

// Record is a full generation result before it is split into index and
// detail fields by Append.
type Record struct {
	Number          int
	Timestamp       string
	URL             string
	Model           string
	Status          string
	Error           string
	Title           string
	Inspiration     string
	Prompt          string
	Story           string
	Idea            string
	NewsInspiration []string
	AvoidList       []string
	StylePicks      map[string]string
	CommentID       int64
}

// Index returns the index portion of the record.
func (r Record) Index() IndexEntry {
	return IndexEntry{
		Number:      r.Number,
		Timestamp:   r.Timestamp,
		URL:         r.URL,
		Model:       r.Model,
		Status:      r.Status,
		Error:       r.Error,
		Title:       r.Title,
		Inspiration: r.Inspiration,
	}
}

// Detail returns the detail portion of the record.
func (r Record) Detail() DetailEntry {
	return DetailEntry{
		Number:          r.Number,
		Prompt:          r.Prompt,
		Story:           r.Story,
		Idea:            r.Idea,
		Title:           r.Title,
		Inspiration:     r.Inspiration,
		NewsInspiration: r.NewsInspiration,
		AvoidList:       r.AvoidList,
		StylePicks:      r.StylePicks,
		CommentID:       r.CommentID,
	}
}

// HasDetail reports whether any detail field beyond the number is populated.
// Failed runs produce index-only entries.
func (r Record) HasDetail() bool {
	return r.Prompt != "" || r.Story != "" || r.Idea != "" || r.Title != "" ||
		r.Inspiration != "" || len(r.NewsInspiration) > 0 || len(r.AvoidList) > 0 ||
		len(r.StylePicks) > 0 || r.CommentID != 0
}

// FormatTimestamp renders t as a catalog timestamp, e.g. "2026-01-30 05:04 UTC".
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04") + " UTC"
}

// HourPrefix returns the prefix shared by every timestamp in t's UTC hour,
// e.g. "2026-01-30 05:".
func HourPrefix(t time.Time) string {
	return t.UTC().Format("2006-01-02 15") + ":"
}

// DatePrefix returns t's UTC date string, e.g. "2026-01-30".
func DatePrefix(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// MonthOf returns the month key ("YYYY-MM") of a catalog timestamp.
func MonthOf(timestamp string) string {
	if len(timestamp) < 7 {
		return ""
	}
	return timestamp[:7]
}
