package format

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yazelin/catime/pkg/catalog"
)

func TestEntrySuccess(t *testing.T) {
	var buf bytes.Buffer
	Entry(&buf, catalog.IndexEntry{
		Number:    42,
		Timestamp: "2026-03-10 12:30 UTC",
		URL:       "https://example.com/cat.png",
		Model:     "gemini-2.5-flash-image",
		Status:    catalog.StatusSuccess,
		Title:     "慶典貓",
	}, 0)

	assert.Equal(t,
		"Cat #  42  2026-03-10 12:30 UTC  慶典貓  model: gemini-2.5-flash-image\n"+
			"  URL: https://example.com/cat.png\n",
		buf.String())
}

func TestEntryFailed(t *testing.T) {
	var buf bytes.Buffer
	Entry(&buf, catalog.IndexEntry{
		Timestamp: "2026-03-10 12:30 UTC",
		Model:     "all failed",
		Status:    catalog.StatusFailed,
		Error:     "quota exhausted",
	}, 7)

	assert.Equal(t,
		"Cat #   7  [FAILED]  2026-03-10 12:30 UTC  error: quota exhausted\n",
		buf.String())
}

func TestEntryFailedWithoutNumber(t *testing.T) {
	var buf bytes.Buffer
	Entry(&buf, catalog.IndexEntry{
		Timestamp: "2026-03-10 12:30 UTC",
		Status:    catalog.StatusFailed,
	}, 0)

	assert.Contains(t, buf.String(), "Cat #   ?  [FAILED]")
	assert.Contains(t, buf.String(), "error: ?")
}

func TestListAlignsCJKTitles(t *testing.T) {
	var buf bytes.Buffer
	List(&buf, []catalog.IndexEntry{
		{Number: 1, Timestamp: "2026-03-10 10:30 UTC", URL: "u1", Model: "m", Title: "貓"},
		{Number: 2, Timestamp: "2026-03-10 11:30 UTC", URL: "u2", Model: "m", Title: "太空貓咪"},
	})

	// 貓 is two cells wide; it gets six trailing spaces to match 太空貓咪's
	// eight cells.
	assert.Contains(t, buf.String(), "貓        model: m")
	assert.Contains(t, buf.String(), "太空貓咪  model: m")
}

func TestDisplayWidth(t *testing.T) {
	assert.Equal(t, 3, displayWidth("cat"))
	assert.Equal(t, 8, displayWidth("太空貓咪"))
	assert.Equal(t, 7, displayWidth("cat 貓!"))
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	Summary(&buf, []catalog.IndexEntry{
		{Number: 1, Timestamp: "2026-03-10 11:30 UTC"},
		{Number: 2, Timestamp: "2026-03-10 12:30 UTC"},
	})

	assert.Contains(t, buf.String(), "Total cats: 2")
	assert.Contains(t, buf.String(), "Latest: #0002  2026-03-10 12:30 UTC")
	assert.Contains(t, buf.String(), "catime 2026-01-30T05")
}

func TestMatches(t *testing.T) {
	var buf bytes.Buffer
	Matches(&buf, "today", []catalog.IndexEntry{
		{Number: 3, Timestamp: "2026-03-10 12:30 UTC", URL: "u", Model: "m"},
	})

	assert.Contains(t, buf.String(), "Found 1 cat(s) for 'today':")
	assert.Contains(t, buf.String(), "Cat #   3")
}
