package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/yazelin/catime/pkg/errors"
)

var (
	dateHourRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[T ](\d{1,2})$`)
	dateOnlyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Filter resolves a time query against the index: "today", "yesterday",
// a date ("2026-01-30"), or a date plus hour ("2026-01-30T05" or
// "2026-01-30 5"). Unrecognized queries match nothing.
func Filter(entries []IndexEntry, query string, now time.Time) []IndexEntry {
	switch query {
	case "today":
		return filterPrefix(entries, DatePrefix(now))
	case "yesterday":
		return filterPrefix(entries, DatePrefix(now.AddDate(0, 0, -1)))
	}

	if m := dateHourRe.FindStringSubmatch(query); m != nil {
		hour := m[2]
		if len(hour) == 1 {
			hour = "0" + hour
		}
		return filterPrefix(entries, m[1]+" "+hour+":")
	}

	if dateOnlyRe.MatchString(query) {
		return filterPrefix(entries, query)
	}

	return nil
}

func filterPrefix(entries []IndexEntry, prefix string) []IndexEntry {
	var matched []IndexEntry
	for _, e := range entries {
		if strings.HasPrefix(e.Timestamp, prefix) {
			matched = append(matched, e)
		}
	}
	return matched
}

// ByOrdinal returns the entry at the 1-based position n.
func ByOrdinal(entries []IndexEntry, n int) (IndexEntry, error) {
	if n < 1 || n > len(entries) {
		return IndexEntry{}, errors.NewNotFoundError("cat", fmt.Sprintf("#%d (available: 1-%d)", n, len(entries)))
	}
	return entries[n-1], nil
}

// Latest returns the most recently appended entry.
func Latest(entries []IndexEntry) (IndexEntry, bool) {
	if len(entries) == 0 {
		return IndexEntry{}, false
	}
	return entries[len(entries)-1], true
}

// IsOrdinal reports whether the query is a plain positive number.
func IsOrdinal(query string) (int, bool) {
	n, err := strconv.Atoi(query)
	if err != nil || n < 1 {
		return 0, false
	}
	// Reject signed forms like "+5" that Atoi accepts.
	for _, r := range query {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	return n, true
}
