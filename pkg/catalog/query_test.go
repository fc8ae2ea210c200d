package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryFixture() []IndexEntry {
	return []IndexEntry{
		{Number: 1, Timestamp: "2026-01-29 04:04 UTC", Status: StatusSuccess},
		{Number: 2, Timestamp: "2026-01-29 23:05 UTC", Status: StatusSuccess},
		{Number: 3, Timestamp: "2026-01-30 05:04 UTC", Status: StatusSuccess},
		{Number: 4, Timestamp: "2026-01-30 06:02 UTC", Status: StatusSuccess},
		{Timestamp: "2026-01-30 07:01 UTC", Status: StatusFailed, Error: "boom"},
		{Number: 5, Timestamp: "2026-01-30 08:03 UTC", Status: StatusSuccess},
	}
}

func TestFilter(t *testing.T) {
	now, err := time.Parse("2006-01-02 15:04", "2026-01-30 12:00")
	require.NoError(t, err)

	tests := []struct {
		name    string
		query   string
		numbers []int
	}{
		{"date only", "2026-01-29", []int{1, 2}},
		{"today", "today", []int{3, 4, 0, 5}},
		{"yesterday", "yesterday", []int{1, 2}},
		{"date plus hour", "2026-01-30T05", []int{3}},
		{"date plus hour with space", "2026-01-30 5", []int{3}},
		{"zero padded hour", "2026-01-30T06", []int{4}},
		{"hour with no match", "2026-01-30T23", nil},
		{"garbage", "next tuesday", nil},
		{"date with wrong separator", "2026/01/30", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched := Filter(queryFixture(), tt.query, now)
			var numbers []int
			for _, e := range matched {
				numbers = append(numbers, e.Number)
			}
			assert.Equal(t, tt.numbers, numbers)
		})
	}
}

func TestFilterReturnsExactPrefixMatches(t *testing.T) {
	now := time.Now().UTC()
	entries := queryFixture()

	matched := Filter(entries, "2026-01-30", now)
	for _, e := range matched {
		assert.True(t, len(e.Timestamp) >= 10 && e.Timestamp[:10] == "2026-01-30")
	}
	assert.Len(t, matched, 4)
}

func TestByOrdinal(t *testing.T) {
	entries := queryFixture()

	e, err := ByOrdinal(entries, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, e.Number)

	_, err = ByOrdinal(entries, 0)
	assert.Error(t, err)

	_, err = ByOrdinal(entries, len(entries)+1)
	assert.Error(t, err)
}

func TestLatest(t *testing.T) {
	e, ok := Latest(queryFixture())
	require.True(t, ok)
	assert.Equal(t, 5, e.Number)

	_, ok = Latest(nil)
	assert.False(t, ok)
}

func TestIsOrdinal(t *testing.T) {
	tests := []struct {
		query string
		n     int
		ok    bool
	}{
		{"42", 42, true},
		{"1", 1, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"+5", 0, false},
		{"2026-01-30", 0, false},
		{"latest", 0, false},
	}

	for _, tt := range tests {
		n, ok := IsOrdinal(tt.query)
		assert.Equal(t, tt.ok, ok, "query %q", tt.query)
		assert.Equal(t, tt.n, n, "query %q", tt.query)
	}
}

func TestTimestampHelpers(t *testing.T) {
	ts, err := time.Parse(time.RFC3339, "2026-01-30T05:04:59Z")
	require.NoError(t, err)

	assert.Equal(t, "2026-01-30 05:04 UTC", FormatTimestamp(ts))
	assert.Equal(t, "2026-01-30 05:", HourPrefix(ts))
	assert.Equal(t, "2026-01-30", DatePrefix(ts))
	assert.Equal(t, "2026-01", MonthOf("2026-01-30 05:04 UTC"))
	assert.Equal(t, "", MonthOf("short"))
}
