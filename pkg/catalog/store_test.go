package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)
	return parsed.UTC()
}

func successRecord(number int, timestamp string) Record {
	return Record{
		Number:    number,
		Timestamp: timestamp,
		URL:       "https://github.com/yazelin/catime/releases/download/cats/cat.png",
		Model:     "gemini-2.5-flash-image",
		Status:    StatusSuccess,
		Title:     "晨光裡的守望",
		Prompt:    "a cat watching the sunrise from a lighthouse gallery",
		Story:     "一隻貓在燈塔上等待日出。",
		Idea:      "燈塔上的貓，日出時分",
	}
}

func TestStoreEmptyDir(t *testing.T) {
	s := Open(t.TempDir())

	entries, err := s.Index()
	require.NoError(t, err)
	assert.Empty(t, entries)

	n, err := s.NextNumber()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	ok, err := s.HasSuccessForHour(time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Empty(t, s.Notes().AvoidList)
	assert.False(t, s.NotesExist())
}

func TestAppendRoutesIndexAndDetail(t *testing.T) {
	s := Open(t.TempDir())

	touched, err := s.Append(successRecord(1, "2026-01-30 05:04 UTC"))
	require.NoError(t, err)
	assert.Equal(t, []string{"catlist.json", filepath.Join("cats", "2026-01.json")}, touched)

	entries, err := s.Index()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Number)
	assert.Equal(t, "晨光裡的守望", entries[0].Title)
	// Detail fields must not leak into the index.
	data, err := os.ReadFile(s.IndexPath())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "prompt")
	assert.NotContains(t, string(data), "avoid_list")

	details := s.Month("2026-01")
	require.Len(t, details, 1)
	assert.Equal(t, 1, details[0].Number)
	assert.Equal(t, "一隻貓在燈塔上等待日出。", details[0].Story)
}

func TestAppendFailedEntrySkipsShard(t *testing.T) {
	s := Open(t.TempDir())

	touched, err := s.Append(Record{
		Timestamp: "2026-01-30 05:04 UTC",
		Model:     "all failed",
		Status:    StatusFailed,
		Error:     "image generation failed",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"catlist.json"}, touched)

	assert.Empty(t, s.Month("2026-01"))

	entries, err := s.Index()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Succeeded())
	assert.Zero(t, entries[0].Number)
}

func TestNumbersIncreaseByOnePerRun(t *testing.T) {
	s := Open(t.TempDir())

	for i := 1; i <= 5; i++ {
		n, err := s.NextNumber()
		require.NoError(t, err)
		assert.Equal(t, i, n)

		ts := FormatTimestamp(testTime(t, "2026-01-30 00:04").Add(time.Duration(i) * time.Hour))
		_, err = s.Append(successRecord(n, ts))
		require.NoError(t, err)
	}

	entries, err := s.Index()
	require.NoError(t, err)
	require.Len(t, entries, 5)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Number, "numbers must be strictly increasing")
	}
}

func TestHasSuccessForHour(t *testing.T) {
	s := Open(t.TempDir())
	now := testTime(t, "2026-01-30 05:42")

	_, err := s.Append(successRecord(1, "2026-01-30 05:04 UTC"))
	require.NoError(t, err)

	ok, err := s.HasSuccessForHour(now)
	require.NoError(t, err)
	assert.True(t, ok, "successful entry in the same hour must be detected")

	ok, err = s.HasSuccessForHour(testTime(t, "2026-01-30 06:01"))
	require.NoError(t, err)
	assert.False(t, ok, "next hour must not match")
}

func TestHasSuccessForHourIgnoresFailures(t *testing.T) {
	s := Open(t.TempDir())
	now := testTime(t, "2026-01-30 05:42")

	_, err := s.Append(Record{Timestamp: "2026-01-30 05:04 UTC", Status: StatusFailed, Error: "boom"})
	require.NoError(t, err)

	ok, err := s.HasSuccessForHour(now)
	require.NoError(t, err)
	assert.False(t, ok, "failed entries must not satisfy the hour guard")
}

func TestIndexRoundTrip(t *testing.T) {
	s := Open(t.TempDir())
	rec := successRecord(1, "2026-01-30 05:04 UTC")
	rec.Inspiration = "original"
	rec.NewsInspiration = []string{"東京的貓咪咖啡廳開幕了"}
	rec.AvoidList = []string{"生物發光森林"}
	rec.StylePicks = map[string]string{"art_style": "watercolor"}
	rec.CommentID = 123456

	_, err := s.Append(rec)
	require.NoError(t, err)

	entries, err := s.Index()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, rec.Index(), entries[0])

	details := s.Month("2026-01")
	require.Len(t, details, 1)
	assert.Equal(t, rec.Detail(), details[0])

	// Chinese text must survive the round trip unescaped.
	data, err := os.ReadFile(filepath.Join(s.Dir(), ShardDir, "2026-01.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "晨光裡的守望")
	assert.True(t, strings.HasSuffix(string(data), "\n"), "catalog files end with a newline")
}

func TestNotesRoundTrip(t *testing.T) {
	s := Open(t.TempDir())

	notes := CreativeNotes{
		AvoidList: []string{"貓凝望月亮", "宇宙空靈光芒"},
		UpdatedAt: "2026-01-30 05:04 UTC",
	}
	require.NoError(t, s.SaveNotes(notes))
	assert.True(t, s.NotesExist())
	assert.Equal(t, notes, s.Notes())
}

func TestNotesCorruptFileYieldsZero(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, NotesFile), []byte("{not json"), 0o644))

	notes := Open(dir).Notes()
	assert.Empty(t, notes.AvoidList)
	assert.Empty(t, notes.UpdatedAt)
}

func TestRecentDetailsWalksMonthsNewestFirst(t *testing.T) {
	s := Open(t.TempDir())

	// Eight cats in January, four in February.
	for i := 1; i <= 8; i++ {
		ts := FormatTimestamp(testTime(t, "2026-01-30 00:04").Add(time.Duration(i) * time.Hour))
		_, err := s.Append(successRecord(i, ts))
		require.NoError(t, err)
	}
	for i := 9; i <= 12; i++ {
		ts := FormatTimestamp(testTime(t, "2026-02-01 00:04").Add(time.Duration(i) * time.Hour))
		_, err := s.Append(successRecord(i, ts))
		require.NoError(t, err)
	}

	recent, err := s.RecentDetails(10)
	require.NoError(t, err)
	require.Len(t, recent, 10)
	assert.Equal(t, 3, recent[0].Number, "oldest of the window")
	assert.Equal(t, 12, recent[9].Number, "newest last")
}

func TestRecentDetailsSkipsPromptlessEntries(t *testing.T) {
	s := Open(t.TempDir())

	rec := successRecord(1, "2026-01-30 05:04 UTC")
	rec.Prompt = ""
	_, err := s.Append(rec)
	require.NoError(t, err)

	_, err = s.Append(successRecord(2, "2026-01-30 06:04 UTC"))
	require.NoError(t, err)

	recent, err := s.RecentDetails(10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, 2, recent[0].Number)
}
