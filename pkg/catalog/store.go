package catalog

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/yazelin/catime/pkg/errors"
)

// Store reads and writes the catalog files under a working directory.
// All files are UTF-8 JSON with two-space indentation and a trailing
// newline, matching what lives in the published repository.
type Store struct {
	dir string
}

// Open returns a store rooted at dir. The directory is not required to
// contain any catalog files yet.
func Open(dir string) *Store {
	if dir == "" {
		dir = "."
	}
	return &Store{dir: dir}
}

// Dir returns the store's working directory.
func (s *Store) Dir() string {
	return s.dir
}

// IndexPath returns the absolute path of catlist.json.
func (s *Store) IndexPath() string {
	return filepath.Join(s.dir, IndexFile)
}

// shardPath returns the path of a monthly shard, e.g. cats/2026-01.json.
func (s *Store) shardPath(month string) string {
	return filepath.Join(s.dir, ShardDir, month+".json")
}

// Index loads the master index. A missing file yields an empty index.
func (s *Store) Index() ([]IndexEntry, error) {
	var entries []IndexEntry
	if err := readJSON(s.IndexPath(), &entries); err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return entries, nil
}

// Month loads a monthly detail shard. Missing or unreadable shards yield
// an empty list; detail data never blocks index operations.
func (s *Store) Month(month string) []DetailEntry {
	var entries []DetailEntry
	if err := readJSON(s.shardPath(month), &entries); err != nil {
		return nil
	}
	return entries
}

// Notes loads the creative notes. Missing or corrupt files yield the
// zero value so a bad notes file never blocks generation.
func (s *Store) Notes() CreativeNotes {
	var notes CreativeNotes
	if err := readJSON(filepath.Join(s.dir, NotesFile), &notes); err != nil {
		return CreativeNotes{}
	}
	return notes
}

// SaveNotes overwrites the creative notes file.
func (s *Store) SaveNotes(notes CreativeNotes) error {
	return writeJSON(filepath.Join(s.dir, NotesFile), notes)
}

// NotesExist reports whether the creative notes file is present.
func (s *Store) NotesExist() bool {
	_, err := os.Stat(filepath.Join(s.dir, NotesFile))
	return err == nil
}

// HasSuccessForHour reports whether a successful entry already exists for
// now's UTC hour. This is the idempotency guard for overlapping runs.
func (s *Store) HasSuccessForHour(now time.Time) (bool, error) {
	entries, err := s.Index()
	if err != nil {
		return false, err
	}
	prefix := HourPrefix(now)
	for _, e := range entries {
		if e.Succeeded() && hasPrefix(e.Timestamp, prefix) {
			return true, nil
		}
	}
	return false, nil
}

// NextNumber returns the number the next entry should carry.
func (s *Store) NextNumber() (int, error) {
	entries, err := s.Index()
	if err != nil {
		return 0, err
	}
	return len(entries) + 1, nil
}

// Append splits rec into its index and detail portions, appends each to
// the right file, and returns the paths it touched relative to the store
// directory (for the subsequent commit).
func (s *Store) Append(rec Record) ([]string, error) {
	entries, err := s.Index()
	if err != nil {
		return nil, err
	}
	entries = append(entries, rec.Index())
	if err := writeJSON(s.IndexPath(), entries); err != nil {
		return nil, err
	}
	touched := []string{IndexFile}

	if !rec.HasDetail() {
		return touched, nil
	}

	month := MonthOf(rec.Timestamp)
	if err := os.MkdirAll(filepath.Join(s.dir, ShardDir), 0o755); err != nil {
		return touched, errors.WrapIO("create", ShardDir, err)
	}
	shard := append(s.Month(month), rec.Detail())
	if err := writeJSON(s.shardPath(month), shard); err != nil {
		return touched, err
	}
	touched = append(touched, filepath.Join(ShardDir, month+".json"))
	return touched, nil
}

// RecentDetails walks monthly shards newest-first and returns the last n
// detail entries that have prompts. Months are discovered from successful
// index timestamps, so shards never referenced by the index are ignored.
func (s *Store) RecentDetails(n int) ([]DetailEntry, error) {
	entries, err := s.Index()
	if err != nil {
		return nil, err
	}

	monthSet := map[string]bool{}
	for _, e := range entries {
		if e.Succeeded() {
			if m := MonthOf(e.Timestamp); m != "" {
				monthSet[m] = true
			}
		}
	}
	months := make([]string, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, m)
	}
	sort.Strings(months)

	var details []DetailEntry
	for i := len(months) - 1; i >= 0; i-- {
		details = append(s.Month(months[i]), details...)
		if countWithPrompt(details) >= n {
			break
		}
	}

	withPrompt := make([]DetailEntry, 0, n)
	for _, d := range details {
		if d.Prompt != "" {
			withPrompt = append(withPrompt, d)
		}
	}
	if len(withPrompt) > n {
		withPrompt = withPrompt[len(withPrompt)-n:]
	}
	return withPrompt, nil
}

func countWithPrompt(details []DetailEntry) int {
	count := 0
	for _, d := range details {
		if d.Prompt != "" {
			count++
		}
	}
	return count
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

// readJSON decodes a JSON file into v, mapping a missing file onto
// errors.ErrNotFound so callers can distinguish absence from corruption.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewNotFoundError("file", path)
		}
		return errors.WrapIO("read", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.WrapParse("json", path, err)
	}
	return nil
}

// writeJSON encodes v with two-space indentation, no HTML escaping (the
// catalog holds Chinese text and URLs), and a trailing newline.
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.WrapParse("json", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
