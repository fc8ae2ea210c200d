// Package format renders catalog entries for the terminal. Titles are
// mostly Chinese, so column alignment accounts for double-width runes.
package format

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/width"

	"github.com/yazelin/catime/pkg/catalog"
)

// Entry prints a single cat. fallback supplies the display number for
// entries recorded without one (failed runs and pre-numbering entries).
func Entry(w io.Writer, e catalog.IndexEntry, fallback int) {
	entry(w, e, fallback, 0)
}

func entry(w io.Writer, e catalog.IndexEntry, fallback, titleWidth int) {
	num := e.Number
	if num == 0 {
		num = fallback
	}

	if !e.Succeeded() {
		label := "?"
		if num > 0 {
			label = strconv.Itoa(num)
		}
		errText := e.Error
		if errText == "" {
			errText = "?"
		}
		fmt.Fprintf(w, "Cat #%4s  [FAILED]  %s  error: %s\n", label, e.Timestamp, errText)
		return
	}

	model := e.Model
	if model == "" {
		model = "?"
	}
	fmt.Fprintf(w, "Cat #%4d  %s", num, e.Timestamp)
	if titleWidth > 0 {
		fmt.Fprintf(w, "  %s", pad(e.Title, titleWidth))
	} else if e.Title != "" {
		fmt.Fprintf(w, "  %s", e.Title)
	}
	fmt.Fprintf(w, "  model: %s\n", model)
	fmt.Fprintf(w, "  URL: %s\n", e.URL)
}

// List prints every cat with titles aligned into one column.
func List(w io.Writer, entries []catalog.IndexEntry) {
	titleWidth := 0
	for _, e := range entries {
		if d := displayWidth(e.Title); d > titleWidth {
			titleWidth = d
		}
	}
	for i, e := range entries {
		entry(w, e, i+1, titleWidth)
	}
}

// Summary prints the catalog overview and usage hints shown when the CLI
// runs without a query.
func Summary(w io.Writer, entries []catalog.IndexEntry) {
	fmt.Fprintf(w, "Total cats: %d\n", len(entries))
	fmt.Fprintf(w, "Latest: #%04d  %s\n", len(entries), entries[len(entries)-1].Timestamp)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  catime 42              View cat #42")
	fmt.Fprintln(w, "  catime today           List today's cats")
	fmt.Fprintln(w, "  catime yesterday       List yesterday's cats")
	fmt.Fprintln(w, "  catime 2026-01-30      List all cats from a date")
	fmt.Fprintln(w, "  catime 2026-01-30T05   View the cat from a specific hour")
	fmt.Fprintln(w, "  catime latest          View the latest cat")
	fmt.Fprintln(w, "  catime --list          List all cats")
	fmt.Fprintln(w, "  catime view            Open cat gallery in browser")
}

// Matches prints the entries matching a time query.
func Matches(w io.Writer, query string, entries []catalog.IndexEntry) {
	fmt.Fprintf(w, "Found %d cat(s) for '%s':\n\n", len(entries), query)
	for _, e := range entries {
		Entry(w, e, 0)
		fmt.Fprintln(w)
	}
}

// displayWidth returns the terminal cell width of s, counting East Asian
// wide and fullwidth runes as two cells.
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			w += 2
		default:
			w++
		}
	}
	return w
}

// pad right-pads s with spaces to the given display width.
func pad(s string, w int) string {
	for d := displayWidth(s); d < w; d++ {
		s += " "
	}
	return s
}
