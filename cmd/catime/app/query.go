package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/yazelin/catime/internal/fetch"
	"github.com/yazelin/catime/internal/format"
	"github.com/yazelin/catime/pkg/catalog"
)

// runQuery resolves a query against the catalog and prints the result.
// The query grammar: a cat number, "latest", "today", "yesterday", a date
// ("2026-01-30"), or a date plus hour ("2026-01-30T05").
func (a *App) runQuery(ctx context.Context, w io.Writer, query string) error {
	entries, err := a.loadEntries(ctx)
	if err != nil {
		return fmt.Errorf("loading cat list: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No cats yet! Check back in an hour.")
		return nil
	}

	if a.config.List {
		format.List(w, entries)
		return nil
	}

	if query == "" {
		format.Summary(w, entries)
		return nil
	}

	if query == "latest" {
		latest, _ := catalog.Latest(entries)
		format.Entry(w, latest, len(entries))
		return nil
	}

	if n, ok := catalog.IsOrdinal(query); ok {
		entry, err := catalog.ByOrdinal(entries, n)
		if err != nil {
			return err
		}
		format.Entry(w, entry, n)
		return nil
	}

	matched := catalog.Filter(entries, query, time.Now().UTC())
	if len(matched) == 0 {
		return fmt.Errorf("no cats found for %q", query)
	}
	format.Matches(w, query, matched)
	return nil
}

// loadEntries reads the index from the local working copy or the
// published catalog, depending on the --local flag.
func (a *App) loadEntries(ctx context.Context) ([]catalog.IndexEntry, error) {
	if a.config.Local {
		return catalog.Open(a.config.CatalogDir).Index()
	}
	return fetch.NewClient().Catlist(ctx, a.config.Repo)
}
