// Package fetch downloads the published catalog index from the repository's
// main branch on raw.githubusercontent.com.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/yazelin/catime/pkg/catalog"
	"github.com/yazelin/catime/pkg/errors"
)

const catlistURL = "https://raw.githubusercontent.com/%s/main/" + catalog.IndexFile

// Client fetches the remote catalog index.
type Client struct {
	http *http.Client
}

// NewClient creates a fetch client with a request timeout.
func NewClient() *Client {
	return &Client{
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// Catlist downloads and decodes the index for an "owner/name" repository.
func (c *Client) Catlist(ctx context.Context, repo string) ([]catalog.IndexEntry, error) {
	return c.catlistFrom(ctx, fmt.Sprintf(catlistURL, repo))
}

func (c *Client) catlistFrom(ctx context.Context, url string) ([]catalog.IndexEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapIO("fetch", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.WrapIO("fetch", url, fmt.Errorf("unexpected status %s", resp.Status))
	}

	var entries []catalog.IndexEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, errors.WrapParse("json", url, err)
	}
	return entries, nil
}
