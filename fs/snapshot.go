// Package fs provides file-based page snapshots for debugging scrapes.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/tomtejakt"
)

// Ensure SnapshotFetcher implements tomtejakt.Fetcher at compile time.
var _ tomtejakt.Fetcher = (*SnapshotFetcher)(nil)

// SnapshotFetcher wraps a Fetcher and writes every fetched page to a
// directory. Finn markup changes without notice; snapshots make a broken
// extraction reproducible after the fact.
type SnapshotFetcher struct {
	next    tomtejakt.Fetcher
	baseDir string
}

// NewSnapshotFetcher creates a new SnapshotFetcher writing to baseDir.
func NewSnapshotFetcher(next tomtejakt.Fetcher, baseDir string) *SnapshotFetcher {
	return &SnapshotFetcher{next: next, baseDir: baseDir}
}

// Fetch delegates to the wrapped fetcher and saves the page on success.
// A snapshot write failure is not a fetch failure; the page is returned
// either way.
func (f *SnapshotFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	html, err := f.next.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}

	relPath, pathErr := URLToPath(rawURL)
	if pathErr != nil {
		return html, nil
	}

	fullPath := filepath.Join(f.baseDir, relPath)
	if mkErr := os.MkdirAll(filepath.Dir(fullPath), 0755); mkErr != nil {
		return html, nil
	}
	_ = os.WriteFile(fullPath, []byte(html), 0644)

	return html, nil
}

// Close delegates to the wrapped fetcher.
func (f *SnapshotFetcher) Close() error {
	return f.next.Close()
}

// URLToPath converts a finn URL to a relative snapshot path. Query
// parameters distinguish pages of the same endpoint, so they become part
// of the filename.
// Example: https://www.finn.no/realestate/plots/search.html?location=1.22.20003&page=2
// → realestate/plots/search.html_location=1.22.20003_page=2.html
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := strings.TrimPrefix(u.Path, "/")
	if path == "" || strings.HasSuffix(path, "/") {
		path += "index"
	}

	if u.RawQuery != "" {
		path += "_" + sanitize(u.RawQuery)
	}
	if !strings.HasSuffix(path, ".html") {
		path += ".html"
	}

	return path, nil
}

// sanitize replaces filesystem-hostile characters in a query string.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '&':
			return '_'
		case '/', '\\', ':', '?', '*', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, s)
}
