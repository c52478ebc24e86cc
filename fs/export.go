// Package fs exports stored extraction records as JSON files with
// atomic replace semantics: records are written to a temporary
// directory and moved into place on Commit, so readers never observe a
// half-written export.
package fs

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/webextract"
)

// ExportStore writes records under baseDir/name, staging them in
// baseDir/name.tmp until Commit.
type ExportStore struct {
	baseDir string
	name    string
}

// NewExportStore creates a new ExportStore. baseDir is the parent
// directory, name the export directory name.
func NewExportStore(baseDir, name string) *ExportStore {
	return &ExportStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *ExportStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *ExportStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save stages one record. The file path derives from the record's URL
// so re-exports of the same pages land on the same files.
func (s *ExportStore) Save(rec *webextract.Record) error {
	relPath, err := URLToPath(rec.Content.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, data, 0644)
}

// Commit atomically replaces the final directory with the staged one.
func (s *ExportStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the staged export.
func (s *ExportStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// URLToPath converts a page URL to a relative file path.
// Example: https://example.com/news/vote → example.com/news/vote.json
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := strings.TrimPrefix(u.Path, "/")
	switch {
	case path == "":
		path = "index"
	case strings.HasSuffix(path, "/"):
		path += "index"
	}

	host := u.Host
	if host == "" {
		host = "local"
	}
	return filepath.Join(host, path+".json"), nil
}
