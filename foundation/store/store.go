// Package store persists analysis records as one JSON file per record.
// The schema is opaque to the store beyond the handful of fields needed
// for listing and hiding.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

type Store struct {
	dir    string
	logger *zap.SugaredLogger
}

// ListItem is the summary row returned for each saved record.
type ListItem struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	FileName  string `json:"fileName,omitempty"`
	Hidden    bool   `json:"hidden"`
}

func New(dir string, logger *zap.SugaredLogger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Save writes the record as pretty-printed JSON under <id>.json.
func (s *Store) Save(id string, record any) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Get returns the raw stored record.
func (s *Store) Get(id string) (json.RawMessage, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// List returns a summary of every record, newest first.
func (s *Store) List() ([]ListItem, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	items := make([]ListItem, 0, len(files))
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(s.dir, f.Name()))
		if err != nil {
			s.logger.Errorw("store: List", "file", f.Name(), "ERROR", err)
			continue
		}
		var item ListItem
		if err := json.Unmarshal(b, &item); err != nil {
			s.logger.Errorw("store: List", "file", f.Name(), "ERROR", err)
			continue
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt > items[j].CreatedAt })
	return items, nil
}

// SetHidden flips the hidden flag of a record in place, leaving every
// other field untouched.
func (s *Store) SetHidden(id string, hidden bool) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var record map[string]any
	if err := json.Unmarshal(b, &record); err != nil {
		return err
	}
	record["hidden"] = hidden

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

func (s *Store) Delete(id string) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// Clear deletes every record, collecting per-file errors rather than
// stopping at the first.
func (s *Store) Clear() []error {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return []error{err}
	}

	var errs []error
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, f.Name())); err != nil {
			errs = append(errs, fmt.Errorf("failed to delete %s: %w", f.Name(), err))
		}
	}
	return errs
}

// path rejects ids that would escape the data directory.
func (s *Store) path(id string) (string, error) {
	if id == "" || filepath.Base(id) != id || strings.HasPrefix(id, ".") {
		return "", fmt.Errorf("invalid record id %q", id)
	}
	return filepath.Join(s.dir, id+".json"), nil
}
