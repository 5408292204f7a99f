package gamedb

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glaze-tools/glaze/internal/fsutil"
	"github.com/glaze-tools/glaze/internal/messages"
)

// ErrCorruptStore marks a store file that exists but cannot be parsed.
// Callers should treat this as fatal for the run rather than silently
// discarding user history.
var ErrCorruptStore = errors.New("corrupt game store")

// Store is a durable Identity → Record map backed by one JSON document.
// Every mutation rewrites the whole document via an atomic replace, so a
// crash between calls never loses more than the in-flight update and a
// concurrent reader never observes a half-written file.
type Store struct {
	path string
}

// Open returns a Store at path. The file does not need to exist yet; first
// run is not an error.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New(messages.StorePathRequired)
	}
	return &Store{path: path}, nil
}

// Path returns the store's file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns all records, or an empty map when no store file exists.
func (s *Store) Load() (map[Identity]Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[Identity]Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf(messages.StoreReadFailedFmt, s.path, err)
	}
	records := map[Identity]Record{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf(messages.StoreCorruptFmt, ErrCorruptStore, s.path, err)
	}
	return records, nil
}

// Get returns the record for id and whether it exists.
func (s *Store) Get(id Identity) (Record, bool, error) {
	records, err := s.Load()
	if err != nil {
		return Record{}, false, err
	}
	record, ok := records[id]
	return record, ok, nil
}

// Upsert inserts or replaces one record and persists immediately.
func (s *Store) Upsert(id Identity, record Record) error {
	if id == "" {
		return errors.New(messages.StoreIdentityRequired)
	}
	records, err := s.Load()
	if err != nil {
		return err
	}
	records[id] = record
	return s.save(records)
}

// Remove deletes the record for id. Removing an identity that was never
// recorded is a no-op, so uninstall stays idempotent.
func (s *Store) Remove(id Identity) error {
	records, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := records[id]; !ok {
		return nil
	}
	delete(records, id)
	return s.save(records)
}

func (s *Store) save(records map[Identity]Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf(messages.StoreEncodeFailedFmt, s.path, err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf(messages.StoreCreateDirFmt, filepath.Dir(s.path), err)
	}
	if err := fsutil.WriteFileAtomic(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf(messages.StoreWriteFailedFmt, s.path, err)
	}
	return nil
}
