// Package jsonfile persists the three memory documents as JSON files
// in one directory, mirroring their in-memory shapes field for field.
//
// Every save writes a complete snapshot to a temp file and renames it
// over the previous one, so a reader never observes a torn document
// and the latest complete write always wins.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/recallhq/recall-go-sdk/memory"
)

// Document file names inside the store directory.
const (
	shortTermFile = "short_term_memory.json"
	workingFile   = "working_memory.json"
	longTermFile  = "long_term_memory.json"
)

// Store is the JSON-file Store implementation.
type Store struct {
	dir string
}

// New creates the store directory if needed and returns a Store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create memory dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the documents live in.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) LoadShortTerm() ([]memory.MemoryEntry, error) {
	var entries []memory.MemoryEntry
	ok, err := s.load(shortTermFile, &entries)
	if err != nil || !ok {
		return nil, err
	}
	return entries, nil
}

func (s *Store) SaveShortTerm(entries []memory.MemoryEntry) error {
	return s.save(shortTermFile, entries)
}

func (s *Store) LoadWorking() (*memory.WorkingMemory, error) {
	var wm memory.WorkingMemory
	ok, err := s.load(workingFile, &wm)
	if err != nil || !ok {
		return nil, err
	}
	return &wm, nil
}

func (s *Store) SaveWorking(wm memory.WorkingMemory) error {
	return s.save(workingFile, wm)
}

func (s *Store) LoadProfile() (*memory.LongTermProfile, error) {
	var profile memory.LongTermProfile
	ok, err := s.load(longTermFile, &profile)
	if err != nil || !ok {
		return nil, err
	}
	return &profile, nil
}

func (s *Store) SaveProfile(profile memory.LongTermProfile) error {
	return s.save(longTermFile, profile)
}

// load reads a document into v. Returns ok=false when the document
// does not exist yet.
func (s *Store) load(name string, v interface{}) (bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", name, err)
	}
	return true, nil
}

// save writes a complete snapshot next to the document and renames it
// into place.
func (s *Store) save(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
