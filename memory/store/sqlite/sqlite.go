// Package sqlite persists the memory documents in a single SQLite
// database. Each save inserts a full snapshot row keyed by document
// name and a ULID; loads read the latest snapshot, which gives
// last-write-wins semantics plus a retained history of past states.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/recallhq/recall-go-sdk/memory"
)

// Document names in the snapshots table.
const (
	docShortTerm = "short_term_memory"
	docWorking   = "working_memory"
	docLongTerm  = "long_term_memory"
)

// Store is the SQLite Store implementation.
type Store struct {
	db      *sql.DB
	entropy io.Reader
}

// New opens or creates a SQLite database at the given path.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Monotonic entropy keeps IDs ordered even within one millisecond,
	// so the latest-snapshot query never picks a stale row.
	s := &Store{
		db:      db,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id         TEXT PRIMARY KEY,
		doc        TEXT NOT NULL,
		body       TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_snapshots_doc ON snapshots(doc, id DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *Store) LoadShortTerm() ([]memory.MemoryEntry, error) {
	var entries []memory.MemoryEntry
	ok, err := s.load(docShortTerm, &entries)
	if err != nil || !ok {
		return nil, err
	}
	return entries, nil
}

func (s *Store) SaveShortTerm(entries []memory.MemoryEntry) error {
	return s.save(docShortTerm, entries)
}

func (s *Store) LoadWorking() (*memory.WorkingMemory, error) {
	var wm memory.WorkingMemory
	ok, err := s.load(docWorking, &wm)
	if err != nil || !ok {
		return nil, err
	}
	return &wm, nil
}

func (s *Store) SaveWorking(wm memory.WorkingMemory) error {
	return s.save(docWorking, wm)
}

func (s *Store) LoadProfile() (*memory.LongTermProfile, error) {
	var profile memory.LongTermProfile
	ok, err := s.load(docLongTerm, &profile)
	if err != nil || !ok {
		return nil, err
	}
	return &profile, nil
}

func (s *Store) SaveProfile(profile memory.LongTermProfile) error {
	return s.save(docLongTerm, profile)
}

// load reads the latest snapshot of a document into v. ULIDs sort
// lexicographically by creation time, so max(id) is the newest row.
func (s *Store) load(doc string, v interface{}) (bool, error) {
	var body string
	err := s.db.QueryRow(
		`SELECT body FROM snapshots WHERE doc = ? ORDER BY id DESC LIMIT 1`, doc,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", doc, err)
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return false, fmt.Errorf("decode %s: %w", doc, err)
	}
	return true, nil
}

// save inserts a complete snapshot row. The insert is atomic, so a
// concurrent reader sees either the previous snapshot or this one.
func (s *Store) save(doc string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", doc, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO snapshots (id, doc, body, created_at) VALUES (?, ?, ?, ?)`,
		s.newID(), doc, string(body), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", doc, err)
	}
	return nil
}
