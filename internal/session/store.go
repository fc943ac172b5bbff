package session

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/canvastile/canvastile/internal/grid"
	"github.com/canvastile/canvastile/internal/runtimepath"
)

// Store persists the session record as JSON. Grid state read-modify-write is
// not atomic across the persistence round trip, so every mutation goes
// through Update, which serializes load-mutate-save under a single
// in-process lock.
type Store struct {
	path string
	mu   sync.Mutex

	// defaults applied when no record exists yet
	defaultConfig grid.Config
}

// NewStore creates a store at an explicit path.
func NewStore(path string, defaultConfig grid.Config) *Store {
	return &Store{path: path, defaultConfig: defaultConfig}
}

// DefaultStore creates a store at the standard runtime location.
func DefaultStore(defaultConfig grid.Config) (*Store, error) {
	path, err := runtimepath.SessionPath()
	if err != nil {
		return nil, err
	}
	return NewStore(path, defaultConfig), nil
}

// Load reads the session record, returning a fresh record when none has
// been persisted yet.
func (s *Store) Load() (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save writes the session record.
func (s *Store) Save(rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(rec)
}

// Update loads the record, applies fn, and saves the result. If fn returns
// an error nothing is written.
func (s *Store) Update(fn func(*Record) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(rec); err != nil {
		return err
	}
	return s.save(rec)
}

func (s *Store) load() (*Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewRecord(0, s.defaultConfig), nil
		}
		return nil, fmt.Errorf("failed to read session record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse session record: %w", err)
	}
	if rec.Canvases == nil {
		rec.Canvases = make(map[string]CanvasInfo)
	}
	if rec.Grid.Config.Rows == 0 || rec.Grid.Config.Cols == 0 {
		rec.Grid = grid.NewState(rec.Desktop, s.defaultConfig)
	}
	return &rec, nil
}

func (s *Store) save(rec *Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session record: %w", err)
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write session record: %w", err)
	}
	return nil
}
