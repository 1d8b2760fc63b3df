package rules

import (
	"log/slog"
	"sync"
)

// Store owns the rule set lifecycle: load once, serve an immutable compiled
// snapshot to every caller, reload on demand. A failed file load falls back
// to the built-in defaults so classification always has a working rule set.
type Store struct {
	current *Compiled
	loadErr error
	path    string
	mu      sync.RWMutex
}

// NewStore creates a store that reads the YAML rules file at path, or
// serves the built-in defaults when path is empty. Nothing is loaded until
// the first Get or Reload.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Get returns the active compiled rule set, loading it on first use.
// Concurrent first callers share a single load. Get never fails: when the
// configured file cannot be loaded the built-in defaults are served and the
// error is kept for LoadError.
func (s *Store) Get() *Compiled {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()
	if current != nil {
		return current
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		s.load()
	}
	return s.current
}

// Reload discards the cached rule set and loads fresh. The returned error
// reports a failed file load; the store serves defaults in that case.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return s.loadErr
}

// LoadError returns the error from the most recent load, or nil if the
// active rule set loaded cleanly.
func (s *Store) LoadError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// load populates s.current. Callers must hold s.mu.
func (s *Store) load() {
	s.loadErr = nil

	if s.path == "" {
		s.current = Compile(DefaultSet())
		return
	}

	set, err := LoadFile(s.path)
	if err != nil {
		slog.Warn("falling back to built-in rules", "path", s.path, "error", err)
		s.loadErr = err
		s.current = Compile(DefaultSet())
		return
	}

	slog.Debug("loaded rules file", "path", s.path, "types", len(set.Types))
	s.current = Compile(set)
}
