package server

import (
	"errors"
	"sync"

	"rothermal/runner"
)

var ErrNoCatalog = errors.New("no catalog built yet")

// BuildFunc produces a fresh catalog, runner.Run bound to a config.
type BuildFunc func() (*runner.Catalog, error)

// Store holds the catalog served to clients. Rebuild swaps it atomically;
// readers always see a complete catalog.
type Store struct {
	mu      sync.RWMutex
	catalog *runner.Catalog
	build   BuildFunc

	// serialises rebuilds
	buildMu sync.Mutex
}

func NewStore(catalog *runner.Catalog, build BuildFunc) *Store {
	return &Store{catalog: catalog, build: build}
}

func (s *Store) Catalog() (*runner.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.catalog == nil {
		return nil, ErrNoCatalog
	}
	return s.catalog, nil
}

// Rebuild runs the build function and replaces the catalog on success. A
// failed build keeps the previous catalog.
func (s *Store) Rebuild() (*runner.Catalog, error) {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()
	if s.build == nil {
		return nil, errors.New("rebuild not configured")
	}
	cat, err := s.build()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.catalog = cat
	s.mu.Unlock()
	return cat, nil
}
