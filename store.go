package godeco

import (
	"errors"
	"fmt"
	"sync"
)

// Store caches the components of one lifetime boundary (the root, or a scope) and keeps
// track of the ones it has to close.
type Store struct {
	inner sync.Map

	mu         sync.Mutex
	closeables []Closeable
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Put(reg *Registration, comp any) {
	s.inner.Store(reg, comp)
}

func (s *Store) Get(reg *Registration) (comp any, found bool) {
	return s.inner.Load(reg)
}

// Track records comp to be closed with the store, if it is a Closeable.
func (s *Store) Track(comp any) {
	closeable, ok := comp.(Closeable)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeables = append(s.closeables, closeable)
}

// Close closes tracked components, most recent first.
func (s *Store) Close() error {
	s.mu.Lock()
	closeables := s.closeables
	s.closeables = nil
	s.mu.Unlock()

	closeErrors := make([]error, 0)
	for i := len(closeables) - 1; i >= 0; i-- {
		if err := closeables[i].Close(); err != nil {
			closeErrors = append(
				closeErrors,
				fmt.Errorf("failed to close component %T:\n\t%w", closeables[i], err),
			)
		}
	}
	s.inner.Clear()

	return errors.Join(closeErrors...)
}
