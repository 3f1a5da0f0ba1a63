package config

import "sync/atomic"

// Store holds the current configuration. Readers always see a complete
// Config; reloads swap the pointer.
type Store struct {
	p atomic.Pointer[Config]
}

// NewStore creates a Store with the initial configuration.
func NewStore(cfg *Config) *Store {
	s := &Store{}
	s.p.Store(cfg)
	return s
}

// Current returns the current configuration.
func (s *Store) Current() *Config {
	return s.p.Load()
}

// Update replaces the current configuration.
func (s *Store) Update(cfg *Config) {
	if cfg != nil {
		s.p.Store(cfg)
	}
}
