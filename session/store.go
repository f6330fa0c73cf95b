package session

import "sync"

// MapStore is an in-memory Store for tests and the dev CLI.
type MapStore struct {
	mu sync.Mutex
	m  map[string]string
}

func NewMapStore() *MapStore {
	return &MapStore{m: make(map[string]string)}
}

func (s *MapStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok
}

func (s *MapStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
}

func (s *MapStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
}
