package api

import "sync"

// inFlightSet tracks the (method, path) keys of requests currently on the
// wire. A second identical request started before the first settles is
// suppressed instead of being sent. Entries are removed unconditionally when
// the original request settles, success or failure, so a key can never stay
// wedged.
type inFlightSet struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newInFlightSet() *inFlightSet {
	return &inFlightSet{keys: make(map[string]struct{})}
}

// tryAdd inserts the key and returns true, or returns false when the key is
// already present.
func (s *inFlightSet) tryAdd(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keys[key]; ok {
		return false
	}
	s.keys[key] = struct{}{}
	return true
}

func (s *inFlightSet) remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, key)
}

func (s *inFlightSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}
