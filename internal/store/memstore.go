package store

import (
	"errors"
	"sort"
	"sync"
)

type memKey struct {
	statsPath string
	scheme    string
	run       int
}

// MemStore implements Store in memory. Safe for concurrent use.
type MemStore struct {
	mu   sync.Mutex
	data map[memKey]Resolution
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[memKey]Resolution)}
}

func (s *MemStore) GetResolution(statsPath, scheme string, run int) (*Resolution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.data[memKey{statsPath, scheme, run}]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *MemStore) SaveResolution(r *Resolution) error {
	if r == nil {
		return errors.New("resolution is nil")
	}
	cp := *r
	if cp.CreatedAt == "" {
		cp.CreatedAt = nowUTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[memKey{cp.StatsPath, cp.Scheme, cp.Run}] = cp
	return nil
}

func (s *MemStore) ListResolutions(statsPath, scheme string) ([]*Resolution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Resolution
	for k, r := range s.data {
		if k.statsPath == statsPath && k.scheme == scheme {
			cp := r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Run < out[j].Run })
	return out, nil
}

func (s *MemStore) Close() error { return nil }
