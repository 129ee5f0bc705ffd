package memo

import (
	"sync"

	"github.com/bnema/balanceline/internal/domain"
	"github.com/bnema/balanceline/internal/ports"
)

// Store remembers balances resolved during this process. It is owned by a
// single resolver and never shared across processes.
type Store struct {
	mu      sync.RWMutex
	entries map[domain.CacheKey]domain.BalanceData
}

var _ ports.BalanceMemo = (*Store)(nil)

func NewStore() *Store {
	return &Store{entries: make(map[domain.CacheKey]domain.BalanceData)}
}

func (s *Store) Get(key domain.CacheKey) (domain.BalanceData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.entries[key]
	return data, ok
}

func (s *Store) Set(key domain.CacheKey, data domain.BalanceData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = data
}
