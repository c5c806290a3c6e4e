// Package memory — хранилища рынка в памяти процесса. Используются в тестах
// и при STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"sync"

	"rp_market/internal/domain/entity"
)

type StateStore struct {
	mu    sync.RWMutex
	state entity.MarketState
}

func NewStateStore() *StateStore {
	return &StateStore{state: entity.MarketState{}}
}

func (s *StateStore) Load(_ context.Context) (entity.MarketState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Clone(), nil
}

func (s *StateStore) Save(_ context.Context, state entity.MarketState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state.Clone()

	return nil
}

func (s *StateStore) Put(_ context.Context, itemID string, item entity.ItemState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state[itemID] = item

	return nil
}

func (s *StateStore) Ping(context.Context) error {
	return nil
}

type LedgerStore struct {
	mu  sync.RWMutex
	txs []entity.Transaction
	ids map[string]struct{}
}

func NewLedgerStore() *LedgerStore {
	return &LedgerStore{ids: make(map[string]struct{})}
}

func (s *LedgerStore) Load(_ context.Context) ([]entity.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]entity.Transaction{}, s.txs...), nil
}

// Append добавляет сделку; повторная запись с тем же id игнорируется.
func (s *LedgerStore) Append(_ context.Context, tx entity.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[tx.ID]; ok {
		return nil
	}

	s.ids[tx.ID] = struct{}{}
	s.txs = append(s.txs, tx)

	return nil
}

func (s *LedgerStore) Recent(_ context.Context, n int) ([]entity.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 {
		return []entity.Transaction{}, nil
	}

	start := max(len(s.txs)-n, 0)

	return append([]entity.Transaction{}, s.txs[start:]...), nil
}

func (s *LedgerStore) Ping(context.Context) error {
	return nil
}
