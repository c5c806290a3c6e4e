package file

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"rp_market/internal/domain/entity"
)

type StateStore struct {
	path string
	mu   sync.Mutex
}

func NewStateStore(dir string) (*StateStore, error) {
	path := filepath.Join(dir, StateFileName)

	if err := ensureFile(path, entity.MarketState{}); err != nil {
		return nil, fmt.Errorf("ensureFile %s: %w", path, err)
	}

	return &StateStore{path: path}, nil
}

func (s *StateStore) Load(ctx context.Context) (entity.MarketState, error) {
	return s.load(ctx), nil
}

func (s *StateStore) load(ctx context.Context) entity.MarketState {
	state := entity.MarketState{}
	if !readDocument(ctx, s.path, &state) || state == nil {
		return entity.MarketState{}
	}

	return state
}

func (s *StateStore) Save(_ context.Context, state entity.MarketState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state == nil {
		state = entity.MarketState{}
	}

	if err := writeAtomic(s.path, state); err != nil {
		return fmt.Errorf("writeAtomic: %w", err)
	}

	return nil
}

// Put перечитывает документ под мьютексом, меняет один товар и пишет документ обратно.
func (s *StateStore) Put(ctx context.Context, itemID string, item entity.ItemState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load(ctx)
	state[itemID] = item

	if err := writeAtomic(s.path, state); err != nil {
		return fmt.Errorf("writeAtomic: %w", err)
	}

	return nil
}

func (s *StateStore) Ping(context.Context) error {
	return ping(s.path)
}
