package file

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/samber/lo"

	"rp_market/internal/domain/entity"
)

// LedgerStore хранит журнал массивом в ledger.json. Каждое добавление
// переписывает файл целиком.
type LedgerStore struct {
	path string
	mu   sync.Mutex
}

func NewLedgerStore(dir string) (*LedgerStore, error) {
	path := filepath.Join(dir, LedgerFileName)

	if err := ensureFile(path, []entity.Transaction{}); err != nil {
		return nil, fmt.Errorf("ensureFile %s: %w", path, err)
	}

	return &LedgerStore{path: path}, nil
}

func (s *LedgerStore) Load(ctx context.Context) ([]entity.Transaction, error) {
	return s.load(ctx), nil
}

func (s *LedgerStore) load(ctx context.Context) []entity.Transaction {
	var txs []entity.Transaction
	if !readDocument(ctx, s.path, &txs) || txs == nil {
		return []entity.Transaction{}
	}

	return txs
}

func (s *LedgerStore) Append(ctx context.Context, tx entity.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs := s.load(ctx)

	if lo.ContainsBy(txs, func(existing entity.Transaction) bool { return existing.ID == tx.ID }) {
		return nil
	}

	if err := writeAtomic(s.path, append(txs, tx)); err != nil {
		return fmt.Errorf("writeAtomic: %w", err)
	}

	return nil
}

// Save перезаписывает журнал целиком.
func (s *LedgerStore) Save(_ context.Context, txs []entity.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if txs == nil {
		txs = []entity.Transaction{}
	}

	if err := writeAtomic(s.path, txs); err != nil {
		return fmt.Errorf("writeAtomic: %w", err)
	}

	return nil
}

func (s *LedgerStore) Recent(ctx context.Context, n int) ([]entity.Transaction, error) {
	if n <= 0 {
		return []entity.Transaction{}, nil
	}

	txs := s.load(ctx)

	return txs[max(len(txs)-n, 0):], nil
}

func (s *LedgerStore) Ping(context.Context) error {
	return ping(s.path)
}
