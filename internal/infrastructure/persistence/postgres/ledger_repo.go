package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"rp_market/internal/domain/entity"
)

const (
	ledgerColumns     = `id, actor, country, item, qty, price_per_unit, total_price, side, breakdown, ts`
	selectLedgerQuery = `SELECT ` + ledgerColumns + ` FROM market_ledger ORDER BY seq`
	recentLedgerQuery = `SELECT ` + ledgerColumns + ` FROM (
    SELECT seq, ` + ledgerColumns + ` FROM market_ledger ORDER BY seq DESC LIMIT $1
) recent ORDER BY seq`
	insertLedgerQuery = `INSERT INTO market_ledger (` + ledgerColumns + `)
VALUES (:id, :actor, :country, :item, :qty, :price_per_unit, :total_price, :side, :breakdown, :ts)
ON CONFLICT (id) DO NOTHING`
)

type LedgerRepository struct {
	db *sqlx.DB
}

func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Load(ctx context.Context) ([]entity.Transaction, error) {
	var rows []ledgerSchema
	if err := r.db.SelectContext(ctx, &rows, selectLedgerQuery); err != nil {
		return nil, fmt.Errorf("db.SelectContext: %w", err)
	}

	return toTransactions(rows)
}

// Append идемпотентен: повтор с тем же id ничего не меняет.
func (r *LedgerRepository) Append(ctx context.Context, tx entity.Transaction) error {
	row, err := newLedgerSchema(tx)
	if err != nil {
		return err
	}

	if _, err := r.db.NamedExecContext(ctx, insertLedgerQuery, row); err != nil {
		return fmt.Errorf("db.NamedExecContext: %w", err)
	}

	return nil
}

func (r *LedgerRepository) Recent(ctx context.Context, n int) ([]entity.Transaction, error) {
	if n <= 0 {
		return []entity.Transaction{}, nil
	}

	var rows []ledgerSchema
	if err := r.db.SelectContext(ctx, &rows, recentLedgerQuery, n); err != nil {
		return nil, fmt.Errorf("db.SelectContext: %w", err)
	}

	return toTransactions(rows)
}

func (r *LedgerRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
