// Package sqlitestore — хранилища рынка в SQLite через gorm (драйвер glebarez/sqlite, без cgo).
package sqlitestore

import (
	"context"
	"fmt"
	"slices"

	jsoniter "github.com/json-iterator/go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rp_market/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// Migrate создаёт таблицы рынка.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&itemStateModel{}, &ledgerModel{}); err != nil {
		return fmt.Errorf("db.AutoMigrate: %w", err)
	}

	return nil
}

type StateStore struct {
	db *gorm.DB
}

func NewStateStore(db *gorm.DB) *StateStore {
	return &StateStore{db: db}
}

func (s *StateStore) Load(ctx context.Context) (entity.MarketState, error) {
	var models []itemStateModel
	if err := s.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("db.Find: %w", err)
	}

	state := make(entity.MarketState, len(models))
	for _, m := range models {
		state[m.ItemID] = entity.ItemState{Stock: m.Stock, Demand: m.Demand, Trend: m.Trend}
	}

	return state, nil
}

func (s *StateStore) Save(ctx context.Context, state entity.MarketState) error {
	models := make([]itemStateModel, 0, len(state))
	for itemID, item := range state {
		models = append(models, newItemStateModel(itemID, item))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&itemStateModel{}).Error; err != nil {
			return fmt.Errorf("tx.Delete: %w", err)
		}

		if len(models) == 0 {
			return nil
		}

		if err := tx.Create(&models).Error; err != nil {
			return fmt.Errorf("tx.Create: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("db.Transaction: %w", err)
	}

	return nil
}

func (s *StateStore) Put(ctx context.Context, itemID string, item entity.ItemState) error {
	model := newItemStateModel(itemID, item)

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"stock", "demand", "trend", "updated_at"}),
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("db.Create: %w", err)
	}

	return nil
}

func (s *StateStore) Ping(ctx context.Context) error {
	return ping(ctx, s.db)
}

type LedgerStore struct {
	db *gorm.DB
}

func NewLedgerStore(db *gorm.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

func (s *LedgerStore) Load(ctx context.Context) ([]entity.Transaction, error) {
	var models []ledgerModel
	if err := s.db.WithContext(ctx).Order("seq").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("db.Find: %w", err)
	}

	return toTransactions(models)
}

// Append игнорирует сделку, если запись с тем же id уже есть.
func (s *LedgerStore) Append(ctx context.Context, tx entity.Transaction) error {
	model, err := newLedgerModel(tx)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tx_id"}},
		DoNothing: true,
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("db.Create: %w", err)
	}

	return nil
}

func (s *LedgerStore) Recent(ctx context.Context, n int) ([]entity.Transaction, error) {
	if n <= 0 {
		return []entity.Transaction{}, nil
	}

	var models []ledgerModel
	if err := s.db.WithContext(ctx).Order("seq DESC").Limit(n).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("db.Find: %w", err)
	}

	slices.Reverse(models)

	return toTransactions(models)
}

func (s *LedgerStore) Ping(ctx context.Context) error {
	return ping(ctx, s.db)
}

func toTransactions(models []ledgerModel) ([]entity.Transaction, error) {
	txs := make([]entity.Transaction, 0, len(models))

	for _, m := range models {
		tx, err := m.toDomain()
		if err != nil {
			return nil, err
		}

		txs = append(txs, tx)
	}

	return txs, nil
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("db.DB: %w", err)
	}

	return sqlDB.PingContext(ctx)
}
