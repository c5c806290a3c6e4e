package sqlitestore

import (
	"fmt"
	"time"

	"rp_market/internal/domain/entity"
	"rp_market/internal/domain/value"
)

type itemStateModel struct {
	ItemID    string  `gorm:"column:item_id;primaryKey"`
	Stock     float64 `gorm:"not null;default:0"`
	Demand    float64 `gorm:"not null;default:0"`
	Trend     float64 `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

func (itemStateModel) TableName() string {
	return "market_state"
}

func newItemStateModel(itemID string, item entity.ItemState) itemStateModel {
	return itemStateModel{ItemID: itemID, Stock: item.Stock, Demand: item.Demand, Trend: item.Trend}
}

// ledgerModel: Seq задаёт порядок журнала, TxID — id сделки.
type ledgerModel struct {
	Seq          uint64 `gorm:"primaryKey;autoIncrement"`
	TxID         string `gorm:"column:tx_id;uniqueIndex;not null"`
	Actor        string `gorm:"not null"`
	Country      *string
	Item         string  `gorm:"index;not null"`
	Qty          float64 `gorm:"not null"`
	PricePerUnit float64 `gorm:"not null"`
	TotalPrice   float64 `gorm:"not null"`
	Side         string  `gorm:"not null"`
	Breakdown    string  `gorm:"type:text;not null"`
	Ts           int64   `gorm:"not null"`
}

func (ledgerModel) TableName() string {
	return "market_ledger"
}

func newLedgerModel(tx entity.Transaction) (ledgerModel, error) {
	breakdown, err := json.Marshal(tx.Breakdown)
	if err != nil {
		return ledgerModel{}, fmt.Errorf("json.Marshal: %w", err)
	}

	return ledgerModel{
		TxID:         tx.ID,
		Actor:        tx.Actor,
		Country:      tx.Country,
		Item:         tx.Item,
		Qty:          tx.Qty,
		PricePerUnit: tx.PricePerUnit,
		TotalPrice:   tx.TotalPrice,
		Side:         tx.Side.String(),
		Breakdown:    string(breakdown),
		Ts:           tx.Ts,
	}, nil
}

func (m ledgerModel) toDomain() (entity.Transaction, error) {
	var breakdown entity.Breakdown
	if err := json.Unmarshal([]byte(m.Breakdown), &breakdown); err != nil {
		return entity.Transaction{}, fmt.Errorf("json.Unmarshal breakdown of %s: %w", m.TxID, err)
	}

	return entity.Transaction{
		ID:           m.TxID,
		Actor:        m.Actor,
		Country:      m.Country,
		Item:         m.Item,
		Qty:          m.Qty,
		PricePerUnit: m.PricePerUnit,
		TotalPrice:   m.TotalPrice,
		Side:         value.Side(m.Side),
		Breakdown:    breakdown,
		Ts:           m.Ts,
	}, nil
}
