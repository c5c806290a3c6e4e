package server

import (
	"rp_market/internal/domain/entity"
	"rp_market/internal/domain/service/market"
	"rp_market/pkg/lox"
	"rp_market/pkg/rest"
)

func newRESTBreakdown(b entity.Breakdown) rest.Breakdown {
	return rest.Breakdown{
		Base:           b.Base,
		SupplyFactor:   b.SupplyFactor,
		DemandFactor:   b.DemandFactor,
		QtyImpact:      b.QtyImpact,
		TrendFactor:    b.TrendFactor,
		CountryFactor:  b.CountryFactor,
		ScarcityFactor: b.ScarcityFactor,
	}
}

func newRESTTransaction(tx entity.Transaction) rest.Transaction {
	return rest.Transaction{
		ID:           tx.ID,
		Actor:        tx.Actor,
		Country:      tx.Country,
		Item:         tx.Item,
		Qty:          tx.Qty,
		PricePerUnit: tx.PricePerUnit,
		TotalPrice:   tx.TotalPrice,
		Side:         tx.Side.String(),
		Breakdown:    newRESTBreakdown(tx.Breakdown),
		Ts:           tx.Ts,
	}
}

func newRESTSnapshot(snapshot market.Snapshot) rest.SnapshotResponse {
	state := make(map[string]rest.ItemState, len(snapshot.State))
	for id, item := range snapshot.State {
		state[id] = rest.ItemState{
			Stock:  item.Stock,
			Demand: item.Demand,
			Trend:  item.Trend,
		}
	}

	return rest.SnapshotResponse{
		State:  state,
		Recent: lox.Map(snapshot.Recent, newRESTTransaction),
	}
}

func newRESTCatalogItem(item entity.CatalogItem) rest.CatalogItem {
	return rest.CatalogItem{
		ID:        item.ID,
		Name:      item.Name,
		Label:     item.Label,
		Unit:      item.Unit,
		Icon:      item.Icon,
		Category:  item.Category,
		BasePrice: item.BasePrice,
	}
}
