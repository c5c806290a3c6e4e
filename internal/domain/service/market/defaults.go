package market

import (
	"context"
	"time"

	"git.appkode.ru/pub/go/failure"

	"rp_market/internal/domain/entity"
)

type noCountries struct{}

func (noCountries) Lookup(context.Context, string) (entity.Country, bool) {
	return entity.Country{}, false
}

type emptyCatalog struct{}

func (emptyCatalog) Items(context.Context) ([]entity.CatalogItem, error) {
	return nil, nil
}

func (emptyCatalog) Item(context.Context, string) (entity.CatalogItem, bool) {
	return entity.CatalogItem{}, false
}

type nopRecorder struct{}

func (nopRecorder) ObserveQuote(string, float64)                       {}
func (nopRecorder) ObserveTrade(entity.Transaction, time.Duration)     {}
func (nopRecorder) ObserveLedgerFailure(string, bool)                  {}
func (nopRecorder) ObserveValidationFailure(string, failure.ErrorCode) {}
