// Package market — движок рынка: котировки, сделки, снимок состояния и каталог.
package market

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/rs/xid"

	"rp_market/internal/domain"
	"rp_market/internal/domain/entity"
	"rp_market/internal/domain/service/pricing"
	"rp_market/internal/domain/value"
	"rp_market/pkg/errcodes"
	"rp_market/pkg/logx"
)

const (
	DefaultRecentLedger = 20
	DefaultActor        = "anon"
	txIDPrefix          = "tx_"
)

type StateStore interface {
	Load(ctx context.Context) (entity.MarketState, error)
	Put(ctx context.Context, itemID string, state entity.ItemState) error
}

type LedgerStore interface {
	Append(ctx context.Context, tx entity.Transaction) error
	Recent(ctx context.Context, n int) ([]entity.Transaction, error)
}

type CountryLookup interface {
	Lookup(ctx context.Context, countryID string) (entity.Country, bool)
}

type Catalog interface {
	Items(ctx context.Context) ([]entity.CatalogItem, error)
	Item(ctx context.Context, itemID string) (entity.CatalogItem, bool)
}

// LedgerRetrier повторно доставляет запись в журнал, если синхронная запись не удалась.
type LedgerRetrier interface {
	RetryAppend(ctx context.Context, tx entity.Transaction) error
}

type Recorder interface {
	ObserveQuote(itemID string, price float64)
	ObserveTrade(tx entity.Transaction, duration time.Duration)
	ObserveLedgerFailure(itemID string, retried bool)
	ObserveValidationFailure(op string, code failure.ErrorCode)
}

type QuoteRequest struct {
	ItemID    string
	Qty       float64
	CountryID string
	Opts      pricing.Overrides
}

type Quote struct {
	Price     float64          `json:"price"`
	Breakdown entity.Breakdown `json:"breakdown"`
}

type TradeRequest struct {
	Actor     string
	CountryID string
	ItemID    string
	Qty       float64
	Side      string
	Opts      pricing.Overrides
}

type Snapshot struct {
	State  entity.MarketState   `json:"state"`
	Recent []entity.Transaction `json:"recent"`
}

type Service struct {
	state     StateStore
	ledger    LedgerStore
	countries CountryLookup
	catalog   Catalog
	retrier   LedgerRetrier
	recorder  Recorder
	options   pricing.Options
	locker    *itemLocker
	now       func() time.Time
	newID     func() string
}

func NewService(state StateStore, ledger LedgerStore) *Service {
	return &Service{
		state:     state,
		ledger:    ledger,
		countries: noCountries{},
		catalog:   emptyCatalog{},
		recorder:  nopRecorder{},
		options:   pricing.DefaultOptions(),
		locker:    newItemLocker(),
		now:       time.Now,
		newID: func() string {
			return txIDPrefix + xid.New().String()
		},
	}
}

func (s *Service) WithCountries(countries CountryLookup) *Service {
	s.countries = countries
	return s
}

func (s *Service) WithCatalog(catalog Catalog) *Service {
	s.catalog = catalog
	return s
}

func (s *Service) WithLedgerRetrier(retrier LedgerRetrier) *Service {
	s.retrier = retrier
	return s
}

func (s *Service) WithRecorder(recorder Recorder) *Service {
	s.recorder = recorder
	return s
}

// WithOptions задаёт параметры ценообразования по умолчанию.
func (s *Service) WithOptions(opts pricing.Options) *Service {
	s.options = opts
	return s
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) WithIDGenerator(newID func() string) *Service {
	s.newID = newID
	return s
}

func (s *Service) GetQuote(ctx context.Context, req QuoteRequest) (Quote, error) {
	itemID := strings.TrimSpace(req.ItemID)

	if err := s.validate("quote", itemID, req.Qty); err != nil {
		return Quote{}, err
	}

	state, err := s.state.Load(ctx)
	if err != nil {
		return Quote{}, domain.WrapError(
			fmt.Errorf("state.Load: %w", err), errcodes.StateLoadFailed, "failed to load market state")
	}

	result := pricing.Compute(itemID, state.Item(itemID), s.resources(ctx, req.CountryID), req.Qty, s.optionsFor(ctx, itemID, req.Opts))

	s.recorder.ObserveQuote(itemID, result.Price)

	return Quote{Price: result.Price, Breakdown: result.Breakdown}, nil
}

// ExecuteTrade проводит сделку. Цена считается по состоянию до сделки,
// состояние сохраняется раньше записи в журнал.
func (s *Service) ExecuteTrade(ctx context.Context, req TradeRequest) (entity.Transaction, error) {
	started := time.Now()
	itemID := strings.TrimSpace(req.ItemID)

	if err := s.validate("trade", itemID, req.Qty); err != nil {
		return entity.Transaction{}, err
	}

	side, err := value.ParseSide(req.Side)
	if err != nil {
		s.recorder.ObserveValidationFailure("trade", errcodes.InvalidSide)

		return entity.Transaction{}, failure.NewInvalidArgumentError(
			err.Error(),
			failure.WithCode(errcodes.InvalidSide),
			failure.WithDescription(`side must be "buy" or "sell"`),
		)
	}

	unlock := s.locker.Lock(itemID)
	defer unlock()

	state, err := s.state.Load(ctx)
	if err != nil {
		return entity.Transaction{}, domain.WrapError(
			fmt.Errorf("state.Load: %w", err), errcodes.StateLoadFailed, "failed to load market state")
	}

	current := state.Item(itemID)
	result := pricing.Compute(itemID, current, s.resources(ctx, req.CountryID), req.Qty, s.optionsFor(ctx, itemID, req.Opts))

	if err := s.state.Put(ctx, itemID, pricing.Next(current, req.Qty, side)); err != nil {
		return entity.Transaction{}, domain.WrapError(
			fmt.Errorf("state.Put: %w", err), errcodes.StateSaveFailed, "failed to save market state")
	}

	tx := entity.Transaction{
		ID:           s.newID(),
		Actor:        actorOrDefault(req.Actor),
		Country:      countryRef(req.CountryID),
		Item:         itemID,
		Qty:          req.Qty,
		PricePerUnit: result.Price,
		TotalPrice:   pricing.Total(result.Price, req.Qty),
		Side:         side,
		Breakdown:    result.Breakdown,
		Ts:           s.now().UnixMilli(),
	}

	if err := s.appendLedger(ctx, tx); err != nil {
		return entity.Transaction{}, err
	}

	s.recorder.ObserveTrade(tx, time.Since(started))

	logger(ctx).Info("trade executed",
		logx.FieldTxID, tx.ID,
		logx.FieldActor, tx.Actor,
		logx.FieldItem, tx.Item,
		logx.Stringer(logx.FieldSide, tx.Side),
		logx.FieldQty, tx.Qty,
		logx.Money(logx.FieldPrice, tx.PricePerUnit),
		logx.Money(logx.FieldTotal, tx.TotalPrice),
	)

	return tx, nil
}

// appendLedger пишет сделку в журнал. Состояние к этому моменту уже сохранено
// и не откатывается: при ошибке сделка либо уходит в очередь повторов, либо
// вызывающий получает LedgerAppendFailed.
func (s *Service) appendLedger(ctx context.Context, tx entity.Transaction) error {
	err := s.ledger.Append(ctx, tx)
	if err == nil {
		return nil
	}

	if s.retrier != nil {
		retryErr := s.retrier.RetryAppend(ctx, tx)
		if retryErr == nil {
			s.recorder.ObserveLedgerFailure(tx.Item, true)

			logger(ctx).Warn("ledger append failed, queued for retry",
				logx.FieldTxID, tx.ID,
				logx.FieldItem, tx.Item,
				logx.Error(err),
			)

			return nil
		}

		logger(ctx).Error("ledger retry enqueue failed", logx.FieldTxID, tx.ID, logx.Error(retryErr))
	}

	s.recorder.ObserveLedgerFailure(tx.Item, false)

	return domain.WrapError(
		fmt.Errorf("ledger.Append: %w", err), errcodes.LedgerAppendFailed, "trade applied but ledger append failed")
}

func (s *Service) GetMarketSnapshot(ctx context.Context, recent int) (Snapshot, error) {
	recent = max(recent, 0)

	state, err := s.state.Load(ctx)
	if err != nil {
		return Snapshot{}, domain.WrapError(
			fmt.Errorf("state.Load: %w", err), errcodes.StateLoadFailed, "failed to load market state")
	}

	txs, err := s.ledger.Recent(ctx, recent)
	if err != nil {
		return Snapshot{}, domain.WrapError(
			fmt.Errorf("ledger.Recent: %w", err), errcodes.LedgerLoadFailed, "failed to load ledger")
	}

	if state == nil {
		state = entity.MarketState{}
	}
	if txs == nil {
		txs = []entity.Transaction{}
	}

	return Snapshot{State: state, Recent: txs}, nil
}

// Catalog возвращает товары каталога и товары, которые встречаются только в состоянии рынка.
func (s *Service) Catalog(ctx context.Context) ([]entity.CatalogItem, error) {
	items, err := s.catalog.Items(ctx)
	if err != nil {
		return nil, domain.WrapError(fmt.Errorf("catalog.Items: %w", err), errcodes.InternalServerError, "failed to load catalog")
	}

	state, err := s.state.Load(ctx)
	if err != nil {
		return nil, domain.WrapError(
			fmt.Errorf("state.Load: %w", err), errcodes.StateLoadFailed, "failed to load market state")
	}

	known := make(map[string]struct{}, len(items))
	result := make([]entity.CatalogItem, 0, len(items)+len(state))

	for _, item := range items {
		known[item.ID] = struct{}{}
		result = append(result, item)
	}

	for id := range state {
		if _, ok := known[id]; !ok {
			result = append(result, entity.CatalogItem{ID: id, Name: id})
		}
	}

	slices.SortFunc(result, func(a, b entity.CatalogItem) int {
		return strings.Compare(a.ID, b.ID)
	})

	return result, nil
}

func (s *Service) validate(op, itemID string, qty float64) error {
	if itemID == "" {
		s.recorder.ObserveValidationFailure(op, errcodes.MissingItem)

		return failure.NewInvalidArgumentError(
			"missing itemId",
			failure.WithCode(errcodes.MissingItem),
			failure.WithDescription("missing itemId"),
		)
	}

	if math.IsNaN(qty) || math.IsInf(qty, 0) || qty <= 0 {
		s.recorder.ObserveValidationFailure(op, errcodes.InvalidQuantity)

		return failure.NewInvalidArgumentError(
			fmt.Sprintf("invalid qty %v", qty),
			failure.WithCode(errcodes.InvalidQuantity),
			failure.WithDescription("qty must be > 0"),
		)
	}

	return nil
}

func (s *Service) resources(ctx context.Context, countryID string) value.Resources {
	countryID = strings.TrimSpace(countryID)
	if countryID == "" {
		return value.UnspecifiedResources()
	}

	country, ok := s.countries.Lookup(ctx, countryID)
	if !ok {
		logger(ctx).Debug("country not found", logx.FieldCountry, countryID)
		return value.UnspecifiedResources()
	}

	return country.Resources
}

// optionsFor: настройки сервиса, затем базовая цена из каталога, затем переопределения запроса.
func (s *Service) optionsFor(ctx context.Context, itemID string, overrides pricing.Overrides) pricing.Options {
	opts := s.options

	if item, ok := s.catalog.Item(ctx, itemID); ok && item.BasePrice != nil {
		opts.BasePrice = *item.BasePrice
	}

	return overrides.Apply(opts)
}

func actorOrDefault(actor string) string {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return DefaultActor
	}

	return actor
}

func countryRef(countryID string) *string {
	countryID = strings.TrimSpace(countryID)
	if countryID == "" {
		return nil
	}

	return &countryID
}
