package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"git.appkode.ru/pub/go/failure"

	"rp_market/internal/domain/entity"
	"rp_market/internal/domain/service/market"
	"rp_market/pkg/contextx"
	"rp_market/pkg/errcodes"
	"rp_market/pkg/httpx/reply"
	"rp_market/pkg/httpx/req"
	"rp_market/pkg/lox"
	"rp_market/pkg/rest"
)

const defaultQuoteQty = 1

type marketService interface {
	GetQuote(ctx context.Context, request market.QuoteRequest) (market.Quote, error)
	ExecuteTrade(ctx context.Context, request market.TradeRequest) (entity.Transaction, error)
	GetMarketSnapshot(ctx context.Context, recent int) (market.Snapshot, error)
	Catalog(ctx context.Context) ([]entity.CatalogItem, error)
}

type MarketServer struct {
	marketService  marketService
	snapshotRecent int
}

func NewMarketServer(marketService marketService, snapshotRecent int) MarketServer {
	return MarketServer{
		marketService:  marketService,
		snapshotRecent: snapshotRecent,
	}
}

func (s MarketServer) getRoot(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, rest.RootResponse{Endpoints: endpoints})

	return nil
}

func (s MarketServer) getCatalog(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	items, err := s.marketService.Catalog(ctx)
	if err != nil {
		return fmt.Errorf("marketService.Catalog: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(items, newRESTCatalogItem))

	return nil
}

func (s MarketServer) getSnapshot(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	recent, err := parseRecent(r.URL.Query().Get("recent"), s.snapshotRecent)
	if err != nil {
		return err
	}

	snapshot, err := s.marketService.GetMarketSnapshot(ctx, recent)
	if err != nil {
		return fmt.Errorf("marketService.GetMarketSnapshot: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTSnapshot(snapshot))

	return nil
}

func (s MarketServer) postQuote(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.QuoteRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	qty := float64(defaultQuoteQty)
	if request.Qty != nil {
		qty = request.Qty.Float64()
	}

	quote, err := s.marketService.GetQuote(ctx, market.QuoteRequest{
		ItemID:    request.ItemID,
		Qty:       qty,
		CountryID: request.CountryID,
	})
	if err != nil {
		return fmt.Errorf("marketService.GetQuote: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.QuoteResponse{
		Price:     quote.Price,
		Breakdown: newRESTBreakdown(quote.Breakdown),
	})

	return nil
}

func (s MarketServer) postTrade(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.TradeRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	actor := strings.TrimSpace(request.Actor)
	if actor == "" {
		if userID, err := contextx.UserIDFromContext(ctx); err == nil {
			actor = userID.String()
		}
	}

	tx, err := s.marketService.ExecuteTrade(ctx, market.TradeRequest{
		Actor:     actor,
		CountryID: request.CountryID,
		ItemID:    request.ItemID,
		Qty:       request.Qty.Float64(),
		Side:      request.Side,
	})
	if err != nil {
		return fmt.Errorf("marketService.ExecuteTrade: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.TradeResponse{Tx: newRESTTransaction(tx)})

	return nil
}

// parseRecent пустое значение заменяет на fallback, отрицательное допускается.
func parseRecent(raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}

	recent, err := strconv.Atoi(raw)
	if err != nil {
		return 0, failure.NewInvalidArgumentError(
			fmt.Errorf("strconv.Atoi: %w", err).Error(),
			failure.WithCode(errcodes.InvalidRecentLimit),
			failure.WithDescription("recent must be an integer"),
		)
	}

	return recent, nil
}
