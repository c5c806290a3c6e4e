package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"rp_market/pkg/middlewarex"
	"rp_market/pkg/rest"
)

// Error is returned by Market calls answered with a non-2xx status.
type Error struct {
	StatusCode int
	Body       rest.Error
}

func (e *Error) Error() string {
	return fmt.Sprintf("market api: %d %s: %s", e.StatusCode, e.Body.Code, e.Body.Message)
}

// Market wraps APIClient with typed calls to the market routes.
type Market struct {
	client APIClient
	userID string
}

func NewMarket(client APIClient) Market {
	return Market{client: client}
}

// WithUserID sends the user id header with every call.
func (m Market) WithUserID(userID string) Market {
	m.userID = userID
	return m
}

func (m Market) Root(ctx context.Context) (rest.RootResponse, error) {
	var response rest.RootResponse

	if err := m.do(ctx, http.MethodGet, "/", nil, &response); err != nil {
		return rest.RootResponse{}, err
	}

	return response, nil
}

func (m Market) Catalog(ctx context.Context) ([]rest.CatalogItem, error) {
	var response []rest.CatalogItem

	if err := m.do(ctx, http.MethodGet, "/catalog", nil, &response); err != nil {
		return nil, err
	}

	return response, nil
}

// Snapshot asks for the last recent transactions; recent < 0 uses the
// server default.
func (m Market) Snapshot(ctx context.Context, recent int) (rest.SnapshotResponse, error) {
	endpoint := "/snapshot"
	if recent >= 0 {
		endpoint += "?" + url.Values{"recent": {strconv.Itoa(recent)}}.Encode()
	}

	var response rest.SnapshotResponse

	if err := m.do(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return rest.SnapshotResponse{}, err
	}

	return response, nil
}

func (m Market) Quote(ctx context.Context, request rest.QuoteRequest) (rest.QuoteResponse, error) {
	var response rest.QuoteResponse

	if err := m.do(ctx, http.MethodPost, "/quote", request, &response); err != nil {
		return rest.QuoteResponse{}, err
	}

	return response, nil
}

func (m Market) Trade(ctx context.Context, request rest.TradeRequest) (rest.Transaction, error) {
	var response rest.TradeResponse

	if err := m.do(ctx, http.MethodPost, "/trade", request, &response); err != nil {
		return rest.Transaction{}, err
	}

	return response.Tx, nil
}

func (m Market) do(ctx context.Context, method, endpoint string, request, dest any) error {
	headers := http.Header{}
	if m.userID != "" {
		headers.Set(middlewarex.HeaderNameUserID, m.userID)
	}

	var (
		errResponse rest.Error
		resp        *http.Response
		err         error
	)

	switch method {
	case http.MethodPost:
		resp, err = m.client.Post(ctx, endpoint, headers, request, dest, &errResponse)
	default:
		resp, err = m.client.Get(ctx, endpoint, headers, dest, &errResponse)
	}

	if err != nil {
		return fmt.Errorf("client.%s %s: %w", method, endpoint, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &Error{StatusCode: resp.StatusCode, Body: errResponse}
	}

	return nil
}
