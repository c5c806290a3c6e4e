package reply_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/require"

	"rp_market/pkg/contextx"
	"rp_market/pkg/errcodes"
	"rp_market/pkg/httpx/reply"
)

type storeError struct{}

func (storeError) Error() string                 { return "failed to save market state: disk full at /var/lib" }
func (storeError) PublicCode() failure.ErrorCode { return errcodes.StateSaveFailed }
func (storeError) PublicMessage() string         { return "failed to save market state" }

func TestError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name: "invalid argument",
			err: failure.NewInvalidArgumentError("qty=0",
				failure.WithCode(errcodes.InvalidQuantity),
				failure.WithDescription("qty must be > 0")),
			status: http.StatusBadRequest,
			body:   `{"code":"InvalidQuantity","message":"qty must be > 0","supportId":"trace-1"}`,
		},
		{
			name:   "public internal error",
			err:    fmt.Errorf("state.Put: %w", storeError{}),
			status: http.StatusInternalServerError,
			body:   `{"code":"StateSaveFailed","message":"failed to save market state","supportId":"trace-1"}`,
		},
		{
			name:   "plain error",
			err:    errors.New("pq: password authentication failed"),
			status: http.StatusInternalServerError,
			body:   `{"code":"InternalServerError","message":"internal error","supportId":"trace-1"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := require.New(t)

			ctx := contextx.WithTraceID(context.Background(), "trace-1")
			rec := httptest.NewRecorder()

			reply.Error(ctx, rec, tt.err)

			r.Equal(tt.status, rec.Code)
			r.Equal("application/json; charset=utf-8", rec.Header().Get("Content-Type"))
			r.JSONEq(tt.body, rec.Body.String())
		})
	}
}

func TestJSON(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	rec := httptest.NewRecorder()
	reply.JSON(context.Background(), rec, http.StatusOK, map[string]float64{"price": 12.5})

	r.Equal(http.StatusOK, rec.Code)
	r.JSONEq(`{"price":12.5}`, rec.Body.String())
}
