package req_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/require"

	"rp_market/pkg/errcodes"
	"rp_market/pkg/httpx/req"
)

type tradeBody struct {
	Actor  string `json:"actor"  validate:"max=8"`
	ItemID string `json:"itemId"`
}

func TestRead(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		wantErr     bool
		description string
	}{
		{name: "ok", body: `{"actor":"alice","itemId":"bread"}`},
		{name: "empty body", body: "", wantErr: true, description: "Empty request body"},
		{name: "broken json", body: `{"actor":}`, wantErr: true, description: "Invalid JSON"},
		{name: "validation", body: `{"actor":"a-very-long-actor"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rq := require.New(t)

			r := httptest.NewRequest(http.MethodPost, "/trade", strings.NewReader(tt.body))

			var dest tradeBody

			err := req.Read(r, &dest)
			if !tt.wantErr {
				rq.NoError(err)
				rq.Equal(tradeBody{Actor: "alice", ItemID: "bread"}, dest)

				return
			}

			rq.Error(err)
			rq.True(failure.IsInvalidArgumentError(err))
			rq.Equal(errcodes.ValidationError.String(), failure.Code(err).String())

			if tt.description != "" {
				rq.Equal(tt.description, failure.Description(err))
			}
		})
	}
}
