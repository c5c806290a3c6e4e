package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rp_market/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Trade body untouched",
			input:  []byte(`{"itemId":"oil","qty":100,"side":"buy"}`),
			output: []byte(`{"itemId":"oil","qty":100,"side":"buy"}`),
		},
		{
			name:   "Password capital letter",
			input:  []byte(`{"actor":"p1","Password":"abc123"}`),
			output: []byte(`{"actor":"p1","Password":"[MASKED]"}`),
		},
		{
			name:   "Session token",
			input:  []byte(`{"sessionToken":"eyJhbGciOiJFUzI1NiIsInR5cC","accessToken":"abc"}`),
			output: []byte(`{"sessionToken":"[MASKED]","accessToken":"[MASKED]"}`),
		},
		{
			name:   "Headers",
			input:  []byte("POST /api/market/trade HTTP/1.1\r\nCookie: sid=42\r\nAuthorization: Bearer xyz\r\n"),
			output: []byte("POST /api/market/trade HTTP/1.1\r\nCookie: [MASKED]\r\nAuthorization: Bearer [MASKED]\r\n"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}
