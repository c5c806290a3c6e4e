package middlewarex

import (
	"net/http"

	"rp_market/pkg/contextx"
)

// TraceID reuses a well-formed incoming X-Trace-Id, otherwise starts a new one,
// and echoes it back so clients can quote it to support.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID, ok := contextx.ParseTraceID(r.Header.Get(contextx.HeaderNameTraceID))
		if !ok {
			traceID = contextx.NewTraceID()
		}

		ctx := contextx.WithTraceID(r.Context(), traceID)

		w.Header().Set(contextx.HeaderNameTraceID, traceID.String())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
