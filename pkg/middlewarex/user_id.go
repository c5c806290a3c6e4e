package middlewarex

import (
	"net/http"
	"strings"

	"rp_market/pkg/contextx"
)

// HeaderNameUserID carries the caller identity set by the game frontend.
const HeaderNameUserID = "X-User-Id"

func UserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(HeaderNameUserID))
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := contextx.WithUserID(r.Context(), contextx.UserID(userID))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
