// Package middlewarex contains the HTTP middlewares shared by the market API.
package middlewarex

import "rp_market/pkg/contextx"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
