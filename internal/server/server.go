package server

import "net/http"

// Server объединяет HTTP-обработчики отдельных сущностей.
type Server struct {
	MarketServer
	limiter func(http.Handler) http.Handler
}

func NewServer(
	marketServer MarketServer,
) Server {
	return Server{
		MarketServer: marketServer,
		limiter:      nil,
	}
}

// WithRateLimiter ограничивает частоту изменяющих запросов.
func (s Server) WithRateLimiter(limiter func(http.Handler) http.Handler) Server {
	s.limiter = limiter
	return s
}
