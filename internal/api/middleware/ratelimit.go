package middleware

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/m04kA/RentEasy-BookingService/internal/api/handlers"
)

// RateLimiter ограничивает частоту запросов на клиента.
// Ключом служит ID пользователя, для неаутентифицированных запросов - IP.
type RateLimiter struct {
	limiters sync.Map
	rps      rate.Limit
	burst    int
}

// NewRateLimiter создает новый rate limiter
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		rps:   rate.Limit(rps),
		burst: burst,
	}
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	if l, ok := rl.limiters.Load(key); ok {
		return l.(*rate.Limiter)
	}
	l, _ := rl.limiters.LoadOrStore(key, rate.NewLimiter(rl.rps, rl.burst))
	return l.(*rate.Limiter)
}

// Middleware возвращает HTTP middleware с ограничением частоты запросов
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(HeaderUserID)
		if key == "" {
			if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
				key = host
			} else {
				key = r.RemoteAddr
			}
		}

		if !rl.limiterFor(key).Allow() {
			handlers.RespondError(w, http.StatusTooManyRequests, "превышен лимит запросов")
			return
		}

		next.ServeHTTP(w, r)
	})
}
