package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimiter caps requests per client IP within a fixed window.
func RateLimiter(limit int, window time.Duration) echo.MiddlewareFunc {
	type counter struct {
		hits     int
		openedAt time.Time
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*counter)
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			now := time.Now()
			ip := c.RealIP()

			mu.Lock()
			cnt, ok := clients[ip]
			if !ok || now.Sub(cnt.openedAt) > window {
				cnt = &counter{openedAt: now}
				clients[ip] = cnt
			}

			if cnt.hits >= limit {
				mu.Unlock()
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			cnt.hits++
			mu.Unlock()

			return next(c)
		}
	}
}
