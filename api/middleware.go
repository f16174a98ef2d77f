package api

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"content-coach/auth"
)

// routes reachable without a session
var open = map[string]bool{
	"/api/health":           true,
	"/api/login":            true,
	"/api/webhook/typeform": true,
}

// routes throttled per client IP
var limited = map[string]bool{
	"/api/login":            true,
	"/api/webhook/typeform": true,
}

// withSession parses the bearer token and puts the caller's Session on the
// request context. Open routes pass through untouched.
func (a *API) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if open[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		// token from Authorization: Bearer <jwt>
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" {
			a.Response(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := auth.ParseToken(raw, a.secret)
		if err != nil {
			a.Response(w, http.StatusUnauthorized, "invalid token")
			return
		}
		sess, err := auth.SessionFromClaims(claims)
		if err != nil {
			a.Response(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.NewContext(r.Context(), sess)))
	})
}

type client struct {
	lim  *rate.Limiter
	seen time.Time
}

type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	r       rate.Limit
	burst   int
}

func newRateLimiter(rps float64, burst int) *rateLimiter {
	rl := &rateLimiter{
		clients: make(map[string]*client),
		r:       rate.Limit(rps),
		burst:   burst,
	}
	// cleanup stale entries every minute
	go func() {
		for {
			time.Sleep(time.Minute)
			rl.mu.Lock()
			for ip, c := range rl.clients {
				if time.Since(c.seen) > 3*time.Minute {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		}
	}()
	return rl
}

func (rl *rateLimiter) get(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if c, ok := rl.clients[ip]; ok {
		c.seen = time.Now()
		return c.lim
	}
	l := rate.NewLimiter(rl.r, rl.burst)
	rl.clients[ip] = &client{lim: l, seen: time.Now()}
	return l
}

func (a *API) rateLimit(rl *rateLimiter) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limited[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}
			if !rl.get(r.RemoteAddr).Allow() {
				a.Response(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
