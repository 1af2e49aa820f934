package http

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/torneios/internal/apperr"
	"github.com/mauv0809/torneios/internal/config"
	"github.com/mauv0809/torneios/internal/http/handlers"
	"golang.org/x/time/rate"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

const (
	requestIDKey    handlers.ContextKey = "requestID"
	requestIDHeader                     = "X-Request-Id"

	msgAuthMissing   = "Authorization header não encontrado"
	msgAuthMalformed = "Formato de Authorization inválido"
	msgAuthInvalid   = "Credenciais inválidas"
	msgRateLimited   = "Muitas tentativas, tente novamente mais tarde"
)

// requestIDMiddleware reuses the caller's X-Request-Id or assigns a new one.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestIDFromContext(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)
	return id
}

// paramsMiddleware handles common query parameters like 'verbose'.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Handle 'verbose' for request-scoped verbose logging.
		if r.URL.Query().Get("verbose") == "true" {
			originalLevel := log.GetLevel()
			log.SetLevel(log.DebugLevel)
			defer log.SetLevel(originalLevel)
		}
		next.ServeHTTP(w, r)
	})
}

// responseWriter records the status code written by the handler.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.status == 0 {
		rw.status = http.StatusOK
	}
	return rw.ResponseWriter.Write(b)
}

// observeMiddleware logs every request and records its route, status and duration.
func (s *Server) observeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		failure := &handlers.Failure{}
		r = r.WithContext(context.WithValue(r.Context(), handlers.FailureKey, failure))
		rw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(rw, r)

		if rw.status == 0 {
			rw.status = http.StatusOK
		}
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		fields := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration", elapsed,
			"request_id", requestIDFromContext(r),
		}
		if failure.Err != nil {
			fields = append(fields, "error", failure.Err)
		}
		log.Info("Handled request", fields...)

		if s.Metrics == nil {
			return
		}
		s.Metrics.ObserveRequest(route, r.Method, rw.status, elapsed.Seconds())
		if failure.Err != nil && rw.status >= http.StatusInternalServerError {
			s.Metrics.IncStoreFailures(apperr.KindOf(failure.Err).String())
		}
	})
}

// authMiddleware requires "Authorization: <scheme> <base64(key:secret)>" matching
// the configured credentials.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.checkAuth(r.Header.Get("Authorization")); err != nil {
			log.Debug("Rejected credentials", "path", r.URL.Path, "error", err)
			handlers.RespondError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) checkAuth(header string) error {
	if header == "" {
		return apperr.New(apperr.AuthMissing, msgAuthMissing)
	}
	_, encoded, ok := strings.Cut(header, " ")
	if !ok || encoded == "" {
		return apperr.New(apperr.AuthMalformed, msgAuthMalformed)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return apperr.Wrap(apperr.AuthMalformed, msgAuthMalformed, err)
	}
	key, secret, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return apperr.New(apperr.AuthMalformed, msgAuthMalformed)
	}
	keyOK := subtle.ConstantTimeCompare([]byte(key), []byte(s.Cfg.Auth.Key)) == 1
	secretOK := subtle.ConstantTimeCompare([]byte(secret), []byte(s.Cfg.Auth.Secret)) == 1
	if !keyOK || !secretOK {
		return apperr.New(apperr.AuthInvalid, msgAuthInvalid)
	}
	return nil
}

// limiterIdleTTL is how long a client bucket may sit unused before a sweep drops it.
const limiterIdleTTL = 10 * time.Minute

// ipLimiter hands out one token bucket per client address. Buckets idle for
// longer than ttl are dropped by a sweep that runs at most once per ttl.
type ipLimiter struct {
	mu         sync.Mutex
	clients    map[string]*limitedClient
	limit      rate.Limit
	burst      int
	trustProxy bool
	ttl        time.Duration
	lastSweep  time.Time
	now        func() time.Time
}

type limitedClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(cfg config.RateConfig) *ipLimiter {
	perSecond, burst := cfg.PerSecond, cfg.Burst
	if perSecond <= 0 {
		perSecond = 5
	}
	if burst <= 0 {
		burst = 10
	}
	// A bucket is only dropped once it would have refilled completely.
	ttl := limiterIdleTTL
	if refill := time.Duration(float64(burst) / perSecond * float64(time.Second)); refill > ttl {
		ttl = refill
	}
	return &ipLimiter{
		clients:    make(map[string]*limitedClient),
		limit:      rate.Limit(perSecond),
		burst:      burst,
		trustProxy: cfg.TrustProxy,
		ttl:        ttl,
		lastSweep:  time.Now(),
		now:        time.Now,
	}
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if now.Sub(l.lastSweep) >= l.ttl {
		l.sweep(now)
	}
	c, ok := l.clients[ip]
	if !ok {
		c = &limitedClient{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter
}

// sweep drops idle buckets. l.mu must be held.
func (l *ipLimiter) sweep(now time.Time) {
	before := len(l.clients)
	for ip, c := range l.clients {
		if now.Sub(c.lastSeen) > l.ttl {
			delete(l.clients, ip)
		}
	}
	l.lastSweep = now
	if dropped := before - len(l.clients); dropped > 0 {
		log.Debug("Evicted idle rate limiters", "count", dropped, "remaining", len(l.clients))
	}
}

func (l *ipLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r, l.trustProxy)
		if !l.get(ip).Allow() {
			log.Warn("Login rate limit exceeded", "ip", ip)
			handlers.RespondMessage(w, http.StatusTooManyRequests, msgRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP returns the peer address of r. X-Forwarded-For is only read when
// the server sits behind a trusted proxy, and then only its last hop, which
// is the one the proxy appended.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			hops := strings.Split(fwd, ",")
			if last := strings.TrimSpace(hops[len(hops)-1]); last != "" {
				return last
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
