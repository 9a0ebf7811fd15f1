// Package middleware contains http middlewares shared by API handlers.
package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
	"github.com/tomasen/realip"
	"golang.org/x/time/rate"
)

var log = logrus.WithField("layer", "server").WithField("package", "middleware")

// UserIDHeader is set by the gateway to the authenticated user's id.
const UserIDHeader = "X-User-Id"

const (
	limitersSize = 10000
	limitersTTL  = 10 * time.Minute
)

type requesterKey struct{}

// Logger logs every request with its status and duration.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		l := log.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"ip":         realip.FromRequest(r),
			"duration":   time.Since(start).String(),
		})

		if ww.Status() >= http.StatusInternalServerError {
			l.Warn("request failed")
			return
		}
		l.Debug("request served")
	})
}

// BodyLimiter limits request body size.
func BodyLimiter(size int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, size)
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit limits requests per client ip. Limiters of clients not seen for a while are dropped.
// Zero limit disables limiting.
func RateLimit(limit rate.Limit, burst int) func(http.Handler) http.Handler {
	if limit == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	var mu sync.Mutex
	limiters := expirable.NewLRU[string, *rate.Limiter](limitersSize, nil, limitersTTL)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := realip.FromRequest(r)

			mu.Lock()
			l, ok := limiters.Get(ip)
			if !ok {
				l = rate.NewLimiter(limit, burst)
				limiters.Add(ip, l)
			}
			mu.Unlock()

			if !l.Allow() {
				w.Header().Set("Retry-After", "1")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Requester puts user id from UserIDHeader into request's context.
// Requests with malformed header are rejected, requests without header are passed as anonymous.
func Requester(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := r.Header.Get(UserIDHeader)
		if v == "" {
			next.ServeHTTP(w, r)
			return
		}

		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "invalid "+UserIDHeader, http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requesterKey{}, id)))
	})
}

// GetRequester returns user id put by Requester.
func GetRequester(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(requesterKey{}).(int64)
	return id, ok
}
