package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/osse101/FishBot_Go/internal/logger"
)

// AuthMiddleware rejects requests without the shared API key
func AuthMiddleware(apiKey string, trustedProxies []string, detector *ActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			providedKey := r.Header.Get(HeaderAPIKey)

			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := extractIP(r, trustedProxies)
				detector.RecordFailedAuth(ip)

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware answers 429 once a client exceeds the detector's window budget
func RateLimitMiddleware(trustedProxies []string, detector *ActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.RecordRequest(extractIP(r, trustedProxies)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set(HeaderContentType, HeaderValueNoSniff)
		h.Set(HeaderFrameOptions, HeaderValueDeny)
		h.Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
		next.ServeHTTP(w, r)
	})
}

// ActivityDetector counts requests and failed auth per IP over a fixed window
type ActivityDetector struct {
	mu          sync.Mutex
	window      time.Duration
	maxRequests int
	alertAfter  int
	failedAuth  map[string]int
	requests    map[string]int
	windowStart time.Time
	now         func() time.Time
}

// NewActivityDetector uses the default window and thresholds
func NewActivityDetector() *ActivityDetector {
	return &ActivityDetector{
		window:      DefaultRateWindow,
		maxRequests: DefaultMaxRequests,
		alertAfter:  DefaultFailedAuthAlert,
		failedAuth:  make(map[string]int),
		requests:    make(map[string]int),
		windowStart: time.Now(),
		now:         time.Now,
	}
}

// RecordFailedAuth records a failed authentication attempt and alerts past the threshold
func (d *ActivityDetector) RecordFailedAuth(ip string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.roll()
	d.failedAuth[ip]++
	if n := d.failedAuth[ip]; n >= d.alertAfter {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", n)
	}
}

// RecordRequest returns false once ip is over budget for the current window
func (d *ActivityDetector) RecordRequest(ip string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.roll()
	d.requests[ip]++
	n := d.requests[ip]
	if n <= d.maxRequests {
		return true
	}
	if n%highRateLogEvery == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", n)
	}
	return false
}

// roll starts a new window when the current one has passed. Caller holds mu.
func (d *ActivityDetector) roll() {
	now := d.now()
	if now.Sub(d.windowStart) > d.window {
		clear(d.requests)
		clear(d.failedAuth)
		d.windowStart = now
	}
}

// extractIP returns the client address. X-Forwarded-For is honored only when
// the direct peer is a trusted proxy, and then its rightmost hop is used.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if slices.Contains(trustedProxies, remoteIP) {
		if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
			hops := strings.Split(forwarded, ",")
			return strings.TrimSpace(hops[len(hops)-1])
		}
	}
	return remoteIP
}
