package middleware

import (
	"crypto/subtle"
	"errors"
	"net"
	"net/http"
	"seatdesk/shared"
	"seatdesk/shared/cache"
	"seatdesk/shared/constant"
	"seatdesk/transport/http/response"
	"strconv"
	"strings"
)

const (
	cacheKeyRateLimit = "limiter"

	unknownUserAgent = "unknown"
	streamPathSuffix = "/stream"
)

var unlimitedPaths = map[string]struct{}{
	"/healthz": {},
	"/metrics": {},
}

// RateLimit throttles per client address and user agent in a fixed window.
// Scanner devices presenting the API key are exempt: the scan gate already
// absorbs their bursts. Probes and open occupancy streams are exempt too.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.config.App.RateLimiter.Enable || a.exempt(r) {
				next.ServeHTTP(w, r)

				return
			}

			maxReqs := a.config.App.RateLimiter.MaxRequests
			windowSecs := a.config.App.RateLimiter.WindowSeconds

			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, a.getClientIP(r), a.getUA(r))

			var count int
			err := a.cache.Get(r.Context(), cacheKey, &count)

			switch {
			case errors.Is(err, cache.Nil):
				count = 1
			case err != nil:
				next.ServeHTTP(w, r)

				return
			default:
				count++
			}

			if count > maxReqs {
				response.WithRequestLimitExceeded(w)

				return
			}

			if err := a.cache.Save(r.Context(), cacheKey, count, windowSecs); err != nil {
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, maxReqs-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

			next.ServeHTTP(w, r)
		})
	}
}

func (a *appMiddleware) exempt(r *http.Request) bool {
	if _, ok := unlimitedPaths[r.URL.Path]; ok {
		return true
	}

	if strings.HasSuffix(r.URL.Path, streamPathSuffix) {
		return true
	}

	apiKey := r.Header.Get(constant.RequestHeaderAPIKey)

	return apiKey != "" && a.config.App.APIKey != "" &&
		subtle.ConstantTimeCompare([]byte(apiKey), []byte(a.config.App.APIKey)) == 1
}

func (a *appMiddleware) getUA(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = unknownUserAgent
	}

	return ua
}

// getClientIP reads RemoteAddr, which chi's RealIP has already rewritten
// from X-Forwarded-For or X-Real-IP when a proxy sits in front.
func (a *appMiddleware) getClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
