package http

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tair/gift-rooms/pkg/logger"
)

// RateLimiter implements a sliding window rate limit per client using Redis.
// Clients are keyed by the connection's peer address; X-Forwarded-For is
// only read when the peer is one of the trusted proxies.
type RateLimiter struct {
	redis          *redis.Client
	maxRequests    int
	window         time.Duration
	trustedProxies []netip.Prefix
}

// NewRateLimiter creates a new rate limiter. trustedProxies holds IPs or
// CIDR ranges; invalid entries are logged and skipped.
func NewRateLimiter(redisClient *redis.Client, maxRequests int, window time.Duration, trustedProxies []string) *RateLimiter {
	return &RateLimiter{
		redis:          redisClient,
		maxRequests:    maxRequests,
		window:         window,
		trustedProxies: parseTrustedProxies(trustedProxies),
	}
}

func parseTrustedProxies(entries []string) []netip.Prefix {
	var prefixes []netip.Prefix
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				logger.Logger.Warn().Err(err).Str("entry", entry).Msg("Ignoring invalid trusted proxy")
				continue
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			logger.Logger.Warn().Err(err).Str("entry", entry).Msg("Ignoring invalid trusted proxy")
			continue
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		identifier := rl.clientIP(r)

		allowed, remaining, resetTime, err := rl.checkLimit(ctx, identifier)
		if err != nil {
			// Fail open
			logger.Error(ctx).
				Err(err).
				Str("identifier", identifier).
				Msg("Rate limiter error")
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.maxRequests))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			logger.Warn(ctx).
				Str("identifier", identifier).
				Int("limit", rl.maxRequests).
				Msg("Rate limit exceeded")

			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			respondError(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// checkLimit records the request and reports whether it fits in the window
func (rl *RateLimiter) checkLimit(ctx context.Context, identifier string) (bool, int, time.Time, error) {
	key := fmt.Sprintf("ratelimit:%s", identifier)
	now := time.Now()
	windowStart := now.Add(-rl.window)

	pipe := rl.redis.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	countCmd := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: uuid.NewString(),
	})
	pipe.Expire(ctx, key, rl.window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := countCmd.Val()
	remaining := rl.maxRequests - int(count) - 1
	if remaining < 0 {
		remaining = 0
	}

	return count < int64(rl.maxRequests), remaining, now.Add(rl.window), nil
}

// clientIP returns the peer address, or when the peer is a trusted proxy,
// the right-most X-Forwarded-For hop that is not itself trusted.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	peer, err := netip.ParseAddr(host)
	if err != nil || !rl.trusted(peer) {
		return host
	}

	client := peer.Unmap()
	hops := strings.Split(strings.Join(r.Header.Values("X-Forwarded-For"), ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		addr, err := netip.ParseAddr(hop)
		if err != nil {
			break
		}
		client = addr.Unmap()
		if !rl.trusted(client) {
			break
		}
	}
	return client.String()
}

func (rl *RateLimiter) trusted(addr netip.Addr) bool {
	addr = addr.Unmap()
	for _, prefix := range rl.trustedProxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}
