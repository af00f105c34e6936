package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/AnshRaj112/moodjournal-backend/pkg/clientip"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// RateLimitKeyPrefix is the Redis key prefix for per-IP counters
	RateLimitKeyPrefix = "ratelimit:"

	limiterSweepInterval = 5 * time.Minute
	limiterTTL           = 30 * time.Minute
)

// --- In-memory per-IP token bucket ---

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

// IPRateLimiter keeps one token bucket per client IP. Idle buckets are
// evicted during Allow, at most once per sweep interval.
type IPRateLimiter struct {
	// ClientIP keys the buckets; defaults to clientip.RealClientIP.
	ClientIP clientip.Func

	mu        sync.Mutex
	entries   map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		ClientIP:  clientip.RealClientIP,
		entries:   make(map[string]*limiterEntry),
		limit:     rate.Limit(rps),
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Allow reports whether a request from ip may proceed now.
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > limiterSweepInterval {
		for k, e := range l.entries {
			if now.Sub(e.lastUse) > limiterTTL {
				delete(l.entries, k)
			}
		}
		l.lastSweep = now
	}

	e, ok := l.entries[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[ip] = e
	}
	e.lastUse = now
	return e.limiter.AllowN(now, 1)
}

func (l *IPRateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Middleware returns 429 when the client IP has exhausted its bucket.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(l.ClientIP(r)) {
			writeError(w, http.StatusTooManyRequests, "Too Many Requests", "Too many requests. Please slow down.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- Redis fixed-window counter ---

// redisCounter is the subset of the go-redis client the limiter uses.
type redisCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisRateLimiter counts requests per IP in a fixed window shared by every
// instance using the same Redis. Redis errors let the request through.
type RedisRateLimiter struct {
	// ClientIP keys the counters; defaults to clientip.RealClientIP.
	ClientIP clientip.Func

	client      redisCounter
	maxRequests int
	window      time.Duration
}

func NewRedisRateLimiter(client redisCounter, maxRequests int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		ClientIP:    clientip.RealClientIP,
		client:      client,
		maxRequests: maxRequests,
		window:      window,
	}
}

func (l *RedisRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		key := RateLimitKeyPrefix + l.ClientIP(r)

		count, err := l.client.Incr(ctx, key).Result()
		if err != nil {
			// Fail open
			zerolog.Ctx(ctx).Warn().Err(err).Msg("rate limiter: redis unavailable")
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
				// A counter without a TTL never resets; drop it and start over next time.
				l.client.Del(ctx, key)
				zerolog.Ctx(ctx).Warn().Err(err).Msg("rate limiter: redis expire failed")
				next.ServeHTTP(w, r)
				return
			}
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.maxRequests))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(l.window).Unix(), 10))

		if count > int64(l.maxRequests) {
			// TTL of -1 means the key outlived a failed or missed EXPIRE.
			if ttl, err := l.client.TTL(ctx, key).Result(); err == nil && ttl == -1 {
				l.client.Expire(ctx, key, l.window)
			}
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			writeError(w, http.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded. Please try again later.")
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(int64(l.maxRequests)-count, 10))
		next.ServeHTTP(w, r)
	})
}
