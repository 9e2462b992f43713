package middleware

import (
	"context"
	"dijital-backend/pkg/redis"
	"dijital-backend/pkg/response"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const MessageTooManyRequests = "Çok fazla istek gönderdiniz. Lütfen daha sonra tekrar deneyin."

// LimiterStore decides whether one more request from key is allowed.
type LimiterStore interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type rateLimiter struct {
	bucket    map[string]*visitor
	max       int
	window    time.Duration
	lastSweep time.Time
	mutex     *sync.Mutex
	now       func() time.Time
}

// visitor holds one fixed window for a key. The limiter has a zero refill
// rate, so it hands out exactly max tokens until the window is replaced.
type visitor struct {
	limiter     *rate.Limiter
	windowStart time.Time
}

// NewMemoryLimiter allows max requests per key in each fixed window that
// starts with the key's first request.
func NewMemoryLimiter(max int, window time.Duration) LimiterStore {
	return newRateLimiter(max, window)
}

func newRateLimiter(max int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		bucket: make(map[string]*visitor),
		max:    max,
		window: window,
		mutex:  &sync.Mutex{},
		now:    time.Now,
	}
}

func (r *rateLimiter) Allow(_ context.Context, key string) (bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := r.now()
	return r.getLimiterFrom(key, now).AllowN(now, 1), nil
}

func (r *rateLimiter) getLimiterFrom(ip string, now time.Time) *rate.Limiter {
	if now.Sub(r.lastSweep) > r.window {
		for key, v := range r.bucket {
			if now.Sub(v.windowStart) >= r.window {
				delete(r.bucket, key)
			}
		}
		r.lastSweep = now
	}

	v, exist := r.bucket[ip]
	if !exist || now.Sub(v.windowStart) >= r.window {
		v = &visitor{
			limiter:     rate.NewLimiter(0, r.max),
			windowStart: now,
		}
		r.bucket[ip] = v
	}

	return v.limiter
}

// redisLimiter is a fixed window counter shared by every instance that
// points at the same redis.
type redisLimiter struct {
	client redis.IRedis
	prefix string
	max    int64
	window time.Duration
}

func NewRedisLimiter(client redis.IRedis, prefix string, max int, window time.Duration) LimiterStore {
	return &redisLimiter{
		client: client,
		prefix: prefix,
		max:    int64(max),
		window: window,
	}
}

func (r *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	hits, err := r.client.HitWindow(ctx, r.prefix+":"+key, r.window)
	if err != nil {
		return true, err
	}
	return hits <= r.max, nil
}

func (m *middleware) NewContactRateLimiter(ctx *fiber.Ctx) error {
	return m.limit(ctx, m.contactLimiter, "contact")
}

func (m *middleware) NewLoginRateLimiter(ctx *fiber.Ctx) error {
	return m.limit(ctx, m.loginLimiter, "login")
}

func (m *middleware) limit(ctx *fiber.Ctx, store LimiterStore, scope string) error {
	if store == nil {
		return ctx.Next()
	}

	clientIP := ctx.IP()
	allowed, err := store.Allow(ctx.UserContext(), clientIP)
	if err != nil {
		// fail open when the limiter backend is down
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"scope":      scope,
			"error":      err.Error(),
		}).Error("Rate limiter unavailable")
	}

	if !allowed {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"scope":      scope,
			"ip":         clientIP,
		}).Warn("Too many requests")
		return ctx.Status(fiber.StatusTooManyRequests).JSON(response.Failure(MessageTooManyRequests))
	}

	return ctx.Next()
}
