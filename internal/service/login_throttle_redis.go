package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisLoginFailScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisThrottleClient interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisLoginThrottle struct {
	client redisThrottleClient
	window time.Duration
	max    int
	prefix string
}

// NewRedisLoginThrottle comparte el contador de fallos entre instancias.
func NewRedisLoginThrottle(client *redis.Client, window time.Duration, max int) LoginThrottle {
	if client == nil || max <= 0 {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	return &redisLoginThrottle{
		client: client,
		window: window,
		max:    max,
		prefix: "login:fail:",
	}
}

// Blocked falla abierto si redis no responde.
func (l *redisLoginThrottle) Blocked(key string) bool {
	if l == nil || l.client == nil {
		return false
	}
	key = normalizeThrottleKey(key)
	if key == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	count, err := l.client.Get(ctx, l.prefix+key).Int()
	if err != nil {
		return false
	}
	return count >= l.max
}

func (l *redisLoginThrottle) Fail(key string) {
	if l == nil || l.client == nil {
		return
	}
	key = normalizeThrottleKey(key)
	if key == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	_ = l.client.Eval(ctx, redisLoginFailScript, []string{l.prefix + key}, seconds).Err()
}

func (l *redisLoginThrottle) Reset(key string) {
	if l == nil || l.client == nil {
		return
	}
	key = normalizeThrottleKey(key)
	if key == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_ = l.client.Del(ctx, l.prefix+key).Err()
}
