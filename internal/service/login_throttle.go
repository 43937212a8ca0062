package service

import (
	"strings"
	"sync"
	"time"
)

// LoginThrottle limita intentos fallidos de login por email.
type LoginThrottle interface {
	Blocked(key string) bool
	Fail(key string)
	Reset(key string)
}

type loginThrottle struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	hits   map[string][]time.Time
}

// NewLoginThrottle crea un limitador en memoria. max <= 0 desactiva el limite.
func NewLoginThrottle(window time.Duration, max int) LoginThrottle {
	if max <= 0 {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	return &loginThrottle{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
	}
}

func (l *loginThrottle) Blocked(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.prune(normalizeThrottleKey(key), time.Now().UTC())) >= l.max
}

func (l *loginThrottle) Fail(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key = normalizeThrottleKey(key)
	now := time.Now().UTC()
	l.hits[key] = append(l.prune(key, now), now)
}

func (l *loginThrottle) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.hits, normalizeThrottleKey(key))
}

// prune descarta fallos fuera de la ventana. Requiere l.mu tomado.
func (l *loginThrottle) prune(key string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	entries := l.hits[key]
	kept := entries[:0]
	for _, ts := range entries {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) == 0 {
		delete(l.hits, key)
		return nil
	}
	l.hits[key] = kept
	return kept
}

// La clave del limitador si se normaliza: Bob@x y bob@x comparten contador.
func normalizeThrottleKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
