package indexer

import (
	"sync"
	"time"
)

// Gate is a per-endpoint courtesy throttle. A call is rejected when less than
// one minute / rate has passed since the last accepted call to the same key.
// It never waits and never queues.
type Gate struct {
	defaultRate int
	rates       map[string]int

	mu   sync.Mutex
	last map[string]time.Time
	now  func() time.Time
}

// NewGate creates a gate. rates overrides defaultRate per endpoint key,
// a rate <= 0 disables the check for that key.
func NewGate(defaultRate int, rates map[string]int) *Gate {
	r := make(map[string]int, len(rates))
	for k, v := range rates {
		r[k] = v
	}
	return &Gate{
		defaultRate: defaultRate,
		rates:       r,
		last:        make(map[string]time.Time),
		now:         time.Now,
	}
}

// Interval returns the minimum spacing between two calls to key, zero if unlimited.
func (g *Gate) Interval(key string) time.Duration {
	rate, ok := g.rates[key]
	if !ok {
		rate = g.defaultRate
	}
	if rate <= 0 {
		return 0
	}
	return time.Minute / time.Duration(rate)
}

// Allow records the call and returns true if key is outside its window.
func (g *Gate) Allow(key string) bool {
	if g == nil {
		return true
	}
	interval := g.Interval(key)
	if interval == 0 {
		return true
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	if last, ok := g.last[key]; ok && now.Sub(last) < interval {
		return false
	}
	g.last[key] = now
	return true
}
