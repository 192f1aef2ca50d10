package indexer

import (
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestGateInterval(t *testing.T) {
	g := NewGate(60, map[string]int{"fast": 600, "off": 0})
	assert.Equal(t, time.Second, g.Interval("other"))
	assert.Equal(t, 100*time.Millisecond, g.Interval("fast"))
	assert.Equal(t, time.Duration(0), g.Interval("off"))
}

func TestGateRejectsWithinWindow(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	g := NewGate(30, nil) // one call every 2s
	g.now = func() time.Time { return now }

	assert.True(t, g.Allow(EndpointObjktToken))
	now = now.Add(time.Second)
	assert.False(t, g.Allow(EndpointObjktToken), "second call inside the window")
	assert.True(t, g.Allow(EndpointTzktTokens), "keys are independent")

	// a rejected call does not move the window
	now = now.Add(time.Second)
	assert.True(t, g.Allow(EndpointObjktToken))
}

func TestGateDisabled(t *testing.T) {
	g := NewGate(0, nil)
	for i := 0; i < 5; i++ {
		assert.True(t, g.Allow("any"))
	}
	var nilGate *Gate
	assert.True(t, nilGate.Allow("any"))
}
