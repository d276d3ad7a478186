package utils

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_CleanupDropsIdleClients(t *testing.T) {
	now := time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	rl.limiter("198.51.100.1")
	now = now.Add(5 * time.Minute)
	rl.limiter("198.51.100.2")
	now = now.Add(6 * time.Minute)

	assert.Equal(t, 1, rl.Cleanup(limiterIdleAfter))
	assert.Equal(t, 1, rl.Len())
}

func TestRateLimiter_BoundedClientCount(t *testing.T) {
	now := time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	for i := 0; i < maxLimiters+50; i++ {
		now = now.Add(time.Millisecond)
		rl.limiter(fmt.Sprintf("key-%d", i))
	}
	assert.Equal(t, maxLimiters, rl.Len())

	// the first key was the least recently seen and has been evicted
	rl.mu.Lock()
	_, first := rl.limiters["key-0"]
	_, last := rl.limiters[fmt.Sprintf("key-%d", maxLimiters+49)]
	rl.mu.Unlock()
	assert.False(t, first)
	assert.True(t, last)
}
