package inflight

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardRejectsSecondAcquire(t *testing.T) {
	g := NewGuard()

	assert.True(t, g.TryAcquire("mint", "0xabc"))
	assert.False(t, g.TryAcquire("mint", "0xabc"))

	g.Release("mint", "0xabc")
	assert.True(t, g.TryAcquire("mint", "0xabc"))
}

func TestGuardIsolatesActionsAndKeys(t *testing.T) {
	g := NewGuard()

	assert.True(t, g.TryAcquire("mint", "0xabc"))
	assert.True(t, g.TryAcquire("mint", "0xdef"))
	assert.True(t, g.TryAcquire("tracking", "0xabc"))
}

func TestGuardConcurrentAcquireAdmitsOne(t *testing.T) {
	g := NewGuard()

	var admitted int64
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryAcquire("mint", "0xabc") {
				atomic.AddInt64(&admitted, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), admitted)
}
