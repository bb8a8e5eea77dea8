package cart_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"prince-pos/internal/cart"
)

func TestDebouncer_TrailingEdgeCoalescing(t *testing.T) {
	debouncer := cart.NewDebouncer(30 * time.Millisecond)

	var fired int32
	var last int32
	for i := 1; i <= 5; i++ {
		value := int32(i)
		debouncer.Do(func() {
			atomic.AddInt32(&fired, 1)
			atomic.StoreInt32(&last, value)
		})
	}

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&fired) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(5), atomic.LoadInt32(&last))

	// Quiet period passed; a new call starts a fresh window.
	debouncer.Do(func() { atomic.AddInt32(&fired, 1) })
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&fired) == 2
	}, time.Second, 5*time.Millisecond)
}

func TestDebouncer_Stop(t *testing.T) {
	debouncer := cart.NewDebouncer(20 * time.Millisecond)

	var fired int32
	debouncer.Do(func() { atomic.AddInt32(&fired, 1) })
	debouncer.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))
}
