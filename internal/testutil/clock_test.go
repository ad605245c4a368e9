package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock_StartsFrozen(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewClock(start)

	assert.Equal(t, start, clock.Now())
	assert.Equal(t, start, clock.Now(), "repeated reads must not advance")
}

func TestClock_Advance(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewClock(start)

	clock.Advance(48 * time.Hour)
	assert.Equal(t, start.Add(48*time.Hour), clock.Now())

	clock.Advance(time.Minute)
	assert.Equal(t, start.Add(48*time.Hour+time.Minute), clock.Now())
}

func TestClock_Set(t *testing.T) {
	clock := NewClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	past := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	clock.Set(past)
	assert.Equal(t, past, clock.Now())
}

func TestClock_ThreadSafe(t *testing.T) {
	clock := NewClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	const numGoroutines = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines * 2)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			clock.Advance(time.Second)
		}()
		go func() {
			defer wg.Done()
			_ = clock.Now()
		}()
	}
	wg.Wait()

	want := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(numGoroutines * time.Second)
	assert.Equal(t, want, clock.Now())
}
