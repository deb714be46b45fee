package limiter_test

import (
	"testing"
	"time"

	"github.com/coldharbor-labs/suppression-screen/pkg/limiter"
	"github.com/stretchr/testify/assert"
)

func TestResolveDelay_ZeroBeforeFirstFetch(t *testing.T) {
	l := limiter.New(time.Second, 0, 1)
	assert.Equal(t, time.Duration(0), l.ResolveDelay())
}

func TestResolveDelay_AfterFetchWithinWindow(t *testing.T) {
	l := limiter.New(time.Hour, 0, 1)
	l.MarkFetched()

	delay := l.ResolveDelay()
	assert.Greater(t, delay, time.Duration(0))
	assert.LessOrEqual(t, delay, time.Hour)
}

func TestResolveDelay_ZeroOnceDelayElapsed(t *testing.T) {
	l := limiter.New(time.Nanosecond, 0, 1)
	l.MarkFetched()
	time.Sleep(time.Millisecond)
	assert.Equal(t, time.Duration(0), l.ResolveDelay())
}

func TestResolveDelay_JitterBoundedByConfiguredMax(t *testing.T) {
	l := limiter.New(100*time.Millisecond, 50*time.Millisecond, 42)
	l.MarkFetched()

	delay := l.ResolveDelay()
	assert.LessOrEqual(t, delay, 150*time.Millisecond)
}
