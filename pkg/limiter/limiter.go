// Package limiter paces the sequential same-origin fetches a single scan
// issues, so one scan does not land back-to-back requests on the target
// host. It carries no state across scans or requests to different hosts.
package limiter

import (
	"math/rand"
	"time"
)

// PoliteLimiter tracks the last-fetch timestamp for a single origin within
// one scan and resolves how long the next fetch should wait.
type PoliteLimiter struct {
	baseDelay time.Duration
	jitter    time.Duration
	rng       *rand.Rand

	lastFetchAt time.Time
	hasFetched  bool
}

func New(baseDelay, jitter time.Duration, randomSeed int64) *PoliteLimiter {
	return &PoliteLimiter{
		baseDelay: baseDelay,
		jitter:    jitter,
		rng:       rand.New(rand.NewSource(randomSeed)),
	}
}

// ResolveDelay returns how long to wait before the next fetch, given when the
// previous one completed. It does not record a fetch (it only advances the
// jitter RNG); call MarkFetched after the wait to record the timestamp the
// next call measures from.
func (p *PoliteLimiter) ResolveDelay() time.Duration {
	if !p.hasFetched {
		return 0
	}
	delay := p.baseDelay + p.computeJitter()
	elapsed := time.Since(p.lastFetchAt)
	if elapsed < delay {
		return delay - elapsed
	}
	return 0
}

// MarkFetched records that a fetch just completed, for the next ResolveDelay call.
func (p *PoliteLimiter) MarkFetched() {
	p.lastFetchAt = time.Now()
	p.hasFetched = true
}

func (p *PoliteLimiter) computeJitter() time.Duration {
	if p.jitter <= 0 {
		return 0
	}
	return time.Duration(p.rng.Int63n(int64(p.jitter)))
}
