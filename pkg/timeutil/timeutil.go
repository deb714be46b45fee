// Package timeutil holds the small time helpers the scanner uses to wait out
// the politeness limiter's delays.
package timeutil

import "time"

// Sleeper abstracts time.Sleep so tests can run a scan without real delays.
type Sleeper interface {
	Sleep(d time.Duration)
}

type RealSleeper struct{}

func NewRealSleeper() RealSleeper { return RealSleeper{} }

func (RealSleeper) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// NoopSleeper is used in tests where delays must not slow down the suite.
type NoopSleeper struct{}

func (NoopSleeper) Sleep(time.Duration) {}
