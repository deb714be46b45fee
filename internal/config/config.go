// Package config holds the scan's tunables as an immutable, functional-options
// built value.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Config carries every bound the scan pipeline enforces. All fields have
// sane defaults; callers generally only need WithDefault().Build().
type Config struct {
	// fetchTimeout bounds a single artifact fetch.
	fetchTimeout time.Duration
	// overallDeadline bounds the whole scan, across every fetch phase.
	overallDeadline time.Duration
	// redirectCap is the maximum number of redirects a fetch follows.
	redirectCap int
	// bodyCapBytes is the maximum retained artifact body size in characters.
	bodyCapBytes int
	// userAgent is sent on every outbound fetch.
	userAgent string
	// baseDelay/jitter/randomSeed drive the politeness limiter between fetches.
	baseDelay  time.Duration
	jitter     time.Duration
	randomSeed int64
	// listenAddr is the HTTP entry point's bind address.
	listenAddr string
	// allowLoopback relaxes the guard's loopback check for local development
	// and tests. Deliberately not loadable from a config file.
	allowLoopback bool
}

type configDTO struct {
	FetchTimeoutMs     int64  `json:"fetchTimeoutMs,omitempty"`
	OverallDeadlineMs  int64  `json:"overallDeadlineMs,omitempty"`
	RedirectCap        int    `json:"redirectCap,omitempty"`
	BodyCapBytes       int    `json:"bodyCapBytes,omitempty"`
	UserAgent          string `json:"userAgent,omitempty"`
	BaseDelayMs        int64  `json:"baseDelayMs,omitempty"`
	JitterMs           int64  `json:"jitterMs,omitempty"`
	RandomSeed         int64  `json:"randomSeed,omitempty"`
	ListenAddr         string `json:"listenAddr,omitempty"`
}

// WithDefault returns a builder seeded with the standard scan bounds: a 12s
// per-fetch timeout under a 30s overall deadline, 5 redirects, and a 120,000
// character body cap.
func WithDefault() *Config {
	return &Config{
		fetchTimeout:    12 * time.Second,
		overallDeadline: 30 * time.Second,
		redirectCap:     5,
		bodyCapBytes:    120_000,
		userAgent:       "suppression-screen/1.0",
		baseDelay:       250 * time.Millisecond,
		jitter:          150 * time.Millisecond,
		randomSeed:      1,
		listenAddr:      ":8080",
	}
}

func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}

	var dto configDTO
	if err := json.Unmarshal(content, &dto); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	cfg := WithDefault()
	if dto.FetchTimeoutMs != 0 {
		cfg.fetchTimeout = time.Duration(dto.FetchTimeoutMs) * time.Millisecond
	}
	if dto.OverallDeadlineMs != 0 {
		cfg.overallDeadline = time.Duration(dto.OverallDeadlineMs) * time.Millisecond
	}
	if dto.RedirectCap != 0 {
		cfg.redirectCap = dto.RedirectCap
	}
	if dto.BodyCapBytes != 0 {
		cfg.bodyCapBytes = dto.BodyCapBytes
	}
	if dto.UserAgent != "" {
		cfg.userAgent = dto.UserAgent
	}
	if dto.BaseDelayMs != 0 {
		cfg.baseDelay = time.Duration(dto.BaseDelayMs) * time.Millisecond
	}
	if dto.JitterMs != 0 {
		cfg.jitter = time.Duration(dto.JitterMs) * time.Millisecond
	}
	if dto.RandomSeed != 0 {
		cfg.randomSeed = dto.RandomSeed
	}
	if dto.ListenAddr != "" {
		cfg.listenAddr = dto.ListenAddr
	}

	return cfg.Build()
}

func (c *Config) WithFetchTimeout(d time.Duration) *Config    { c.fetchTimeout = d; return c }
func (c *Config) WithOverallDeadline(d time.Duration) *Config { c.overallDeadline = d; return c }
func (c *Config) WithRedirectCap(n int) *Config               { c.redirectCap = n; return c }
func (c *Config) WithBodyCapBytes(n int) *Config              { c.bodyCapBytes = n; return c }
func (c *Config) WithUserAgent(ua string) *Config             { c.userAgent = ua; return c }
func (c *Config) WithBaseDelay(d time.Duration) *Config       { c.baseDelay = d; return c }
func (c *Config) WithJitter(d time.Duration) *Config          { c.jitter = d; return c }
func (c *Config) WithRandomSeed(seed int64) *Config           { c.randomSeed = seed; return c }
func (c *Config) WithListenAddr(addr string) *Config          { c.listenAddr = addr; return c }
func (c *Config) WithAllowLoopback(allow bool) *Config        { c.allowLoopback = allow; return c }

// Build validates and returns the finished, immutable Config.
func (c *Config) Build() (Config, error) {
	if c.fetchTimeout <= 0 {
		return Config{}, fmt.Errorf("%w: fetchTimeout must be positive", ErrInvalidConfig)
	}
	if c.overallDeadline < c.fetchTimeout {
		return Config{}, fmt.Errorf("%w: overallDeadline must be >= fetchTimeout", ErrInvalidConfig)
	}
	if c.redirectCap < 0 {
		return Config{}, fmt.Errorf("%w: redirectCap cannot be negative", ErrInvalidConfig)
	}
	if c.bodyCapBytes <= 0 {
		return Config{}, fmt.Errorf("%w: bodyCapBytes must be positive", ErrInvalidConfig)
	}
	if c.userAgent == "" {
		return Config{}, fmt.Errorf("%w: userAgent cannot be empty", ErrInvalidConfig)
	}
	return *c, nil
}

func (c Config) FetchTimeout() time.Duration    { return c.fetchTimeout }
func (c Config) OverallDeadline() time.Duration { return c.overallDeadline }
func (c Config) RedirectCap() int               { return c.redirectCap }
func (c Config) BodyCapBytes() int              { return c.bodyCapBytes }
func (c Config) UserAgent() string              { return c.userAgent }
func (c Config) BaseDelay() time.Duration       { return c.baseDelay }
func (c Config) Jitter() time.Duration          { return c.jitter }
func (c Config) RandomSeed() int64              { return c.randomSeed }
func (c Config) ListenAddr() string             { return c.listenAddr }
func (c Config) AllowLoopback() bool            { return c.allowLoopback }
