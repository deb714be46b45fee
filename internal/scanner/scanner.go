// Package scanner is the top-level sequential orchestrator: normalize,
// guard, fetch the homepage, fetch robots.txt and sitemap.xml, extract and
// select candidate pages, fetch the extras, analyze, flag, and assemble.
// Phases run in a fixed order over a small fixed work list, under a single
// context carrying the overall deadline, so two runs against identical
// artifacts produce identical reports.
package scanner

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/coldharbor-labs/suppression-screen/internal/analyzer"
	"github.com/coldharbor-labs/suppression-screen/internal/assembler"
	"github.com/coldharbor-labs/suppression-screen/internal/config"
	"github.com/coldharbor-labs/suppression-screen/internal/domain"
	"github.com/coldharbor-labs/suppression-screen/internal/fetcher"
	"github.com/coldharbor-labs/suppression-screen/internal/guard"
	"github.com/coldharbor-labs/suppression-screen/internal/linkextract"
	"github.com/coldharbor-labs/suppression-screen/internal/metadata"
	"github.com/coldharbor-labs/suppression-screen/internal/normalize"
	"github.com/coldharbor-labs/suppression-screen/internal/security"
	"github.com/coldharbor-labs/suppression-screen/internal/selector"
	"github.com/coldharbor-labs/suppression-screen/pkg/hashutil"
	"github.com/coldharbor-labs/suppression-screen/pkg/limiter"
	"github.com/coldharbor-labs/suppression-screen/pkg/timeutil"
)

// Clock returns the current time; Scan formats it as the UTC scan date,
// YYYY-MM-DD. Injected so tests can pin a date without depending on
// wall-clock time.
type Clock func() time.Time

// Scanner wires every pipeline stage behind one Scan entry point. A single
// Scanner is shared across concurrent requests by the HTTP entry point, so
// the only mutable per-scan state (the nonce feeding the correlation id) is
// updated atomically.
type Scanner struct {
	cfg     config.Config
	fetcher *fetcher.Fetcher
	sink    metadata.Sink
	clock   Clock
	sleeper timeutil.Sleeper
	nonce   uint64
}

func New(cfg config.Config, sink metadata.Sink, clock Clock) *Scanner {
	return NewWithSleeper(cfg, sink, clock, timeutil.NewRealSleeper())
}

// NewWithSleeper is New with an injectable Sleeper, so tests can exercise the
// politeness-limiter wiring without incurring real delays.
func NewWithSleeper(cfg config.Config, sink metadata.Sink, clock Clock, sleeper timeutil.Sleeper) *Scanner {
	return &Scanner{
		cfg:     cfg,
		fetcher: fetcher.New(cfg.FetchTimeout(), cfg.RedirectCap(), cfg.UserAgent(), cfg.BodyCapBytes(), sink),
		sink:    sink,
		clock:   clock,
		sleeper: sleeper,
	}
}

// Result is either a finished Report or an error classification, never both.
type Result struct {
	Report    *assembler.Report
	ErrorType assembler.ErrorType
	ErrorMsg  string
}

// Scan runs the full pipeline for one request. rawURL and baseline come
// directly off the request per the invocation contract; ctx should carry a
// deadline no larger than the configured overall deadline.
func (s *Scanner) Scan(ctx context.Context, rawURL string, baseline *domain.Baseline) Result {
	scanID := hashutil.NewCorrelationID(rawURL, s.nextNonce())
	start := time.Now()

	origin, nerr := normalize.Normalize(rawURL)
	if nerr != nil {
		normErr := nerr.(*normalize.NormalizationError)
		s.sink.RecordError(scanID, "normalize", "Normalize", normalize.ToMetadataCause(normErr.Cause), nerr,
			metadata.NewAttr(metadata.AttrURL, rawURL))
		return Result{ErrorType: assembler.ErrorInvalidURL, ErrorMsg: nerr.Error()}
	}

	if gerr := guard.CheckPolicy(origin, guard.Policy{AllowLoopback: s.cfg.AllowLoopback()}); gerr != nil {
		guardErr := gerr.(*guard.GuardError)
		s.sink.RecordError(scanID, "guard", "Check", guard.ToMetadataCause(guardErr.Cause), gerr,
			metadata.NewAttr(metadata.AttrHost, guardErr.Host))
		return Result{ErrorType: assembler.ErrorInvalidURL, ErrorMsg: gerr.Error()}
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.OverallDeadline())
	defer cancel()

	pace := limiter.New(s.cfg.BaseDelay(), s.cfg.Jitter(), s.cfg.RandomSeed())

	homepage := s.fetchHTMLPaced(ctx, scanID, origin, pace)
	if _, ok := homepage.HTML(); !ok {
		return Result{ErrorType: assembler.ErrorInsufficientData, ErrorMsg: "homepage HTML unavailable"}
	}

	var constraints []string
	constraints = append(constraints, homepage.Constraints()...)

	var robotsTxt *fetcher.TextArtifact
	robotsURL := origin
	robotsURL.Path = "/robots.txt"
	robots := s.fetchTextPaced(ctx, scanID, robotsURL, pace)
	if _, ok := robots.Text(); ok {
		robotsTxt = &robots
	} else {
		constraints = append(constraints, fetcher.ConstraintRobotsUnavailable)
	}
	constraints = append(constraints, robots.Constraints()...)

	var sitemapXML *fetcher.TextArtifact
	sitemapURL := origin
	sitemapURL.Path = "/sitemap.xml"
	sitemap := s.fetchTextPaced(ctx, scanID, sitemapURL, pace)
	if _, ok := sitemap.Text(); ok {
		sitemapXML = &sitemap
	} else {
		constraints = append(constraints, fetcher.ConstraintSitemapUnavailable)
	}
	constraints = append(constraints, sitemap.Constraints()...)

	extraURLs := s.selectExtraPages(origin, homepage, sitemap)
	extras := make([]fetcher.HtmlArtifact, 0, len(extraURLs))
	for _, raw := range extraURLs {
		pageURL, err := url.Parse(raw)
		if err != nil {
			continue
		}
		artifact := s.fetchHTMLPaced(ctx, scanID, *pageURL, pace)
		extras = append(extras, artifact)
		constraints = append(constraints, artifact.Constraints()...)
	}

	input := domain.NewScanInput(
		originString(origin),
		s.clock().UTC().Format("2006-01-02"),
		baseline,
		homepage,
		robotsTxt,
		sitemapXML,
		extras,
		dedupStrings(constraints),
	)

	findings := analyzer.Run(input)
	for _, f := range findings {
		s.sink.RecordRuleFired(scanID, f.RootCauseKey(), string(f.Severity()))
	}
	flags := security.Scan(allBodies(input)...)
	report := assembler.Assemble(input, findings, flags)

	s.sink.RecordFinalStats(scanID, input.PagesAnalyzed(), len(findings), time.Since(start))

	return Result{Report: &report}
}

// fetchHTMLPaced waits out the politeness limiter's resolved delay before
// issuing an HTML fetch, keeping a single scan from landing back-to-back
// requests on the target origin.
func (s *Scanner) fetchHTMLPaced(ctx context.Context, scanID string, u url.URL, pace *limiter.PoliteLimiter) fetcher.HtmlArtifact {
	s.sleeper.Sleep(pace.ResolveDelay())
	artifact := s.fetcher.FetchHTML(ctx, scanID, u)
	pace.MarkFetched()
	return artifact
}

// fetchTextPaced is fetchHTMLPaced's text-artifact counterpart, used for
// robots.txt and sitemap.xml.
func (s *Scanner) fetchTextPaced(ctx context.Context, scanID string, u url.URL, pace *limiter.PoliteLimiter) fetcher.TextArtifact {
	s.sleeper.Sleep(pace.ResolveDelay())
	artifact := s.fetcher.FetchText(ctx, scanID, u)
	pace.MarkFetched()
	return artifact
}

func (s *Scanner) selectExtraPages(origin url.URL, homepage fetcher.HtmlArtifact, sitemap fetcher.TextArtifact) []string {
	var navLinks, sitemapLocations []string

	if html, ok := homepage.HTML(); ok {
		pageURL := origin
		if parsed, err := url.Parse(homepage.FinalURL()); err == nil {
			pageURL = *parsed
		}
		navLinks = linkextract.FromHTML(html, pageURL, origin)
	}
	if text, ok := sitemap.Text(); ok {
		sitemapURL, err := url.Parse(sitemap.FinalURL())
		if err == nil {
			sitemapLocations = linkextract.FromSitemap(text, *sitemapURL, origin)
		}
	}

	navPicks := selector.SelectNavPages(navLinks)
	sitemapPicks := selector.SelectSitemapPages(sitemapLocations)
	return selector.ExtraPages(navPicks, sitemapPicks)
}

func (s *Scanner) nextNonce() uint64 {
	return atomic.AddUint64(&s.nonce, 1)
}

func originString(u url.URL) string {
	return fmt.Sprintf("%s://%s", u.Scheme, u.Host)
}

func dedupStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func allBodies(input domain.ScanInput) []string {
	var bodies []string
	if html, ok := input.Homepage().HTML(); ok {
		bodies = append(bodies, html)
	}
	if robots := input.RobotsTxt(); robots != nil {
		if text, ok := robots.Text(); ok {
			bodies = append(bodies, text)
		}
	}
	if sitemap := input.SitemapXML(); sitemap != nil {
		if text, ok := sitemap.Text(); ok {
			bodies = append(bodies, text)
		}
	}
	for _, p := range input.ExtraPages() {
		if html, ok := p.HTML(); ok {
			bodies = append(bodies, html)
		}
	}
	return bodies
}
