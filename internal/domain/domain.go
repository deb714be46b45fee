// Package domain holds the scan's shared, immutable value types: the
// analyzer's input snapshot, the caller-supplied baseline, and a finding.
// Every fetch artifact type lives in package fetcher; domain only composes
// them into the shapes the analyzer, rollup, and assembler pass around.
package domain

import "github.com/coldharbor-labs/suppression-screen/internal/fetcher"

// Severity is the analyzer's four-level finding priority. P0 is a kill
// switch, P3 is hygiene.
type Severity string

const (
	P0 Severity = "P0"
	P1 Severity = "P1"
	P2 Severity = "P2"
	P3 Severity = "P3"
)

// RiskLevel is the report's coarse, caller-facing risk rating.
type RiskLevel string

const (
	RiskRed   RiskLevel = "RED"
	RiskAmber RiskLevel = "AMBER"
	RiskGreen RiskLevel = "GREEN"
)

// Trajectory is the direction of risk-level change relative to a baseline.
type Trajectory string

const (
	TrajectoryUp     Trajectory = "UP"
	TrajectoryStable Trajectory = "STABLE"
	TrajectoryDown   Trajectory = "DOWN"
)

// Baseline is the caller-supplied prior scan summary. Only the risk level
// drives trajectory; the P-counts are carried through for caller bookkeeping
// only.
type Baseline struct {
	riskLevel RiskLevel
	scanDate  string
	p0        int
	p1        int
	p2        int
	p3        int
}

func NewBaseline(riskLevel RiskLevel, scanDate string, p0, p1, p2, p3 int) Baseline {
	return Baseline{
		riskLevel: riskLevel,
		scanDate:  scanDate,
		p0:        p0,
		p1:        p1,
		p2:        p2,
		p3:        p3,
	}
}

func (b Baseline) RiskLevel() RiskLevel { return b.riskLevel }
func (b Baseline) ScanDate() string     { return b.scanDate }
func (b Baseline) P0() int              { return b.p0 }
func (b Baseline) P1() int              { return b.p1 }
func (b Baseline) P2() int              { return b.p2 }
func (b Baseline) P3() int              { return b.p3 }

// Finding is one analyzer-internal suppression signal, keyed by a root cause
// so repeated occurrences collapse into a single count.
type Finding struct {
	rootCauseKey    string
	severity        Severity
	category        string
	findingText     string
	evidenceURL     string
	evidenceSnippet string
	whyItSuppresses string
	howToVerify     string
}

func NewFinding(rootCauseKey string, severity Severity, category, findingText, evidenceURL, evidenceSnippet, whyItSuppresses, howToVerify string) Finding {
	return Finding{
		rootCauseKey:    rootCauseKey,
		severity:        severity,
		category:        category,
		findingText:     findingText,
		evidenceURL:     evidenceURL,
		evidenceSnippet: evidenceSnippet,
		whyItSuppresses: whyItSuppresses,
		howToVerify:     howToVerify,
	}
}

func (f Finding) RootCauseKey() string    { return f.rootCauseKey }
func (f Finding) Severity() Severity      { return f.severity }
func (f Finding) Category() string        { return f.category }
func (f Finding) FindingText() string     { return f.findingText }
func (f Finding) EvidenceURL() string     { return f.evidenceURL }
func (f Finding) EvidenceSnippet() string { return f.evidenceSnippet }
func (f Finding) WhyItSuppresses() string { return f.whyItSuppresses }
func (f Finding) HowToVerify() string     { return f.howToVerify }

// ClampedForProof returns the finding with P3 lowered to P2. The report's
// proof slot never exposes P3 as a severity.
func (f Finding) ClampedForProof() Finding {
	if f.severity == P3 {
		f.severity = P2
	}
	return f
}

// ScanInput is the analyzer's complete view of one scan: every artifact
// fetched, plus the constraint tokens accumulated along the way.
type ScanInput struct {
	domain      string
	scanDate    string
	baseline    *Baseline
	homepage    fetcher.HtmlArtifact
	robotsTxt   *fetcher.TextArtifact
	sitemapXML  *fetcher.TextArtifact
	extraPages  []fetcher.HtmlArtifact
	constraints []string
}

func NewScanInput(domain, scanDate string, baseline *Baseline, homepage fetcher.HtmlArtifact, robotsTxt, sitemapXML *fetcher.TextArtifact, extraPages []fetcher.HtmlArtifact, constraints []string) ScanInput {
	return ScanInput{
		domain:      domain,
		scanDate:    scanDate,
		baseline:    baseline,
		homepage:    homepage,
		robotsTxt:   robotsTxt,
		sitemapXML:  sitemapXML,
		extraPages:  extraPages,
		constraints: constraints,
	}
}

func (s ScanInput) Domain() string                     { return s.domain }
func (s ScanInput) ScanDate() string                   { return s.scanDate }
func (s ScanInput) Baseline() *Baseline                { return s.baseline }
func (s ScanInput) Homepage() fetcher.HtmlArtifact     { return s.homepage }
func (s ScanInput) RobotsTxt() *fetcher.TextArtifact   { return s.robotsTxt }
func (s ScanInput) SitemapXML() *fetcher.TextArtifact  { return s.sitemapXML }
func (s ScanInput) ExtraPages() []fetcher.HtmlArtifact { return s.extraPages }
func (s ScanInput) Constraints() []string              { return s.constraints }

// Pages returns every fetched HTML page carrying a body: the homepage plus
// any extra page that resolved to HTML. Used by per-page analyzer rules.
func (s ScanInput) Pages() []fetcher.HtmlArtifact {
	pages := make([]fetcher.HtmlArtifact, 0, 1+len(s.extraPages))
	if _, ok := s.homepage.HTML(); ok {
		pages = append(pages, s.homepage)
	}
	for _, p := range s.extraPages {
		if _, ok := p.HTML(); ok {
			pages = append(pages, p)
		}
	}
	return pages
}

// AllPages returns the homepage plus every extra page, whether or not a body
// was retained. Used by rules that only need response headers: a page gated
// behind auth answers 401 with no HTML but still carries the headers that
// matter.
func (s ScanInput) AllPages() []fetcher.HtmlArtifact {
	pages := make([]fetcher.HtmlArtifact, 0, 1+len(s.extraPages))
	pages = append(pages, s.homepage)
	pages = append(pages, s.extraPages...)
	return pages
}

// PagesAnalyzed is 1 (homepage) + the number of extra pages in scope,
// regardless of whether each one resolved to usable HTML.
func (s ScanInput) PagesAnalyzed() int {
	return 1 + len(s.extraPages)
}
