// Package assembler builds the fixed-shape report and error documents the
// service returns, and writes them to an io.Writer (an HTTP response body
// or CLI stdout).
package assembler

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/coldharbor-labs/suppression-screen/internal/domain"
	"github.com/coldharbor-labs/suppression-screen/internal/rollup"
	"github.com/coldharbor-labs/suppression-screen/internal/security"
)

const schemaVersion = "1.0"

const (
	moduleReadinessHint = "This is a lightweight public-signals screen; a full audit covers authenticated and structural checks this screen cannot reach."
	confidenceNote      = "Findings are derived only from what is publicly reachable at scan time; unreachable or gated content is not evaluated."

	ctaPrimaryLabel       = "Book Growth Blocker Audit"
	ctaPrimaryDescription = "Get a full diagnostic of everything blocking your site from ranking, not just the public signals this screen can see."
	ctaSecondaryLabel       = "Learn About Core"
	ctaSecondaryDescription = "See how the complete platform finds and fixes suppression issues end to end."
)

const (
	slotHomepage   = "homepage"
	slotRobotsTxt  = "robots_txt"
	slotSitemapXML = "sitemap_xml"
	slotExtraPages = "extra_pages"
)

type Evidence struct {
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

type Proof struct {
	Severity        domain.Severity `json:"severity"`
	Category        string          `json:"category"`
	Finding         string          `json:"finding"`
	Evidence        Evidence        `json:"evidence"`
	WhyItSuppresses string          `json:"why_it_suppresses"`
	HowToVerify     string          `json:"how_to_verify"`
}

type Counts struct {
	P0 int `json:"p0"`
	P1 int `json:"p1"`
	P2 int `json:"p2"`
	P3 int `json:"p3"`
}

type Result struct {
	RiskLevel      domain.RiskLevel    `json:"risk_level"`
	Trajectory     *domain.Trajectory  `json:"trajectory"`
	Counts         Counts              `json:"counts"`
	Interpretation string              `json:"interpretation"`
}

type ScanMetadata struct {
	Domain        string   `json:"domain"`
	ScanDate      string   `json:"scan_date"`
	InputsUsed    []string `json:"inputs_used"`
	InputsMissing []string `json:"inputs_missing"`
	PagesAnalyzed int      `json:"pages_analyzed"`
}

type CTAEntry struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

type CTA struct {
	Primary   CTAEntry `json:"primary"`
	Secondary CTAEntry `json:"secondary"`
}

type Report struct {
	SchemaVersion        string          `json:"schema_version"`
	ScanMetadata         ScanMetadata    `json:"scan_metadata"`
	Result               Result          `json:"result"`
	Proof                Proof           `json:"proof"`
	ModuleReadinessHint  string          `json:"module_readiness_hint"`
	ConfidenceNote       string          `json:"confidence_note"`
	SecurityFlags        []security.Flag `json:"security_flags"`
	CTA                  CTA             `json:"cta"`
}

type ErrorType string

const (
	ErrorInvalidURL        ErrorType = "INVALID_URL"
	ErrorInsufficientData  ErrorType = "INSUFFICIENT_DATA"
	ErrorFetchFailed       ErrorType = "FETCH_FAILED"
)

type ErrorDocument struct {
	SchemaVersion string    `json:"schema_version"`
	Error         bool      `json:"error"`
	ErrorType     ErrorType `json:"error_type"`
	ErrorMessage  string    `json:"error_message"`
	PartialResult any       `json:"partial_result"`
}

// Assemble computes inputs_used/inputs_missing from the structural presence
// of each artifact slot, rolls up counts/risk/trajectory, picks the proof
// finding, and de-dupes the supplied security flags.
func Assemble(input domain.ScanInput, findings []domain.Finding, flags []security.Flag) Report {
	used, missing := inputSlots(input)

	counts := rollup.Count(findings)
	risk := rollup.RiskLevel(counts)
	trajectory := rollup.TrajectoryFrom(input.Baseline(), risk)
	proof := rollup.ProofFinding(findings, input.Domain())

	return Report{
		SchemaVersion: schemaVersion,
		ScanMetadata: ScanMetadata{
			Domain:        input.Domain(),
			ScanDate:      input.ScanDate(),
			InputsUsed:    used,
			InputsMissing: missing,
			PagesAnalyzed: input.PagesAnalyzed(),
		},
		Result: Result{
			RiskLevel:      risk,
			Trajectory:     trajectory,
			Counts:         Counts{P0: counts.P0, P1: counts.P1, P2: counts.P2, P3: counts.P3},
			Interpretation: interpretation(risk, counts),
		},
		Proof: Proof{
			Severity: proof.Severity(),
			Category: proof.Category(),
			Finding:  proof.FindingText(),
			Evidence: Evidence{
				URL:     proof.EvidenceURL(),
				Snippet: proof.EvidenceSnippet(),
			},
			WhyItSuppresses: proof.WhyItSuppresses(),
			HowToVerify:     proof.HowToVerify(),
		},
		ModuleReadinessHint: moduleReadinessHint,
		ConfidenceNote:      confidenceNote,
		SecurityFlags:       dedupFlags(flags),
		CTA: CTA{
			Primary:   CTAEntry{Label: ctaPrimaryLabel, Description: ctaPrimaryDescription},
			Secondary: CTAEntry{Label: ctaSecondaryLabel, Description: ctaSecondaryDescription},
		},
	}
}

// inputSlots keeps both lists non-nil so they serialize as [] rather than
// null when empty.
func inputSlots(input domain.ScanInput) (used, missing []string) {
	used, missing = []string{}, []string{}
	slots := []struct {
		name    string
		present bool
	}{
		{slotHomepage, homepagePresent(input)},
		{slotRobotsTxt, input.RobotsTxt() != nil},
		{slotSitemapXML, input.SitemapXML() != nil},
		{slotExtraPages, len(input.ExtraPages()) > 0},
	}
	for _, s := range slots {
		if s.present {
			used = append(used, s.name)
		} else {
			missing = append(missing, s.name)
		}
	}
	return used, missing
}

func homepagePresent(input domain.ScanInput) bool {
	_, ok := input.Homepage().HTML()
	return ok
}

func interpretation(risk domain.RiskLevel, counts rollup.Counts) string {
	switch risk {
	case domain.RiskRed:
		return capText(fmt.Sprintf("Critical suppression detected: %d kill-switch and strong suppressor signal(s) found.", counts.P0+counts.P1), 150)
	case domain.RiskAmber:
		return capText("Moderate suppression risk: some drag signals found, none severe enough to block indexing outright.", 150)
	default:
		return capText("No meaningful suppression risk found in the public signals examined.", 150)
	}
}

func capText(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func dedupFlags(flags []security.Flag) []security.Flag {
	seen := make(map[security.Flag]struct{}, len(flags))
	out := make([]security.Flag, 0, len(flags))
	for _, f := range flags {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// WriteReport serializes a success Report as JSON to w.
func WriteReport(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	return enc.Encode(report)
}

// WriteError serializes an ErrorDocument as JSON to w.
func WriteError(w io.Writer, errType ErrorType, message string) error {
	doc := ErrorDocument{
		SchemaVersion: schemaVersion,
		Error:         true,
		ErrorType:     errType,
		ErrorMessage:  message,
		PartialResult: nil,
	}
	enc := json.NewEncoder(w)
	return enc.Encode(doc)
}
