// Package rollup turns a set of findings into counts, a risk level, a
// trajectory against an optional baseline, and the single proof finding
// surfaced in the report.
package rollup

import "github.com/coldharbor-labs/suppression-screen/internal/domain"

type Counts struct {
	P0 int
	P1 int
	P2 int
	P3 int
}

// Count tallies distinct root causes by severity. Findings are already
// root-cause-unique by construction (analyzer.Run), so this is a direct tally.
func Count(findings []domain.Finding) Counts {
	var c Counts
	for _, f := range findings {
		switch f.Severity() {
		case domain.P0:
			c.P0++
		case domain.P1:
			c.P1++
		case domain.P2:
			c.P2++
		case domain.P3:
			c.P3++
		}
	}
	return c
}

// RiskLevel maps counts onto the coarse rating: RED on any kill switch or
// three strong suppressors, AMBER on one or two strong suppressors or heavy
// moderate drag, GREEN otherwise.
func RiskLevel(c Counts) domain.RiskLevel {
	if c.P0 >= 1 || c.P1 >= 3 {
		return domain.RiskRed
	}
	if c.P0 == 0 && ((c.P1 >= 1 && c.P1 <= 2) || c.P2 >= 5) {
		return domain.RiskAmber
	}
	return domain.RiskGreen
}

// TrajectoryFrom computes the direction of risk-level change relative to a
// baseline. Returns nil when no baseline was supplied.
func TrajectoryFrom(baseline *domain.Baseline, current domain.RiskLevel) *domain.Trajectory {
	if baseline == nil {
		return nil
	}
	from := baseline.RiskLevel()
	var t domain.Trajectory
	switch {
	case from == current:
		t = domain.TrajectoryStable
	case from == domain.RiskRed && current == domain.RiskAmber,
		from == domain.RiskAmber && current == domain.RiskGreen:
		t = domain.TrajectoryDown
	case from == domain.RiskGreen && current == domain.RiskAmber,
		from == domain.RiskAmber && current == domain.RiskRed,
		from == domain.RiskGreen && current == domain.RiskRed:
		t = domain.TrajectoryUp
	default:
		t = domain.TrajectoryStable
	}
	return &t
}

var severityRank = map[domain.Severity]int{
	domain.P0: 0,
	domain.P1: 1,
	domain.P2: 2,
	domain.P3: 3,
}

// canned no-findings proof: severity P2, pointing at the domain origin.
func noFindingsProof(origin string) domain.Finding {
	return domain.NewFinding(
		"NO_CLEAR_SUPPRESSORS",
		domain.P2,
		"General",
		"No clear suppressors detected",
		origin,
		"",
		"No suppression signal was found in the artifacts examined.",
		"Re-run the screen periodically as the site changes.",
	)
}

// ProofFinding ranks findings P0 < P1 < P2 < P3 and returns the first. If
// none exist, a canned "no clear suppressors" proof is returned. P3 findings
// are clamped to P2 before being reported as proof: the external contract
// never exposes P3 as a proof severity.
func ProofFinding(findings []domain.Finding, origin string) domain.Finding {
	if len(findings) == 0 {
		return noFindingsProof(origin)
	}

	best := findings[0]
	for _, f := range findings[1:] {
		if severityRank[f.Severity()] < severityRank[best.Severity()] {
			best = f
		}
	}

	return best.ClampedForProof()
}
