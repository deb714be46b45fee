// Package analyzer implements the suppression rules table: each Rule
// inspects a ScanInput and emits at most one Finding, keyed by a root cause
// that appears at most once across a scan.
package analyzer

import (
	"net/url"
	"strings"

	"github.com/coldharbor-labs/suppression-screen/internal/domain"
	"github.com/coldharbor-labs/suppression-screen/internal/robotsrules"
)

const (
	findingTextLimit = 100
	evidenceLimit    = 200
	explainLimit     = 150
)

// Rule root-cause keys, in evaluation order.
const (
	KeyRobotsDisallowAll    = "ROBOTS_DISALLOW_ALL"
	KeyXRobotsNoindex       = "X_ROBOTS_NOINDEX"
	KeyMetaRobotsNoindex    = "META_ROBOTS_NOINDEX"
	KeyCanonicalOffdomain   = "CANONICAL_OFFDOMAIN"
	KeyMissingTitle         = "MISSING_TITLE"
	KeyDupTitles            = "DUP_TITLES"
	KeyWWWAuthenticateBlock = "WWW_AUTHENTICATE_BLOCK"
)

const categoryKillSwitch = "Indexation Kill Switch"
const categoryModerateDrag = "Moderate Drag"
const categoryHygiene = "Hygiene"

// Rule evaluates one ScanInput and reports whether its root cause fires.
type Rule interface {
	Evaluate(input domain.ScanInput) (domain.Finding, bool)
}

// Rules returns the full rule table in evaluation order. Order matters:
// proof selection prefers the earliest finding within a severity.
func Rules() []Rule {
	return []Rule{
		robotsDisallowAllRule{},
		xRobotsNoindexRule{},
		metaRobotsNoindexRule{},
		canonicalOffdomainRule{},
		missingTitleRule{},
		dupTitlesRule{},
		wwwAuthenticateBlockRule{},
	}
}

// Run applies every rule in order, keeping at most one finding per root
// cause (each rule here only ever emits its own key once).
func Run(input domain.ScanInput) []domain.Finding {
	seen := make(map[string]struct{})
	var findings []domain.Finding
	for _, rule := range Rules() {
		finding, ok := rule.Evaluate(input)
		if !ok {
			continue
		}
		if _, dup := seen[finding.RootCauseKey()]; dup {
			continue
		}
		seen[finding.RootCauseKey()] = struct{}{}
		findings = append(findings, finding)
	}
	return findings
}

func capText(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// --- ROBOTS_DISALLOW_ALL ---

type robotsDisallowAllRule struct{}

func (robotsDisallowAllRule) Evaluate(input domain.ScanInput) (domain.Finding, bool) {
	robots := input.RobotsTxt()
	if robots == nil {
		return domain.Finding{}, false
	}
	text, ok := robots.Text()
	if !ok {
		return domain.Finding{}, false
	}
	if !robotsrules.DisallowsAll(robotsrules.Parse(text)) {
		return domain.Finding{}, false
	}
	return domain.NewFinding(
		KeyRobotsDisallowAll,
		domain.P0,
		categoryKillSwitch,
		capText("robots.txt disallows all crawlers from the entire site", findingTextLimit),
		robots.FinalURL(),
		capText("User-agent: *\nDisallow: /", evidenceLimit),
		capText("Search engines are told not to crawl any page on the site.", explainLimit),
		capText("Fetch /robots.txt and confirm the disallow-all rule.", explainLimit),
	), true
}

// --- X_ROBOTS_NOINDEX ---

type xRobotsNoindexRule struct{}

func (xRobotsNoindexRule) Evaluate(input domain.ScanInput) (domain.Finding, bool) {
	for _, page := range input.Pages() {
		value, ok := page.Header("x-robots-tag")
		if !ok {
			continue
		}
		if !strings.Contains(strings.ToLower(value), "noindex") {
			continue
		}
		return domain.NewFinding(
			KeyXRobotsNoindex,
			domain.P0,
			categoryKillSwitch,
			capText("a page sends an X-Robots-Tag: noindex header", findingTextLimit),
			page.FinalURL(),
			capText(value, evidenceLimit),
			capText("This header instructs search engines to drop the page from the index.", explainLimit),
			capText("Inspect the response headers for X-Robots-Tag.", explainLimit),
		), true
	}
	return domain.Finding{}, false
}

// --- META_ROBOTS_NOINDEX ---

type metaRobotsNoindexRule struct{}

func (metaRobotsNoindexRule) Evaluate(input domain.ScanInput) (domain.Finding, bool) {
	for _, page := range input.Pages() {
		html, ok := page.HTML()
		if !ok {
			continue
		}
		content, found := extractMetaRobotsContent(html)
		if !found || !strings.Contains(strings.ToLower(content), "noindex") {
			continue
		}
		return domain.NewFinding(
			KeyMetaRobotsNoindex,
			domain.P0,
			categoryKillSwitch,
			capText("a page carries a <meta name=\"robots\" content=\"noindex\">", findingTextLimit),
			page.FinalURL(),
			capText(content, evidenceLimit),
			capText("Search engines honor this tag and exclude the page from the index.", explainLimit),
			capText("View page source and check the robots meta tag content.", explainLimit),
		), true
	}
	return domain.Finding{}, false
}

// --- CANONICAL_OFFDOMAIN ---

type canonicalOffdomainRule struct{}

func (canonicalOffdomainRule) Evaluate(input domain.ScanInput) (domain.Finding, bool) {
	for _, page := range input.Pages() {
		html, ok := page.HTML()
		if !ok {
			continue
		}
		href, found := extractCanonicalHref(html)
		if !found {
			continue
		}
		pageURL, err := url.Parse(page.FinalURL())
		if err != nil {
			continue
		}
		canonicalURL, err := url.Parse(href)
		if err != nil {
			continue
		}
		resolved := pageURL.ResolveReference(canonicalURL)
		if strings.EqualFold(resolved.Hostname(), pageURL.Hostname()) {
			continue
		}
		return domain.NewFinding(
			KeyCanonicalOffdomain,
			domain.P0,
			categoryKillSwitch,
			capText("a page's canonical link points at a different domain", findingTextLimit),
			page.FinalURL(),
			capText(href, evidenceLimit),
			capText("An off-domain canonical tells search engines to index the other domain instead.", explainLimit),
			capText("Check the <link rel=\"canonical\"> href in page source.", explainLimit),
		), true
	}
	return domain.Finding{}, false
}

// --- MISSING_TITLE ---

type missingTitleRule struct{}

func (missingTitleRule) Evaluate(input domain.ScanInput) (domain.Finding, bool) {
	for _, page := range input.Pages() {
		html, ok := page.HTML()
		if !ok {
			continue
		}
		if _, found := extractTitle(html); found {
			continue
		}
		return domain.NewFinding(
			KeyMissingTitle,
			domain.P2,
			categoryModerateDrag,
			capText("a page has no <title> element", findingTextLimit),
			page.FinalURL(),
			"",
			capText("Pages without a title rank poorly and display badly in search results.", explainLimit),
			capText("View page source and look for a <title> element.", explainLimit),
		), true
	}
	return domain.Finding{}, false
}

// --- DUP_TITLES ---

type dupTitlesRule struct{}

func (dupTitlesRule) Evaluate(input domain.ScanInput) (domain.Finding, bool) {
	urlsByTitle := make(map[string][]string)
	var titleOrder []string

	for _, page := range input.Pages() {
		html, ok := page.HTML()
		if !ok {
			continue
		}
		title, found := extractTitle(html)
		if !found {
			continue
		}
		if _, seen := urlsByTitle[title]; !seen {
			titleOrder = append(titleOrder, title)
		}
		urlsByTitle[title] = append(urlsByTitle[title], page.FinalURL())
	}

	for _, title := range titleOrder {
		urls := urlsByTitle[title]
		if len(urls) < 2 {
			continue
		}
		return domain.NewFinding(
			KeyDupTitles,
			domain.P2,
			categoryModerateDrag,
			capText("two or more pages share an identical title", findingTextLimit),
			urls[0],
			capText(title, evidenceLimit),
			capText("Duplicate titles make it harder for search engines to pick the right page.", explainLimit),
			capText("Compare the <title> of the listed pages.", explainLimit),
		), true
	}
	return domain.Finding{}, false
}

// --- WWW_AUTHENTICATE_BLOCK (supplemental, additive only) ---

type wwwAuthenticateBlockRule struct{}

// A page challenging for credentials typically answers 401 with no HTML
// body, so this rule walks every fetched page, not just the ones that
// resolved to HTML.
func (wwwAuthenticateBlockRule) Evaluate(input domain.ScanInput) (domain.Finding, bool) {
	for _, page := range input.AllPages() {
		value, ok := page.Header("www-authenticate")
		if !ok {
			continue
		}
		return domain.NewFinding(
			KeyWWWAuthenticateBlock,
			domain.P3,
			categoryHygiene,
			capText("a page responds with a WWW-Authenticate challenge", findingTextLimit),
			page.FinalURL(),
			capText(value, evidenceLimit),
			capText("Pages behind basic auth cannot be crawled or indexed at all.", explainLimit),
			capText("Request the page anonymously and check for a 401 with WWW-Authenticate.", explainLimit),
		), true
	}
	return domain.Finding{}, false
}
