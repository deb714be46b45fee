package analyzer_test

import (
	"fmt"
	"testing"

	"github.com/coldharbor-labs/suppression-screen/internal/analyzer"
	"github.com/coldharbor-labs/suppression-screen/internal/domain"
	"github.com/coldharbor-labs/suppression-screen/internal/fetcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func htmlArtifact(finalURL string, headers map[string]string, html string) fetcher.HtmlArtifact {
	h := html
	return fetcher.NewHtmlArtifact(finalURL, finalURL, 200, headers, &h, nil)
}

func scanInput(homepage fetcher.HtmlArtifact, robots *fetcher.TextArtifact, extras ...fetcher.HtmlArtifact) domain.ScanInput {
	return domain.NewScanInput("https://example.com", "2026-07-31", nil, homepage, robots, nil, extras, nil)
}

func TestRun_RobotsDisallowAll(t *testing.T) {
	robots := fetcher.NewTextArtifact("https://example.com/robots.txt", "https://example.com/robots.txt", 200, nil, strPtr("User-agent: *\nDisallow: /"), nil)
	input := scanInput(htmlArtifact("https://example.com/", nil, "<html><head><title>Home</title></head></html>"), &robots)

	findings := analyzer.Run(input)
	require.Len(t, findings, 1)
	assert.Equal(t, analyzer.KeyRobotsDisallowAll, findings[0].RootCauseKey())
	assert.Equal(t, domain.P0, findings[0].Severity())
}

func TestRun_CanonicalOffdomain(t *testing.T) {
	input := scanInput(htmlArtifact("https://example.com/", nil, `<html><head><title>Home</title><link rel="canonical" href="https://other.example/"></head></html>`), nil)
	findings := analyzer.Run(input)
	require.Len(t, findings, 1)
	assert.Equal(t, analyzer.KeyCanonicalOffdomain, findings[0].RootCauseKey())
}

func TestRun_MetaRobotsNoindex(t *testing.T) {
	input := scanInput(htmlArtifact("https://example.com/", nil, `<html><head><title>Home</title><meta name="robots" content="noindex,nofollow"></head></html>`), nil)
	findings := analyzer.Run(input)
	require.Len(t, findings, 1)
	assert.Equal(t, analyzer.KeyMetaRobotsNoindex, findings[0].RootCauseKey())
}

func TestRun_XRobotsNoindexOnExtraPage(t *testing.T) {
	input := scanInput(
		htmlArtifact("https://example.com/", nil, "<html><head><title>Home</title></head></html>"),
		nil,
		htmlArtifact("https://example.com/about", map[string]string{"x-robots-tag": "noindex"}, "<html><head><title>About</title></head></html>"),
	)
	findings := analyzer.Run(input)
	require.Len(t, findings, 1)
	assert.Equal(t, analyzer.KeyXRobotsNoindex, findings[0].RootCauseKey())
}

func TestRun_MetaNoindexOnTwoExtrasCollapsesToOneFinding(t *testing.T) {
	noindex := `<html><head><title>%s</title><meta name="robots" content="noindex"></head></html>`
	input := scanInput(
		htmlArtifact("https://example.com/", nil, "<html><head><title>Home</title></head></html>"),
		nil,
		htmlArtifact("https://example.com/about", nil, fmt.Sprintf(noindex, "About")),
		htmlArtifact("https://example.com/contact", nil, fmt.Sprintf(noindex, "Contact")),
	)
	findings := analyzer.Run(input)
	require.Len(t, findings, 1)
	assert.Equal(t, analyzer.KeyMetaRobotsNoindex, findings[0].RootCauseKey())
	assert.Equal(t, "https://example.com/about", findings[0].EvidenceURL())
}

func TestRun_DupTitlesCollapsesToOneFinding(t *testing.T) {
	input := scanInput(
		htmlArtifact("https://example.com/", nil, "<html><head><title>Home</title></head></html>"),
		nil,
		htmlArtifact("https://example.com/about", nil, "<html><head><title>Home</title></head></html>"),
		htmlArtifact("https://example.com/contact", nil, "<html><head><title>Home</title></head></html>"),
	)
	findings := analyzer.Run(input)
	require.Len(t, findings, 1)
	assert.Equal(t, analyzer.KeyDupTitles, findings[0].RootCauseKey())
}

func TestRun_MissingTitle(t *testing.T) {
	input := scanInput(htmlArtifact("https://example.com/", nil, "<html><head></head><body>no title here</body></html>"), nil)
	findings := analyzer.Run(input)
	require.Len(t, findings, 1)
	assert.Equal(t, analyzer.KeyMissingTitle, findings[0].RootCauseKey())
}

func TestRun_NoFindingsOnCleanSite(t *testing.T) {
	input := scanInput(htmlArtifact("https://example.com/", nil, "<html><head><title>Home</title></head></html>"), nil)
	findings := analyzer.Run(input)
	assert.Empty(t, findings)
}

func TestRun_WWWAuthenticateBlockIsAdditiveHygiene(t *testing.T) {
	gated := fetcher.NewHtmlArtifact("https://example.com/docs", "https://example.com/docs", 401,
		map[string]string{"www-authenticate": `Basic realm="docs"`}, nil, nil)
	input := scanInput(
		htmlArtifact("https://example.com/", nil, "<html><head><title>Home</title></head></html>"),
		nil,
		gated,
	)
	findings := analyzer.Run(input)
	require.Len(t, findings, 1)
	assert.Equal(t, analyzer.KeyWWWAuthenticateBlock, findings[0].RootCauseKey())
	assert.Equal(t, domain.P3, findings[0].Severity())
}

func strPtr(s string) *string { return &s }
