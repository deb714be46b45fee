package robotsrules_test

import (
	"testing"

	"github.com/coldharbor-labs/suppression-screen/internal/robotsrules"
	"github.com/stretchr/testify/assert"
)

func TestDisallowsAll_WildcardDisallowRoot(t *testing.T) {
	doc := robotsrules.Parse("User-agent: *\nDisallow: /\n")
	assert.True(t, robotsrules.DisallowsAll(doc))
}

func TestDisallowsAll_TrailingWhitespaceAllowed(t *testing.T) {
	doc := robotsrules.Parse("User-agent: *\nDisallow: /   \n")
	assert.True(t, robotsrules.DisallowsAll(doc))
}

func TestDisallowsAll_SpecificUserAgentDoesNotCount(t *testing.T) {
	doc := robotsrules.Parse("User-agent: Googlebot\nDisallow: /\n")
	assert.False(t, robotsrules.DisallowsAll(doc))
}

func TestDisallowsAll_PartialDisallowDoesNotCount(t *testing.T) {
	doc := robotsrules.Parse("User-agent: *\nDisallow: /private\n")
	assert.False(t, robotsrules.DisallowsAll(doc))
}

func TestParse_CollectsSitemaps(t *testing.T) {
	doc := robotsrules.Parse("Sitemap: https://example.com/sitemap.xml\nUser-agent: *\nAllow: /\n")
	assert.Equal(t, []string{"https://example.com/sitemap.xml"}, doc.Sitemaps)
	assert.False(t, robotsrules.DisallowsAll(doc))
}

func TestParse_MultipleGroupsKeepsLastDisallow(t *testing.T) {
	doc := robotsrules.Parse("User-agent: Googlebot\nDisallow: /private\n\nUser-agent: *\nDisallow: /\n")
	assert.True(t, robotsrules.DisallowsAll(doc))
}
