// Package linkextract pulls candidate page URLs out of a homepage's HTML
// anchors and a sitemap's <loc> entries, confined to the homepage's origin.
package linkextract

import (
	"encoding/xml"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/coldharbor-labs/suppression-screen/pkg/orderedset"
	"github.com/coldharbor-labs/suppression-screen/pkg/urlutil"
)

var excludedExtensions = []string{".pdf", ".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".zip"}

var rejectedSchemes = []string{"mailto:", "tel:", "javascript:"}

// FromHTML extracts same-origin anchor targets from html, resolved against
// pageURL, in document order, fragment-cleared and de-duplicated.
func FromHTML(html string, pageURL url.URL, homepageOrigin url.URL) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	seen := orderedset.New[string]()
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		if link, ok := resolveLink(href, pageURL, homepageOrigin); ok {
			seen.Add(link)
		}
	})

	return seen.Items()
}

func resolveLink(href string, pageURL url.URL, homepageOrigin url.URL) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}

	lowered := strings.ToLower(href)
	for _, scheme := range rejectedSchemes {
		if strings.HasPrefix(lowered, scheme) {
			return "", false
		}
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	resolved := pageURL.ResolveReference(ref)
	resolved.Fragment = ""
	resolved.RawFragment = ""

	if !urlutil.SameOrigin(*resolved, homepageOrigin) {
		return "", false
	}

	path := strings.ToLower(resolved.Path)
	for _, ext := range excludedExtensions {
		if strings.HasSuffix(path, ext) {
			return "", false
		}
	}

	return resolved.String(), true
}

type urlset struct {
	Locations []string `xml:"url>loc"`
}

type sitemapIndex struct {
	Locations []string `xml:"sitemap>loc"`
}

// FromSitemap extracts every <loc> entry from a sitemap or sitemap-index
// document, resolved against sitemapURL, same-origin only, de-duplicated.
//
// Sitemap-index <loc> entries pointing at other sitemaps are treated
// identically to urlset entries: they are added as candidates, never
// recursively fetched.
func FromSitemap(body string, sitemapURL url.URL, homepageOrigin url.URL) []string {
	seen := orderedset.New[string]()

	var set urlset
	_ = xml.Unmarshal([]byte(body), &set)
	var index sitemapIndex
	_ = xml.Unmarshal([]byte(body), &index)

	for _, raw := range append(set.Locations, index.Locations...) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		ref, err := url.Parse(raw)
		if err != nil {
			continue
		}
		resolved := sitemapURL.ResolveReference(ref)
		if !urlutil.SameOrigin(*resolved, homepageOrigin) {
			continue
		}
		seen.Add(resolved.String())
	}

	return seen.Items()
}
