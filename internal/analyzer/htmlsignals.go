package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func parseDoc(html string) (*goquery.Document, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, false
	}
	return doc, true
}

func extractTitle(html string) (string, bool) {
	doc, ok := parseDoc(html)
	if !ok {
		return "", false
	}
	sel := doc.Find("title").First()
	if sel.Length() == 0 {
		return "", false
	}
	title := strings.TrimSpace(sel.Text())
	if title == "" {
		return "", false
	}
	return title, true
}

func extractMetaRobotsContent(html string) (string, bool) {
	doc, ok := parseDoc(html)
	if !ok {
		return "", false
	}
	found := ""
	ok2 := false
	doc.Find(`meta[name]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		name, _ := s.Attr("name")
		if !strings.EqualFold(strings.TrimSpace(name), "robots") {
			return true
		}
		content, exists := s.Attr("content")
		if !exists {
			return true
		}
		found = content
		ok2 = true
		return false
	})
	return found, ok2
}

func extractCanonicalHref(html string) (string, bool) {
	doc, ok := parseDoc(html)
	if !ok {
		return "", false
	}
	found := ""
	ok2 := false
	doc.Find(`link[rel]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		rel, _ := s.Attr("rel")
		if !strings.EqualFold(strings.TrimSpace(rel), "canonical") {
			return true
		}
		href, exists := s.Attr("href")
		if !exists {
			return true
		}
		found = href
		ok2 = true
		return false
	})
	return found, ok2
}
