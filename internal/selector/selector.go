// Package selector deterministically ranks the homepage's own nav links and
// combines them with sitemap locations into the scan's extra-page list.
package selector

import (
	"net/url"
	"sort"
	"strings"

	"github.com/coldharbor-labs/suppression-screen/pkg/orderedset"
)

// navKeywords are checked in this exact order; a link's score is the index
// of the first keyword found in its lowered path, or 999 if none match.
var navKeywords = []string{"contact", "about", "services", "service", "pricing", "book", "audit", "diagnostic"}

const (
	maxNavPicks     = 3
	maxSitemapPicks = 2
)

// SelectNavPages ranks homepage links by keyword score, then path length,
// then lexicographic path, excluding the root and de-duplicating, and
// returns at most maxNavPicks.
func SelectNavPages(links []string) []string {
	type scored struct {
		link  string
		path  string
		score int
	}

	var candidates []scored
	seenPaths := make(map[string]struct{})

	for _, raw := range links {
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		if u.Path == "" || u.Path == "/" {
			continue
		}
		if _, dup := seenPaths[raw]; dup {
			continue
		}
		seenPaths[raw] = struct{}{}

		candidates = append(candidates, scored{link: raw, path: u.Path, score: keywordScore(u.Path)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.score != b.score {
			return a.score < b.score
		}
		if len(a.path) != len(b.path) {
			return len(a.path) < len(b.path)
		}
		return a.path < b.path
	})

	var picks []string
	for _, c := range candidates {
		if len(picks) >= maxNavPicks {
			break
		}
		picks = append(picks, c.link)
	}
	return picks
}

func keywordScore(path string) int {
	lowered := strings.ToLower(path)
	for i, keyword := range navKeywords {
		if strings.Contains(lowered, keyword) {
			return i
		}
	}
	return 999
}

// SelectSitemapPages takes the first maxSitemapPicks sitemap locations in
// document order, excluding the root path.
func SelectSitemapPages(locations []string) []string {
	var picks []string
	for _, raw := range locations {
		if len(picks) >= maxSitemapPicks {
			break
		}
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		if u.Path == "" || u.Path == "/" {
			continue
		}
		picks = append(picks, raw)
	}
	return picks
}

// ExtraPages combines nav picks and sitemap picks into the final extra-page
// list, de-duplicated, preserving nav-then-sitemap order.
func ExtraPages(navPicks, sitemapPicks []string) []string {
	set := orderedset.New[string]()
	for _, p := range navPicks {
		set.Add(p)
	}
	for _, p := range sitemapPicks {
		set.Add(p)
	}
	return set.Items()
}
