// Package robotsrules parses robots.txt into user-agent groups and path
// rules, the way a real crawler would, rather than scanning the raw text
// for substrings. DisallowsAll reduces that structure back down to the one
// signal the analyzer needs: a "*" group carrying a "Disallow: /" rule.
package robotsrules

import (
	"bufio"
	"strings"
)

type PathRule struct {
	Path string
}

type UserAgentGroup struct {
	UserAgents []string
	Allows     []PathRule
	Disallows  []PathRule
}

type Document struct {
	Groups   []UserAgentGroup
	Sitemaps []string
}

// Parse tokenizes robots.txt content into user-agent groups and sitemap
// directives. Unknown or malformed lines are skipped.
func Parse(content string) Document {
	var doc Document
	var current *UserAgentGroup

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.Index(line, "#"); idx != -1 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		colon := strings.Index(line, ":")
		if colon == -1 {
			continue
		}
		field := strings.ToLower(strings.TrimSpace(line[:colon]))
		value := strings.TrimSpace(line[colon+1:])

		switch field {
		case "user-agent":
			if current == nil || len(current.Allows) > 0 || len(current.Disallows) > 0 {
				if current != nil {
					doc.Groups = append(doc.Groups, *current)
				}
				current = &UserAgentGroup{}
			}
			current.UserAgents = append(current.UserAgents, value)
		case "allow":
			if current != nil {
				current.Allows = append(current.Allows, PathRule{Path: value})
			}
		case "disallow":
			if current != nil {
				current.Disallows = append(current.Disallows, PathRule{Path: value})
			}
		case "sitemap":
			if value != "" {
				doc.Sitemaps = append(doc.Sitemaps, value)
			}
		}
	}
	if current != nil {
		doc.Groups = append(doc.Groups, *current)
	}

	return doc
}

// DisallowsAll reports whether any user-agent group matching "*"
// (case-insensitive) carries a Disallow rule for exactly "/".
func DisallowsAll(doc Document) bool {
	for _, group := range doc.Groups {
		if !matchesWildcard(group) {
			continue
		}
		for _, rule := range group.Disallows {
			if strings.TrimSpace(rule.Path) == "/" {
				return true
			}
		}
	}
	return false
}

func matchesWildcard(group UserAgentGroup) bool {
	for _, ua := range group.UserAgents {
		if strings.TrimSpace(ua) == "*" {
			return true
		}
	}
	return false
}
