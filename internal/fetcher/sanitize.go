package fetcher

import "regexp"

// Comments, script blocks, and style blocks are stripped at the regex level.
// A full HTML parser is not required for this: the analyzer and link
// extractor re-parse the sanitized body with a real DOM library downstream.
var (
	commentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)
	scriptPattern  = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	stylePattern   = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style>`)
)

func sanitizeHTML(body string) string {
	body = commentPattern.ReplaceAllString(body, "")
	body = scriptPattern.ReplaceAllString(body, "")
	body = stylePattern.ReplaceAllString(body, "")
	return body
}

// truncate caps s at limit characters (runes); a cut string ends with "...",
// which counts toward the limit. A limit too small to hold the marker cuts
// without it. Returns the possibly-shortened string and whether truncation
// occurred.
func truncate(s string, limit int) (string, bool) {
	runes := []rune(s)
	if len(runes) <= limit {
		return s, false
	}
	const marker = "..."
	if limit < len(marker) {
		return string(runes[:limit]), true
	}
	return string(runes[:limit-len(marker)]) + marker, true
}
