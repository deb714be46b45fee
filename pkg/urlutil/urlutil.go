// Package urlutil provides pure, deterministic URL normalization helpers
// shared by the normalizer and link extractor stages.
package urlutil

import (
	"net/url"
	"strings"
)

// Canonicalize lowercases scheme/host, strips default ports, clears the
// fragment and query, and cleans trailing path slashes (root excepted).
//
// Properties: pure, deterministic, idempotent, context-free.
func Canonicalize(u url.URL) url.URL {
	canonical := u

	canonical.Scheme = lowerASCII(canonical.Scheme)
	canonical.Host = lowerASCII(canonical.Host)

	if host, port := canonical.Hostname(), canonical.Port(); port != "" {
		if (canonical.Scheme == "http" && port == "80") ||
			(canonical.Scheme == "https" && port == "443") {
			canonical.Host = host
		}
	}

	if len(canonical.Path) > 1 {
		canonical.Path = stripTrailingSlash(canonical.Path)
	}

	canonical.Fragment = ""
	canonical.RawFragment = ""
	canonical.RawQuery = ""
	canonical.ForceQuery = false

	return canonical
}

// SameOrigin reports whether two URLs share scheme and host (port included).
func SameOrigin(a, b url.URL) bool {
	return lowerASCII(a.Scheme) == lowerASCII(b.Scheme) && lowerASCII(a.Host) == lowerASCII(b.Host)
}

// Origin returns u as scheme://host/: path set to "/", query and fragment
// cleared.
func Origin(u url.URL) string {
	origin := u
	origin.Path = "/"
	origin.RawQuery = ""
	origin.Fragment = ""
	return origin.String()
}

func lowerASCII(s string) string {
	var needsLower bool
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			needsLower = true
			break
		}
	}
	if !needsLower {
		return s
	}
	b := make([]byte, len(s))
	copy(b, s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

func stripTrailingSlash(path string) string {
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	return path
}
