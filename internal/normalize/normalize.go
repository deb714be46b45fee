// Package normalize turns a caller-supplied string into the scan's origin
// URL: scheme-coerced, path forced to root, query and fragment cleared.
package normalize

import (
	"net/url"
	"strings"

	"github.com/coldharbor-labs/suppression-screen/pkg/failure"
	"github.com/coldharbor-labs/suppression-screen/pkg/urlutil"
)

// Normalize parses raw into the origin URL the rest of the pipeline fetches
// against. Only http/https are accepted; a missing scheme defaults to https.
func Normalize(raw string) (url.URL, failure.ClassifiedError) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return url.URL{}, &NormalizationError{Input: raw, Cause: CauseEmptyInput}
	}

	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return url.URL{}, &NormalizationError{Input: raw, Cause: CauseUnparsable}
	}

	canonical := urlutil.Canonicalize(*parsed)
	if canonical.Scheme != "http" && canonical.Scheme != "https" {
		return url.URL{}, &NormalizationError{Input: raw, Cause: CauseBadScheme}
	}
	if canonical.Host == "" {
		return url.URL{}, &NormalizationError{Input: raw, Cause: CauseUnparsable}
	}

	canonical.Path = "/"
	canonical.RawPath = ""

	return canonical, nil
}
