// Package fetcher performs the scan's bounded GET requests: fixed timeout,
// capped redirects, header lower-casing, HTML sanitation, and size
// truncation. A fetch never returns a fatal error to its caller: every
// failure mode is represented as an artifact with an empty body and a
// constraint token, because per-artifact fetch failures degrade the report
// rather than aborting the scan.
package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/coldharbor-labs/suppression-screen/internal/metadata"
)

type Fetcher struct {
	client       *http.Client
	userAgent    string
	bodyCapChars int
	metadataSink metadata.Sink
}

func New(timeout time.Duration, redirectCap int, userAgent string, bodyCapChars int, sink metadata.Sink) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout:       timeout,
			CheckRedirect: redirectPolicy(redirectCap),
		},
		userAgent:    userAgent,
		bodyCapChars: bodyCapChars,
		metadataSink: sink,
	}
}

func redirectPolicy(cap int) func(*http.Request, []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if len(via) > cap {
			return &FetchError{URL: req.URL.String(), Message: "redirect cap exceeded", Cause: CauseRedirectLimitExceeded}
		}
		return nil
	}
}

// FetchHTML retrieves u and returns it as an HtmlArtifact, sanitized and
// truncated when the response is HTML.
func (f *Fetcher) FetchHTML(ctx context.Context, scanID string, u url.URL) HtmlArtifact {
	start := time.Now()
	resp, body, finalURL, ferr := f.do(ctx, u)
	f.logFetch(scanID, u.String(), resp, time.Since(start), ferr)

	if ferr != nil {
		return NewHtmlArtifact(u.String(), u.String(), 0, map[string]string{}, nil, []string{ConstraintFetchFailed})
	}

	headers := lowerCaseHeaders(resp.Header)

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return NewHtmlArtifact(u.String(), finalURL, resp.StatusCode, headers, nil, nil)
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTMLContentType(contentType) {
		return NewHtmlArtifact(u.String(), finalURL, resp.StatusCode, headers, nil, []string{ConstraintNonHTMLPage})
	}

	sanitized := sanitizeHTML(string(body))
	truncated, wasTruncated := truncate(sanitized, f.bodyCapChars)
	var constraints []string
	if wasTruncated {
		constraints = append(constraints, ConstraintTruncatedDueToLimits)
	}

	return NewHtmlArtifact(u.String(), finalURL, resp.StatusCode, headers, &truncated, constraints)
}

// FetchText retrieves u (robots.txt or sitemap.xml) as a TextArtifact. Any
// successful body is accepted regardless of content-type.
func (f *Fetcher) FetchText(ctx context.Context, scanID string, u url.URL) TextArtifact {
	start := time.Now()
	resp, body, finalURL, ferr := f.do(ctx, u)
	f.logFetch(scanID, u.String(), resp, time.Since(start), ferr)

	if ferr != nil {
		return NewTextArtifact(u.String(), u.String(), 0, map[string]string{}, nil, []string{ConstraintFetchFailed})
	}

	headers := lowerCaseHeaders(resp.Header)

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return NewTextArtifact(u.String(), finalURL, resp.StatusCode, headers, nil, nil)
	}

	text, wasTruncated := truncate(string(body), f.bodyCapChars)
	var constraints []string
	if wasTruncated {
		constraints = append(constraints, ConstraintTruncatedDueToLimits)
	}

	return NewTextArtifact(u.String(), finalURL, resp.StatusCode, headers, &text, constraints)
}

func (f *Fetcher) do(ctx context.Context, u url.URL) (*http.Response, []byte, string, *FetchError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, nil, "", &FetchError{URL: u.String(), Message: err.Error(), Cause: CauseRequestFailed}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml,text/plain;q=0.9,*/*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, nil, "", &FetchError{URL: u.String(), Message: err.Error(), Cause: CauseNetworkFailure}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, resp.Request.URL.String(), &FetchError{URL: u.String(), Message: err.Error(), Cause: CauseReadResponseBodyError}
	}

	return resp, body, resp.Request.URL.String(), nil
}

func (f *Fetcher) logFetch(scanID, requestedURL string, resp *http.Response, duration time.Duration, ferr *FetchError) {
	if ferr != nil {
		f.metadataSink.RecordError(scanID, "fetcher", "do", ToMetadataCause(ferr.Cause), ferr,
			metadata.NewAttr(metadata.AttrURL, requestedURL))
		return
	}
	contentType := ""
	status := 0
	if resp != nil {
		contentType = resp.Header.Get("Content-Type")
		status = resp.StatusCode
	}
	f.metadataSink.RecordFetch(scanID, metadata.NewFetchEvent(requestedURL, status, duration, contentType))
}

func lowerCaseHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for key, values := range h {
		if len(values) == 0 {
			continue
		}
		out[strings.ToLower(key)] = values[0]
	}
	return out
}

func isHTMLContentType(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml")
}
