package fetcher

import "strings"

// Kind distinguishes the two artifact shapes the fetcher produces: full HTML
// pages get sanitized and parsed downstream, robots/sitemap bodies are kept
// as plain text.
type Kind int

const (
	KindHTML Kind = iota
	KindText
)

// HtmlArtifact is the result of fetching a page expected to be HTML.
// Html is nil whenever the body was not retained (fetch failure, non-HTML
// content-type, or non-2xx/3xx status).
type HtmlArtifact struct {
	requestedURL string
	finalURL     string
	status       int
	headers      map[string]string
	html         *string
	constraints  []string
}

func NewHtmlArtifact(requestedURL, finalURL string, status int, headers map[string]string, html *string, constraints []string) HtmlArtifact {
	return HtmlArtifact{
		requestedURL: requestedURL,
		finalURL:     finalURL,
		status:       status,
		headers:      headers,
		html:         html,
		constraints:  constraints,
	}
}

func (a HtmlArtifact) RequestedURL() string    { return a.requestedURL }
func (a HtmlArtifact) FinalURL() string        { return a.finalURL }
func (a HtmlArtifact) Status() int             { return a.status }
func (a HtmlArtifact) Headers() map[string]string { return a.headers }
func (a HtmlArtifact) HTML() (string, bool) {
	if a.html == nil {
		return "", false
	}
	return *a.html, true
}
func (a HtmlArtifact) Constraints() []string { return a.constraints }

// Header looks up a header by name, case-insensitively (headers are stored
// already lower-cased by the fetcher).
func (a HtmlArtifact) Header(name string) (string, bool) {
	v, ok := a.headers[strings.ToLower(name)]
	return v, ok
}

// TextArtifact is the result of fetching robots.txt or sitemap.xml.
type TextArtifact struct {
	requestedURL string
	finalURL     string
	status       int
	headers      map[string]string
	text         *string
	constraints  []string
}

func NewTextArtifact(requestedURL, finalURL string, status int, headers map[string]string, text *string, constraints []string) TextArtifact {
	return TextArtifact{
		requestedURL: requestedURL,
		finalURL:     finalURL,
		status:       status,
		headers:      headers,
		text:         text,
		constraints:  constraints,
	}
}

func (a TextArtifact) RequestedURL() string       { return a.requestedURL }
func (a TextArtifact) FinalURL() string           { return a.finalURL }
func (a TextArtifact) Status() int                { return a.status }
func (a TextArtifact) Headers() map[string]string { return a.headers }
func (a TextArtifact) Text() (string, bool) {
	if a.text == nil {
		return "", false
	}
	return *a.text, true
}
func (a TextArtifact) Constraints() []string { return a.constraints }

func (a TextArtifact) Available() bool {
	return a.status >= 200 && a.status < 400 && a.text != nil
}

func (a HtmlArtifact) Available() bool {
	return a.status >= 200 && a.status < 400 && a.html != nil
}
