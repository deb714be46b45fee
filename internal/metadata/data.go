package metadata

import "time"

// FetchEvent is one recorded attempt to retrieve an artifact during a scan.
type FetchEvent struct {
	url         string
	httpStatus  int
	duration    time.Duration
	contentType string
}

func NewFetchEvent(url string, httpStatus int, duration time.Duration, contentType string) FetchEvent {
	return FetchEvent{url: url, httpStatus: httpStatus, duration: duration, contentType: contentType}
}

/*
ErrorCause is a closed, canonical classification used exclusively for
observability (logging, metrics, reporting).

Rules:
  - ErrorCause is for observability only.
  - It must never be used to derive abort, degrade, or retry decisions.
  - ErrorCause values MUST have stable, package-agnostic semantics.
  - Pipeline packages MAY map their local errors to ErrorCause but MUST NOT
    invent new meanings.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

const (
	CauseUnknown ErrorCause = iota
	// CauseNetworkFailure: transport or remote-availability failure (timeout,
	// DNS, connection reset).
	CauseNetworkFailure
	// CausePolicyDisallow: a fetch was rejected by SSRF guard or robots policy.
	CausePolicyDisallow
	// CauseContentInvalid: body fetched but not usable (non-HTML, empty,
	// truncated past recovery).
	CauseContentInvalid
	// CauseUpstreamStatus: the origin returned a non-2xx/3xx status.
	CauseUpstreamStatus
	// CauseInvariantViolation: an internal consistency check failed.
	CauseInvariantViolation
)

func (c ErrorCause) String() string {
	switch c {
	case CauseNetworkFailure:
		return "network_failure"
	case CausePolicyDisallow:
		return "policy_disallow"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseUpstreamStatus:
		return "upstream_status"
	case CauseInvariantViolation:
		return "invariant_violation"
	default:
		return "unknown"
	}
}

type AttributeKey string

const (
	AttrURL        AttributeKey = "url"
	AttrHost       AttributeKey = "host"
	AttrStage      AttributeKey = "stage"
	AttrHTTPStatus AttributeKey = "http_status"
	AttrRootCause  AttributeKey = "root_cause"
	AttrSeverity   AttributeKey = "severity"
	AttrScanID     AttributeKey = "scan_id"
	AttrErrorType  AttributeKey = "error_type"
)

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{Key: key, Value: val}
}
