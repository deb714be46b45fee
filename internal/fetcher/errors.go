package fetcher

import (
	"fmt"

	"github.com/coldharbor-labs/suppression-screen/internal/metadata"
	"github.com/coldharbor-labs/suppression-screen/pkg/failure"
)

type ErrorCause string

const (
	CauseTimeout               ErrorCause = "timeout"
	CauseNetworkFailure        ErrorCause = "network issues"
	CauseReadResponseBodyError ErrorCause = "failed to read response body"
	CauseRedirectLimitExceeded ErrorCause = "reached redirect limit"
	CauseRequestFailed         ErrorCause = "request construction failed"
)

// FetchError is only ever used internally to decide how to populate an
// artifact's constraints; it never escapes the fetcher. Per-artifact fetch
// failures are always recoverable from the scan's point of view: they
// degrade the report, they do not abort it.
type FetchError struct {
	URL     string
	Message string
	Cause   ErrorCause
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
}

func (e *FetchError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

// ToMetadataCause maps fetcher-local error semantics to the canonical
// metadata.ErrorCause table. Observational only.
func ToMetadataCause(cause ErrorCause) metadata.ErrorCause {
	switch cause {
	case CauseTimeout, CauseNetworkFailure:
		return metadata.CauseNetworkFailure
	case CauseRedirectLimitExceeded:
		return metadata.CausePolicyDisallow
	default:
		return metadata.CauseUnknown
	}
}
