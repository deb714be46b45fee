package normalize

import (
	"fmt"

	"github.com/coldharbor-labs/suppression-screen/internal/metadata"
	"github.com/coldharbor-labs/suppression-screen/pkg/failure"
)

type ErrorCause string

const (
	CauseEmptyInput    ErrorCause = "empty input"
	CauseUnparsable    ErrorCause = "unparsable url"
	CauseBadScheme     ErrorCause = "unsupported scheme"
)

// NormalizationError is fatal by construction: a URL that does not normalize
// cannot enter the pipeline at all, so there is no recoverable variant.
type NormalizationError struct {
	Input string
	Cause ErrorCause
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("invalid url %q: %s", e.Input, e.Cause)
}

func (e *NormalizationError) Severity() failure.Severity {
	return failure.SeverityFatal
}

// ToMetadataCause maps normalize-local error semantics to the canonical
// metadata.ErrorCause table. Observational only.
func ToMetadataCause(cause ErrorCause) metadata.ErrorCause {
	switch cause {
	case CauseEmptyInput, CauseUnparsable, CauseBadScheme:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
