package guard

import (
	"fmt"

	"github.com/coldharbor-labs/suppression-screen/internal/metadata"
	"github.com/coldharbor-labs/suppression-screen/pkg/failure"
)

type ErrorCause string

const (
	CauseEmbeddedCredentials ErrorCause = "embedded credentials"
	CauseLoopbackHost        ErrorCause = "loopback hostname"
	CauseInternalSuffix      ErrorCause = "internal-only hostname suffix"
)

// GuardError rejects a normalized origin before any fetch is attempted. It is
// always fatal: there is no degraded mode for a target the guard refuses.
type GuardError struct {
	Host  string
	Cause ErrorCause
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("refusing to fetch %q: %s", e.Host, e.Cause)
}

func (e *GuardError) Severity() failure.Severity {
	return failure.SeverityFatal
}

func ToMetadataCause(ErrorCause) metadata.ErrorCause {
	return metadata.CausePolicyDisallow
}
