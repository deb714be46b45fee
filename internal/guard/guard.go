// Package guard rejects normalized origins that point at the local machine
// or an internal-only hostname, before the fetcher ever opens a socket.
//
// DNS-resolved private ranges are explicitly not checked here; this is a
// documented v1 limitation, not an oversight.
package guard

import (
	"net/url"
	"strings"

	"github.com/coldharbor-labs/suppression-screen/pkg/failure"
)

var blockedHosts = map[string]struct{}{
	"localhost": {},
	"127.0.0.1": {},
	"0.0.0.0":   {},
	"::1":       {},
}

var blockedSuffixes = []string{".local", ".internal"}

// Policy relaxes individual guard checks. The zero value is the production
// policy; AllowLoopback exists so local-development and test configs can scan
// a server bound to 127.0.0.1. Credential and internal-suffix checks are
// never relaxed.
type Policy struct {
	AllowLoopback bool
}

// Check returns a GuardError if u must not be fetched, under the default
// (production) policy.
func Check(u url.URL) failure.ClassifiedError {
	return CheckPolicy(u, Policy{})
}

func CheckPolicy(u url.URL, p Policy) failure.ClassifiedError {
	if u.User != nil {
		return &GuardError{Host: u.Host, Cause: CauseEmbeddedCredentials}
	}

	host := strings.ToLower(u.Hostname())
	if _, blocked := blockedHosts[host]; blocked && !p.AllowLoopback {
		return &GuardError{Host: host, Cause: CauseLoopbackHost}
	}

	for _, suffix := range blockedSuffixes {
		if strings.HasSuffix(host, suffix) {
			return &GuardError{Host: host, Cause: CauseInternalSuffix}
		}
	}

	return nil
}
