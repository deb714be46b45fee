// Package hashutil provides hashing primitives: NewCorrelationID derives a
// scan's correlation id, and HashBytes is a general hex-digest helper that
// the scan pipeline does not call.
package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"lukechampine.com/blake3"
)

type HashAlgo string

const (
	HashAlgoSHA256 = "sha256"
	HashAlgoBLAKE3 = "blake3"
)

// HashBytes returns the hash of data as a hex string using the given algorithm.
func HashBytes(data []byte, algo HashAlgo) (string, error) {
	switch algo {
	case HashAlgoSHA256:
		return hashBytesSha256(data), nil
	case HashAlgoBLAKE3:
		return hashBytesBlake3(data), nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm: %s", algo)
	}
}

func hashBytesSha256(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func hashBytesBlake3(data []byte) string {
	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// CorrelationIDLength is the number of hex characters kept from the BLAKE3
// digest when deriving a correlation id. Long enough to not collide across
// the scans a single process runs, short enough to sit comfortably in a
// structured log field.
const CorrelationIDLength = 16

// NewCorrelationID derives a per-scan id from the target origin and a caller
// supplied nonce (e.g. a monotonic counter or random value). It looks
// unique-per-request but is a pure function of its inputs: same inputs,
// same id, which keeps log correlation reproducible in tests.
func NewCorrelationID(origin string, nonce uint64) string {
	seed := fmt.Sprintf("%s|%d", origin, nonce)
	full := blake3.Sum256([]byte(seed))
	return hex.EncodeToString(full[:])[:CorrelationIDLength]
}
