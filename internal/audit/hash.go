package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
)

// CanonicalHash serializes v to RFC 8785 canonical JSON and returns
// the hex-encoded SHA-256 digest. Canonicalization fixes key ordering
// and number formatting, so two logically equal payloads always hash
// identically regardless of how they were constructed.
func CanonicalHash(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize payload: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// HashPayload hashes a debate audit payload.
func HashPayload(p Payload) (string, error) {
	return CanonicalHash(p)
}
