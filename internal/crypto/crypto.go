// Package crypto verifies signatures returned by backend-held keys.
package crypto

import (
	"errors"
	"fmt"

	"github.com/MaximFischuk/quorum-vault-client/internal/encoding"
)

// CurveSecp256k1 is the only curve with a local verifier.
const CurveSecp256k1 = "secp256k1"

var (
	// ErrUnsupportedCurve is returned for keys whose curve has no verifier.
	ErrUnsupportedCurve = errors.New("unsupported curve")

	// ErrInvalidDigestLength is returned when the digest is not 32 bytes.
	ErrInvalidDigestLength = encoding.ErrInvalidDigestLength
)

// Verifier checks signatures made by a single public key.
type Verifier interface {
	// Verify reports whether signature is valid for digest.
	// The digest must be 32 bytes.
	Verify(digest, signature []byte) (bool, error)

	// Curve returns the curve name.
	Curve() string
}

// NewVerifier creates a verifier for a public key on curve.
func NewVerifier(curve string, publicKey []byte) (Verifier, error) {
	switch curve {
	case CurveSecp256k1:
		return NewSecp256k1Verifier(publicKey)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurve, curve)
	}
}
