package crypto

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// Secp256k1Verifier implements the Verifier interface for secp256k1 keys.
// This is compatible with Ethereum and Bitcoin signatures.
type Secp256k1Verifier struct {
	publicKey *secp256k1.PublicKey
}

// NewSecp256k1Verifier parses a compressed (33 bytes) or uncompressed
// (65 bytes) public key.
func NewSecp256k1Verifier(publicKey []byte) (*Secp256k1Verifier, error) {
	pub, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return nil, fmt.Errorf("invalid secp256k1 public key: %w", err)
	}
	return &Secp256k1Verifier{publicKey: pub}, nil
}

// Verify checks an R (32 bytes) || S (32 bytes) signature, optionally
// followed by a recovery byte, which is ignored.
func (v *Secp256k1Verifier) Verify(digest, signature []byte) (bool, error) {
	if len(digest) != 32 {
		return false, fmt.Errorf("%w, got %d", ErrInvalidDigestLength, len(digest))
	}
	if len(signature) != 64 && len(signature) != 65 {
		return false, fmt.Errorf("expected 64 or 65-byte signature, got %d bytes", len(signature))
	}

	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(signature[0:32]); overflow || r.IsZero() {
		return false, nil
	}
	if overflow := s.SetByteSlice(signature[32:64]); overflow || s.IsZero() {
		return false, nil
	}
	return ecdsa.NewSignature(&r, &s).Verify(digest, v.publicKey), nil
}

// Curve returns the curve type.
func (v *Secp256k1Verifier) Curve() string {
	return CurveSecp256k1
}

// PublicKey returns the uncompressed public key (65 bytes: 0x04 || X || Y).
func (v *Secp256k1Verifier) PublicKey() []byte {
	return v.publicKey.SerializeUncompressed()
}
