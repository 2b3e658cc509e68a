package vaultsdk

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	keycrypto "github.com/MaximFischuk/quorum-vault-client/internal/crypto"
	"github.com/MaximFischuk/quorum-vault-client/internal/encoding"
)

// ErrUnsupportedCurve is returned when a signature cannot be verified
// locally for the key's curve. Only secp256k1 keys are supported.
var ErrUnsupportedCurve = keycrypto.ErrUnsupportedCurve

// Verify reports whether resp is a valid signature of data by the key, as
// returned by Sign.
func (k *Key) Verify(data []byte, resp *SignResponse) (bool, error) {
	return k.VerifyHash(encoding.Keccak256(data), resp)
}

// VerifyHash reports whether resp is a valid signature of a 32-byte digest
// by the key, as returned by SignHash.
func (k *Key) VerifyHash(digest []byte, resp *SignResponse) (bool, error) {
	if resp == nil {
		return false, errors.New("sign response is nil")
	}
	if len(digest) != 32 {
		return false, fmt.Errorf("%w, got %d bytes", ErrInvalidDigestLength, len(digest))
	}
	if k.Curve != CurveSecp256k1 {
		return false, fmt.Errorf("%w: %s", ErrUnsupportedCurve, k.Curve)
	}

	pub, err := base64.StdEncoding.DecodeString(k.PublicKey)
	if err != nil {
		return false, fmt.Errorf("invalid base64 encoding: %w", err)
	}
	verifier, err := keycrypto.NewVerifier(k.Curve, pub)
	if err != nil {
		return false, err
	}
	sig, err := decodeSignature(resp.Signature)
	if err != nil {
		return false, err
	}
	return verifier.Verify(digest, sig)
}

// decodeSignature accepts 0x-hex or base64url, padded or not. Base64url
// text may itself start with "0x", so only hex of signature length takes
// the hex path.
func decodeSignature(s string) ([]byte, error) {
	if n := len(s) - 2; strings.HasPrefix(s, "0x") && (n == 128 || n == 130) {
		if b, err := hexutil.Decode(s); err == nil {
			return b, nil
		}
	}
	if b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "=")); err == nil {
		return b, nil
	}
	return nil, fmt.Errorf("invalid signature encoding: %q", s)
}
