package encoding

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// DigestLength is the byte length of a keccak-256 digest.
const DigestLength = 32

// ErrInvalidDigestLength is returned when a prehashed payload is not a
// 32-byte digest.
var ErrInvalidDigestLength = errors.New("digest must be 32 bytes")

// SigningMode selects how a signing payload is put on the wire. Each backend
// endpoint expects exactly one mode; the mode is never inferred from the
// input.
type SigningMode int

const (
	// RawBytesHashed hashes the input with keccak-256 and base64url-encodes
	// the digest without padding. Used by key signing.
	RawBytesHashed SigningMode = iota
	// PrehashedHash renders a 32-byte digest as 0x-prefixed hex. Used by
	// zk-SNARK hash signing.
	PrehashedHash
	// PrehashedBase64URL base64url-encodes a 32-byte digest without padding.
	// Used by key hash signing.
	PrehashedBase64URL
	// RawBytesHashedHex hashes the input with keccak-256 and renders the
	// digest as 0x-prefixed hex. Used by zk-SNARK signing.
	RawBytesHashedHex
	// RawBytesHex renders the input unhashed as 0x-prefixed hex. Used by
	// Ethereum message signing, where the backend applies its own hashing.
	RawBytesHex
)

type payloadFormat int

const (
	formatBase64URL payloadFormat = iota
	formatHex
)

var signingModes = map[SigningMode]struct {
	name    string
	hash    bool
	prehash bool
	format  payloadFormat
}{
	RawBytesHashed:     {name: "raw-bytes-hashed", hash: true, format: formatBase64URL},
	PrehashedHash:      {name: "prehashed-hash", prehash: true, format: formatHex},
	PrehashedBase64URL: {name: "prehashed-base64url", prehash: true, format: formatBase64URL},
	RawBytesHashedHex:  {name: "raw-bytes-hashed-hex", hash: true, format: formatHex},
	RawBytesHex:        {name: "raw-bytes-hex", format: formatHex},
}

// String returns the mode name.
func (m SigningMode) String() string {
	if def, ok := signingModes[m]; ok {
		return def.name
	}
	return fmt.Sprintf("SigningMode(%d)", int(m))
}

// EncodeSigningPayload renders data for a sign endpoint according to mode.
func EncodeSigningPayload(data []byte, mode SigningMode) (string, error) {
	def, ok := signingModes[mode]
	if !ok {
		return "", fmt.Errorf("unknown signing mode %d", int(mode))
	}

	payload := data
	switch {
	case def.hash:
		payload = Keccak256(data)
	case def.prehash:
		if len(data) != DigestLength {
			return "", fmt.Errorf("%s: %w, got %d", def.name, ErrInvalidDigestLength, len(data))
		}
	}

	if def.format == formatHex {
		return hexutil.Encode(payload), nil
	}
	return base64.RawURLEncoding.EncodeToString(payload), nil
}
