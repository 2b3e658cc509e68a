package encoding

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloDigestHex = "0xb6e16d27ac5ab427a7f68900ac5559ce272dc6c37c82b3e052246c82244c50e4"

func TestEncodeSigningPayload(t *testing.T) {
	msg := []byte("Hello, world!")
	digest := Keccak256(msg)

	tests := []struct {
		name string
		data []byte
		mode SigningMode
		want string
	}{
		{"raw bytes hashed", msg, RawBytesHashed, "tuFtJ6xatCen9okArFVZzictxsN8grPgUiRsgiRMUOQ"},
		{"prehashed hash", digest, PrehashedHash, helloDigestHex},
		{"prehashed base64url", digest, PrehashedBase64URL, "tuFtJ6xatCen9okArFVZzictxsN8grPgUiRsgiRMUOQ"},
		{"raw bytes hashed hex", msg, RawBytesHashedHex, helloDigestHex},
		{"raw bytes hex", msg, RawBytesHex, "0x48656c6c6f2c20776f726c6421"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeSigningPayload(tt.data, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRawBytesHashedIsUnpaddedBase64URLOfKeccak(t *testing.T) {
	data := []byte("some-data")
	got, err := EncodeSigningPayload(data, RawBytesHashed)
	require.NoError(t, err)

	assert.Equal(t, base64.RawURLEncoding.EncodeToString(Keccak256(data)), got)
	assert.NotContains(t, got, "=")
}

func TestSigningModesDiverge(t *testing.T) {
	msg := []byte("Hello, world!")

	hashed, err := EncodeSigningPayload(msg, RawBytesHashed)
	require.NoError(t, err)
	prehashed, err := EncodeSigningPayload(Keccak256(msg), PrehashedHash)
	require.NoError(t, err)

	assert.NotEqual(t, hashed, prehashed)

	// Both encode the same digest.
	fromHex, err := hexutil.Decode(prehashed)
	require.NoError(t, err)
	fromB64, err := base64.RawURLEncoding.DecodeString(hashed)
	require.NoError(t, err)
	assert.Equal(t, fromHex, fromB64)
}

func TestPrehashedModesDoNotHashAgain(t *testing.T) {
	digest := Keccak256([]byte("payload"))

	got, err := EncodeSigningPayload(digest, PrehashedHash)
	require.NoError(t, err)
	assert.Equal(t, hexutil.Encode(digest), got)
}

func TestHashedModesAcceptDigestSizedInput(t *testing.T) {
	// 32 bytes of raw input are still hashed.
	input := make([]byte, DigestLength)
	got, err := EncodeSigningPayload(input, RawBytesHashedHex)
	require.NoError(t, err)
	assert.Equal(t, hexutil.Encode(Keccak256(input)), got)
}

func TestPrehashedInvalidLength(t *testing.T) {
	for _, mode := range []SigningMode{PrehashedHash, PrehashedBase64URL} {
		for _, n := range []int{0, 31, 33, 64} {
			_, err := EncodeSigningPayload(make([]byte, n), mode)
			require.Error(t, err, "mode %s len %d", mode, n)
			assert.True(t, errors.Is(err, ErrInvalidDigestLength))
		}
	}
}

func TestUnknownSigningMode(t *testing.T) {
	_, err := EncodeSigningPayload([]byte("x"), SigningMode(99))
	require.Error(t, err)
	assert.Equal(t, "SigningMode(99)", SigningMode(99).String())
	assert.Equal(t, "raw-bytes-hashed", RawBytesHashed.String())
}
