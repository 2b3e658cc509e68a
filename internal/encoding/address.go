// Package encoding turns domain values into the wire formats expected by the
// Quorum Vault plugin: EIP-55 checksum addresses, decimal-string transaction
// fields and the per-account-type signing payloads.
//
// Every function in this package is pure. Failures are limited to
// structurally invalid input and are reported before any request is built.
package encoding

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// Keccak256 computes the Keccak-256 hash of the input data.
// Ethereum uses the original Keccak-256, NOT the NIST-standardized SHA3-256.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// Checksum returns the EIP-55 mixed-case form of addr with a "0x" prefix.
func Checksum(addr common.Address) string {
	return "0x" + toChecksumAddress(hex.EncodeToString(addr[:]))
}

// ParseAddress decodes a 20-byte hex address in any letter case, with or
// without the "0x" prefix.
func ParseAddress(s string) (common.Address, error) {
	cleaned := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(cleaned)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid address %q: %w", s, err)
	}
	if len(b) != common.AddressLength {
		return common.Address{}, fmt.Errorf("invalid address %q: expected %d bytes, got %d", s, common.AddressLength, len(b))
	}
	return common.BytesToAddress(b), nil
}

// toChecksumAddress applies EIP-55 mixed-case checksum encoding.
// Input: 40-char hex address (without "0x" prefix).
func toChecksumAddress(address string) string {
	address = strings.ToLower(address)
	hash := Keccak256([]byte(address))
	result := make([]byte, len(address))
	for i, c := range address {
		if c >= '0' && c <= '9' {
			result[i] = byte(c)
			continue
		}
		hashByte := hash[i/2]
		var nibble byte
		if i%2 == 0 {
			nibble = hashByte >> 4
		} else {
			nibble = hashByte & 0x0f
		}
		if nibble >= 8 {
			result[i] = byte(c) - 32 // uppercase
		} else {
			result[i] = byte(c)
		}
	}
	return string(result)
}
