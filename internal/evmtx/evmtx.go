// Package evmtx turns the signature returned by the sign-transaction
// endpoint into a broadcastable EIP-155 legacy transaction.
//
// The backend signs the legacy transaction described by the request body
// and returns only the 65-byte R || S || V signature. To use it:
//
//  1. Encode the transaction with encoding.EncodeTransaction.
//  2. Send the fields to the sign-transaction endpoint.
//  3. Rebuild the same transaction with FromFields.
//  4. Pass the returned signature to ParseSignature and AssembleSignedTx.
//
// Sender recovers the signing address so callers can check that the
// backend signed with the expected account.
package evmtx

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/MaximFischuk/quorum-vault-client/internal/encoding"
)

// SignatureLength is the size of an R || S || V signature.
const SignatureLength = crypto.SignatureLength

// LegacyTx is an EIP-155 legacy transaction.
type LegacyTx struct {
	Nonce    uint64
	GasPrice *big.Int
	GasLimit uint64
	To       common.Address
	Value    *big.Int
	Data     []byte
	ChainID  *big.Int
}

// FromFields rebuilds the transaction the backend signs from the request
// body of the sign-transaction endpoint.
func FromFields(f *encoding.TransactionFields) (*LegacyTx, error) {
	if f == nil {
		return nil, errors.New("transaction fields are nil")
	}
	chainID, err := parseDecimal("chain_id", f.ChainID)
	if err != nil {
		return nil, err
	}
	value, err := parseDecimal("amount", f.Amount)
	if err != nil {
		return nil, err
	}
	gasPrice, err := parseDecimal("gas_price", f.GasPrice)
	if err != nil {
		return nil, err
	}
	to, err := encoding.ParseAddress(f.To)
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}

	return &LegacyTx{
		Nonce:    f.Nonce,
		GasPrice: gasPrice,
		GasLimit: f.GasLimit,
		To:       to,
		Value:    value,
		Data:     common.CopyBytes(f.Data),
		ChainID:  chainID,
	}, nil
}

// SigningHash returns the EIP-155 signing hash:
//
//	keccak256(rlp([nonce, gasPrice, gasLimit, to, value, data, chainId, 0, 0]))
func (tx *LegacyTx) SigningHash() (common.Hash, error) {
	raw, err := rlp.EncodeToBytes([]interface{}{
		tx.Nonce,
		bigOrZero(tx.GasPrice),
		tx.GasLimit,
		tx.To,
		bigOrZero(tx.Value),
		tx.Data,
		bigOrZero(tx.ChainID),
		uint(0),
		uint(0),
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to RLP encode tx payload: %w", err)
	}
	return crypto.Keccak256Hash(raw), nil
}

// AssembleSignedTx serializes the transaction with a 65-byte signature whose
// last byte is the recovery id (0 or 1). V is encoded as
// chainId*2 + 35 + recoveryId.
func (tx *LegacyTx) AssembleSignedTx(sig []byte) ([]byte, error) {
	r, s, recID, err := splitSignature(sig)
	if err != nil {
		return nil, err
	}

	v := new(big.Int).Mul(bigOrZero(tx.ChainID), big.NewInt(2))
	v.Add(v, big.NewInt(35+int64(recID)))

	raw, err := rlp.EncodeToBytes([]interface{}{
		tx.Nonce,
		bigOrZero(tx.GasPrice),
		tx.GasLimit,
		tx.To,
		bigOrZero(tx.Value),
		tx.Data,
		v,
		r,
		s,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to RLP encode signed tx: %w", err)
	}
	return raw, nil
}

// Sender recovers the address that produced sig over the signing hash.
func (tx *LegacyTx) Sender(sig []byte) (common.Address, error) {
	if _, _, _, err := splitSignature(sig); err != nil {
		return common.Address{}, err
	}
	hash, err := tx.SigningHash()
	if err != nil {
		return common.Address{}, err
	}

	pubKeyRaw, err := crypto.Ecrecover(hash.Bytes(), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}
	pubKey, err := crypto.UnmarshalPubkey(pubKeyRaw)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to unmarshal public key: %w", err)
	}
	return crypto.PubkeyToAddress(*pubKey), nil
}

// ParseSignature decodes a hex signature, with or without a 0x prefix,
// into 65 bytes with a recovery id of 0 or 1. A V of 27 or 28 is
// normalized.
func ParseSignature(signatureHex string) ([]byte, error) {
	sig, err := hex.DecodeString(strings.TrimPrefix(signatureHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid signature hex: %w", err)
	}
	if len(sig) != SignatureLength {
		return nil, fmt.Errorf("expected %d-byte signature, got %d bytes", SignatureLength, len(sig))
	}
	if sig[64] >= 27 {
		sig[64] -= 27
	}
	if sig[64] > 1 {
		return nil, fmt.Errorf("invalid recovery id %d, expected 0 or 1", sig[64])
	}
	return sig, nil
}

func splitSignature(sig []byte) (r, s *big.Int, v byte, err error) {
	if len(sig) != SignatureLength {
		return nil, nil, 0, fmt.Errorf("expected %d-byte signature, got %d bytes", SignatureLength, len(sig))
	}
	v = sig[64]
	if v > 1 {
		return nil, nil, 0, fmt.Errorf("invalid recovery id %d, expected 0 or 1", v)
	}
	return new(big.Int).SetBytes(sig[:32]), new(big.Int).SetBytes(sig[32:64]), v, nil
}

func parseDecimal(field, s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%s: invalid decimal %q", field, s)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("%s: %w", field, encoding.ErrNegativeValue)
	}
	return v, nil
}

func bigOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
