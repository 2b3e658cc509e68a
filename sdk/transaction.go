package vaultsdk

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/MaximFischuk/quorum-vault-client/internal/encoding"
	"github.com/MaximFischuk/quorum-vault-client/internal/evmtx"
)

// ErrSignerMismatch is returned when a transaction signature does not
// recover to the transaction's From address.
var ErrSignerMismatch = errors.New("signature does not match transaction sender")

// SignedTransaction is a legacy transaction ready for eth_sendRawTransaction.
type SignedTransaction struct {
	// Raw is the RLP-encoded signed transaction.
	Raw hexutil.Bytes `json:"raw"`

	// Hash is the transaction hash, keccak256(Raw).
	Hash common.Hash `json:"hash"`

	// From is the address recovered from the signature.
	From common.Address `json:"from"`
}

// AssembleTransaction combines tx with the signature returned by
// SignTransaction for the same chainID. The signature must recover to
// tx.From; otherwise ErrSignerMismatch is returned.
//
//	resp, err := client.SignTransaction(ctx, "quorum", 1, tx)
//	signed, err := vaultsdk.AssembleTransaction(1, tx, resp)
//	// broadcast signed.Raw.String()
func AssembleTransaction(chainID uint64, tx *Transaction, resp *SignResponse) (*SignedTransaction, error) {
	const op = "assemble_transaction"
	if resp == nil {
		return nil, newClientError(op, errors.New("sign response is nil"))
	}
	fields, err := encoding.EncodeTransaction(chainID, tx)
	if err != nil {
		return nil, newClientError(op, err)
	}
	legacy, err := evmtx.FromFields(fields)
	if err != nil {
		return nil, newClientError(op, err)
	}
	sig, err := evmtx.ParseSignature(resp.Signature)
	if err != nil {
		return nil, newClientError(op, err)
	}

	from, err := legacy.Sender(sig)
	if err != nil {
		return nil, newClientError(op, err)
	}
	if from != tx.From {
		return nil, newClientError(op, fmt.Errorf("%w: recovered %s, want %s",
			ErrSignerMismatch, encoding.Checksum(from), encoding.Checksum(tx.From)))
	}

	raw, err := legacy.AssembleSignedTx(sig)
	if err != nil {
		return nil, newClientError(op, err)
	}
	return &SignedTransaction{
		Raw:  raw,
		Hash: crypto.Keccak256Hash(raw),
		From: from,
	}, nil
}
