package vaultsdk

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/MaximFischuk/quorum-vault-client/internal/encoding"
	"github.com/MaximFischuk/quorum-vault-client/internal/endpoint"
)

const (
	pathAccounts        = "{mount}/ethereum/accounts"
	pathAccount         = "{mount}/ethereum/accounts/{address}"
	pathAccountImport   = "{mount}/ethereum/accounts/import"
	pathAccountSign     = "{mount}/ethereum/accounts/{address}/sign"
	pathAccountSignTx   = "{mount}/ethereum/accounts/{address}/sign-transaction"
	uncompressedKeySize = 65
)

type importAccountBody struct {
	PrivateKey string `json:"private_key"`
}

// CreateAccount creates a new Ethereum account.
func (c *httpClient) CreateAccount(ctx context.Context, mount string) (*EthereumAccount, error) {
	var account EthereumAccount
	err := c.call(ctx, "create_account", mount, &endpoint.Descriptor{
		Method:   http.MethodPost,
		Template: pathAccounts,
	}, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// ListAccounts returns the addresses of all Ethereum accounts.
func (c *httpClient) ListAccounts(ctx context.Context, mount string) ([]common.Address, error) {
	var result accountsResponse
	err := c.call(ctx, "list_accounts", mount, &endpoint.Descriptor{
		Method:   http.MethodGet,
		Template: pathAccounts,
	}, &result)
	if err != nil {
		return nil, err
	}
	return result.Keys, nil
}

// ReadAccount retrieves an Ethereum account by address.
func (c *httpClient) ReadAccount(ctx context.Context, mount string, address common.Address) (*EthereumAccount, error) {
	var account EthereumAccount
	err := c.call(ctx, "read_account", mount, &endpoint.Descriptor{
		Method:   http.MethodGet,
		Template: pathAccount,
		Path:     map[string]string{"address": encoding.Checksum(address)},
	}, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// SignTransaction signs a legacy Ethereum transaction.
func (c *httpClient) SignTransaction(ctx context.Context, mount string, chainID uint64, tx *Transaction) (*SignResponse, error) {
	const op = "sign_transaction"
	if err := requireMount(op, mount); err != nil {
		return nil, err
	}
	fields, err := encoding.EncodeTransaction(chainID, tx)
	if err != nil {
		return nil, newClientError(op, err)
	}

	var result SignResponse
	err = c.call(ctx, op, mount, &endpoint.Descriptor{
		Method:   http.MethodPost,
		Template: pathAccountSignTx,
		Path:     map[string]string{"address": encoding.Checksum(tx.From)},
		Body:     fields,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ImportPrivateKey imports a hex private key as a new Ethereum account.
func (c *httpClient) ImportPrivateKey(ctx context.Context, mount, privateKey string) (*EthereumAccount, error) {
	var account EthereumAccount
	err := c.call(ctx, "import_private_key", mount, &endpoint.Descriptor{
		Method:   http.MethodPost,
		Template: pathAccountImport,
		Body:     importAccountBody{PrivateKey: privateKey},
	}, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// SignMessage signs data with an Ethereum account. The bytes are sent as
// 0x-prefixed hex; the backend applies its own hashing.
func (c *httpClient) SignMessage(ctx context.Context, mount string, address common.Address, data []byte) (*SignResponse, error) {
	return c.sign(ctx, "sign_message", mount, pathAccountSign,
		map[string]string{"address": encoding.Checksum(address)}, data, encoding.RawBytesHex)
}

// DerivedAddress derives the account address from its uncompressed public
// key ("0x04..." hex).
func (a *EthereumAccount) DerivedAddress() (common.Address, error) {
	pub, err := hexutil.Decode(a.PublicKey)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid hex encoding: %w", err)
	}
	return PubKeyToAddress(pub)
}

// EthereumAddress derives the Ethereum address of a secp256k1 key from its
// base64-encoded uncompressed public key.
//
// Returns an error if the key's curve is not secp256k1 or the public key
// format is invalid.
func (k *Key) EthereumAddress() (common.Address, error) {
	if k.Curve != CurveSecp256k1 {
		return common.Address{}, fmt.Errorf("ethereum address derivation requires %s curve, got %s", CurveSecp256k1, k.Curve)
	}
	pub, err := base64.StdEncoding.DecodeString(k.PublicKey)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid base64 encoding: %w", err)
	}
	return PubKeyToAddress(pub)
}

// PubKeyToAddress converts a 65-byte uncompressed secp256k1 public key to
// its Ethereum address.
func PubKeyToAddress(pub []byte) (common.Address, error) {
	if len(pub) != uncompressedKeySize {
		return common.Address{}, fmt.Errorf("expected %d-byte uncompressed public key, got %d bytes", uncompressedKeySize, len(pub))
	}
	if pub[0] != 0x04 {
		return common.Address{}, fmt.Errorf("expected uncompressed public key prefix 0x04, got 0x%02x", pub[0])
	}

	// Keccak256 of X||Y; the address is the last 20 bytes.
	hash := encoding.Keccak256(pub[1:])
	return common.BytesToAddress(hash[12:]), nil
}
