package vaultsdk

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/MaximFischuk/quorum-vault-client/internal/encoding"
)

// Client defines the interface for interacting with the Quorum Vault plugin.
//
// Every method takes the mount path of the plugin instance as its second
// argument. The mount is never defaulted; an empty mount fails with
// ErrEmptyMount before any request is sent. Every failure is a *ClientError.
type Client interface {
	// CreateAccount creates a new Ethereum account.
	CreateAccount(ctx context.Context, mount string) (*EthereumAccount, error)

	// ListAccounts returns the addresses of all Ethereum accounts.
	ListAccounts(ctx context.Context, mount string) ([]common.Address, error)

	// ReadAccount retrieves an Ethereum account by address.
	ReadAccount(ctx context.Context, mount string, address common.Address) (*EthereumAccount, error)

	// SignTransaction signs a legacy Ethereum transaction with the account
	// named by tx.From.
	SignTransaction(ctx context.Context, mount string, chainID uint64, tx *Transaction) (*SignResponse, error)

	// ImportPrivateKey imports a hex private key as a new Ethereum account.
	// The key is sent verbatim.
	ImportPrivateKey(ctx context.Context, mount, privateKey string) (*EthereumAccount, error)

	// SignMessage signs an arbitrary message with an Ethereum account.
	SignMessage(ctx context.Context, mount string, address common.Address, data []byte) (*SignResponse, error)

	// CreateKey creates a new signing key.
	CreateKey(ctx context.Context, mount, id string, algorithm Algorithm, tags map[string]string) (*Key, error)

	// ReadKey retrieves a key by ID.
	ReadKey(ctx context.Context, mount, id string) (*Key, error)

	// ListKeys returns the IDs of all keys.
	ListKeys(ctx context.Context, mount string) ([]string, error)

	// UpdateKeyTags replaces the full tag set of a key.
	UpdateKeyTags(ctx context.Context, mount, id string, tags map[string]string) (*Key, error)

	// DestroyKey permanently deletes a key.
	DestroyKey(ctx context.Context, mount, id string) error

	// ImportKey imports an existing private key under id.
	ImportKey(ctx context.Context, mount, id string, algorithm Algorithm, tags map[string]string, privateKey string) (*Key, error)

	// Sign hashes data with Keccak-256 and signs the digest with a key.
	Sign(ctx context.Context, mount, id string, data []byte) (*SignResponse, error)

	// SignHash signs a 32-byte digest with a key.
	SignHash(ctx context.Context, mount, id string, digest []byte) (*SignResponse, error)

	// CreateZkSnarksAccount creates a new zk-SNARK (EdDSA/BabyJubJub) account.
	CreateZkSnarksAccount(ctx context.Context, mount string) (*ZkSnarksAccount, error)

	// ReadZkSnarksAccount retrieves a zk-SNARK account by its public key.
	ReadZkSnarksAccount(ctx context.Context, mount, id string) (*ZkSnarksAccount, error)

	// ListZkSnarksAccounts returns the public keys of all zk-SNARK accounts.
	ListZkSnarksAccounts(ctx context.Context, mount string) ([]string, error)

	// ZkSnarksSign hashes data with Keccak-256 and signs the digest with a
	// zk-SNARK account.
	ZkSnarksSign(ctx context.Context, mount, id string, data []byte) (*SignResponse, error)

	// ZkSnarksSignHash signs a 32-byte digest with a zk-SNARK account.
	ZkSnarksSignHash(ctx context.Context, mount, id string, digest []byte) (*SignResponse, error)
}

// Transaction describes an Ethereum legacy transaction. Unset optional
// fields default to: To = zero address, Value = 0, Gas = 21000,
// GasPrice = 0, Nonce = 0, Data = empty.
type Transaction = encoding.Transaction

// EthereumAccount is an Ethereum account held by the plugin.
type EthereumAccount struct {
	// Address is the account address.
	Address common.Address `json:"address"`

	// CompressedPublicKey is the hex-encoded compressed public key.
	CompressedPublicKey string `json:"compressed_public_key"`

	// PublicKey is the hex-encoded uncompressed public key.
	PublicKey string `json:"public_key"`

	// Namespace is the Vault namespace of the account.
	Namespace string `json:"namespace"`
}

// ChecksumAddress returns the EIP-55 form of the account address.
func (a *EthereumAccount) ChecksumAddress() string {
	return encoding.Checksum(a.Address)
}

// Key represents the public information about a signing key.
type Key struct {
	// ID is the caller-chosen key identifier.
	ID string `json:"id"`

	// Curve is the elliptic curve: "secp256k1" or "babyjubjub".
	Curve string `json:"curve"`

	// SigningAlgorithm is the signature scheme: "ecdsa" or "eddsa".
	SigningAlgorithm string `json:"signing_algorithm"`

	// PublicKey is the encoded public key as returned by the plugin.
	PublicKey string `json:"public_key"`

	// Namespace is the Vault namespace of the key.
	Namespace string `json:"namespace"`

	// Tags is the user-defined tag set.
	Tags map[string]string `json:"tags"`

	// CreatedAt and UpdatedAt are backend timestamps, kept as sent.
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`

	// Version is incremented by the backend on every change.
	Version uint64 `json:"version"`
}

// Algorithm resolves the key's curve and signing algorithm back to an
// Algorithm.
func (k *Key) Algorithm() (Algorithm, bool) {
	return lookupAlgorithm(k.Curve, k.SigningAlgorithm)
}

// ZkSnarksAccount is a zk-SNARK account held by the plugin.
type ZkSnarksAccount struct {
	Curve            string `json:"curve"`
	Namespace        string `json:"namespace"`
	PublicKey        string `json:"public_key"`
	SigningAlgorithm string `json:"signing_algorithm"`
}

// SignResponse contains the signing result.
type SignResponse struct {
	// Signature is returned by the backend unmodified.
	Signature string `json:"signature"`
}

type listResponse struct {
	Keys []string `json:"keys"`
}

type accountsResponse struct {
	Keys []common.Address `json:"keys"`
}
