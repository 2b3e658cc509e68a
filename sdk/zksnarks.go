package vaultsdk

import (
	"context"
	"net/http"

	"github.com/MaximFischuk/quorum-vault-client/internal/encoding"
	"github.com/MaximFischuk/quorum-vault-client/internal/endpoint"
)

const (
	pathZkAccounts   = "{mount}/zk-snarks/accounts"
	pathZkAccount    = "{mount}/zk-snarks/accounts/{id}"
	pathZkAccountSig = "{mount}/zk-snarks/accounts/{id}/sign"
)

// CreateZkSnarksAccount creates a new zk-SNARK account.
func (c *httpClient) CreateZkSnarksAccount(ctx context.Context, mount string) (*ZkSnarksAccount, error) {
	var account ZkSnarksAccount
	err := c.call(ctx, "create_zk_snarks_account", mount, &endpoint.Descriptor{
		Method:   http.MethodPost,
		Template: pathZkAccounts,
	}, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// ReadZkSnarksAccount retrieves a zk-SNARK account by its public key.
func (c *httpClient) ReadZkSnarksAccount(ctx context.Context, mount, id string) (*ZkSnarksAccount, error) {
	var account ZkSnarksAccount
	err := c.call(ctx, "read_zk_snarks_account", mount, &endpoint.Descriptor{
		Method:   http.MethodGet,
		Template: pathZkAccount,
		Path:     map[string]string{"id": id},
	}, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// ListZkSnarksAccounts returns the public keys of all zk-SNARK accounts.
func (c *httpClient) ListZkSnarksAccounts(ctx context.Context, mount string) ([]string, error) {
	var result listResponse
	err := c.call(ctx, "list_zk_snarks_accounts", mount, &endpoint.Descriptor{
		Method:   http.MethodGet,
		Template: pathZkAccounts,
	}, &result)
	if err != nil {
		return nil, err
	}
	return result.Keys, nil
}

// ZkSnarksSign hashes data with Keccak-256 and signs the digest. The digest
// is sent as 0x-prefixed hex.
func (c *httpClient) ZkSnarksSign(ctx context.Context, mount, id string, data []byte) (*SignResponse, error) {
	return c.sign(ctx, "zk_snarks_sign", mount, pathZkAccountSig, map[string]string{"id": id}, data, encoding.RawBytesHashedHex)
}

// ZkSnarksSignHash signs a 32-byte digest, sent as 0x-prefixed hex.
func (c *httpClient) ZkSnarksSignHash(ctx context.Context, mount, id string, digest []byte) (*SignResponse, error) {
	return c.sign(ctx, "zk_snarks_sign_hash", mount, pathZkAccountSig, map[string]string{"id": id}, digest, encoding.PrehashedHash)
}
