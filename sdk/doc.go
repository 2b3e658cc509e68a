// Package vaultsdk provides a Go client for the Quorum Vault plugin.
//
// The client covers the three account families exposed by the plugin:
// Ethereum accounts, generic signing keys and zk-SNARK (EdDSA over
// BabyJubJub) accounts. Each method takes the mount path of the plugin
// instance; transport, authentication and retries are delegated to the
// HashiCorp Vault API client.
//
// # Quick Start
//
//	client, err := vaultsdk.NewClient("https://vault.example.com:8200", "s.my-token")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	key, err := client.CreateKey(ctx, "quorum", "my-key", vaultsdk.Secp256k1,
//	    map[string]string{"env": "dev"})
//
//	// data is hashed with keccak-256 before it is sent
//	sig, err := client.Sign(ctx, "quorum", key.ID, []byte("some-data"))
//
// # Signing payloads
//
// Each signing endpoint expects a fixed payload encoding. Sign and
// ZkSnarksSign hash the input with keccak-256; SignHash and ZkSnarksSignHash
// take a 32-byte digest and reject any other length. SignMessage sends the
// raw bytes and leaves hashing to the backend.
//
// Key.Verify and Key.VerifyHash check secp256k1 key signatures locally.
//
// # Transactions
//
// SignTransaction returns only the R || S || V signature. AssembleTransaction
// rebuilds the same legacy transaction, checks that the signature recovers to
// tx.From and returns the raw transaction for eth_sendRawTransaction:
//
//	resp, err := client.SignTransaction(ctx, "quorum", chainID, tx)
//	signed, err := vaultsdk.AssembleTransaction(chainID, tx, resp)
//
// # TLS with Self-Signed Certificates
//
// Production Vault instances often use self-signed TLS certificates. The SDK
// provides several options for configuring TLS:
//
//	// Load CA cert from file (most common)
//	client, err := vaultsdk.NewClient(addr, token,
//	    vaultsdk.WithCACert("/etc/vault/ca.pem"),
//	)
//
//	// Load CA cert from PEM bytes (e.g., from Kubernetes Secrets)
//	client, err := vaultsdk.NewClient(addr, token,
//	    vaultsdk.WithCAPEM(caPEM),
//	)
//
//	// Reuse an existing Vault API client
//	client, err := vaultsdk.NewClient("", "",
//	    vaultsdk.WithVaultClient(vc),
//	)
package vaultsdk
