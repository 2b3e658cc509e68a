package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	vaultsdk "github.com/MaximFischuk/quorum-vault-client/sdk"
)

// cmdEnv is shared by all commands of one invocation.
type cmdEnv struct {
	client vaultsdk.Client
	mount  string
	logger hclog.Logger
	stderr io.Writer
}

type command struct {
	summary string
	run     func(ctx context.Context, env *cmdEnv, args []string) (any, error)
}

var commands = map[string]map[string]command{
	"account": {
		"create":  {"Create an Ethereum account", accountCreate},
		"list":    {"List Ethereum account addresses", accountList},
		"read":    {"Read an Ethereum account", accountRead},
		"import":  {"Import a hex private key", accountImport},
		"sign":    {"Sign a message with an account", accountSign},
		"sign-tx": {"Sign a legacy transaction", accountSignTx},
	},
	"key": {
		"create":      {"Create a signing key", keyCreate},
		"list":        {"List key ids", keyList},
		"read":        {"Read a key", keyRead},
		"update-tags": {"Replace the tags of a key", keyUpdateTags},
		"destroy":     {"Permanently delete a key", keyDestroy},
		"import":      {"Import a private key", keyImport},
		"sign":        {"Hash data with keccak-256 and sign it", keySign},
		"sign-hash":   {"Sign a 32-byte digest", keySignHash},
		"address":     {"Derive the Ethereum address of a secp256k1 key", keyAddress},
		"verify":      {"Verify a signature made by a secp256k1 key", keyVerify},
	},
	"zk": {
		"create":    {"Create a zk-SNARK account", zkCreate},
		"list":      {"List zk-SNARK account ids", zkList},
		"read":      {"Read a zk-SNARK account", zkRead},
		"sign":      {"Hash data with keccak-256 and sign it", zkSign},
		"sign-hash": {"Sign a 32-byte digest", zkSignHash},
	},
}

func accountCreate(ctx context.Context, env *cmdEnv, args []string) (any, error) {
	if err := parseFlags(newFlagSet(env, "account create"), args); err != nil {
		return nil, err
	}
	return env.client.CreateAccount(ctx, env.mount)
}

func accountList(ctx context.Context, env *cmdEnv, args []string) (any, error) {
	if err := parseFlags(newFlagSet(env, "account list"), args); err != nil {
		return nil, err
	}
	return env.client.ListAccounts(ctx, env.mount)
}

func accountRead(ctx context.Context, env *cmdEnv, args []string) (any, error) {
	fs := newFlagSet(env, "account read")
	address := fs.String("address", "", "Account address (required)")
	if err := parseFlags(fs, args, "address"); err != nil {
		return nil, err
	}
	addr, err := parseAddress(*address)
	if err != nil {
		return nil, err
	}
	return env.client.ReadAccount(ctx, env.mount, addr)
}

func accountImport(ctx context.Context, env *cmdEnv, args []string) (any, error) {
	fs := newFlagSet(env, "account import")
	privateKey := fs.String("private-key", "", "Hex private key (required)")
	if err := parseFlags(fs, args, "private-key"); err != nil {
		return nil, err
	}
	return env.client.ImportPrivateKey(ctx, env.mount, *privateKey)
}

func accountSign(ctx context.Context, env *cmdEnv, args []string) (any, error) {
	fs := newFlagSet(env, "account sign")
	address := fs.String("address", "", "Account address (required)")
	text := fs.String("data", "", "Message as text")
	hexData := fs.String("hex", "", "Message as 0x-prefixed hex")
	if err := parseFlags(fs, args, "address"); err != nil {
		return nil, err
	}
	addr, err := parseAddress(*address)
	if err != nil {
		return nil, err
	}
	data, err := parseData(*text, *hexData)
	if err != nil {
		return nil, err
	}
	return env.client.SignMessage(ctx, env.mount, addr, data)
}

func accountSignTx(ctx context.Context, env *cmdEnv, args []string) (any, error) {
	fs := newFlagSet(env, "account sign-tx")
	from := fs.String("from", "", "Signing account address (required)")
	to := fs.String("to", "", "Recipient address")
	value := fs.String("value", "0", "Value to send in ETH (e.g. 0.0001)")
	gasPrice := fs.String("gas-price", "0", "Gas price in wei")
	gas := fs.Uint64("gas-limit", 0, "Gas limit (default: 21000)")
	nonce := fs.Uint64("nonce", 0, "Transaction nonce")
	chainIDStr := fs.String("chain-id", "", "Chain ID (required)")
	hexData := fs.String("data", "", "Transaction data in hex (e.g. 0xa9059cbb...)")
	assemble := fs.Bool("assemble", false, "Verify the signature and print the raw signed transaction")
	if err := parseFlags(fs, args, "from", "chain-id"); err != nil {
		return nil, err
	}
	chainID, err := strconv.ParseUint(*chainIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid -chain-id: %s", *chainIDStr)
	}

	tx, err := buildTransaction(txFlags{
		from:     *from,
		to:       *to,
		value:    *value,
		gasPrice: *gasPrice,
		gas:      *gas,
		nonce:    *nonce,
		data:     *hexData,
	})
	if err != nil {
		return nil, err
	}

	resp, err := env.client.SignTransaction(ctx, env.mount, chainID, tx)
	if err != nil {
		return nil, err
	}
	if !*assemble {
		return resp, nil
	}
	signed, err := vaultsdk.AssembleTransaction(chainID, tx, resp)
	if err != nil {
		return nil, err
	}
	env.logger.Info("transaction assembled", "hash", signed.Hash.Hex(), "from", signed.From.Hex())
	return signed, nil
}

func keyCreate(ctx context.Context, env *cmdEnv, args []string) (any, error) {
	fs := newFlagSet(env, "key create")
	id := fs.String("id", "", "Key id (default: random UUID)")
	curve := fs.String("curve", vaultsdk.CurveSecp256k1, "Curve: secp256k1 or babyjubjub")
	tags := fs.String("tags", "", "Tags as k=v,k=v")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}
	alg, err := vaultsdk.ParseAlgorithm(*curve)
	if err != nil {
		return nil, err
	}
	tagMap, err := parseTags(*tags)
	if err != nil {
		return nil, err
	}
	if *id == "" {
		*id = uuid.NewString()
	}
	return env.client.CreateKey(ctx, env.mount, *id, alg, tagMap)
}

func keyList(ctx context.Context, env *cmdEnv, args []string) (any, error) {
	if err := parseFlags(newFlagSet(env, "key list"), args); err != nil {
		return nil, err
	}
	return env.client.ListKeys(ctx, env.mount)
}

func keyRead(ctx context.Context, env *cmdEnv, args []string) (any, error) {
	fs := newFlagSet(env, "key read")
	id := fs.String("id", "", "Key id (required)")
	if err := parseFlags(fs, args, "id"); err != nil {
		return nil, err
	}
	return env.client.ReadKey(ctx, env.mount, *id)
}

func keyUpdateTags(ctx context.Context, env *cmdEnv, args []string) (any, error) {
	fs := newFlagSet(env, "key update-tags")
	id := fs.String("id", "", "Key id (required)")
	tags := fs.String("tags", "", "Tags as k=v,k=v; empty clears all tags")
	if err := parseFlags(fs, args, "id"); err != nil {
		return nil, err
	}
	tagMap, err := parseTags(*tags)
	if err != nil {
		return nil, err
	}
	return env.client.UpdateKeyTags(ctx, env.mount, *id, tagMap)
}

type destroyResult struct {
	ID        string `json:"id"`
	Destroyed bool   `json:"destroyed"`
}

func keyDestroy(ctx context.Context, env *cmdEnv, args []string) (any, error) {
	fs := newFlagSet(env, "key destroy")
	id := fs.String("id", "", "Key id (required)")
	if err := parseFlags(fs, args, "id"); err != nil {
		return nil, err
	}
	if err := env.client.DestroyKey(ctx, env.mount, *id); err != nil {
		return nil, err
	}
	return destroyResult{ID: *id, Destroyed: true}, nil
}

func keyImport(ctx context.Context, env *cmdEnv, args []string) (any, error) {
	fs := newFlagSet(env, "key import")
	id := fs.String("id", "", "Key id (default: random UUID)")
	curve := fs.String("curve", vaultsdk.CurveSecp256k1, "Curve: secp256k1 or babyjubjub")
	tags := fs.String("tags", "", "Tags as k=v,k=v")
	privateKey := fs.String("private-key", "", "Private key (required)")
	if err := parseFlags(fs, args, "private-key"); err != nil {
		return nil, err
	}
	alg, err := vaultsdk.ParseAlgorithm(*curve)
	if err != nil {
		return nil, err
	}
	tagMap, err := parseTags(*tags)
	if err != nil {
		return nil, err
	}
	if *id == "" {
		*id = uuid.NewString()
	}
	return env.client.ImportKey(ctx, env.mount, *id, alg, tagMap, *privateKey)
}

func keySign(ctx context.Context, env *cmdEnv, args []string) (any, error) {
	fs := newFlagSet(env, "key sign")
	id := fs.String("id", "", "Key id (required)")
	text := fs.String("data", "", "Data as text")
	hexData := fs.String("hex", "", "Data as 0x-prefixed hex")
	if err := parseFlags(fs, args, "id"); err != nil {
		return nil, err
	}
	data, err := parseData(*text, *hexData)
	if err != nil {
		return nil, err
	}
	return env.client.Sign(ctx, env.mount, *id, data)
}

func keySignHash(ctx context.Context, env *cmdEnv, args []string) (any, error) {
	fs := newFlagSet(env, "key sign-hash")
	id := fs.String("id", "", "Key id (required)")
	hash := fs.String("hash", "", "32-byte digest as 0x-prefixed hex (required)")
	if err := parseFlags(fs, args, "id", "hash"); err != nil {
		return nil, err
	}
	digest, err := parseHex("hash", *hash)
	if err != nil {
		return nil, err
	}
	return env.client.SignHash(ctx, env.mount, *id, digest)
}

type keyAddressResult struct {
	ID      string         `json:"id"`
	Address common.Address `json:"address"`
}

func keyAddress(ctx context.Context, env *cmdEnv, args []string) (any, error) {
	fs := newFlagSet(env, "key address")
	id := fs.String("id", "", "Key id (required)")
	if err := parseFlags(fs, args, "id"); err != nil {
		return nil, err
	}
	key, err := env.client.ReadKey(ctx, env.mount, *id)
	if err != nil {
		return nil, err
	}
	addr, err := key.EthereumAddress()
	if err != nil {
		return nil, err
	}
	return keyAddressResult{ID: key.ID, Address: addr}, nil
}

type verifyResult struct {
	ID    string `json:"id"`
	Valid bool   `json:"valid"`
}

func keyVerify(ctx context.Context, env *cmdEnv, args []string) (any, error) {
	fs := newFlagSet(env, "key verify")
	id := fs.String("id", "", "Key id (required)")
	signature := fs.String("signature", "", "Signature returned by sign or sign-hash (required)")
	text := fs.String("data", "", "Signed data as text")
	hexData := fs.String("hex", "", "Signed data as 0x-prefixed hex")
	hash := fs.String("hash", "", "Signed 32-byte digest as 0x-prefixed hex")
	if err := parseFlags(fs, args, "id", "signature"); err != nil {
		return nil, err
	}
	key, err := env.client.ReadKey(ctx, env.mount, *id)
	if err != nil {
		return nil, err
	}

	resp := &vaultsdk.SignResponse{Signature: *signature}
	var valid bool
	if *hash != "" {
		digest, err := parseHex("hash", *hash)
		if err != nil {
			return nil, err
		}
		valid, err = key.VerifyHash(digest, resp)
		if err != nil {
			return nil, err
		}
	} else {
		data, err := parseData(*text, *hexData)
		if err != nil {
			return nil, err
		}
		valid, err = key.Verify(data, resp)
		if err != nil {
			return nil, err
		}
	}
	return verifyResult{ID: key.ID, Valid: valid}, nil
}

func zkCreate(ctx context.Context, env *cmdEnv, args []string) (any, error) {
	if err := parseFlags(newFlagSet(env, "zk create"), args); err != nil {
		return nil, err
	}
	return env.client.CreateZkSnarksAccount(ctx, env.mount)
}

func zkList(ctx context.Context, env *cmdEnv, args []string) (any, error) {
	if err := parseFlags(newFlagSet(env, "zk list"), args); err != nil {
		return nil, err
	}
	return env.client.ListZkSnarksAccounts(ctx, env.mount)
}

func zkRead(ctx context.Context, env *cmdEnv, args []string) (any, error) {
	fs := newFlagSet(env, "zk read")
	id := fs.String("id", "", "Account id (required)")
	if err := parseFlags(fs, args, "id"); err != nil {
		return nil, err
	}
	return env.client.ReadZkSnarksAccount(ctx, env.mount, *id)
}

func zkSign(ctx context.Context, env *cmdEnv, args []string) (any, error) {
	fs := newFlagSet(env, "zk sign")
	id := fs.String("id", "", "Account id (required)")
	text := fs.String("data", "", "Data as text")
	hexData := fs.String("hex", "", "Data as 0x-prefixed hex")
	if err := parseFlags(fs, args, "id"); err != nil {
		return nil, err
	}
	data, err := parseData(*text, *hexData)
	if err != nil {
		return nil, err
	}
	return env.client.ZkSnarksSign(ctx, env.mount, *id, data)
}

func zkSignHash(ctx context.Context, env *cmdEnv, args []string) (any, error) {
	fs := newFlagSet(env, "zk sign-hash")
	id := fs.String("id", "", "Account id (required)")
	hash := fs.String("hash", "", "32-byte digest as 0x-prefixed hex (required)")
	if err := parseFlags(fs, args, "id", "hash"); err != nil {
		return nil, err
	}
	digest, err := parseHex("hash", *hash)
	if err != nil {
		return nil, err
	}
	return env.client.ZkSnarksSignHash(ctx, env.mount, *id, digest)
}
