package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	vaultsdk "github.com/MaximFischuk/quorum-vault-client/sdk"
)

// ethDecimals is the number of decimal places between ETH and wei.
const ethDecimals = 18

type txFlags struct {
	from     string
	to       string
	value    string
	gasPrice string
	gas      uint64
	nonce    uint64
	data     string
}

func buildTransaction(f txFlags) (*vaultsdk.Transaction, error) {
	from, err := parseAddress(f.from)
	if err != nil {
		return nil, fmt.Errorf("-from: %w", err)
	}
	value, err := parseETH(f.value)
	if err != nil {
		return nil, err
	}
	gasPrice, ok := new(big.Int).SetString(f.gasPrice, 10)
	if !ok {
		return nil, fmt.Errorf("invalid -gas-price: %s", f.gasPrice)
	}

	nonce := f.nonce
	tx := &vaultsdk.Transaction{
		From:     from,
		Value:    value,
		GasPrice: gasPrice,
		Nonce:    &nonce,
	}
	if f.to != "" {
		to, err := parseAddress(f.to)
		if err != nil {
			return nil, fmt.Errorf("-to: %w", err)
		}
		tx.To = &to
	}
	if f.gas > 0 {
		gas := f.gas
		tx.Gas = &gas
	}
	if f.data != "" {
		tx.Data, err = parseHex("data", f.data)
		if err != nil {
			return nil, err
		}
	}
	return tx, nil
}

// parseETH converts a decimal ETH amount (e.g. "0.0001") to wei.
func parseETH(ethStr string) (*big.Int, error) {
	parts := strings.Split(ethStr, ".")
	whole := parts[0]
	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	} else if len(parts) > 2 {
		return nil, fmt.Errorf("invalid ETH value: %s", ethStr)
	}

	if len(frac) > ethDecimals {
		return nil, fmt.Errorf("ETH value too precise (max %d decimals): %s", ethDecimals, ethStr)
	}
	frac = frac + strings.Repeat("0", ethDecimals-len(frac))

	weiStr := strings.TrimLeft(whole+frac, "0")
	if weiStr == "" {
		weiStr = "0"
	}

	wei, ok := new(big.Int).SetString(weiStr, 10)
	if !ok || wei.Sign() < 0 {
		return nil, fmt.Errorf("invalid ETH value: %s", ethStr)
	}
	return wei, nil
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address: %q", s)
	}
	return common.HexToAddress(s), nil
}

// parseTags parses "k=v,k=v". An empty string yields no tags.
func parseTags(s string) (map[string]string, error) {
	tags := map[string]string{}
	if s == "" {
		return tags, nil
	}
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid tag %q, expected key=value", pair)
		}
		tags[k] = strings.TrimSpace(v)
	}
	return tags, nil
}

// parseData returns the payload given either as text or as hex.
func parseData(text, hexStr string) ([]byte, error) {
	switch {
	case text != "" && hexStr != "":
		return nil, errors.New("-data and -hex are mutually exclusive")
	case hexStr != "":
		return parseHex("hex", hexStr)
	default:
		return []byte(text), nil
	}
}

func parseHex(flagName, s string) ([]byte, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid -%s: %w", flagName, err)
	}
	return b, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
