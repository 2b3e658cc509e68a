package encoding

import (
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTransactionDefaults(t *testing.T) {
	fields, err := EncodeTransaction(1, &Transaction{
		From: common.HexToAddress("0xAd38E61dB0D3f8fEF9B4c5DD0C1A9F691cdCcfF5"),
	})
	require.NoError(t, err)

	assert.Equal(t, "1", fields.ChainID)
	assert.Equal(t, "0", fields.Amount)
	assert.Equal(t, uint64(21000), fields.GasLimit)
	assert.Equal(t, "0", fields.GasPrice)
	assert.Equal(t, uint64(0), fields.Nonce)
	assert.Equal(t, Checksum(common.Address{}), fields.To)
	assert.Empty(t, fields.Data)
}

func TestEncodeTransactionFull(t *testing.T) {
	to := common.HexToAddress("0x1dabe0acaaa4d1f81b9b43eaf51c8439378231a0")
	value, _ := new(big.Int).SetString("1000000000000000000", 10)
	gas := uint64(50000)
	nonce := uint64(7)

	fields, err := EncodeTransaction(11155111, &Transaction{
		From:     common.HexToAddress("0xAd38E61dB0D3f8fEF9B4c5DD0C1A9F691cdCcfF5"),
		To:       &to,
		Value:    value,
		Gas:      &gas,
		GasPrice: big.NewInt(10000000000),
		Nonce:    &nonce,
		Data:     []byte{0xa9, 0x05, 0x9c, 0xbb},
	})
	require.NoError(t, err)

	body, err := json.Marshal(fields)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"chain_id": "11155111",
		"amount": "1000000000000000000",
		"data": "0xa9059cbb",
		"gas_limit": 50000,
		"gas_price": "10000000000",
		"nonce": 7,
		"to": "0x1daBe0aCaAA4D1F81b9b43Eaf51C8439378231a0"
	}`, string(body))
}

func TestEncodeTransactionEmptyDataIsHexPrefix(t *testing.T) {
	fields, err := EncodeTransaction(1, &Transaction{})
	require.NoError(t, err)

	body, err := json.Marshal(fields)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "0x", decoded["data"])
	assert.Equal(t, "0x0000000000000000000000000000000000000000", decoded["to"])
}

func TestEncodeTransactionDoesNotAliasData(t *testing.T) {
	data := []byte{0x01, 0x02}
	fields, err := EncodeTransaction(1, &Transaction{Data: data})
	require.NoError(t, err)

	data[0] = 0xff
	assert.Equal(t, byte(0x01), fields.Data[0])
}

func TestEncodeTransactionInvalid(t *testing.T) {
	tests := []struct {
		name string
		tx   *Transaction
	}{
		{"negative value", &Transaction{Value: big.NewInt(-1)}},
		{"negative gas price", &Transaction{GasPrice: big.NewInt(-5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeTransaction(1, tt.tx)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNegativeValue))
		})
	}

	_, err := EncodeTransaction(1, nil)
	require.Error(t, err)
}
