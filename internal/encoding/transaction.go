package encoding

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// DefaultGasLimit is used when a transaction does not set Gas.
const DefaultGasLimit uint64 = 21000

// ErrNegativeValue is returned when an unsigned transaction field holds a
// negative number.
var ErrNegativeValue = errors.New("value must be non-negative")

// Transaction describes an Ethereum legacy transaction to be signed by the
// backend. Nil optional fields fall back to the defaults applied by
// EncodeTransaction.
type Transaction struct {
	// From is the signing account; it selects the backend key.
	From common.Address

	// To is the recipient. Nil encodes the zero address.
	To *common.Address

	// Value is the transfer amount in wei. Nil encodes "0".
	Value *big.Int

	// Gas is the gas limit. Nil encodes DefaultGasLimit.
	Gas *uint64

	// GasPrice is the gas price in wei. Nil encodes "0".
	GasPrice *big.Int

	// Nonce is the sender nonce. Nil encodes 0.
	Nonce *uint64

	// Data is the call data. Nil encodes "0x".
	Data []byte
}

// TransactionFields is the request body of the sign-transaction endpoint.
type TransactionFields struct {
	ChainID  string        `json:"chain_id"`
	Amount   string        `json:"amount"`
	Data     hexutil.Bytes `json:"data"`
	GasLimit uint64        `json:"gas_limit"`
	GasPrice string        `json:"gas_price"`
	Nonce    uint64        `json:"nonce"`
	To       string        `json:"to"`
}

// EncodeTransaction normalizes tx into its wire fields for chainID.
func EncodeTransaction(chainID uint64, tx *Transaction) (*TransactionFields, error) {
	if tx == nil {
		return nil, errors.New("transaction is nil")
	}

	amount, err := decimal("value", tx.Value)
	if err != nil {
		return nil, err
	}
	gasPrice, err := decimal("gas_price", tx.GasPrice)
	if err != nil {
		return nil, err
	}

	fields := &TransactionFields{
		ChainID:  strconv.FormatUint(chainID, 10),
		Amount:   amount,
		Data:     hexutil.Bytes{},
		GasLimit: DefaultGasLimit,
		GasPrice: gasPrice,
		To:       Checksum(common.Address{}),
	}
	if tx.Gas != nil {
		fields.GasLimit = *tx.Gas
	}
	if tx.Nonce != nil {
		fields.Nonce = *tx.Nonce
	}
	if tx.To != nil {
		fields.To = Checksum(*tx.To)
	}
	if len(tx.Data) > 0 {
		fields.Data = append(hexutil.Bytes{}, tx.Data...)
	}
	return fields, nil
}

// decimal renders v in base 10, treating nil as zero.
func decimal(field string, v *big.Int) (string, error) {
	if v == nil {
		return "0", nil
	}
	if v.Sign() < 0 {
		return "", fmt.Errorf("%s: %w", field, ErrNegativeValue)
	}
	return v.String(), nil
}
