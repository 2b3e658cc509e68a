package evmtx

import (
	"bytes"
	"encoding/hex"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/MaximFischuk/quorum-vault-client/internal/encoding"
)

// EIP-155 example: nonce 9, 20 gwei, 21000 gas, 1 ether to 0x3535..., chain 1.
const (
	eip155SigningHash = "daf5a779ae972f972197303d7b574746c7ef83eadac0f2791ad23db92e4c8e53"
	eip155R           = "28ef61340bd939bc2195fe537567866003e1a15d3c71ff63e1590620aa636276"
	eip155S           = "67cbe9d8997f761aecb703304b3800ccf555c9f3dc64214b297fb1966a3b6d83"
	eip155SignedTx    = "f86c098504a817c800825208943535353535353535353535353535353535353535880de0b6b3a76400008025a028ef61340bd939bc2195fe537567866003e1a15d3c71ff63e1590620aa636276a067cbe9d8997f761aecb703304b3800ccf555c9f3dc64214b297fb1966a3b6d83"
	eip155Sender      = "0x9d8a62f656a8d1615c1294fd71e9cfb3e4855a4f"
)

func eip155Fields() *encoding.TransactionFields {
	return &encoding.TransactionFields{
		ChainID:  "1",
		Amount:   "1000000000000000000",
		Data:     hexutil.Bytes{},
		GasLimit: 21000,
		GasPrice: "20000000000",
		Nonce:    9,
		To:       "0x3535353535353535353535353535353535353535",
	}
}

func eip155Signature() []byte {
	sig := make([]byte, 0, SignatureLength)
	sig = append(sig, common.FromHex(eip155R)...)
	sig = append(sig, common.FromHex(eip155S)...)
	return append(sig, 0)
}

func mustFromFields(t *testing.T, f *encoding.TransactionFields) *LegacyTx {
	t.Helper()
	tx, err := FromFields(f)
	if err != nil {
		t.Fatalf("FromFields: %v", err)
	}
	return tx
}

func TestLegacyTxSigningHash(t *testing.T) {
	tx := mustFromFields(t, eip155Fields())

	hash, err := tx.SigningHash()
	if err != nil {
		t.Fatalf("SigningHash: %v", err)
	}
	if got := hex.EncodeToString(hash.Bytes()); got != eip155SigningHash {
		t.Errorf("SigningHash: got %s, want %s", got, eip155SigningHash)
	}
}

func TestLegacyTxAssembleSignedTx(t *testing.T) {
	tx := mustFromFields(t, eip155Fields())

	signedTx, err := tx.AssembleSignedTx(eip155Signature())
	if err != nil {
		t.Fatalf("AssembleSignedTx error: %v", err)
	}
	if got := hex.EncodeToString(signedTx); got != eip155SignedTx {
		t.Errorf("AssembleSignedTx:\ngot  %s\nwant %s", got, eip155SignedTx)
	}
}

func TestLegacyTxSender(t *testing.T) {
	tx := mustFromFields(t, eip155Fields())

	sender, err := tx.Sender(eip155Signature())
	if err != nil {
		t.Fatalf("Sender: %v", err)
	}
	if want := common.HexToAddress(eip155Sender); sender != want {
		t.Errorf("Sender: got %s, want %s", sender.Hex(), want.Hex())
	}
}

func TestLegacyTxMatchesGeth(t *testing.T) {
	tx := mustFromFields(t, eip155Fields())
	to := tx.To
	gethTx := types.NewTx(&types.LegacyTx{
		Nonce:    tx.Nonce,
		GasPrice: tx.GasPrice,
		Gas:      tx.GasLimit,
		To:       &to,
		Value:    tx.Value,
		Data:     tx.Data,
	})
	signer := types.NewEIP155Signer(big.NewInt(1))

	hash, err := tx.SigningHash()
	if err != nil {
		t.Fatalf("SigningHash: %v", err)
	}
	if want := signer.Hash(gethTx); hash != want {
		t.Errorf("SigningHash: got %s, geth %s", hash.Hex(), want.Hex())
	}

	signed, err := gethTx.WithSignature(signer, eip155Signature())
	if err != nil {
		t.Fatalf("WithSignature: %v", err)
	}
	want, err := signed.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	got, err := tx.AssembleSignedTx(eip155Signature())
	if err != nil {
		t.Fatalf("AssembleSignedTx: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("AssembleSignedTx:\ngot  %x\ngeth %x", got, want)
	}
}

func TestLegacyTxRoundTrip(t *testing.T) {
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	from := crypto.PubkeyToAddress(key.PublicKey)
	to := common.HexToAddress("0x1dabe0acaaa4d1f81b9b43eaf51c8439378231a0")
	nonce := uint64(3)
	gas := uint64(50000)

	fields, err := encoding.EncodeTransaction(1337, &encoding.Transaction{
		From:     from,
		To:       &to,
		Value:    big.NewInt(12345),
		GasPrice: big.NewInt(7),
		Gas:      &gas,
		Nonce:    &nonce,
		Data:     []byte{0xde, 0xad, 0xbe, 0xef},
	})
	if err != nil {
		t.Fatalf("EncodeTransaction: %v", err)
	}
	tx := mustFromFields(t, fields)

	hash, err := tx.SigningHash()
	if err != nil {
		t.Fatalf("SigningHash: %v", err)
	}
	sig, err := crypto.Sign(hash.Bytes(), key)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	sender, err := tx.Sender(sig)
	if err != nil {
		t.Fatalf("Sender: %v", err)
	}
	if sender != from {
		t.Errorf("Sender: got %s, want %s", sender.Hex(), from.Hex())
	}

	raw, err := tx.AssembleSignedTx(sig)
	if err != nil {
		t.Fatalf("AssembleSignedTx: %v", err)
	}
	var decoded types.Transaction
	if err := decoded.UnmarshalBinary(raw); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if decoded.ChainId().Uint64() != 1337 {
		t.Errorf("chain id: got %s", decoded.ChainId())
	}
	if decoded.Nonce() != nonce || decoded.Gas() != gas {
		t.Errorf("nonce/gas: got %d/%d", decoded.Nonce(), decoded.Gas())
	}
	if !bytes.Equal(decoded.Data(), []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Errorf("data: got %x", decoded.Data())
	}
	gethSender, err := types.Sender(types.NewEIP155Signer(big.NewInt(1337)), &decoded)
	if err != nil {
		t.Fatalf("types.Sender: %v", err)
	}
	if gethSender != from {
		t.Errorf("geth sender: got %s, want %s", gethSender.Hex(), from.Hex())
	}
}

func TestFromFieldsDefaultsMatchWireBody(t *testing.T) {
	fields, err := encoding.EncodeTransaction(1, &encoding.Transaction{})
	if err != nil {
		t.Fatalf("EncodeTransaction: %v", err)
	}
	tx := mustFromFields(t, fields)

	if tx.GasLimit != encoding.DefaultGasLimit {
		t.Errorf("gas limit: got %d", tx.GasLimit)
	}
	if tx.To != (common.Address{}) {
		t.Errorf("to: got %s", tx.To.Hex())
	}
	if tx.Value.Sign() != 0 || tx.GasPrice.Sign() != 0 {
		t.Errorf("value/gas price: got %s/%s", tx.Value, tx.GasPrice)
	}
	if len(tx.Data) != 0 {
		t.Errorf("data: got %x", tx.Data)
	}
}

func TestFromFieldsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*encoding.TransactionFields)
		errMsg string
	}{
		{"chain id", func(f *encoding.TransactionFields) { f.ChainID = "one" }, "chain_id"},
		{"amount", func(f *encoding.TransactionFields) { f.Amount = "" }, "amount"},
		{"gas price", func(f *encoding.TransactionFields) { f.GasPrice = "0x10" }, "gas_price"},
		{"to", func(f *encoding.TransactionFields) { f.To = "0x3535" }, "to"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := eip155Fields()
			tt.mutate(f)
			_, err := FromFields(f)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
			}
		})
	}

	f := eip155Fields()
	f.Amount = "-1"
	if _, err := FromFields(f); !errors.Is(err, encoding.ErrNegativeValue) {
		t.Errorf("expected ErrNegativeValue, got %v", err)
	}

	if _, err := FromFields(nil); err == nil {
		t.Error("expected error for nil fields")
	}
}

func TestParseSignature(t *testing.T) {
	sig := bytes.Repeat([]byte{0xaa}, 32)
	sig = append(sig, bytes.Repeat([]byte{0xbb}, 32)...)
	sig = append(sig, 0x01)
	sigHex := hex.EncodeToString(sig)

	for _, in := range []string{"0x" + sigHex, sigHex} {
		parsed, err := ParseSignature(in)
		if err != nil {
			t.Fatalf("ParseSignature error: %v", err)
		}
		if !bytes.Equal(parsed, sig) {
			t.Errorf("ParseSignature mismatch for %s", in)
		}
	}

	// V = 28 normalizes to 1.
	legacy := append([]byte{}, sig...)
	legacy[64] = 28
	parsed, err := ParseSignature("0x" + hex.EncodeToString(legacy))
	if err != nil {
		t.Fatalf("ParseSignature error: %v", err)
	}
	if parsed[64] != 1 {
		t.Errorf("expected recovery id 1, got %d", parsed[64])
	}

	badSig := make([]byte, 65)
	badSig[64] = 2
	if _, err := ParseSignature("0x" + hex.EncodeToString(badSig)); err == nil {
		t.Error("expected error for V = 2")
	}
	if _, err := ParseSignature("0xaabb"); err == nil {
		t.Error("expected error for short signature")
	}
	if _, err := ParseSignature("0xzz"); err == nil {
		t.Error("expected error for invalid hex")
	}
}

func TestAssembleSignedTxInvalidSignature(t *testing.T) {
	tx := mustFromFields(t, eip155Fields())

	if _, err := tx.AssembleSignedTx(make([]byte, 64)); err == nil {
		t.Error("expected error for 64-byte signature")
	}
	sig := eip155Signature()
	sig[64] = 27
	if _, err := tx.AssembleSignedTx(sig); err == nil {
		t.Error("expected error for unnormalized recovery id")
	}
	if _, err := tx.Sender(sig); err == nil {
		t.Error("expected Sender error for unnormalized recovery id")
	}
}
