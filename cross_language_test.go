package constellation

import (
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests exercise the protocol-level invariants that make this
// implementation interoperable with any other conforming SDK: canonical
// ordering, the DataUpdate prefix, address parity, low-S tolerance, chain
// integrity, multi-signature envelopes, and tamper detection. They are
// self-contained (no shared fixture file) so they run the same everywhere
// this module is vendored.

func TestCanonicalizeOrdersKeys(t *testing.T) {
	input := map[string]interface{}{"c": 3, "a": 1, "b": 2}
	canonical, err := Canonicalize(input)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2,"c":3}`, canonical)
}

func TestToBytesDataUpdatePrefix(t *testing.T) {
	data := map[string]interface{}{"id": "test"}
	bytes, err := ToBytes(data, true)
	require.NoError(t, err)

	require.True(t, len(bytes) >= len(ConstellationPrefix))
	assert.Equal(t, []byte(ConstellationPrefix), bytes[:len(ConstellationPrefix)])
	assert.True(t, strings.HasSuffix(string(bytes), `{"id":"test"}`))
}

func TestAddressParity(t *testing.T) {
	for i := 0; i < 20; i++ {
		kp, err := GenerateKeyPair()
		require.NoError(t, err)

		address := kp.Address
		require.Len(t, address, 40)
		require.True(t, strings.HasPrefix(address, "DAG"))

		parityDigit := int(address[3] - '0')
		require.True(t, parityDigit >= 0 && parityDigit <= 8)

		sum := 0
		for _, r := range address[4:] {
			if r >= '0' && r <= '9' {
				sum += int(r - '0')
			}
		}
		assert.Equal(t, sum%9, parityDigit)
		assert.True(t, IsValidDagAddress(address))
	}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	for _, isDataUpdate := range []bool{false, true} {
		data := map[string]interface{}{"foo": "bar", "n": 42}

		var proof *SignatureProof
		if isDataUpdate {
			proof, err = SignDataUpdate(data, kp.PrivateKey)
		} else {
			proof, err = Sign(data, kp.PrivateKey)
		}
		require.NoError(t, err)

		ok, err := VerifySignature(data, proof, isDataUpdate)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestSignModeSeparation(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)
	data := map[string]interface{}{"foo": "bar"}

	regularProof, err := Sign(data, kp.PrivateKey)
	require.NoError(t, err)
	dataUpdateProof, err := SignDataUpdate(data, kp.PrivateKey)
	require.NoError(t, err)

	assert.NotEqual(t, regularProof.Signature, dataUpdateProof.Signature)

	okRegularAsRegular, _ := VerifySignature(data, regularProof, false)
	assert.True(t, okRegularAsRegular)
	okRegularAsUpdate, _ := VerifySignature(data, regularProof, true)
	assert.False(t, okRegularAsUpdate)

	okUpdateAsUpdate, _ := VerifySignature(data, dataUpdateProof, true)
	assert.True(t, okUpdateAsUpdate)
}

func TestTamperInvalidatesSignature(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)
	data := map[string]interface{}{"amount": 100}

	proof, err := Sign(data, kp.PrivateKey)
	require.NoError(t, err)

	tampered := map[string]interface{}{"amount": 999}
	ok, err := VerifySignature(tampered, proof, false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLowSToleranceOnVerify(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)
	data := map[string]interface{}{"foo": "bar"}

	proof, err := Sign(data, kp.PrivateKey)
	require.NoError(t, err)

	sigBytes, err := hex.DecodeString(proof.Signature)
	require.NoError(t, err)
	sig, err := ecdsa.ParseDERSignature(sigBytes)
	require.NoError(t, err)

	r := sig.R()
	s := sig.S()
	require.False(t, s.IsOverHalfOrder(), "test signature must start low-S to exercise negation")
	s.Negate()
	require.True(t, s.IsOverHalfOrder())

	// Serialize() would canonicalize S back to low-S, so the DER encoding of
	// (r, -s) is built by hand.
	derInt := func(b [32]byte) []byte {
		v := b[:]
		for len(v) > 1 && v[0] == 0 {
			v = v[1:]
		}
		if v[0]&0x80 != 0 {
			v = append([]byte{0x00}, v...)
		}
		return append([]byte{0x02, byte(len(v))}, v...)
	}
	body := append(derInt(r.Bytes()), derInt(s.Bytes())...)
	highS := append([]byte{0x30, byte(len(body))}, body...)
	highSProof := SignatureProof{ID: proof.ID, Signature: hex.EncodeToString(highS)}

	ok, err := VerifySignature(data, &highSProof, false)
	require.NoError(t, err)
	assert.True(t, ok, "verification must tolerate a high-S signature by normalizing it")
}

func TestChainIntegrityOverBatch(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)
	destKp, err := GenerateKeyPair()
	require.NoError(t, err)

	parentRef := TransactionReference{Hash: strings.Repeat("aa", 32), Ordinal: 5}
	transfers := []TransferParams{
		{Destination: destKp.Address, Amount: 1, Fee: 0},
		{Destination: destKp.Address, Amount: 2, Fee: 0},
		{Destination: destKp.Address, Amount: 3, Fee: 0},
	}

	txs, err := CreateCurrencyTransactionBatch(transfers, kp.PrivateKey, parentRef)
	require.NoError(t, err)
	require.Len(t, txs, 3)

	assert.Equal(t, parentRef.Hash, txs[0].Value.Parent.Hash)
	assert.Equal(t, parentRef.Ordinal, txs[0].Value.Parent.Ordinal)

	for i := 1; i < len(txs); i++ {
		prevHash, err := HashCurrencyTransaction(txs[i-1])
		require.NoError(t, err)
		assert.Equal(t, prevHash.Value, txs[i].Value.Parent.Hash)
		assert.Equal(t, parentRef.Ordinal+int64(i), txs[i].Value.Parent.Ordinal)
	}
}

func TestMultiSigEnvelope(t *testing.T) {
	kp1, err := GenerateKeyPair()
	require.NoError(t, err)
	kp2, err := GenerateKeyPair()
	require.NoError(t, err)

	data := map[string]interface{}{"foo": "bar"}
	proof1, err := Sign(data, kp1.PrivateKey)
	require.NoError(t, err)

	signed := &Signed[map[string]interface{}]{
		Value:  data,
		Proofs: []SignatureProof{*proof1},
	}

	updated, err := AddSignature(signed, kp2.PrivateKey, false)
	require.NoError(t, err)
	require.Len(t, updated.Proofs, 2)

	result := Verify(updated, false)
	assert.True(t, result.IsValid)
	assert.Len(t, result.ValidProofs, 2)
	assert.Empty(t, result.InvalidProofs)
}

func TestCurrencyTransactionTamperDetection(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)
	destKp, err := GenerateKeyPair()
	require.NoError(t, err)

	tx, err := CreateCurrencyTransaction(TransferParams{Destination: destKp.Address, Amount: 1, Fee: 0}, kp.PrivateKey, GenesisReference())
	require.NoError(t, err)

	tx.Value.Amount = 999

	result := VerifyCurrencyTransaction(tx)
	assert.False(t, result.IsValid)
	assert.Len(t, result.InvalidProofs, 1)
}

func TestSaltRange(t *testing.T) {
	lower := new(big.Int).SetUint64(minSalt)
	upper := new(big.Int).Add(lower, new(big.Int).SetUint64(1<<48-1))

	for i := 0; i < 50; i++ {
		salt, err := generateSalt()
		require.NoError(t, err)

		saltInt, ok := new(big.Int).SetString(salt, 10)
		require.True(t, ok)

		assert.True(t, saltInt.Cmp(lower) >= 0)
		assert.True(t, saltInt.Cmp(upper) <= 0)
	}
}

func TestAmountBoundary(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)
	destKp, err := GenerateKeyPair()
	require.NoError(t, err)

	_, err = CreateCurrencyTransaction(TransferParams{Destination: destKp.Address, Amount: 0, Fee: 0}, kp.PrivateKey, GenesisReference())
	assert.ErrorIs(t, err, ErrInvalidAmount)

	tx, err := CreateCurrencyTransaction(TransferParams{Destination: destKp.Address, Amount: 1e-8, Fee: 0}, kp.PrivateKey, GenesisReference())
	require.NoError(t, err)
	assert.Equal(t, int64(1), tx.Value.Amount)
}
