package constellation

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// Sign produces a SignatureProof over value under the plain (non-DataUpdate)
// protocol. CreateSignedObject, AddSignature, and BatchSign all call this
// (or SignDataUpdate) rather than duplicating the hash-then-sign sequence;
// CurrencyTransaction signs its own Kryo-framed hash via SignHash directly
// instead, since a transaction's signing input isn't canonical JSON.
func Sign(value interface{}, privateKeyHex string) (*SignatureProof, error) {
	return signValue(value, privateKeyHex, false)
}

// SignDataUpdate is Sign under the DataUpdate protocol: value is encoded
// with the Constellation domain-separation prefix before hashing.
func SignDataUpdate(value interface{}, privateKeyHex string) (*SignatureProof, error) {
	return signValue(value, privateKeyHex, true)
}

func signValue(value interface{}, privateKeyHex string, isDataUpdate bool) (*SignatureProof, error) {
	encoded, err := ToBytes(value, isDataUpdate)
	if err != nil {
		return nil, err
	}
	hash := HashBytes(encoded)

	signature, err := SignHash(hash.Value, privateKeyHex)
	if err != nil {
		return nil, err
	}

	id, err := GetPublicKeyID(privateKeyHex)
	if err != nil {
		return nil, err
	}

	return &SignatureProof{ID: id, Signature: signature}, nil
}

// SignHash signs a 64-character SHA-256 hash hex string — a generic
// envelope's content hash, or a currency transaction's hash, produced by
// hashCurrencyTransactionValue — via ECDSA over the second-stage truncated
// digest, and returns a lowercase-hex strict-DER signature.
func SignHash(hashHex string, privateKeyHex string) (string, error) {
	privateKeyBytes, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}

	privateKey, _ := btcec.PrivKeyFromBytes(privateKeyBytes)

	digest := ComputeDigestFromHash(hashHex)
	signature := ecdsa.Sign(privateKey, digest)

	return hex.EncodeToString(signature.Serialize()), nil
}
