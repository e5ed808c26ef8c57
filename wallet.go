package constellation

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/mr-tron/base58"
)

// pkcsPrefixHex is prepended to a normalized public key before hashing to
// derive a DAG address. It is the DER encoding of the secp256k1
// SubjectPublicKeyInfo prefix used by the Constellation node software.
const pkcsPrefixHex = "3056301006072a8648ce3d020106052b8104000a034200"

var dagAddressBodyPattern = regexp.MustCompile(`^[123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz]{36}$`)

// GenerateKeyPair creates a new random secp256k1 key pair and derives its
// DAG address.
func GenerateKeyPair() (*KeyPair, error) {
	privKey, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	return keyPairFromPrivKey(privKey), nil
}

// KeyPairFromPrivateKey reconstructs a KeyPair from a 64-character hex
// private key.
func KeyPairFromPrivateKey(privateKeyHex string) (*KeyPair, error) {
	if !IsValidPrivateKey(privateKeyHex) {
		return nil, ErrInvalidPrivateKey
	}
	keyBytes, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return nil, ErrInvalidPrivateKey
	}
	privKey, _ := btcec.PrivKeyFromBytes(keyBytes)
	return keyPairFromPrivKey(privKey), nil
}

func keyPairFromPrivKey(privKey *btcec.PrivateKey) *KeyPair {
	pubKeyHex := hex.EncodeToString(privKey.PubKey().SerializeUncompressed())
	return &KeyPair{
		PrivateKey: hex.EncodeToString(privKey.Serialize()),
		PublicKey:  pubKeyHex,
		Address:    GetAddress(pubKeyHex),
	}
}

// GetPublicKeyHex derives the public key hex for a private key, in either
// uncompressed (130-character, 04-prefixed) or compressed (66-character)
// form. The DAG wire format always uses the uncompressed form; compressed
// is offered for callers that need it.
func GetPublicKeyHex(privateKeyHex string, compressed bool) (string, error) {
	if !IsValidPrivateKey(privateKeyHex) {
		return "", ErrInvalidPrivateKey
	}
	keyBytes, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return "", ErrInvalidPrivateKey
	}
	privKey, _ := btcec.PrivKeyFromBytes(keyBytes)
	if compressed {
		return hex.EncodeToString(privKey.PubKey().SerializeCompressed()), nil
	}
	return hex.EncodeToString(privKey.PubKey().SerializeUncompressed()), nil
}

// GetPublicKeyID derives the public key ID (uncompressed public key without
// the leading 04 byte, 128 hex characters) used as a SignatureProof ID.
func GetPublicKeyID(privateKeyHex string) (string, error) {
	pubKeyHex, err := GetPublicKeyHex(privateKeyHex, false)
	if err != nil {
		return "", err
	}
	return NormalizePublicKeyToID(pubKeyHex), nil
}

// GetAddress derives a DAG address from a public key hex string (ID or
// full uncompressed form).
func GetAddress(publicKeyHex string) string {
	normalized := NormalizePublicKey(publicKeyHex)
	prefixed := pkcsPrefixHex + normalized
	keyBytes, err := hex.DecodeString(prefixed)
	if err != nil {
		return ""
	}

	digest := sha256.Sum256(keyBytes)
	encoded := base58.Encode(digest[:])

	last36 := encoded
	if len(last36) > 36 {
		last36 = last36[len(last36)-36:]
	}

	sum := 0
	for _, r := range last36 {
		if r >= '0' && r <= '9' {
			sum += int(r - '0')
		}
	}
	parity := sum % 9

	var b strings.Builder
	b.WriteString("DAG")
	b.WriteByte(byte('0' + parity))
	b.WriteString(last36)
	return b.String()
}

// IsValidPrivateKey reports whether s is a well-formed 64-character hex
// secp256k1 private key.
func IsValidPrivateKey(s string) bool {
	if len(s) != 64 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// IsValidPublicKey reports whether s is a well-formed public key hex
// string, either in ID form (128 chars, no 04 prefix) or full uncompressed
// form (130 chars, 04 prefix).
func IsValidPublicKey(s string) bool {
	switch len(s) {
	case 128:
		_, err := hex.DecodeString(s)
		return err == nil
	case 130:
		if !strings.HasPrefix(s, "04") {
			return false
		}
		_, err := hex.DecodeString(s)
		return err == nil
	default:
		return false
	}
}

// NormalizePublicKey returns the full 130-character, 04-prefixed
// uncompressed public key hex, given either form.
func NormalizePublicKey(publicKeyHex string) string {
	if len(publicKeyHex) == 128 {
		return "04" + publicKeyHex
	}
	return publicKeyHex
}

// NormalizePublicKeyToID returns the 128-character public key ID (no 04
// prefix), given either form.
func NormalizePublicKeyToID(publicKeyHex string) string {
	if len(publicKeyHex) == 130 && strings.HasPrefix(publicKeyHex, "04") {
		return publicKeyHex[2:]
	}
	return publicKeyHex
}

// IsValidDagAddress reports whether address has the well-formed shape of a
// DAG address: "DAG" + one parity digit + 36 base58 characters. It checks
// format only, not that the parity digit matches the recomputed checksum.
func IsValidDagAddress(address string) bool {
	if len(address) != 40 {
		return false
	}
	if !strings.HasPrefix(address, "DAG") {
		return false
	}
	parityDigit := address[3]
	if parityDigit < '0' || parityDigit > '8' {
		return false
	}
	return dagAddressBodyPattern.MatchString(address[4:])
}
