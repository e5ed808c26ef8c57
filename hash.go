package constellation

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
)

// HashData canonicalizes and SHA-256 hashes value via ToBytes, so the hash
// reflects exactly what a generic signed envelope signs. A currency
// transaction's hash comes from HashCurrencyTransaction instead, which
// hashes the Kryo-framed transaction encoding.
func HashData(value interface{}, isDataUpdate bool) (*Hash, error) {
	encoded, err := ToBytes(value, isDataUpdate)
	if err != nil {
		return nil, err
	}
	return HashBytes(encoded), nil
}

// HashBytes SHA-256 hashes raw bytes, returning both the raw digest and its
// lowercase hex form. CurrencyTransaction's public hash is produced this
// way, from the Kryo-framed transaction encoding, not from ComputeDigest.
func HashBytes(data []byte) *Hash {
	sum := sha256.Sum256(data)
	return &Hash{
		Value: hex.EncodeToString(sum[:]),
		Bytes: sum[:],
	}
}

// ComputeDigest produces the 32-byte message ECDSA actually signs over, for
// value under the given signing mode: SHA-256 the encoded value, hex-encode
// the digest, then run it through the second-stage truncated SHA-512 below.
// Envelope signing (Sign/SignDataUpdate) and currency-transaction signing
// do not call it: both compute their own SHA-256 hash hex and pass it to
// SignHash, which applies ComputeDigestFromHash to it.
func ComputeDigest(value interface{}, isDataUpdate bool) ([]byte, error) {
	encoded, err := ToBytes(value, isDataUpdate)
	if err != nil {
		return nil, err
	}
	return ComputeDigestFromBytes(encoded), nil
}

// ComputeDigestFromBytes runs the two-stage digest protocol over raw
// signing-input bytes: SHA-256, hex-encode, SHA-512, truncate to 32 bytes.
func ComputeDigestFromBytes(data []byte) []byte {
	sum := sha256.Sum256(data)
	return ComputeDigestFromHash(hex.EncodeToString(sum[:]))
}

// ComputeDigestFromHash is the signing digest's second stage on its own: it
// takes a 64-character SHA-256 hash hex string — a wallet signature's
// content hash, or a currency transaction's hash — ASCII-encodes it,
// SHA-512 hashes it, and truncates to the first 32 bytes. ECDSA signs this
// truncated digest, never the SHA-256 hash directly, which keeps the
// signing digest domain-separated from the content hash callers compare
// transactions against.
func ComputeDigestFromHash(hashHex string) []byte {
	digest := sha512.Sum512([]byte(hashHex))
	return digest[:32]
}
