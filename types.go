// Package constellation signs and verifies data for Constellation Network
// metagraphs: generic signed envelopes (SignedObject), signed over RFC 8785
// canonical JSON, and currency transactions (CurrencyTransaction), signed
// over a length-prefixed, Kryo-framed encoding; both use secp256k1 ECDSA.
package constellation

import "errors"

// Algorithm identifies the signing scheme this SDK implements: secp256k1
// ECDSA over the RFC 8785 canonicalization and the two-stage digest of
// ComputeDigestFromBytes.
const Algorithm = "SECP256K1_RFC8785_V1"

// ConstellationPrefix is the fixed domain-separation prefix ToBytes
// prepends to canonical JSON when signing in DataUpdate mode.
const ConstellationPrefix = "\x19Constellation Signed Data:\n"

// SignatureProof is one signer's contribution to a Signed[T] envelope.
type SignatureProof struct {
	// ID is the signer's public key, uncompressed and with the leading 04
	// byte stripped: 128 lowercase hex characters.
	ID string `json:"id"`
	// Signature is the strict-DER ECDSA signature, lowercase hex.
	Signature string `json:"signature"`
}

// Signed wraps a value — a generic data payload, or a
// CurrencyTransactionValue via the CurrencyTransaction alias — with the
// ordered proofs signing it. Proof order is preserved on the wire;
// verification treats the set as unordered but reports per-proof validity.
type Signed[T any] struct {
	Value  T                `json:"value"`
	Proofs []SignatureProof `json:"proofs"`
}

// KeyPair is a secp256k1 key pair and its derived DAG address, as returned
// by GenerateKeyPair and KeyPairFromPrivateKey.
type KeyPair struct {
	// PrivateKey is 64 hex characters.
	PrivateKey string
	// PublicKey is uncompressed and 04-prefixed: 130 hex characters.
	PublicKey string
	// Address is the DAG address GetAddress derives from PublicKey.
	Address string
}

// Hash is a SHA-256 digest in both forms callers need: the hex string used
// as a signing/verification input, and the raw bytes.
type Hash struct {
	Value string
	Bytes []byte
}

// VerificationResult partitions a Signed[T]'s proofs by outcome. IsValid is
// true only when every proof verified and at least one was present — an
// envelope with zero proofs is never considered valid.
type VerificationResult struct {
	IsValid       bool
	ValidProofs   []SignatureProof
	InvalidProofs []SignatureProof
}

// Sentinel errors surfaced by this package. Verification failures are
// never represented by these — Verify, VerifyCurrencyTransaction, and
// VerifySignature are predicates that return false/invalid rather than an
// error, per the library's error-handling policy.
var (
	ErrInvalidPrivateKey   = errors.New("invalid private key")
	ErrInvalidPublicKey    = errors.New("invalid public key")
	ErrInvalidSignature    = errors.New("invalid signature")
	ErrNoPrivateKeys       = errors.New("at least one private key is required")
	ErrSerializationFailed = errors.New("serialization failed")
	ErrInvalidAddress      = errors.New("invalid DAG address")
	ErrInvalidAmount       = errors.New("invalid amount")
)
