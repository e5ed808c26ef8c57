package constellation

import (
	"crypto/rand"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// TokenDecimals is the scale factor between a token and its smallest unit,
// matching dag4.js's DAG_DECIMALS.
const TokenDecimals = 1e-8

// minSalt is the minimum salt complexity, matching dag4.js.
const minSalt uint64 = (1 << 53) - (1 << 48)

// TransactionReference points to a prior transaction for chaining.
type TransactionReference struct {
	// Hash is the referenced transaction's hash (64-character hex string).
	Hash string `json:"hash"`
	// Ordinal is the referenced transaction's ordinal number.
	Ordinal int64 `json:"ordinal"`
}

// GenesisReference returns the zero-hash, zero-ordinal reference used as
// the parent of a metagraph's first currency transaction.
func GenesisReference() TransactionReference {
	return TransactionReference{
		Hash:    strings.Repeat("0", 64),
		Ordinal: 0,
	}
}

// CurrencyTransactionValue is the unsigned body of a metagraph token
// transfer.
type CurrencyTransactionValue struct {
	// Source is the sender's DAG address.
	Source string `json:"source"`
	// Destination is the recipient's DAG address.
	Destination string `json:"destination"`
	// Amount is the transfer amount in smallest units.
	Amount int64 `json:"amount"`
	// Fee is the transaction fee in smallest units.
	Fee int64 `json:"fee"`
	// Parent references the transaction this one chains from.
	Parent TransactionReference `json:"parent"`
	// Salt is a random value for transaction uniqueness, always encoded as
	// a decimal string.
	Salt string `json:"salt"`
}

// UnmarshalJSON accepts the salt field as either a JSON string or a JSON
// number, since peer SDKs disagree on which to emit, but always normalizes
// it to a string for in-memory use.
func (v *CurrencyTransactionValue) UnmarshalJSON(data []byte) error {
	type alias CurrencyTransactionValue
	aux := struct {
		Salt json.Number `json:"salt"`
		*alias
	}{
		alias: (*alias)(v),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	v.Salt = aux.Salt.String()
	return nil
}

// CurrencyTransaction is a signed currency transaction value, used for
// metagraph token transfers.
type CurrencyTransaction = Signed[CurrencyTransactionValue]

// TransferParams describes a token transfer request in token units (not
// smallest units).
type TransferParams struct {
	// Destination is the recipient's DAG address.
	Destination string
	// Amount is the transfer amount in whole token units.
	Amount float64
	// Fee is the transaction fee in whole token units.
	Fee float64
}

// TokenToUnits converts a token amount to the smallest integer unit,
// rounding down via floor (negative amounts round away from zero).
func TokenToUnits(amount float64) int64 {
	return int64(math.Floor(amount * 1e8))
}

// UnitsToToken converts a smallest-unit integer amount back to token units.
func UnitsToToken(units int64) float64 {
	return float64(units) * TokenDecimals
}

// generateSalt produces a random decimal-string salt at or above minSalt,
// matching dag4.js's salt generation.
func generateSalt() (string, error) {
	var randomBytes [6]byte
	if _, err := rand.Read(randomBytes[:]); err != nil {
		return "", err
	}

	var randomInt uint64
	for _, b := range randomBytes {
		randomInt = (randomInt << 8) | uint64(b)
	}

	salt := minSalt + randomInt
	return strconv.FormatUint(salt, 10), nil
}

// hashCurrencyTransactionValue encodes and frames value exactly as the
// network does, then hashes the result with plain SHA-256. This hash, not
// the signing digest, is both the transaction's public hash and the input
// to SignHash.
func hashCurrencyTransactionValue(value CurrencyTransactionValue) (*Hash, error) {
	encoded, err := EncodeTransactionValue(value)
	if err != nil {
		return nil, err
	}
	framed := KryoFrame(encoded, false)
	return HashBytes(framed), nil
}

// CreateCurrencyTransaction builds and signs a new metagraph token
// transaction chaining from parentRef.
func CreateCurrencyTransaction(params TransferParams, privateKeyHex string, parentRef TransactionReference) (*CurrencyTransaction, error) {
	publicKeyHex, err := GetPublicKeyHex(privateKeyHex, false)
	if err != nil {
		return nil, err
	}
	source := GetAddress(publicKeyHex)

	if !IsValidDagAddress(source) {
		return nil, ErrInvalidAddress
	}
	if !IsValidDagAddress(params.Destination) {
		return nil, ErrInvalidAddress
	}
	if source == params.Destination {
		return nil, ErrInvalidAddress
	}

	amount := TokenToUnits(params.Amount)
	fee := TokenToUnits(params.Fee)
	if amount < 1 {
		return nil, ErrInvalidAmount
	}
	if fee < 0 {
		return nil, ErrInvalidAmount
	}

	salt, err := generateSalt()
	if err != nil {
		return nil, err
	}

	value := CurrencyTransactionValue{
		Source:      source,
		Destination: params.Destination,
		Amount:      amount,
		Fee:         fee,
		Parent:      parentRef,
		Salt:        salt,
	}

	hash, err := hashCurrencyTransactionValue(value)
	if err != nil {
		return nil, err
	}

	signature, err := SignHash(hash.Value, privateKeyHex)
	if err != nil {
		return nil, err
	}

	return &CurrencyTransaction{
		Value: value,
		Proofs: []SignatureProof{
			{
				ID:        NormalizePublicKeyToID(publicKeyHex),
				Signature: signature,
			},
		},
	}, nil
}

// CreateCurrencyTransactionBatch creates a chain of transactions from a
// list of transfers, each chaining from the previous transaction's hash.
func CreateCurrencyTransactionBatch(transfers []TransferParams, privateKeyHex string, parentRef TransactionReference) ([]*CurrencyTransaction, error) {
	transactions := make([]*CurrencyTransaction, 0, len(transfers))
	currentRef := parentRef

	for _, transfer := range transfers {
		tx, err := CreateCurrencyTransaction(transfer, privateKeyHex, currentRef)
		if err != nil {
			return nil, err
		}

		hash, err := hashCurrencyTransactionValue(tx.Value)
		if err != nil {
			return nil, err
		}

		currentRef = TransactionReference{
			Hash:    hash.Value,
			Ordinal: currentRef.Ordinal + 1,
		}

		transactions = append(transactions, tx)
	}

	return transactions, nil
}

// SignCurrencyTransaction adds an additional signature proof to an
// existing currency transaction (for multi-sig), self-verifying the new
// signature before returning.
func SignCurrencyTransaction(transaction *CurrencyTransaction, privateKeyHex string) (*CurrencyTransaction, error) {
	hash, err := hashCurrencyTransactionValue(transaction.Value)
	if err != nil {
		return nil, err
	}

	signature, err := SignHash(hash.Value, privateKeyHex)
	if err != nil {
		return nil, err
	}

	publicKeyHex, err := GetPublicKeyHex(privateKeyHex, false)
	if err != nil {
		return nil, err
	}

	ok, err := VerifyHash(hash.Value, signature, publicKeyHex)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidSignature
	}

	proofs := append([]SignatureProof{}, transaction.Proofs...)
	proofs = append(proofs, SignatureProof{
		ID:        NormalizePublicKeyToID(publicKeyHex),
		Signature: signature,
	})

	return &CurrencyTransaction{
		Value:  transaction.Value,
		Proofs: proofs,
	}, nil
}

// VerifyCurrencyTransaction verifies every signature proof on transaction
// against its recomputed hash.
func VerifyCurrencyTransaction(transaction *CurrencyTransaction) *VerificationResult {
	hash, err := hashCurrencyTransactionValue(transaction.Value)
	if err != nil {
		return &VerificationResult{
			IsValid:       false,
			ValidProofs:   []SignatureProof{},
			InvalidProofs: transaction.Proofs,
		}
	}

	var validProofs []SignatureProof
	var invalidProofs []SignatureProof

	for _, proof := range transaction.Proofs {
		isValid, _ := VerifyHash(hash.Value, proof.Signature, proof.ID)
		if isValid {
			validProofs = append(validProofs, proof)
		} else {
			invalidProofs = append(invalidProofs, proof)
		}
	}

	return &VerificationResult{
		IsValid:       len(invalidProofs) == 0 && len(validProofs) > 0,
		ValidProofs:   validProofs,
		InvalidProofs: invalidProofs,
	}
}

// HashCurrencyTransaction returns transaction's public hash.
func HashCurrencyTransaction(transaction *CurrencyTransaction) (*Hash, error) {
	return hashCurrencyTransactionValue(transaction.Value)
}

// EncodeCurrencyTransaction returns the length-prefixed encoding of
// transaction's value, without Kryo framing.
func EncodeCurrencyTransaction(transaction *CurrencyTransaction) (string, error) {
	return EncodeTransactionValue(transaction.Value)
}

// GetTransactionReference builds a TransactionReference pointing at
// transaction, to be used as the parent of the next transaction in a
// chain.
func GetTransactionReference(transaction *CurrencyTransaction, ordinal int64) (*TransactionReference, error) {
	hash, err := hashCurrencyTransactionValue(transaction.Value)
	if err != nil {
		return nil, err
	}
	return &TransactionReference{
		Hash:    hash.Value,
		Ordinal: ordinal,
	}, nil
}
