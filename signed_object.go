package constellation

// CreateSignedObject builds a Signed[T] envelope for value with a single
// proof from privateKeyHex. This is the generic-data counterpart to
// CreateCurrencyTransaction: it covers metagraph data updates and any other
// arbitrary value tree, where CreateCurrencyTransaction instead builds a
// CurrencyTransactionValue and signs its Kryo-framed encoding.
func CreateSignedObject[T any](value T, privateKeyHex string, isDataUpdate bool) (*Signed[T], error) {
	proof, err := signEnvelopeValue(value, privateKeyHex, isDataUpdate)
	if err != nil {
		return nil, err
	}
	return &Signed[T]{Value: value, Proofs: []SignatureProof{*proof}}, nil
}

// AddSignature appends one more proof to an existing envelope, re-encoding
// signed.Value (not the envelope) so the new proof covers exactly the same
// bytes the existing proofs do. The returned envelope shares signed.Value;
// proof order is insertion order, matching how SignCurrencyTransaction
// appends a co-signer's proof to a CurrencyTransaction.
func AddSignature[T any](signed *Signed[T], privateKeyHex string, isDataUpdate bool) (*Signed[T], error) {
	proof, err := signEnvelopeValue(signed.Value, privateKeyHex, isDataUpdate)
	if err != nil {
		return nil, err
	}
	proofs := append(append([]SignatureProof{}, signed.Proofs...), *proof)
	return &Signed[T]{Value: signed.Value, Proofs: proofs}, nil
}

// BatchSign encodes value once and signs it with every key in privateKeys,
// for multi-party co-signing of a single generic value in one call. Fails
// with ErrNoPrivateKeys if privateKeys is empty — an envelope with zero
// proofs is never a valid Signed[T].
func BatchSign[T any](value T, privateKeys []string, isDataUpdate bool) (*Signed[T], error) {
	if len(privateKeys) == 0 {
		return nil, ErrNoPrivateKeys
	}

	encoded, err := ToBytes(value, isDataUpdate)
	if err != nil {
		return nil, err
	}
	hash := HashBytes(encoded)

	proofs := make([]SignatureProof, 0, len(privateKeys))
	for _, key := range privateKeys {
		signature, err := SignHash(hash.Value, key)
		if err != nil {
			return nil, err
		}
		id, err := GetPublicKeyID(key)
		if err != nil {
			return nil, err
		}
		proofs = append(proofs, SignatureProof{ID: id, Signature: signature})
	}

	return &Signed[T]{Value: value, Proofs: proofs}, nil
}

// signEnvelopeValue dispatches to Sign or SignDataUpdate depending on mode;
// CreateSignedObject and AddSignature funnel through it so their
// mode-selection branch lives in one place.
func signEnvelopeValue[T any](value T, privateKeyHex string, isDataUpdate bool) (*SignatureProof, error) {
	if isDataUpdate {
		return SignDataUpdate(value, privateKeyHex)
	}
	return Sign(value, privateKeyHex)
}
