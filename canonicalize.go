package constellation

import (
	"encoding/json"
	"fmt"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
)

// Canonicalize renders value as an RFC 8785 canonical JSON string. A generic
// envelope's Value passes through here before it is hashed, so that two
// implementations given the same value always produce the same bytes to
// sign. A CurrencyTransactionValue does not: its hash comes from the
// length-prefixed, Kryo-framed encoding instead.
func Canonicalize(value interface{}) (string, error) {
	canonical, err := CanonicalizeBytes(value)
	if err != nil {
		return "", err
	}
	return string(canonical), nil
}

// CanonicalizeBytes is Canonicalize, returning the canonical form as bytes
// rather than a string. This is what BinaryEncoder (ToBytes) builds its
// signing input from for generic signed objects.
func CanonicalizeBytes(value interface{}) ([]byte, error) {
	marshaled, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}

	canonical, err := jsoncanonicalizer.Transform(marshaled)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerializationFailed, err)
	}

	return canonical, nil
}
