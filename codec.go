package constellation

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ToBytes converts data to bytes for signing. For DataUpdate mode, the fixed
// Constellation prefix is prepended directly to the canonical JSON bytes;
// the result is the definitive signing input for both modes.
func ToBytes(data interface{}, isDataUpdate bool) ([]byte, error) {
	canonicalJSON, err := CanonicalizeBytes(data)
	if err != nil {
		return nil, err
	}

	if !isDataUpdate {
		return canonicalJSON, nil
	}

	prefix := []byte(ConstellationPrefix)
	result := make([]byte, 0, len(prefix)+len(canonicalJSON))
	result = append(result, prefix...)
	result = append(result, canonicalJSON...)
	return result, nil
}

// EncodeDataUpdate encodes data as a DataUpdate (convenience wrapper)
func EncodeDataUpdate(data interface{}) ([]byte, error) {
	return ToBytes(data, true)
}

// DecodeDataUpdate strips the Constellation prefix from a DataUpdate byte
// stream and parses the remainder as JSON into result.
func DecodeDataUpdate(data []byte, result interface{}) error {
	prefix := []byte(ConstellationPrefix)

	if !bytes.HasPrefix(data, prefix) {
		return fmt.Errorf("invalid DataUpdate format: missing Constellation prefix")
	}

	return json.Unmarshal(data[len(prefix):], result)
}
