package constellation

import (
	"math/big"
	"strconv"
)

// EncodeTransactionValue builds the length-prefixed encoding of a currency
// transaction value used as the Kryo payload before hashing. The parent
// count is always the literal "2" — v2 currency transactions carry exactly
// one parent reference, matching the reference implementation's hard-coded
// prefix.
func EncodeTransactionValue(value CurrencyTransactionValue) (string, error) {
	amountHex := bigHex(value.Amount)

	saltInt, ok := new(big.Int).SetString(value.Salt, 10)
	if !ok {
		return "", ErrSerializationFailed
	}
	saltHex := saltInt.Text(16)

	ordinal := strconv.FormatInt(value.Parent.Ordinal, 10)
	fee := strconv.FormatInt(value.Fee, 10)

	var b []byte
	b = append(b, '2')
	b = appendLengthPrefixed(b, value.Source)
	b = appendLengthPrefixed(b, value.Destination)
	b = appendLengthPrefixed(b, amountHex)
	b = appendLengthPrefixed(b, value.Parent.Hash)
	b = appendLengthPrefixed(b, ordinal)
	b = appendLengthPrefixed(b, fee)
	b = appendLengthPrefixed(b, saltHex)

	return string(b), nil
}

func appendLengthPrefixed(b []byte, s string) []byte {
	b = append(b, strconv.Itoa(len(s))...)
	b = append(b, s...)
	return b
}

// bigHex renders a non-negative int64 as lowercase hex with no leading
// zeros, matching Rust's "{:x}" formatting of the amount field.
func bigHex(n int64) string {
	if n == 0 {
		return "0"
	}
	return new(big.Int).SetInt64(n).Text(16)
}

// KryoFrame wraps an already-encoded transaction string in the Kryo binary
// framing used by the node's deserializer: a type byte, an optional
// references flag, a varint length, then the UTF-8 payload.
func KryoFrame(s string, setReferences bool) []byte {
	frame := make([]byte, 0, len(s)+6)
	frame = append(frame, 0x03)
	if setReferences {
		frame = append(frame, 0x01)
	}
	frame = append(frame, encodeKryoVarint(len(s)+1)...)
	frame = append(frame, s...)
	return frame
}

// encodeKryoVarint encodes a non-negative integer using Kryo's variable
// length "UTF8 length" scheme: 1-5 bytes depending on magnitude. The first
// byte always has bit 7 set, uses bit 6 as the "more bytes follow" flag,
// and carries the low 6 bits of the value; each later byte carries 7 bits,
// with bit 7 set on every byte except the last.
func encodeKryoVarint(value int) []byte {
	v := uint32(value)
	switch {
	case v>>6 == 0:
		return []byte{byte(v | 0x80)}
	case v>>13 == 0:
		return []byte{
			byte(v | 0x40 | 0x80),
			byte(v >> 6),
		}
	case v>>20 == 0:
		return []byte{
			byte(v | 0x40 | 0x80),
			byte((v >> 6) | 0x80),
			byte(v >> 13),
		}
	case v>>27 == 0:
		return []byte{
			byte(v | 0x40 | 0x80),
			byte((v >> 6) | 0x80),
			byte((v >> 13) | 0x80),
			byte(v >> 20),
		}
	default:
		return []byte{
			byte(v | 0x40 | 0x80),
			byte((v >> 6) | 0x80),
			byte((v >> 13) | 0x80),
			byte((v >> 20) | 0x80),
			byte(v >> 27),
		}
	}
}
