// Package encoding implements the numeric and string encodings the
// Bitcoin wire format and its address schemes rely on: VarInt
// (CompactSize), Base58Check, Bech32/BIP173, and the hash primitives
// hash160/dhash.
package encoding

import (
	"encoding/binary"
	"fmt"

	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
)

// PutVarInt appends the CompactSize encoding of n to dst and returns the
// result. It always chooses the shortest valid form: 1 byte for n < 0xfd,
// 3 bytes (prefix 0xfd) for n <= 0xffff, 5 bytes (prefix 0xfe) for
// n <= 0xffffffff, 9 bytes (prefix 0xff) otherwise.
func PutVarInt(dst []byte, n uint64) []byte {
	switch {
	case n < 0xfd:
		return append(dst, byte(n))
	case n <= 0xffff:
		buf := make([]byte, 3)
		buf[0] = 0xfd
		binary.LittleEndian.PutUint16(buf[1:], uint16(n))
		return append(dst, buf...)
	case n <= 0xffffffff:
		buf := make([]byte, 5)
		buf[0] = 0xfe
		binary.LittleEndian.PutUint32(buf[1:], uint32(n))
		return append(dst, buf...)
	default:
		buf := make([]byte, 9)
		buf[0] = 0xff
		binary.LittleEndian.PutUint64(buf[1:], n)
		return append(dst, buf...)
	}
}

// VarInt encodes n as a standalone CompactSize byte slice.
func VarInt(n uint64) []byte {
	return PutVarInt(nil, n)
}

// ReadVarInt decodes a CompactSize integer from the front of b and
// returns its value and the number of bytes consumed. When strict is
// true, a non-minimal encoding (e.g. 0xfd used to encode a value below
// 0xfd) is rejected with models.TxCodecError; by default ReadVarInt
// tolerates non-canonical encodings, matching historical node behavior
// (spec.md §4.1).
func ReadVarInt(b []byte, strict bool) (uint64, int, error) {
	if len(b) == 0 {
		return 0, 0, &models.TxCodecError{Op: "ReadVarInt", Reason: "empty input"}
	}

	prefix := b[0]
	switch {
	case prefix < 0xfd:
		return uint64(prefix), 1, nil
	case prefix == 0xfd:
		if len(b) < 3 {
			return 0, 0, &models.TxCodecError{Op: "ReadVarInt", Reason: "truncated 2-byte VarInt"}
		}
		v := uint64(binary.LittleEndian.Uint16(b[1:3]))
		if strict && v < 0xfd {
			return 0, 0, &models.TxCodecError{Op: "ReadVarInt", Reason: fmt.Sprintf("non-canonical VarInt: %d encoded with 0xfd prefix", v)}
		}
		return v, 3, nil
	case prefix == 0xfe:
		if len(b) < 5 {
			return 0, 0, &models.TxCodecError{Op: "ReadVarInt", Reason: "truncated 4-byte VarInt"}
		}
		v := uint64(binary.LittleEndian.Uint32(b[1:5]))
		if strict && v <= 0xffff {
			return 0, 0, &models.TxCodecError{Op: "ReadVarInt", Reason: fmt.Sprintf("non-canonical VarInt: %d encoded with 0xfe prefix", v)}
		}
		return v, 5, nil
	default: // 0xff
		if len(b) < 9 {
			return 0, 0, &models.TxCodecError{Op: "ReadVarInt", Reason: "truncated 8-byte VarInt"}
		}
		v := binary.LittleEndian.Uint64(b[1:9])
		if strict && v <= 0xffffffff {
			return 0, 0, &models.TxCodecError{Op: "ReadVarInt", Reason: fmt.Sprintf("non-canonical VarInt: %d encoded with 0xff prefix", v)}
		}
		return v, 9, nil
	}
}

// PutUint32LE appends n little-endian to dst.
func PutUint32LE(dst []byte, n uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, n)
	return append(dst, buf...)
}

// PutUint64LE appends n little-endian to dst.
func PutUint64LE(dst []byte, n uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, n)
	return append(dst, buf...)
}

// PutInt64LE appends n little-endian to dst.
func PutInt64LE(dst []byte, n int64) []byte {
	return PutUint64LE(dst, uint64(n))
}
