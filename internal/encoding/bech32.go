package encoding

import (
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
)

// SegWitEncode encodes a version-0 witness program as a BIP173 address:
// HRP + "1" + 5-bit data (witness version ‖ 8-to-5-bit-converted
// program) + checksum. Only segwit version 0 is supported (spec.md §4.1).
func SegWitEncode(hrp string, program []byte) (string, error) {
	converted, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", &models.EncodingError{Op: "SegWitEncode", Reason: err.Error()}
	}
	combined := make([]byte, 0, 1+len(converted))
	combined = append(combined, 0x00) // witness version 0
	combined = append(combined, converted...)

	addr, err := bech32.Encode(hrp, combined)
	if err != nil {
		return "", &models.EncodingError{Op: "SegWitEncode", Reason: err.Error()}
	}
	return addr, nil
}

// SegWitDecode reverses SegWitEncode, returning the witness version and
// witness program. Any failure of the underlying bech32 decode
// (including a checksum failure) is reported as models.ChecksumError; an
// HRP other than expectHRP or a malformed data part is reported as
// models.EncodingError.
func SegWitDecode(expectHRP, addr string) (version byte, program []byte, err error) {
	hrp, data, err := bech32.Decode(addr)
	if err != nil {
		return 0, nil, &models.ChecksumError{Op: "SegWitDecode"}
	}
	if hrp != expectHRP {
		return 0, nil, &models.EncodingError{Op: "SegWitDecode", Reason: "HRP mismatch"}
	}
	if len(data) < 1 {
		return 0, nil, &models.EncodingError{Op: "SegWitDecode", Reason: "empty data part"}
	}

	version = data[0]
	program, err = bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return 0, nil, &models.EncodingError{Op: "SegWitDecode", Reason: err.Error()}
	}
	return version, program, nil
}
