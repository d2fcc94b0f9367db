package encoding

import (
	"errors"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
)

// Base58CheckEncode returns Base58Check(version ‖ payload ‖ checksum),
// where checksum is the first 4 bytes of DHash(version ‖ payload).
// Wraps the teacher's existing btcutil/base58 dependency (see
// internal/wallet/btc.go's base58CheckEncode, which this generalizes
// away from a single hard-coded version byte).
func Base58CheckEncode(version byte, payload []byte) string {
	return base58.CheckEncode(payload, version)
}

// Base58CheckDecode reverses Base58CheckEncode, returning the version
// byte and payload. Returns models.ChecksumError on checksum mismatch
// and models.EncodingError for any other malformed input (wrong
// alphabet, missing version/checksum bytes).
func Base58CheckDecode(s string) (version byte, payload []byte, err error) {
	payload, version, err = base58.CheckDecode(s)
	if err != nil {
		if errors.Is(err, base58.ErrChecksum) {
			return 0, nil, &models.ChecksumError{Op: "Base58CheckDecode"}
		}
		return 0, nil, &models.EncodingError{Op: "Base58CheckDecode", Reason: err.Error()}
	}
	return version, payload, nil
}

// Base58Encode is the raw (checksum-less) Base58 alphabet encoding.
func Base58Encode(b []byte) string {
	return base58.Encode(b)
}

// Base58Decode is the raw (checksum-less) Base58 alphabet decoding. It
// returns models.EncodingError if s contains a character outside the
// Base58 alphabet.
func Base58Decode(s string) ([]byte, error) {
	decoded := base58.Decode(s)
	if len(decoded) == 0 && s != "" {
		return nil, &models.EncodingError{Op: "Base58Decode", Reason: "invalid character"}
	}
	return decoded, nil
}
