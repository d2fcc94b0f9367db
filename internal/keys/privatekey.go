// Package keys implements private/public key parsing, WIF import/export,
// BIP32 hierarchical derivation, Electrum v1 derivation, and address
// synthesis (spec.md §4.3), generalizing the teacher's
// internal/wallet/btc.go address-generation helpers to be
// CoinPolicy-parameterized instead of hard-coded to one network.
package keys

import (
	"encoding/hex"

	"github.com/olehkaliuzhnyi/utxo-wallet/internal/ecc"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/encoding"
	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
)

// ParseHex parses a bare 32-byte scalar given as a hex string. By
// convention (spec.md §3), a raw hex key derives an uncompressed public
// key.
func ParseHex(s string) (*models.PrivateKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, &models.EncodingError{Op: "ParseHex", Reason: err.Error()}
	}
	return ecc.NewPrivateKey(b, models.EncodingRawHex)
}

// ParseRawBytes parses a bare 32-byte scalar. By convention, a raw-bytes
// key derives an uncompressed public key.
func ParseRawBytes(b []byte) (*models.PrivateKey, error) {
	return ecc.NewPrivateKey(b, models.EncodingRawBytes)
}

// ParseWIF decodes a Wallet Import Format string against policy's WIF
// version byte. Returns models.KeyError if the version byte does not
// match the policy, and models.ChecksumError/EncodingError for malformed
// Base58Check input.
func ParseWIF(wif string, policy models.CoinPolicy) (*models.PrivateKey, error) {
	version, payload, err := encoding.Base58CheckDecode(wif)
	if err != nil {
		return nil, err
	}
	if version != policy.WIFVersion {
		return nil, &models.KeyError{Op: "ParseWIF", Reason: "WIF version byte does not match coin policy"}
	}

	switch len(payload) {
	case 32:
		return ecc.NewPrivateKey(payload, models.EncodingWIFUncompressed)
	case 33:
		if payload[32] != 0x01 {
			return nil, &models.KeyError{Op: "ParseWIF", Reason: "unexpected compression suffix byte"}
		}
		return ecc.NewPrivateKey(payload[:32], models.EncodingWIFCompressed)
	default:
		return nil, &models.KeyError{Op: "ParseWIF", Reason: "unexpected WIF payload length"}
	}
}

// EncodeWIF serializes priv as a Wallet Import Format string for policy,
// appending the 0x01 compression suffix iff priv carries a compressed
// encoding hint.
func EncodeWIF(priv *models.PrivateKey, policy models.CoinPolicy) string {
	scalar := priv.Key.Serialize()
	payload := scalar
	if priv.Compressed() {
		payload = append(append([]byte(nil), scalar...), 0x01)
	}
	return encoding.Base58CheckEncode(policy.WIFVersion, payload)
}
