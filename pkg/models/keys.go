package models

import "github.com/btcsuite/btcd/btcec/v2"

// KeyEncoding records how a private key was supplied. The encoding is
// not cosmetic: it decides whether the derived public key is
// compressed, which in turn changes every address and sighash derived
// from the key (spec.md §3).
type KeyEncoding int

const (
	// EncodingRawHex is a bare 32-byte scalar given as hex, uncompressed
	// public key by convention.
	EncodingRawHex KeyEncoding = iota
	// EncodingRawBytes is a bare 32-byte scalar, uncompressed public key
	// by convention.
	EncodingRawBytes
	// EncodingWIFUncompressed is a WIF-encoded scalar with no compression
	// suffix.
	EncodingWIFUncompressed
	// EncodingWIFCompressed is a WIF-encoded scalar with the trailing
	// 0x01 compression suffix.
	EncodingWIFCompressed
)

// Compressed reports whether keys carrying this encoding hint should
// derive a compressed public key.
func (e KeyEncoding) Compressed() bool {
	return e == EncodingWIFCompressed
}

// PrivateKey is a secp256k1 scalar paired with the encoding hint it was
// parsed from. Immutable once constructed.
type PrivateKey struct {
	Key      *btcec.PrivateKey
	Encoding KeyEncoding
}

// Compressed reports whether PubKey should be serialized compressed.
func (p *PrivateKey) Compressed() bool {
	return p.Encoding.Compressed()
}

// PubKey returns the public key for p, tagged with p's compression hint.
func (p *PrivateKey) PubKey() *PublicKey {
	return &PublicKey{Key: p.Key.PubKey(), Compressed: p.Compressed()}
}

// PublicKey is a secp256k1 curve point together with the compression
// flag that decides its serialized form. The two encodings of the same
// point produce different addresses, so the flag travels with the key
// through its whole lifecycle.
type PublicKey struct {
	Key        *btcec.PublicKey
	Compressed bool
}

// SerializeBytes returns the compressed (33-byte) or uncompressed
// (65-byte) encoding according to Compressed.
func (p *PublicKey) SerializeBytes() []byte {
	if p.Compressed {
		return p.Key.SerializeCompressed()
	}
	return p.Key.SerializeUncompressed()
}
