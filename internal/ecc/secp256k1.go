// Package ecc wraps the secp256k1 scalar/point arithmetic and ECDSA
// machinery the signing engine needs, over github.com/btcsuite/btcd/btcec/v2
// and its ecdsa subpackage. Generalizes the teacher's direct
// btcec.PrivKeyFromBytes/SerializeCompressed call sites
// (internal/wallet/btc.go, internal/wallet/eth.go) into the full
// sign/verify/recover surface spec.md §4.2 requires.
package ecc

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
)

// NewPrivateKey parses a 32-byte scalar and returns a PrivateKey tagged
// with the given encoding hint. Returns models.KeyError if the scalar is
// zero or >= the curve order.
func NewPrivateKey(scalar []byte, enc models.KeyEncoding) (*models.PrivateKey, error) {
	if len(scalar) != 32 {
		return nil, &models.KeyError{Op: "NewPrivateKey", Reason: "scalar must be 32 bytes"}
	}
	var s btcec.ModNScalar
	overflow := s.SetByteSlice(scalar)
	if overflow || s.IsZero() {
		return nil, &models.KeyError{Op: "NewPrivateKey", Reason: "scalar out of range [1, n-1]"}
	}
	priv := btcec.PrivKeyFromScalar(&s)
	return &models.PrivateKey{Key: priv, Encoding: enc}, nil
}

// ParsePublicKey parses a compressed (33-byte) or uncompressed (65-byte)
// point encoding, validating it lies on-curve and is not the point at
// infinity.
func ParsePublicKey(data []byte) (*models.PublicKey, error) {
	pub, err := btcec.ParsePubKey(data)
	if err != nil {
		return nil, &models.KeyError{Op: "ParsePublicKey", Reason: err.Error()}
	}
	return &models.PublicKey{Key: pub, Compressed: len(data) == 33}, nil
}

// Signature is a DER-encodable ECDSA signature over secp256k1.
type Signature struct {
	sig *ecdsa.Signature
}

// Sign computes a deterministic (RFC 6979) ECDSA signature over hash
// using priv, with k re-derived and retried internally whenever r or s
// comes out zero (handled by the underlying library per RFC 6979 §3.2).
// The resulting s is normalized to the curve's low-S half, as spec.md
// §4.2 requires.
func Sign(priv *models.PrivateKey, hash []byte) *Signature {
	return &Signature{sig: ecdsa.Sign(priv.Key, hash)}
}

// DER returns the signature's DER encoding (r, s with leading-zero
// padding when the top bit is set).
func (s *Signature) DER() []byte {
	return s.sig.Serialize()
}

// ParseDERSignature parses a DER-encoded (r, s) pair.
func ParseDERSignature(der []byte) (*Signature, error) {
	sig, err := ecdsa.ParseDERSignature(der)
	if err != nil {
		return nil, &models.KeyError{Op: "ParseDERSignature", Reason: err.Error()}
	}
	return &Signature{sig: sig}, nil
}

// Verify reports whether sig is a valid signature over hash by pub.
// Accepts both low-S and high-S signatures; this package has no low-S
// check and does not consult CoinPolicy.StrictLowS.
func Verify(pub *models.PublicKey, hash []byte, sig *Signature) bool {
	return sig.sig.Verify(hash, pub.Key)
}

// SignCompact produces a 65-byte recoverable signature (1-byte recovery
// id ‖ 32-byte r ‖ 32-byte s), used by the message-signing supplement
// (SPEC_FULL §5 item 3).
func SignCompact(priv *models.PrivateKey, hash []byte) []byte {
	return ecdsa.SignCompact(priv.Key, hash, priv.Compressed())
}

// RecoverCompact reconstructs the public key from a compact signature
// and the message hash it covers.
func RecoverCompact(sig, hash []byte) (*models.PublicKey, bool, error) {
	pub, wasCompressed, err := ecdsa.RecoverCompact(sig, hash)
	if err != nil {
		return nil, false, &models.KeyError{Op: "RecoverCompact", Reason: err.Error()}
	}
	return &models.PublicKey{Key: pub, Compressed: wasCompressed}, wasCompressed, nil
}
