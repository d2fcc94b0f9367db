package script

import (
	"bytes"

	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
)

// P2PKHScript builds the standard
// OP_DUP OP_HASH160 <20> OP_EQUALVERIFY OP_CHECKSIG output template.
func P2PKHScript(pubKeyHash []byte) []byte {
	var b bytes.Buffer
	b.WriteByte(OP_DUP)
	b.WriteByte(OP_HASH160)
	b.Write(pushData(pubKeyHash))
	b.WriteByte(OP_EQUALVERIFY)
	b.WriteByte(OP_CHECKSIG)
	return b.Bytes()
}

// P2SHScript builds the standard OP_HASH160 <20> OP_EQUAL output
// template.
func P2SHScript(scriptHash []byte) []byte {
	var b bytes.Buffer
	b.WriteByte(OP_HASH160)
	b.Write(pushData(scriptHash))
	b.WriteByte(OP_EQUAL)
	return b.Bytes()
}

// P2WPKHScript builds the native SegWit OP_0 <20> output template.
func P2WPKHScript(pubKeyHash []byte) []byte {
	var b bytes.Buffer
	b.WriteByte(OP_0)
	b.Write(pushData(pubKeyHash))
	return b.Bytes()
}

// P2WPKHRedeemScript builds the 0x00 0x14 <20> redeem script a
// P2WPKH-in-P2SH address embeds; byte-identical to P2WPKHScript, named
// separately because the two play different roles (one is an
// outputscript, the other a redeem script wrapped by P2SH).
func P2WPKHRedeemScript(pubKeyHash []byte) []byte {
	return P2WPKHScript(pubKeyHash)
}

// P2WPKHNestedScriptSig builds the scriptSig
// <22-byte-push> 00 14 <hash160(pub)> used to spend a P2WPKH-in-P2SH
// output: a single push of the redeem script itself (spec.md §4.4).
func P2WPKHNestedScriptSig(pubKeyHash []byte) []byte {
	return pushData(P2WPKHRedeemScript(pubKeyHash))
}

// IsP2PKH reports whether script matches the standard P2PKH shape.
func IsP2PKH(scriptPubKey []byte) bool {
	return len(scriptPubKey) == 25 &&
		scriptPubKey[0] == OP_DUP &&
		scriptPubKey[1] == OP_HASH160 &&
		scriptPubKey[2] == 0x14 &&
		scriptPubKey[23] == OP_EQUALVERIFY &&
		scriptPubKey[24] == OP_CHECKSIG
}

// IsP2SH reports whether script matches the standard P2SH shape.
func IsP2SH(scriptPubKey []byte) bool {
	return len(scriptPubKey) == 23 &&
		scriptPubKey[0] == OP_HASH160 &&
		scriptPubKey[1] == 0x14 &&
		scriptPubKey[22] == OP_EQUAL
}

// IsP2WPKH reports whether script matches the native SegWit P2WPKH
// shape (OP_0 <20>).
func IsP2WPKH(scriptPubKey []byte) bool {
	return len(scriptPubKey) == 22 &&
		scriptPubKey[0] == OP_0 &&
		scriptPubKey[1] == 0x14
}

// IsSegWit reports whether scriptPubKey is any recognized native SegWit
// output (version 0 only, per spec.md §4.1).
func IsSegWit(scriptPubKey []byte) bool {
	return IsP2WPKH(scriptPubKey)
}

// ExtractHash returns the 20-byte hash embedded in a P2PKH, P2SH, or
// P2WPKH scriptPubKey, or nil if script matches none of them.
func ExtractHash(scriptPubKey []byte) []byte {
	switch {
	case IsP2PKH(scriptPubKey):
		return scriptPubKey[3:23]
	case IsP2SH(scriptPubKey):
		return scriptPubKey[2:22]
	case IsP2WPKH(scriptPubKey):
		return scriptPubKey[2:22]
	default:
		return nil
	}
}

// BuildMultisigRedeem builds a bare m-of-n CHECKMULTISIG redeem script:
// OP_m <pub_1> ... <pub_n> OP_n OP_CHECKMULTISIG. Public keys appear in
// the order given; callers must pass them in the canonical order the
// cosigners agreed on, since signature insertion later matches against
// this exact ordering (spec.md §9).
func BuildMultisigRedeem(m int, pubKeys [][]byte) ([]byte, error) {
	n := len(pubKeys)
	if m < 1 || m > n || n > 16 {
		return nil, &models.SigningError{Op: "BuildMultisigRedeem", Reason: "m-of-n out of range"}
	}
	var b bytes.Buffer
	b.WriteByte(opN(m))
	for _, pub := range pubKeys {
		b.Write(pushData(pub))
	}
	b.WriteByte(opN(n))
	b.WriteByte(OP_CHECKMULTISIG)
	return b.Bytes(), nil
}

// IsMultisigRedeem reports whether script has the CHECKMULTISIG shape
// (starts with a small-int push, ends with OP_<n> OP_CHECKMULTISIG).
func IsMultisigRedeem(redeemScript []byte) bool {
	if len(redeemScript) < 3 {
		return false
	}
	last := redeemScript[len(redeemScript)-1]
	secondLast := redeemScript[len(redeemScript)-2]
	first := redeemScript[0]
	return last == OP_CHECKMULTISIG &&
		first >= OP_1 && first <= OP_16 &&
		secondLast >= OP_1 && secondLast <= OP_16
}

// MultisigRedeem is the parsed shape of a bare m-of-n CHECKMULTISIG
// redeem script: the threshold and the cosigner public keys in the
// order the script lists them (spec.md §9 — a signer finds its slot by
// matching its derived pubkey against this order).
type MultisigRedeem struct {
	M       int
	PubKeys [][]byte
}

// ParseMultisigRedeem parses redeemScript built by BuildMultisigRedeem.
// Returns models.SigningError if the script doesn't have the expected
// shape.
func ParseMultisigRedeem(redeemScript []byte) (*MultisigRedeem, error) {
	if !IsMultisigRedeem(redeemScript) {
		return nil, &models.SigningError{Op: "ParseMultisigRedeem", Reason: "not a CHECKMULTISIG redeem script"}
	}
	m := int(redeemScript[0]) - int(OP_1) + 1
	n := int(redeemScript[len(redeemScript)-2]) - int(OP_1) + 1

	pos := 1
	pubKeys := make([][]byte, 0, n)
	for len(pubKeys) < n {
		if pos >= len(redeemScript) {
			return nil, &models.SigningError{Op: "ParseMultisigRedeem", Reason: "truncated pubkey push"}
		}
		length := int(redeemScript[pos])
		pos++
		if length == 0 || pos+length > len(redeemScript) {
			return nil, &models.SigningError{Op: "ParseMultisigRedeem", Reason: "malformed pubkey push"}
		}
		pubKeys = append(pubKeys, redeemScript[pos:pos+length])
		pos += length
	}
	return &MultisigRedeem{M: m, PubKeys: pubKeys}, nil
}
