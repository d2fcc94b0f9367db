package keys

import (
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/encoding"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/script"
	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
)

// PubToAddr returns the P2PKH address Base58Check(P2PKHVersion ‖
// hash160(pub)), generalizing the teacher's hard-coded
// base58CheckEncode(0x00, hash160) call in internal/wallet/btc.go to any
// CoinPolicy.
func PubToAddr(pub *models.PublicKey, policy models.CoinPolicy) string {
	h := encoding.Hash160(pub.SerializeBytes())
	return encoding.Base58CheckEncode(policy.P2PKHVersion, h)
}

// PrivToAddr is PubToAddr(priv.PubKey(), policy).
func PrivToAddr(priv *models.PrivateKey, policy models.CoinPolicy) string {
	return PubToAddr(priv.PubKey(), policy)
}

// p2wpkhRedeemScript builds the 0x00 0x14 <hash160(pub)> redeem script a
// P2WPKH-in-P2SH address and scriptSig both embed.
func p2wpkhRedeemScript(pubHash []byte) []byte {
	redeem := make([]byte, 0, 2+len(pubHash))
	redeem = append(redeem, 0x00, 0x14)
	redeem = append(redeem, pubHash...)
	return redeem
}

// PubToP2W returns the P2SH address wrapping a P2WPKH redeem script for
// pub: Base58Check(P2SHVersion ‖ hash160(0x00 0x14 hash160(pub)))
// (spec.md §4.3).
func PubToP2W(pub *models.PublicKey, policy models.CoinPolicy) string {
	pubHash := encoding.Hash160(pub.SerializeBytes())
	redeem := p2wpkhRedeemScript(pubHash)
	return encoding.Base58CheckEncode(policy.P2SHVersion, encoding.Hash160(redeem))
}

// PrivToP2W is PubToP2W(priv.PubKey(), policy).
func PrivToP2W(priv *models.PrivateKey, policy models.CoinPolicy) string {
	return PubToP2W(priv.PubKey(), policy)
}

// PubToSegWitAddr returns the native bech32 P2WPKH address for pub.
// Returns models.KeyError if policy has no Bech32 HRP configured.
func PubToSegWitAddr(pub *models.PublicKey, policy models.CoinPolicy) (string, error) {
	if !policy.IsSegWitCapable() {
		return "", &models.KeyError{Op: "PubToSegWitAddr", Reason: "coin has no native SegWit support"}
	}
	pubHash := encoding.Hash160(pub.SerializeBytes())
	return encoding.SegWitEncode(policy.Bech32HRP, pubHash)
}

// PrivToSegWitAddr is PubToSegWitAddr(priv.PubKey(), policy).
func PrivToSegWitAddr(priv *models.PrivateKey, policy models.CoinPolicy) (string, error) {
	return PubToSegWitAddr(priv.PubKey(), policy)
}

// AddrToScript decodes address under policy into the scriptPubKey it
// pays: a Base58Check P2PKH/P2SH address or, for coins configured with
// a Bech32 HRP, a native P2WPKH address. Tries Base58Check first since
// every supported coin accepts it; the bech32 form is only ever valid
// for policy.Bech32HRP itself, so there's no ambiguity. Needed by
// pkg/coin's Mktx to turn a recipient's address into an output
// (spec.md §9 supplemental feature, SPEC_FULL §5 item 2).
func AddrToScript(address string, policy models.CoinPolicy) ([]byte, error) {
	version, payload, err := encoding.Base58CheckDecode(address)
	if err == nil {
		switch {
		case version == policy.P2PKHVersion && len(payload) == 20:
			return script.P2PKHScript(payload), nil
		case version == policy.P2SHVersion && len(payload) == 20:
			return script.P2SHScript(payload), nil
		}
	}

	if policy.IsSegWitCapable() {
		wver, program, berr := encoding.SegWitDecode(policy.Bech32HRP, address)
		if berr == nil && wver == 0 && len(program) == 20 {
			return script.P2WPKHScript(program), nil
		}
	}

	return nil, &models.KeyError{Op: "AddrToScript", Reason: "address does not match any recognized template for this coin"}
}
