package models

// Coin identifies a supported UTXO network family.
type Coin string

// Supported coins.
const (
	CoinBitcoin     Coin = "btc"
	CoinBitcoinCash Coin = "bch"
	CoinLitecoin    Coin = "ltc"
	CoinDash        Coin = "dash"
	CoinDoge        Coin = "doge"
)

// SigHashType is the low byte of a signature's hash type flag, per
// spec.md §4.6. The anyone-can-pay bit composes with any of the base
// three via bitwise OR.
type SigHashType uint32

// Hash type bits. SigHashForkID is ORed in for BCH-style fork-id
// sighashes (spec.md §4.6 item 3); it is not itself a base type.
const (
	SigHashAll          SigHashType = 0x01
	SigHashNone         SigHashType = 0x02
	SigHashSingle       SigHashType = 0x03
	SigHashAnyOneCanPay SigHashType = 0x80
	SigHashForkID       SigHashType = 0x40

	// sigHashMaskBits isolates the base type from the AnyOneCanPay and
	// ForkID bits.
	sigHashMaskBits = 0x1f
)

// BaseType returns the hash type with the AnyOneCanPay/ForkID flags
// stripped off.
func (h SigHashType) BaseType() SigHashType {
	return h & sigHashMaskBits
}

// HasAnyOneCanPay reports whether the anyone-can-pay bit is set.
func (h SigHashType) HasAnyOneCanPay() bool {
	return h&SigHashAnyOneCanPay != 0
}

// CoinPolicy is a pure record of the per-network parameters that drive
// address synthesis, WIF encoding, BIP32 serialization, and sighash
// computation. A single set of algorithms consults a CoinPolicy value;
// per-coin variance is data, never a type hierarchy (spec.md §9).
type CoinPolicy struct {
	Coin Coin
	Name string // explorer-facing network name, e.g. "Bitcoin", "Litecoin"; the same for mainnet and testnet

	Testnet bool

	P2PKHVersion byte
	P2SHVersion  byte
	WIFVersion   byte

	// Bech32HRP is empty for coins with no native SegWit support (Dash,
	// Dogecoin): IsSegWitCapable reports this.
	Bech32HRP string

	HDPrivateVersion [4]byte
	HDPublicVersion  [4]byte

	// ForkID is non-nil for BCH-style chains, whose sighash OR-in
	// SigHashForkID and place these three bytes in the preimage's high
	// bytes of the appended hash-type word (spec.md §4.6 item 3).
	ForkID *[3]byte

	// MessageMagic prefixes the signed-message preimage (supplemental
	// feature, SPEC_FULL §5 item 3).
	MessageMagic string

	// StrictLowS records whether the coin requires canonical low-S
	// signatures. See DESIGN.md Open Question decisions. No code in this
	// library reads it: ecc.Verify accepts both low-S and high-S
	// signatures for every coin.
	StrictLowS bool
}

// IsSegWitCapable reports whether this policy supports native P2WPKH
// (bech32) addresses.
func (p CoinPolicy) IsSegWitCapable() bool {
	return p.Bech32HRP != ""
}

// IsBCHLike reports whether sighashes on this coin use SIGHASH_FORKID.
func (p CoinPolicy) IsBCHLike() bool {
	return p.ForkID != nil
}
