package models

// ElectrumMasterKey is derived from a 128-bit hex seed per spec.md §4.3.
// It is equivalent to an uncompressed secp256k1 public key (MPK) plus
// the stretched secret used to derive child keys.
type ElectrumMasterKey struct {
	Seed     []byte
	Stretched [32]byte
	MPK       [64]byte // uncompressed pubkey bytes, without the 0x04 prefix
}
