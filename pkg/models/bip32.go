package models

// ExtendedKey is a BIP32 node: depth, parent fingerprint, child index,
// and chain code, plus either a private scalar or a public point.
// Serialized as a 78-byte Base58Check payload with network-specific
// version bytes (spec.md §3).
type ExtendedKey struct {
	Depth       byte
	ParentFP    [4]byte
	ChildNumber uint32
	ChainCode   [32]byte

	IsPrivate bool
	Private   *PrivateKey // set iff IsPrivate
	Public    *PublicKey  // always set (derived from Private when private)
}
