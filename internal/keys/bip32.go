package keys

import (
	"errors"

	"github.com/olehkaliuzhnyi/utxo-wallet/internal/ecc"
	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
	bip32 "github.com/tyler-smith/go-bip32"
)

// hardenedOffset is BIP32's boundary between normal and hardened child
// indices (i >= 2^31).
const hardenedOffset = uint32(0x80000000)

// BIP32MasterKey derives the master extended key from a seed via
// go-bip32 (already a teacher dependency, used for the fixed BIP44 path
// in the teacher's internal/wallet/eth.go deriveKey; generalized here to
// expose the full tree instead of one hard-coded path). policy.HDPrivateVersion
// is applied before the key is ever serialized, so BIP32Serialize returns a
// coin-correct xprv string regardless of go-bip32's own built-in defaults.
func BIP32MasterKey(seed []byte, policy models.CoinPolicy) (*bip32.Key, error) {
	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, &models.DerivationError{Op: "BIP32MasterKey", Reason: err.Error()}
	}
	key.Version = append([]byte(nil), policy.HDPrivateVersion[:]...)
	return key, nil
}

// BIP32Child derives the child at index childIdx. Hardened indices
// (childIdx >= 2^31) require key to be a private node; deriving a
// hardened child from a public-only key fails with
// models.DerivationError, matching spec.md §3's invariant. If the
// derived scalar is invalid (zero or >= curve order), go-bip32 signals
// this internally and the caller is expected to retry with childIdx+1;
// BIP32ChildAuto does that automatically.
func BIP32Child(key *bip32.Key, childIdx uint32) (*bip32.Key, error) {
	if childIdx >= hardenedOffset && !key.IsPrivate {
		return nil, &models.DerivationError{Op: "BIP32Child", Reason: "hardened derivation requires a private parent key"}
	}
	child, err := key.NewChildKey(childIdx)
	if err != nil {
		return nil, &models.DerivationError{Op: "BIP32Child", Reason: err.Error()}
	}
	child.Version = append([]byte(nil), key.Version...)
	return child, nil
}

// BIP32ChildAuto derives the child at childIdx, advancing to childIdx+1
// whenever go-bip32 reports the scalar at the current index is invalid
// (spec.md §4.3: "reject if 0 or ≥ n and advance to i+1"). Returns the
// index actually used alongside the resulting child.
func BIP32ChildAuto(key *bip32.Key, childIdx uint32) (child *bip32.Key, usedIdx uint32, err error) {
	idx := childIdx
	for {
		child, err = BIP32Child(key, idx)
		if err == nil {
			return child, idx, nil
		}
		var derr *models.DerivationError
		if !errors.As(err, &derr) || idx == hardenedOffset-1 || idx == ^uint32(0) || (idx >= hardenedOffset && !key.IsPrivate) {
			return nil, 0, err
		}
		idx++
	}
}

// BIP32ToExtendedKey converts a go-bip32 key to the library's public
// models.ExtendedKey representation.
func BIP32ToExtendedKey(key *bip32.Key) (*models.ExtendedKey, error) {
	out := &models.ExtendedKey{
		Depth:       key.Depth,
		IsPrivate:   key.IsPrivate,
	}
	copy(out.ParentFP[:], key.FingerPrint)
	copy(out.ChainCode[:], key.ChainCode)
	if len(key.ChildNumber) == 4 {
		out.ChildNumber = uint32(key.ChildNumber[0])<<24 | uint32(key.ChildNumber[1])<<16 | uint32(key.ChildNumber[2])<<8 | uint32(key.ChildNumber[3])
	}

	if key.IsPrivate {
		priv, err := ecc.NewPrivateKey(key.Key, models.EncodingWIFCompressed)
		if err != nil {
			return nil, err
		}
		out.Private = priv
		out.Public = priv.PubKey()
		out.Public.Compressed = true
		return out, nil
	}

	pub, err := ecc.ParsePublicKey(key.Key)
	if err != nil {
		return nil, err
	}
	pub.Compressed = true
	out.Public = pub
	return out, nil
}

// BIP32Serialize returns the Base58Check XPRV/XPUB string for key, using
// whatever version bytes are already set on it (see BIP32MasterKey and
// BIP32Child, which propagate the CoinPolicy private version to private
// descendants). Nodes produced by BIP32Neuter, and their descendants,
// carry go-bip32's default public version bytes (xpub);
// CoinPolicy.HDPublicVersion is not applied anywhere.
func BIP32Serialize(key *bip32.Key) string {
	return key.B58Serialize()
}

// BIP32Neuter strips the private half of key, returning the
// corresponding public-only node (used to implement xpub(x) in the
// xpub(ckd_priv(x,i)) == ckd_pub(xpub(x), i) testable property,
// spec.md §8). The returned node carries go-bip32's default public
// version bytes, not the CoinPolicy's HDPublicVersion.
func BIP32Neuter(key *bip32.Key) *bip32.Key {
	return key.PublicKey()
}
