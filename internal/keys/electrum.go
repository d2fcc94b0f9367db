package keys

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/ecc"
	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
)

const electrumStretchRounds = 100000

// NewElectrumMasterKey derives an Electrum v1 master key from a 128-bit
// hex seed (spec.md §4.3). The stretched secret is obtained by iterating
// SHA-256 100,000 times over the seed, matching the original Electrum
// v1 wallet's key-stretching step. Returns models.DerivationError if the
// seed does not decode to exactly 16 bytes.
func NewElectrumMasterKey(seedHex string) (*models.ElectrumMasterKey, error) {
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, &models.DerivationError{Op: "NewElectrumMasterKey", Reason: err.Error()}
	}
	if len(seed) != 16 {
		return nil, &models.DerivationError{Op: "NewElectrumMasterKey", Reason: "seed must be 128 bits (16 bytes)"}
	}

	stretched := electrumStretch(seed)

	var scalar btcec.ModNScalar
	scalar.SetByteSlice(stretched[:])
	pub := btcec.PrivKeyFromScalar(&scalar).PubKey()
	uncompressed := pub.SerializeUncompressed() // 0x04 ‖ X ‖ Y

	mk := &models.ElectrumMasterKey{Seed: seed}
	copy(mk.Stretched[:], stretched[:])
	copy(mk.MPK[:], uncompressed[1:])
	return mk, nil
}

// electrumStretch repeatedly hashes the seed against its own running
// output 100,000 times, per spec.md §4.3.
func electrumStretch(seed []byte) [32]byte {
	var cur [32]byte
	prev := seed
	for i := 0; i < electrumStretchRounds; i++ {
		buf := make([]byte, 0, len(prev)+len(seed))
		buf = append(buf, prev...)
		buf = append(buf, seed...)
		cur = sha256.Sum256(buf)
		prev = cur[:]
	}
	return cur
}

// ElectrumChildPrivateKey computes the private key at (index, forChange):
// stretched + SHA256("<index>:<change>:" ‖ seed) mod n.
func ElectrumChildPrivateKey(mk *models.ElectrumMasterKey, index uint32, forChange bool) (*models.PrivateKey, error) {
	change := 0
	if forChange {
		change = 1
	}
	prefix := []byte(fmt.Sprintf("%d:%d:", index, change))
	data := append(append([]byte(nil), prefix...), mk.Seed...)
	offset := sha256.Sum256(data)

	var stretchedScalar, offsetScalar btcec.ModNScalar
	stretchedScalar.SetByteSlice(mk.Stretched[:])
	offsetScalar.SetByteSlice(offset[:])
	stretchedScalar.Add(&offsetScalar)

	childBytes := stretchedScalar.Bytes()
	return ecc.NewPrivateKey(childBytes[:], models.EncodingRawBytes)
}
