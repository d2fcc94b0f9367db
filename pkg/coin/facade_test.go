package coin

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/olehkaliuzhnyi/utxo-wallet/internal/ecc"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/explorer"
	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
)

// brainwalletKey reproduces spec.md §8 scenario 1's brainwallet
// derivation: sha256 of a passphrase, taken as a raw (uncompressed)
// scalar.
func brainwalletKey(t *testing.T) *models.PrivateKey {
	t.Helper()
	sum := sha256.Sum256([]byte("a big long brainwallet password"))
	priv, err := ecc.NewPrivateKey(sum[:], models.EncodingRawHex)
	require.NoError(t, err)
	return priv
}

func TestPrivToAddr_BrainwalletAcrossCoins(t *testing.T) {
	priv := brainwalletKey(t)

	testnet, err := Bitcoin(true, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "mwJUQbdhamwemrsR17oy7z9upFh4JtNxm1", testnet.PrivToAddr(priv))

	mainnet, err := Bitcoin(false, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "1GnX7YYimkWPzkPoHYqbJ4waxG6MN2cdSg", mainnet.PrivToAddr(priv))

	ltc, err := Litecoin(false, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "Lb1UNkrYrQkTFZ5xTgpta61MAUTdUq7iJ1", ltc.PrivToAddr(priv))

	dash, err := Dash(false, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "XrUMwoCcjTiz9gzP9S9p9bdNnbg3MvAB1F", dash.PrivToAddr(priv))

	doge, err := Doge(false, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "DLvceoVN5AQgXkaQ28q9qq7BqPpefFRp4E", doge.PrivToAddr(priv))
}

func TestPrivToAddr_UncompressedPubKeyPrefix(t *testing.T) {
	priv := brainwalletKey(t)
	pub := priv.PubKey().SerializeBytes()
	require.False(t, priv.Compressed())
	require.Equal(t, "041f763d81010db8ba3026", hex.EncodeToString(pub[:11]))
}

func TestPrivToP2W_NestedSegWitAddress(t *testing.T) {
	priv := brainwalletKey(t)
	c, err := Litecoin(true, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "2Mtj1R5qSfGowwJkJf7CYufFVNk5BRyAYZh", c.PrivToP2W(priv))
}

func TestMktx_ResolvesRecipientsAndCarriesAmounts(t *testing.T) {
	c, err := Bitcoin(false, nil, nil)
	require.NoError(t, err)

	priv := brainwalletKey(t)
	addr := c.PrivToAddr(priv)

	var outpoint models.Outpoint
	outpoint.Hash[0] = 0x42
	inputs := []UnspentOutput{{Outpoint: outpoint, Value: 100000}}
	recipients := []Recipient{{Address: addr, Value: 90000}}

	txn, specs, err := c.Mktx(inputs, recipients, 0)
	require.NoError(t, err)
	require.Len(t, txn.Inputs, 1)
	require.Len(t, txn.Outputs, 1)
	require.Len(t, specs, 1)
	require.Equal(t, int64(90000), txn.Outputs[0].Value)
	require.Equal(t, uint32(0xffffffff), txn.Inputs[0].Sequence)
}

func TestSign_ThenSerialize_ProducesSpendableInput(t *testing.T) {
	c, err := Bitcoin(false, nil, nil)
	require.NoError(t, err)

	priv := brainwalletKey(t)
	addr := c.PrivToAddr(priv)

	var outpoint models.Outpoint
	outpoint.Hash[0] = 0x01
	txn, specs, err := c.Mktx(
		[]UnspentOutput{{Outpoint: outpoint, Value: 100000}},
		[]Recipient{{Address: addr, Value: 90000}},
		0,
	)
	require.NoError(t, err)

	require.NoError(t, c.Sign(txn, 0, priv, specs[0], 0))
	require.NotEmpty(t, txn.Inputs[0].ScriptSig)

	raw := c.Serialize(txn)
	require.NotEmpty(t, raw)
	require.Equal(t, c.TXID(txn), c.WTXID(txn)) // no witness inputs -> identical
}

func TestSignMessage_VerifyMessage_RoundTrip(t *testing.T) {
	c, err := Bitcoin(false, nil, nil)
	require.NoError(t, err)

	priv := brainwalletKey(t)
	addr := c.PrivToAddr(priv)

	sig := c.SignMessage(priv, "hello")
	ok, err := c.VerifyMessage(addr, "hello", sig)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = c.VerifyMessage(addr, "tampered", sig)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestUnspent_DelegatesToTransport(t *testing.T) {
	mem := explorer.NewMemoryExplorer()
	c, err := Bitcoin(false, mem, nil)
	require.NoError(t, err)

	var outpoint models.Outpoint
	outpoint.Hash[0] = 0x09
	mem.SetUnspent("addr1", []explorer.UTXO{{Outpoint: outpoint, Value: 5000}})

	utxos, err := c.Unspent(context.Background(), "addr1")
	require.NoError(t, err)
	require.Len(t, utxos, 1)
	require.Equal(t, int64(5000), utxos[0].Value)
}

func TestIsAddress_ClassifiesTemplates(t *testing.T) {
	c, err := Bitcoin(false, nil, nil)
	require.NoError(t, err)

	priv := brainwalletKey(t)
	addr := c.PrivToAddr(priv)
	require.True(t, c.IsAddress(addr))
	require.False(t, c.IsP2SH(addr))
	require.False(t, c.IsSegWit(addr))

	p2shAddr := c.PrivToP2W(priv)
	require.True(t, c.IsAddress(p2shAddr))
	require.True(t, c.IsP2SH(p2shAddr))
}
