package coins

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
)

func TestLookup_AllRegisteredCombinations(t *testing.T) {
	coinsList := []models.Coin{models.CoinBitcoin, models.CoinBitcoinCash, models.CoinLitecoin, models.CoinDash, models.CoinDoge}
	for _, c := range coinsList {
		for _, testnet := range []bool{false, true} {
			p, err := Lookup(c, testnet)
			require.NoError(t, err)
			require.Equal(t, c, p.Coin)
			require.Equal(t, testnet, p.Testnet)
		}
	}
}

func TestLookup_UnknownCoin(t *testing.T) {
	_, err := Lookup(models.Coin("xyz"), false)
	require.Error(t, err)
}

func TestLookup_BitcoinMainnetPrefixes(t *testing.T) {
	p, err := Lookup(models.CoinBitcoin, false)
	require.NoError(t, err)
	require.Equal(t, byte(0x00), p.P2PKHVersion)
	require.Equal(t, byte(0x05), p.P2SHVersion)
	require.Equal(t, byte(0x80), p.WIFVersion)
	require.Equal(t, "bc", p.Bech32HRP)
	require.True(t, p.IsSegWitCapable())
	require.False(t, p.IsBCHLike())
}

func TestLookup_BitcoinCashSharesBTCPrefixesButHasForkID(t *testing.T) {
	btc, err := Lookup(models.CoinBitcoin, false)
	require.NoError(t, err)
	bch, err := Lookup(models.CoinBitcoinCash, false)
	require.NoError(t, err)

	require.Equal(t, btc.P2PKHVersion, bch.P2PKHVersion)
	require.Equal(t, btc.P2SHVersion, bch.P2SHVersion)
	require.True(t, bch.IsBCHLike())
	require.Equal(t, &[3]byte{0x00, 0x00, 0x00}, bch.ForkID)
}

func TestLookup_DashAndDogeHaveNoBech32(t *testing.T) {
	dash, err := Lookup(models.CoinDash, false)
	require.NoError(t, err)
	require.False(t, dash.IsSegWitCapable())

	doge, err := Lookup(models.CoinDoge, false)
	require.NoError(t, err)
	require.False(t, doge.IsSegWitCapable())
}

func TestAll_ReturnsTenPolicies(t *testing.T) {
	require.Len(t, All(), 10)
}
