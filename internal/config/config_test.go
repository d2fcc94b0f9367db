package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
)

func TestDefault_HasEveryCoin(t *testing.T) {
	cfg := Default()
	for _, coin := range []models.Coin{models.CoinBitcoin, models.CoinBitcoinCash, models.CoinLitecoin, models.CoinDash, models.CoinDoge} {
		_, ok := cfg.PollInterval[coin]
		require.True(t, ok, "missing poll interval for %s", coin)
		_, ok = cfg.FeeRate[coin]
		require.True(t, ok, "missing fee rate for %s", coin)
	}
	require.False(t, cfg.Testnet)
}

func TestFromEnv_OverridesPollIntervalAndTestnet(t *testing.T) {
	t.Setenv("BTC_POLL_INTERVAL", "30s")
	t.Setenv("DOGE_FEE_RATE", "5000")
	t.Setenv("TESTNET", "true")
	t.Setenv("BROADCAST_MAX_RETRIES", "7")

	cfg := FromEnv()
	require.Equal(t, 30*time.Second, cfg.PollInterval[models.CoinBitcoin])
	require.Equal(t, int64(5000), cfg.FeeRate[models.CoinDoge])
	require.True(t, cfg.Testnet)
	require.Equal(t, 7, cfg.BroadcastMaxRetries)
}

func TestFromEnv_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("BTC_POLL_INTERVAL", "not-a-duration")
	cfg := FromEnv()
	require.Equal(t, Default().PollInterval[models.CoinBitcoin], cfg.PollInterval[models.CoinBitcoin])
}
