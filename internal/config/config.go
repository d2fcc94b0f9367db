// Package config holds the tunables the tx-building and listening
// orchestration needs per coin. Adapted from the teacher's
// Config/Default/FromEnv pattern: the per-chain-family ETH/BTC/TRX
// fields become per-coin maps keyed by models.Coin, since this library
// serves five coin families instead of three fixed chains.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
)

// Config holds all configurable parameters for the library's
// orchestration layer (internal/tx, internal/listener).
type Config struct {
	// PollInterval is how often internal/listener polls each coin's
	// explorer for watched-address activity.
	PollInterval map[models.Coin]time.Duration

	// FeeRate is a per-coin fee rate, in satoshis per byte. No code in
	// this library reads it; pkg/coin's Mktx takes no fee argument and
	// pays exactly the recipient amounts it is given.
	FeeRate map[models.Coin]int64

	// ConfirmationDepth is how many confirmations a UTXO needs before
	// internal/listener reports it confirmed.
	ConfirmationDepth int

	// BroadcastMaxRetries bounds internal/tx's backoff retry loop
	// (attempt² seconds between attempts) around pushtx.
	BroadcastMaxRetries int
	ContextTimeout      time.Duration

	// Testnet selects the testnet policy for every coin when true.
	Testnet bool
}

// Default returns a Config populated with default values.
func Default() Config {
	return Config{
		PollInterval: map[models.Coin]time.Duration{
			models.CoinBitcoin:     10 * time.Second,
			models.CoinBitcoinCash: 10 * time.Second,
			models.CoinLitecoin:    5 * time.Second,
			models.CoinDash:        5 * time.Second,
			models.CoinDoge:        15 * time.Second,
		},
		FeeRate: map[models.Coin]int64{
			models.CoinBitcoin:     10,
			models.CoinBitcoinCash: 1,
			models.CoinLitecoin:    20,
			models.CoinDash:        1,
			models.CoinDoge:        1000,
		},
		ConfirmationDepth:   1,
		BroadcastMaxRetries: 3,
		ContextTimeout:      15 * time.Second,
		Testnet:             false,
	}
}

// FromEnv returns a Config populated from environment variables,
// falling back to defaults for unset values.
func FromEnv() Config {
	cfg := Default()

	for _, coin := range []models.Coin{models.CoinBitcoin, models.CoinBitcoinCash, models.CoinLitecoin, models.CoinDash, models.CoinDoge} {
		prefix := strcoinUpper(coin)
		if v := os.Getenv(prefix + "_POLL_INTERVAL"); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				cfg.PollInterval[coin] = d
			}
		}
		if v := os.Getenv(prefix + "_FEE_RATE"); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				cfg.FeeRate[coin] = n
			}
		}
	}

	if v := os.Getenv("CONFIRMATION_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ConfirmationDepth = n
		}
	}
	if v := os.Getenv("BROADCAST_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BroadcastMaxRetries = n
		}
	}
	if v := os.Getenv("CONTEXT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ContextTimeout = d
		}
	}
	if v := os.Getenv("TESTNET"); v == "true" {
		cfg.Testnet = true
	}

	return cfg
}

// strcoinUpper returns the env-var prefix for coin, e.g. "BTC" for
// models.CoinBitcoin.
func strcoinUpper(coin models.Coin) string {
	switch coin {
	case models.CoinBitcoin:
		return "BTC"
	case models.CoinBitcoinCash:
		return "BCH"
	case models.CoinLitecoin:
		return "LTC"
	case models.CoinDash:
		return "DASH"
	case models.CoinDoge:
		return "DOGE"
	default:
		return string(coin)
	}
}
