// Package coins holds the coin policy registry: spec.md §4.7's "policy
// record + dispatch table" replacement for the source project's
// class-per-coin inheritance. Every coin-specific algorithm in this
// repo reads its prefixes, fork-id, and capability flags from a
// models.CoinPolicy value rather than branching on a coin's type.
package coins

import "github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"

var bchForkID = &[3]byte{0x00, 0x00, 0x00}

var registry = map[string]*models.CoinPolicy{
	"btc-main": {
		Coin: models.CoinBitcoin, Name: "Bitcoin", Testnet: false,
		P2PKHVersion: 0x00, P2SHVersion: 0x05, WIFVersion: 0x80,
		Bech32HRP:        "bc",
		HDPrivateVersion: [4]byte{0x04, 0x88, 0xad, 0xe4}, // xprv
		HDPublicVersion:  [4]byte{0x04, 0x88, 0xb2, 0x1e}, // xpub
		MessageMagic:     "Bitcoin Signed Message:\n",
		StrictLowS:       true,
	},
	"btc-test": {
		Coin: models.CoinBitcoin, Name: "Bitcoin", Testnet: true,
		P2PKHVersion: 0x6f, P2SHVersion: 0xc4, WIFVersion: 0xef,
		Bech32HRP:        "tb",
		HDPrivateVersion: [4]byte{0x04, 0x35, 0x83, 0x94}, // tprv
		HDPublicVersion:  [4]byte{0x04, 0x35, 0x87, 0xcf}, // tpub
		MessageMagic:     "Bitcoin Signed Message:\n",
		StrictLowS:       true,
	},
	"bch-main": {
		Coin: models.CoinBitcoinCash, Name: "Bitcoin Cash", Testnet: false,
		P2PKHVersion: 0x00, P2SHVersion: 0x05, WIFVersion: 0x80,
		Bech32HRP:        "", // BCH uses CashAddr, out of scope (spec.md §2 Non-goals); legacy Base58 addresses only
		HDPrivateVersion: [4]byte{0x04, 0x88, 0xad, 0xe4},
		HDPublicVersion:  [4]byte{0x04, 0x88, 0xb2, 0x1e},
		ForkID:           bchForkID,
		MessageMagic:     "Bitcoin Signed Message:\n",
		StrictLowS:       true,
	},
	"bch-test": {
		Coin: models.CoinBitcoinCash, Name: "Bitcoin Cash", Testnet: true,
		P2PKHVersion: 0x6f, P2SHVersion: 0xc4, WIFVersion: 0xef,
		Bech32HRP:        "",
		HDPrivateVersion: [4]byte{0x04, 0x35, 0x83, 0x94},
		HDPublicVersion:  [4]byte{0x04, 0x35, 0x87, 0xcf},
		ForkID:           bchForkID,
		MessageMagic:     "Bitcoin Signed Message:\n",
		StrictLowS:       true,
	},
	"ltc-main": {
		Coin: models.CoinLitecoin, Name: "Litecoin", Testnet: false,
		P2PKHVersion: 0x30, P2SHVersion: 0x32, WIFVersion: 0xb0,
		Bech32HRP:        "ltc",
		HDPrivateVersion: [4]byte{0x01, 0x9d, 0x9c, 0xfe}, // Ltpv
		HDPublicVersion:  [4]byte{0x01, 0x9d, 0xa4, 0x62}, // Ltub
		MessageMagic:     "Litecoin Signed Message:\n",
		StrictLowS:       true,
	},
	"ltc-test": {
		Coin: models.CoinLitecoin, Name: "Litecoin", Testnet: true,
		P2PKHVersion: 0x6f, P2SHVersion: 0xc4, WIFVersion: 0xef,
		Bech32HRP:        "tltc",
		HDPrivateVersion: [4]byte{0x04, 0x35, 0x83, 0x94},
		HDPublicVersion:  [4]byte{0x04, 0x35, 0x87, 0xcf},
		MessageMagic:     "Litecoin Signed Message:\n",
		StrictLowS:       true,
	},
	"dash-main": {
		Coin: models.CoinDash, Name: "Dash", Testnet: false,
		P2PKHVersion: 0x4c, P2SHVersion: 0x10, WIFVersion: 0xcc,
		Bech32HRP:        "", // Dash has no native SegWit
		HDPrivateVersion: [4]byte{0x02, 0xfe, 0x52, 0xf8}, // drkv
		HDPublicVersion:  [4]byte{0x02, 0xfe, 0x52, 0xcc}, // drkp
		MessageMagic:     "DarkCoin Signed Message:\n",
		StrictLowS:       true,
	},
	"dash-test": {
		Coin: models.CoinDash, Name: "Dash", Testnet: true,
		P2PKHVersion: 0x8c, P2SHVersion: 0x13, WIFVersion: 0xef,
		Bech32HRP:        "",
		HDPrivateVersion: [4]byte{0x04, 0x35, 0x83, 0x94},
		HDPublicVersion:  [4]byte{0x04, 0x35, 0x87, 0xcf},
		MessageMagic:     "DarkCoin Signed Message:\n",
		StrictLowS:       true,
	},
	"doge-main": {
		Coin: models.CoinDoge, Name: "Dogecoin", Testnet: false,
		P2PKHVersion: 0x1e, P2SHVersion: 0x16, WIFVersion: 0x9e,
		Bech32HRP:        "", // Dogecoin has no native SegWit
		HDPrivateVersion: [4]byte{0x02, 0xfa, 0xc3, 0x98}, // dgpv
		HDPublicVersion:  [4]byte{0x02, 0xfa, 0xca, 0xfd}, // dgub
		MessageMagic:     "Dogecoin Signed Message:\n",
		StrictLowS:       true,
	},
	// Doge testnet parameters are absent from the source project (spec.md
	// §9 Open Questions); these come from Dogecoin Core's own
	// chainparams.cpp testnet base58Prefixes table, not invented here
	// (see DESIGN.md Open Question decisions).
	"doge-test": {
		Coin: models.CoinDoge, Name: "Dogecoin", Testnet: true,
		P2PKHVersion: 0x71, P2SHVersion: 0xc4, WIFVersion: 0xf1,
		Bech32HRP:        "",
		HDPrivateVersion: [4]byte{0x04, 0x32, 0xa9, 0xa8},
		HDPublicVersion:  [4]byte{0x04, 0x32, 0xa2, 0x43},
		MessageMagic:     "Dogecoin Signed Message:\n",
		StrictLowS:       true,
	},
}

// Lookup returns the CoinPolicy for coin × testnet, or models.KeyError
// if no such combination is registered.
func Lookup(coin models.Coin, testnet bool) (*models.CoinPolicy, error) {
	key := registryKey(coin, testnet)
	p, ok := registry[key]
	if !ok {
		return nil, &models.KeyError{Op: "coins.Lookup", Reason: "unknown coin/network combination: " + key}
	}
	return p, nil
}

func registryKey(coin models.Coin, testnet bool) string {
	suffix := "main"
	if testnet {
		suffix = "test"
	}
	return string(coin) + "-" + suffix
}

// All returns every registered policy, in a stable order, for callers
// that enumerate supported coins (e.g. a CLI's --coin flag help text).
func All() []*models.CoinPolicy {
	order := []string{
		"btc-main", "btc-test",
		"bch-main", "bch-test",
		"ltc-main", "ltc-test",
		"dash-main", "dash-test",
		"doge-main", "doge-test",
	}
	out := make([]*models.CoinPolicy, 0, len(order))
	for _, k := range order {
		out = append(out, registry[k])
	}
	return out
}
