// Package coin provides the uniform per-coin façade spec.md §4.7 calls
// for: Bitcoin, BitcoinCash, Litecoin, Dash, Doge each bind a single set
// of algorithms to their models.CoinPolicy and expose
// privtoaddr/mktx/sign/send/unspent/pushtx as methods, replacing the
// source project's class-per-coin inheritance with policy-record
// dispatch (spec.md §9). Each Coin value wraps internal/coins,
// internal/keys, internal/signer, internal/txcodec, internal/tx, and
// internal/explorer.
package coin

import (
	"context"
	"fmt"

	"github.com/olehkaliuzhnyi/utxo-wallet/internal/coins"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/explorer"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/keys"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/script"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/signer"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/tx"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/txcodec"
	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
)

// Coin binds a models.CoinPolicy plus an explorer.Transport to the
// library's uniform façade. The zero value is not usable; construct one
// with Bitcoin, BitcoinCash, Litecoin, Dash, or Doge.
type Coin struct {
	policy    *models.CoinPolicy
	transport explorer.Transport
	builder   *tx.Builder
}

func newCoin(coinID models.Coin, testnet bool, transport explorer.Transport, builder *tx.Builder) (*Coin, error) {
	policy, err := coins.Lookup(coinID, testnet)
	if err != nil {
		return nil, err
	}
	return &Coin{policy: policy, transport: transport, builder: builder}, nil
}

// Bitcoin returns the façade bound to the BTC policy (mainnet or
// testnet per testnet), using transport for unspent/fetchtx/history/
// pushtx and builder to drive Send's sign->broadcast->cache lifecycle.
func Bitcoin(testnet bool, transport explorer.Transport, builder *tx.Builder) (*Coin, error) {
	return newCoin(models.CoinBitcoin, testnet, transport, builder)
}

// BitcoinCash returns the façade bound to the BCH policy, whose
// sighashes carry SIGHASH_FORKID (spec.md §4.6 item 3).
func BitcoinCash(testnet bool, transport explorer.Transport, builder *tx.Builder) (*Coin, error) {
	return newCoin(models.CoinBitcoinCash, testnet, transport, builder)
}

// Litecoin returns the façade bound to the LTC policy.
func Litecoin(testnet bool, transport explorer.Transport, builder *tx.Builder) (*Coin, error) {
	return newCoin(models.CoinLitecoin, testnet, transport, builder)
}

// Dash returns the façade bound to the DASH policy (no native SegWit).
func Dash(testnet bool, transport explorer.Transport, builder *tx.Builder) (*Coin, error) {
	return newCoin(models.CoinDash, testnet, transport, builder)
}

// Doge returns the façade bound to the DOGE policy (no native SegWit;
// testnet parameters sourced from Dogecoin Core, see DESIGN.md).
func Doge(testnet bool, transport explorer.Transport, builder *tx.Builder) (*Coin, error) {
	return newCoin(models.CoinDoge, testnet, transport, builder)
}

// Policy exposes the bound CoinPolicy, e.g. for a CLI's --coin help text
// or a caller that needs the raw HRP/version bytes directly.
func (c *Coin) Policy() *models.CoinPolicy {
	return c.policy
}

// PrivToAddr returns the P2PKH address for priv under this coin's
// policy (spec.md §4.3).
func (c *Coin) PrivToAddr(priv *models.PrivateKey) string {
	return keys.PrivToAddr(priv, *c.policy)
}

// PrivToP2W returns the P2WPKH-in-P2SH address for priv under this
// coin's policy (spec.md §4.3).
func (c *Coin) PrivToP2W(priv *models.PrivateKey) string {
	return keys.PrivToP2W(priv, *c.policy)
}

// PrivToSegWitAddr returns the native bech32 P2WPKH address for priv.
// Fails with models.KeyError if this coin has no Bech32 HRP configured
// (Dash, Dogecoin).
func (c *Coin) PrivToSegWitAddr(priv *models.PrivateKey) (string, error) {
	return keys.PrivToSegWitAddr(priv, *c.policy)
}

// ParseWIF decodes a WIF string against this coin's WIF version byte.
func (c *Coin) ParseWIF(wif string) (*models.PrivateKey, error) {
	return keys.ParseWIF(wif, *c.policy)
}

// EncodeWIF encodes priv as a WIF string under this coin's policy.
func (c *Coin) EncodeWIF(priv *models.PrivateKey) string {
	return keys.EncodeWIF(priv, *c.policy)
}

// UnspentOutput is one spendable prevout as returned by Unspent, already
// carrying the fields Mktx needs to build an input for it.
type UnspentOutput struct {
	Outpoint models.Outpoint
	Value    int64
	SegWit   bool
}

// Unspent asks this coin's explorer transport for address's unspent
// outputs (spec.md §4.8).
func (c *Coin) Unspent(ctx context.Context, address string) ([]UnspentOutput, error) {
	utxos, err := c.transport.Unspent(ctx, address)
	if err != nil {
		return nil, err
	}
	out := make([]UnspentOutput, len(utxos))
	for i, u := range utxos {
		out[i] = UnspentOutput{Outpoint: u.Outpoint, Value: u.Value, SegWit: u.SegWit}
	}
	return out, nil
}

// FetchTx asks this coin's explorer transport for the raw hex of txid.
func (c *Coin) FetchTx(ctx context.Context, txid string) (string, error) {
	return c.transport.FetchTx(ctx, txid)
}

// History asks this coin's explorer transport for address's prior
// transactions.
func (c *Coin) History(ctx context.Context, address string) ([]explorer.HistoryEntry, error) {
	return c.transport.History(ctx, address)
}

// PushTx broadcasts rawHex through this coin's explorer transport.
func (c *Coin) PushTx(ctx context.Context, rawHex string) (explorer.PushResult, error) {
	return c.transport.PushTx(ctx, rawHex)
}

// Recipient is one destination of an Mktx call: an address and the
// satoshi amount to pay it.
type Recipient struct {
	Address string
	Value   int64
}

// Mktx constructs an unsigned transaction spending inputs and paying
// recipients, resolving each recipient's address to a scriptPubKey via
// keys.AddrToScript (spec.md §2 data-flow: "unspent returns a set of
// prevouts -> mktx constructs an unsigned transaction"). Inputs carry
// sequence 0xffffffff and no scriptSig/witness; callers sign afterward
// with Sign/SignAll/Send.
func (c *Coin) Mktx(inputs []UnspentOutput, recipients []Recipient, lockTime uint32) (*models.Transaction, []signer.InputSpec, error) {
	out := models.NewTransaction()
	out.LockTime = lockTime

	specs := make([]signer.InputSpec, len(inputs))
	for i, in := range inputs {
		out.Inputs = append(out.Inputs, &models.TxInput{
			Outpoint: in.Outpoint,
			Sequence: 0xffffffff,
		})
		spec := signer.InputSpec{Kind: signer.KindLegacyP2PKH, Amount: in.Value}
		if in.SegWit {
			spec.Kind = signer.KindP2WPKH
		}
		specs[i] = spec
	}

	for _, r := range recipients {
		spk, err := keys.AddrToScript(r.Address, *c.policy)
		if err != nil {
			return nil, nil, err
		}
		out.Outputs = append(out.Outputs, &models.TxOutput{Value: r.Value, ScriptPubKey: spk})
	}

	return out, specs, nil
}

// Sign signs tx's input at index with priv, dispatching to the legacy,
// BIP143, or BCH fork-id sighash per this coin's policy (spec.md §4.6).
// hashType defaults to SIGHASH_ALL when zero.
func (c *Coin) Sign(txn *models.Transaction, index int, priv *models.PrivateKey, spec signer.InputSpec, hashType models.SigHashType) error {
	if hashType == 0 {
		hashType = signer.HashType
	}
	return signer.Sign(txn, index, priv, spec, c.policy, hashType)
}

// SignAll signs every input of tx per specs/privs (spec.md §4.6
// "signall").
func (c *Coin) SignAll(txn *models.Transaction, privs []*models.PrivateKey, specs []signer.InputSpec, hashType models.SigHashType) error {
	if hashType == 0 {
		hashType = signer.HashType
	}
	return signer.SignAll(txn, privs, specs, c.policy, hashType)
}

// Serialize returns tx's wire-format bytes: legacy if no input carries
// a witness, BIP141 SegWit layout otherwise (spec.md §4.5).
func (c *Coin) Serialize(txn *models.Transaction) []byte {
	return txcodec.Serialize(txn)
}

// TXID returns dhash(legacy serialization of tx), displayed big-endian
// by callers that print it (spec.md §3, §4.5).
func (c *Coin) TXID(txn *models.Transaction) [32]byte {
	return txcodec.TXID(txn)
}

// WTXID returns dhash(segwit serialization of tx) (spec.md §4.5).
func (c *Coin) WTXID(txn *models.Transaction) [32]byte {
	return txcodec.WTXID(txn)
}

// Send signs req's transaction, broadcasts it through this coin's
// builder with retry, and caches the result under req.IdempotencyKey
// (spec.md §2 data-flow final step, SPEC_FULL §5 item 2). req.Policy is
// overwritten with this coin's policy so callers don't have to supply
// it twice.
func (c *Coin) Send(ctx context.Context, req tx.SendRequest) (*models.Transaction, error) {
	if c.builder == nil {
		return nil, fmt.Errorf("coin: Send requires a Coin constructed with a non-nil tx.Builder")
	}
	req.Policy = c.policy
	return c.builder.Send(ctx, req)
}

// SignMessage produces a recoverable signature over message using
// priv's compression hint and this coin's message magic (SPEC_FULL §5
// item 3).
func (c *Coin) SignMessage(priv *models.PrivateKey, message string) []byte {
	return keys.SignMessage(priv, *c.policy, message)
}

// VerifyMessage reports whether sig is a valid signature over message
// recovering to address, under this coin's message magic.
func (c *Coin) VerifyMessage(address, message string, sig []byte) (bool, error) {
	return keys.VerifyMessage(*c.policy, address, message, sig)
}

// IsAddress reports whether address decodes to a recognized P2PKH,
// P2SH, or (when supported) native SegWit template under this coin's
// policy.
func (c *Coin) IsAddress(address string) bool {
	_, err := keys.AddrToScript(address, *c.policy)
	return err == nil
}

// IsP2SH reports whether address is specifically a P2SH-template
// address (script hash, not pubkey hash) under this coin's policy.
func (c *Coin) IsP2SH(address string) bool {
	spk, err := keys.AddrToScript(address, *c.policy)
	if err != nil {
		return false
	}
	return script.IsP2SH(spk)
}

// IsSegWit reports whether address is a native bech32 SegWit address
// under this coin's policy.
func (c *Coin) IsSegWit(address string) bool {
	spk, err := keys.AddrToScript(address, *c.policy)
	if err != nil {
		return false
	}
	return script.IsSegWit(spk)
}
