// Package tx orchestrates the mktx -> sign -> pushtx lifecycle:
// idempotent broadcast, retry with a growing (attempt² seconds) backoff, and derivation-index
// allocation. Adapted from the teacher's Builder (account-model
// nonce/fee/sign/broadcast) into the UTXO equivalent: no nonce, no
// Data/contract-call field, and a transaction arrives already
// constructed (mktx happens in pkg/coin, which knows how to turn
// addresses into scriptPubKeys) rather than being assembled from a
// single From/To/Amount triple.
package tx

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/olehkaliuzhnyi/utxo-wallet/internal/explorer"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/signer"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/storage"
	"github.com/olehkaliuzhnyi/utxo-wallet/internal/txcodec"
	"github.com/olehkaliuzhnyi/utxo-wallet/pkg/models"
)

// BuilderConfig holds configurable parameters for the transaction builder.
type BuilderConfig struct {
	MaxRetries int
}

// Builder drives the send lifecycle for a single coin: sign every
// input, broadcast with retry, and remember the result under the
// caller's idempotency key so a repeated Send returns the original
// transaction instead of constructing and broadcasting a second one.
type Builder struct {
	transport  explorer.Transport
	derivation storage.DerivationIndexStore
	txStore    storage.TxStore
	logger     *slog.Logger
	cfg        BuilderConfig
}

// NewBuilder creates a new transaction builder with the given config and stores.
func NewBuilder(cfg BuilderConfig, transport explorer.Transport, derivation storage.DerivationIndexStore, txs storage.TxStore) *Builder {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	return &Builder{
		transport:  transport,
		derivation: derivation,
		txStore:    txs,
		logger:     slog.Default().With("component", "tx_builder"),
		cfg:        cfg,
	}
}

// NextDerivationIndex returns the next unused BIP32 child index for
// path, so repeated Send calls never reuse a derived key (spec.md §9
// supplemental feature, SPEC_FULL §5 item 2).
func (b *Builder) NextDerivationIndex(path string) (uint32, error) {
	return b.derivation.GetAndIncrement(path)
}

// SendRequest bundles an unsigned transaction with everything Sign
// needs per input and an idempotency key guarding the whole operation.
type SendRequest struct {
	IdempotencyKey string
	Policy         *models.CoinPolicy
	Tx             *models.Transaction
	InputSpecs     []signer.InputSpec
	Privs          []*models.PrivateKey
	HashType       models.SigHashType
}

// Send signs req.Tx's inputs, broadcasts the result with retry, and
// caches it under req.IdempotencyKey. A second Send call with the same
// key returns the cached transaction without re-signing or
// re-broadcasting.
func (b *Builder) Send(ctx context.Context, req SendRequest) (*models.Transaction, error) {
	existing, err := b.txStore.Get(req.IdempotencyKey)
	if err != nil {
		return nil, fmt.Errorf("tx store get: %w", err)
	}
	if existing != nil {
		b.logger.Info("duplicate request, returning existing tx",
			"idempotency_key", req.IdempotencyKey,
		)
		return existing, nil
	}

	if req.HashType == 0 {
		req.HashType = signer.HashType
	}
	if err := signer.SignAll(req.Tx, req.Privs, req.InputSpecs, req.Policy, req.HashType); err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}

	b.logger.Info("signed transaction",
		"coin", req.Policy.Coin,
		"inputs", len(req.Tx.Inputs),
		"outputs", len(req.Tx.Outputs),
	)

	rawHex := hex.EncodeToString(txcodec.Serialize(req.Tx))
	if _, err := b.pushWithRetry(ctx, rawHex); err != nil {
		return nil, fmt.Errorf("pushtx: %w", err)
	}

	if err := b.txStore.Put(req.IdempotencyKey, req.Tx); err != nil {
		return nil, fmt.Errorf("tx store put: %w", err)
	}

	return req.Tx, nil
}

func (b *Builder) pushWithRetry(ctx context.Context, rawHex string) (explorer.PushResult, error) {
	var lastErr error

	for attempt := 1; attempt <= b.cfg.MaxRetries; attempt++ {
		result, err := b.transport.PushTx(ctx, rawHex)
		if err == nil {
			b.logger.Info("broadcast successful", "txid", result.TXID, "attempt", attempt)
			return result, nil
		}

		lastErr = err
		b.logger.Warn("broadcast attempt failed",
			"attempt", attempt,
			"max_retries", b.cfg.MaxRetries,
			"error", err,
		)

		if attempt == b.cfg.MaxRetries {
			break
		}
		select {
		case <-time.After(time.Duration(attempt*attempt) * time.Second):
		case <-ctx.Done():
			return explorer.PushResult{}, ctx.Err()
		}
	}

	return explorer.PushResult{}, fmt.Errorf("all %d broadcast attempts failed: %w", b.cfg.MaxRetries, lastErr)
}
