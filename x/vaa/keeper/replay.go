package keeper

import (
	"context"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"

	"github.com/initia-labs/attestation/x/vaa/types"
)

// ReplayGuard records consumed keys. A key is consumed at most once and is
// never removed.
type ReplayGuard[K any] struct {
	consumed collections.KeySet[K]
}

// NewReplayGuard wraps a key set as a replay guard.
func NewReplayGuard[K any](consumed collections.KeySet[K]) ReplayGuard[K] {
	return ReplayGuard[K]{consumed: consumed}
}

// IsConsumed reports whether key has been consumed.
func (g ReplayGuard[K]) IsConsumed(ctx context.Context, key K) (bool, error) {
	return g.consumed.Has(ctx, key)
}

// Consume marks key as consumed, failing with ErrAlreadyExecuted when it
// already was.
func (g ReplayGuard[K]) Consume(ctx context.Context, key K) error {
	found, err := g.consumed.Has(ctx, key)
	if err != nil {
		return err
	}

	if found {
		return errorsmod.Wrapf(types.ErrAlreadyExecuted, "%s", g.consumed.KeyCodec().Stringify(key))
	}

	return g.consumed.Set(ctx, key)
}

// IsVAAConsumed reports whether the envelope digest has been consumed.
func (k Keeper) IsVAAConsumed(ctx context.Context, digest []byte) (bool, error) {
	return k.replayGuard.IsConsumed(ctx, digest)
}
