package keeper

import (
	"bytes"
	"context"
	"encoding/hex"
	"strconv"

	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/initia-labs/attestation/x/accountant/types"
	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

// SubmitVAAs applies a batch of quorum signed envelopes. Either every
// envelope is applied or none is. It returns the digests in batch order.
func (k Keeper) SubmitVAAs(ctx context.Context, vaas [][]byte) ([][]byte, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()

	digests := make([][]byte, 0, len(vaas))
	for i, bz := range vaas {
		digest, err := k.handleVAA(cacheCtx, bz)
		if err != nil {
			return nil, errorsmod.Wrapf(err, "vaa %d", i)
		}

		digests = append(digests, digest)
	}

	write()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSubmitVAAs,
			sdk.NewAttribute(types.AttributeKeyCount, strconv.Itoa(len(vaas))),
		),
	)

	return digests, nil
}

func (k Keeper) handleVAA(ctx context.Context, bz []byte) ([]byte, error) {
	v, err := vaatypes.Unmarshal(bz)
	if err != nil {
		return nil, err
	}

	if err := k.vaaKeeper.VerifyVAA(ctx, v); err != nil {
		return nil, err
	}

	digest := v.SigningDigest().Bytes()
	key := types.NewTransferKey(v.EmitterChain, v.EmitterAddress, v.Sequence)

	saved, found, err := k.getDigest(ctx, key)
	if err != nil {
		return nil, err
	} else if found && !bytes.Equal(saved, digest) {
		return nil, errorsmod.Wrapf(types.ErrDigestMismatch, "%s", key)
	} else if found {
		return nil, errorsmod.Wrapf(vaatypes.ErrAlreadyExecuted, "%s", key)
	}

	if vaatypes.IsGovernanceEmitter(v) {
		localChain, err := k.vaaKeeper.LocalChainID(ctx)
		if err != nil {
			return nil, err
		}

		if err := k.router.Dispatch(ctx, v, localChain); err != nil {
			return nil, err
		}
	} else if err := k.handleTransferVAA(ctx, v, key); err != nil {
		return nil, err
	}

	if err := k.Digests.Set(ctx, key, digest); err != nil {
		return nil, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSubmitVAAs,
			sdk.NewAttribute(types.AttributeKeyKey, key.String()),
			sdk.NewAttribute(types.AttributeKeyDigest, hex.EncodeToString(digest)),
		),
	)

	return digest, nil
}

func (k Keeper) handleTransferVAA(ctx context.Context, v *vaatypes.VAA, key types.TransferKey) error {
	if err := k.checkRegisteredEmitter(ctx, v.EmitterChain, v.EmitterAddress); err != nil {
		return err
	}

	data, err := types.ParseTransferPayload(v.Payload)
	if err != nil {
		return err
	}

	if err := k.CommitTransfer(ctx, types.Transfer{Key: key, Data: data}); err != nil {
		return errorsmod.Wrapf(err, "failed to commit transfer for key %s", key)
	}

	// observations still waiting for quorum are superseded
	return k.PendingTransfers.Remove(ctx, key)
}
