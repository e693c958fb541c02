package keeper

import (
	"bytes"
	"context"
	"encoding/hex"
	"strconv"

	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/initia-labs/attestation/x/accountant/types"
	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

// SubmitObservations records a batch of observations signed by one guardian.
// The signature and guardian set are checked for the whole batch; after
// that every observation is applied on its own and reports its own status.
func (k Keeper) SubmitObservations(
	ctx context.Context,
	observations []byte,
	gsIndex uint32,
	sig vaatypes.Signature,
) ([]types.SubmitObservationResponse, error) {
	if err := k.vaaKeeper.VerifyMessageSignature(ctx, types.SubmittedObservationsPrefix, observations, gsIndex, &sig); err != nil {
		return nil, err
	}

	quorum, err := k.vaaKeeper.CalculateQuorum(ctx, gsIndex)
	if err != nil {
		return nil, err
	}

	batch, err := types.ParseObservations(observations)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidObservation, "failed to parse observations: %v", err)
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	responses := make([]types.SubmitObservationResponse, 0, len(batch))
	for _, o := range batch {
		key := o.Key()

		cacheCtx, write := sdkCtx.CacheContext()
		status, err := k.handleObservation(cacheCtx, o, gsIndex, quorum, sig.Index)
		if err != nil {
			k.Logger(ctx).Debug("observation rejected", "key", key.String(), "guardian", sig.Index, "error", err.Error())
			telemetry.IncrCounter(1, types.ModuleName, "observation_error")

			sdkCtx.EventManager().EmitEvent(
				sdk.NewEvent(
					types.EventTypeObservationError,
					sdk.NewAttribute(types.AttributeKeyKey, key.String()),
					sdk.NewAttribute(types.AttributeKeyError, err.Error()),
				),
			)

			responses = append(responses, types.SubmitObservationResponse{Key: key, Status: types.StatusError(err)})
			continue
		}

		write()
		responses = append(responses, types.SubmitObservationResponse{Key: key, Status: status})
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSubmitObservations,
			sdk.NewAttribute(types.AttributeKeyCount, strconv.Itoa(len(batch))),
		),
	)

	return responses, nil
}

func (k Keeper) handleObservation(
	ctx context.Context,
	o types.Observation,
	gsIndex uint32,
	quorum int,
	guardianIndex uint8,
) (types.ObservationStatus, error) {
	key := o.Key()
	if err := k.checkRegisteredEmitter(ctx, o.EmitterChain, o.EmitterAddress); err != nil {
		return types.ObservationStatus{}, err
	}

	digest := o.Digest().Bytes()

	saved, found, err := k.getDigest(ctx, key)
	if err != nil {
		return types.ObservationStatus{}, err
	} else if found && !bytes.Equal(saved, digest) {
		return types.ObservationStatus{}, errorsmod.Wrapf(types.ErrDigestMismatch, "%s", key)
	} else if found {
		return types.StatusCommitted(), nil
	}

	pending, err := k.getPending(ctx, key)
	if err != nil {
		return types.ObservationStatus{}, err
	}

	// the first recorded digest of a key is the consensus candidate
	entry := -1
	for i, d := range pending {
		if !bytes.Equal(d.Digest, digest) {
			return types.ObservationStatus{}, errorsmod.Wrapf(types.ErrDigestMismatch, "%s: pending digest %s", key, d.Digest)
		}

		if d.Matches(digest, o.TxHash, gsIndex) {
			entry = i
		}
	}

	if entry < 0 {
		pending = append(pending, types.NewPendingData(digest, o.TxHash, o.EmitterChain, gsIndex))
		entry = len(pending) - 1
	}

	pending[entry].AddSignature(guardianIndex)
	if pending[entry].NumSignatures() < quorum {
		if err := k.PendingTransfers.Set(ctx, key, pending); err != nil {
			return types.ObservationStatus{}, err
		}

		k.Logger(ctx).Debug("observation pending", "key", key.String(), "signatures", pending[entry].NumSignatures(), "quorum", quorum)
		telemetry.IncrCounter(1, types.ModuleName, "observation_pending")
		return types.StatusPending(), nil
	}

	data, err := types.ParseTransferPayload(o.Payload)
	if err != nil {
		return types.ObservationStatus{}, err
	}

	if err := k.CommitTransfer(ctx, types.Transfer{Key: key, Data: data}); err != nil {
		return types.ObservationStatus{}, errorsmod.Wrap(err, "failed to commit transfer")
	}

	if err := k.Digests.Set(ctx, key, digest); err != nil {
		return types.ObservationStatus{}, err
	}

	if err := k.PendingTransfers.Remove(ctx, key); err != nil {
		return types.ObservationStatus{}, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeObservation,
			sdk.NewAttribute(types.AttributeKeyKey, key.String()),
			sdk.NewAttribute(types.AttributeKeyTxHash, hex.EncodeToString(o.TxHash)),
			sdk.NewAttribute(types.AttributeKeyDigest, hex.EncodeToString(digest)),
		),
	)

	return types.StatusCommitted(), nil
}
