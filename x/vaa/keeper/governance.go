package keeper

import (
	"context"
	"strconv"

	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/hashicorp/go-metrics"

	"github.com/initia-labs/attestation/x/vaa/types"
)

// ExecuteGovernanceVAA parses, verifies and consumes a governance envelope
// and dispatches it through the core router. Nothing is written unless the
// handler succeeds.
func (k Keeper) ExecuteGovernanceVAA(ctx context.Context, bz []byte) (*types.GovernancePacket, error) {
	v, err := k.ParseAndVerifyVAA(ctx, bz)
	if err != nil {
		return nil, err
	}

	localChain, err := k.LocalChainID(ctx)
	if err != nil {
		return nil, err
	}

	handler, packet, err := k.router.Route(v, localChain)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()

	digest := v.SigningDigest()
	if err := k.replayGuard.Consume(cacheCtx, digest.Bytes()); err != nil {
		return nil, err
	}

	if err := handler(cacheCtx, v, packet); err != nil {
		return nil, err
	}

	write()

	telemetry.IncrCounterWithLabels(
		[]string{types.ModuleName, "governance"},
		1,
		[]metrics.Label{
			telemetry.NewLabel("module", packet.Module.String()),
			telemetry.NewLabel("action", strconv.Itoa(int(packet.Action))),
		},
	)

	sdkCtx.EventManager().EmitEvents(sdk.Events{
		sdk.NewEvent(
			types.EventTypeGovernanceAction,
			sdk.NewAttribute(types.AttributeKeyModule, packet.Module.String()),
			sdk.NewAttribute(types.AttributeKeyAction, strconv.Itoa(int(packet.Action))),
			sdk.NewAttribute(types.AttributeKeyTargetChain, packet.Chain.String()),
			sdk.NewAttribute(types.AttributeKeyDigest, digest.Hex()),
		),
	})

	return packet, nil
}

// handleGuardianSetUpgrade installs the guardian set carried by a Core
// GuardianSetUpgrade action. Only the current guardian set may sign it and
// the new set keeps the signature scheme of its predecessor.
func (k Keeper) handleGuardianSetUpgrade(ctx context.Context, v *types.VAA, packet *types.GovernancePacket) error {
	current, err := k.GetCurrentGuardianSet(ctx)
	if err != nil {
		return err
	}

	if v.GuardianSetIndex != current.Index {
		return errorsmod.Wrapf(types.ErrInvalidGuardianSet, "upgrade signed by guardian set %d, current is %d", v.GuardianSetIndex, current.Index)
	}

	upgrade, err := types.ParseGuardianSetUpgrade(packet.Payload, current.Scheme.KeyLength())
	if err != nil {
		return err
	}

	keys := make([]types.HexBytes, len(upgrade.Keys))
	for i, key := range upgrade.Keys {
		keys[i] = key
	}

	return k.RotateGuardianSet(ctx, types.GuardianSet{
		Index:  upgrade.NewIndex,
		Keys:   keys,
		Scheme: current.Scheme,
	})
}
