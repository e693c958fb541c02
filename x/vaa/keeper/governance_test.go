package keeper_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/initia-labs/attestation/x/vaa/testutil"
	"github.com/initia-labs/attestation/x/vaa/types"
)

func Test_ExecuteGovernanceVAA_GuardianSetUpgrade(t *testing.T) {
	ctx, k, guardians := createTestInputWithGuardians(t, 4)

	next := testutil.NewECDSAGuardians(7)
	bz := signedGovernanceVAA(guardians, 0, 1, guardianSetUpgradePacket(1, next.Keys(), types.ChainIDUnset))

	packet, err := k.ExecuteGovernanceVAA(ctx, bz)
	require.NoError(t, err)
	require.Equal(t, types.CoreModule, packet.Module)
	require.Equal(t, types.ActionGuardianSetUpgrade, packet.Action)

	current, err := k.GetCurrentGuardianSet(ctx)
	require.NoError(t, err)
	require.Equal(t, uint32(1), current.Index)
	require.Equal(t, next.Keys(), current.Keys)
	require.Equal(t, types.SchemeECDSA, current.Scheme)

	v, err := types.Unmarshal(bz)
	require.NoError(t, err)
	consumed, err := k.IsVAAConsumed(ctx, v.SigningDigest().Bytes())
	require.NoError(t, err)
	require.True(t, consumed)

	// replay
	_, err = k.ExecuteGovernanceVAA(ctx, bz)
	require.ErrorIs(t, err, types.ErrAlreadyExecuted)
}

func Test_ExecuteGovernanceVAA_TargetsLocalChain(t *testing.T) {
	ctx, k, guardians := createTestInputWithGuardians(t, 1)

	next := testutil.NewECDSAGuardians(1)
	bz := signedGovernanceVAA(guardians, 0, 1, guardianSetUpgradePacket(1, next.Keys(), types.DefaultLocalChainID))
	_, err := k.ExecuteGovernanceVAA(ctx, bz)
	require.NoError(t, err)
}

func Test_ExecuteGovernanceVAA_WrongTargetChain(t *testing.T) {
	ctx, k, guardians := createTestInputWithGuardians(t, 1)

	next := testutil.NewECDSAGuardians(1)
	bz := signedGovernanceVAA(guardians, 0, 1, guardianSetUpgradePacket(1, next.Keys(), types.ChainIDEthereum))
	_, err := k.ExecuteGovernanceVAA(ctx, bz)
	require.ErrorIs(t, err, types.ErrWrongTargetChain)

	// nothing was consumed
	v, err := types.Unmarshal(bz)
	require.NoError(t, err)
	consumed, err := k.IsVAAConsumed(ctx, v.SigningDigest().Bytes())
	require.NoError(t, err)
	require.False(t, consumed)
}

func Test_ExecuteGovernanceVAA_InvalidEmitter(t *testing.T) {
	ctx, k, guardians := createTestInputWithGuardians(t, 1)

	packet := guardianSetUpgradePacket(1, testutil.NewECDSAGuardians(1).Keys(), types.ChainIDUnset)
	v := testutil.NewVAA(0, types.GovernanceChain, types.Address{31: 0x05}, 1, packet.Serialize())
	_, err := k.ExecuteGovernanceVAA(ctx, testutil.MustMarshal(guardians.Sign(v)))
	require.ErrorIs(t, err, types.ErrInvalidGovernanceEmitter)

	v = testutil.NewVAA(0, types.ChainIDEthereum, types.GovernanceEmitter, 1, packet.Serialize())
	_, err = k.ExecuteGovernanceVAA(ctx, testutil.MustMarshal(guardians.Sign(v)))
	require.ErrorIs(t, err, types.ErrInvalidGovernanceEmitter)
}

func Test_ExecuteGovernanceVAA_UnknownModuleAndAction(t *testing.T) {
	ctx, k, guardians := createTestInputWithGuardians(t, 1)

	packet := types.GovernancePacket{
		Module: types.NewGovernanceModule("Unknown"),
		Action: 1,
	}
	_, err := k.ExecuteGovernanceVAA(ctx, signedGovernanceVAA(guardians, 0, 1, packet))
	require.ErrorIs(t, err, types.ErrUnknownGovernanceModule)

	packet.Module = types.CoreModule
	packet.Action = 9
	_, err = k.ExecuteGovernanceVAA(ctx, signedGovernanceVAA(guardians, 0, 2, packet))
	require.ErrorIs(t, err, types.ErrUnknownGovernanceAction)
}

func Test_ExecuteGovernanceVAA_InvalidSignatures(t *testing.T) {
	ctx, k, guardians := createTestInputWithGuardians(t, 4)

	packet := guardianSetUpgradePacket(1, testutil.NewECDSAGuardians(1).Keys(), types.ChainIDUnset)
	v := guardians.Sign(types.NewGovernanceVAA(0, 0, 1, 0, packet), 0, 1)
	_, err := k.ExecuteGovernanceVAA(ctx, testutil.MustMarshal(v))
	require.ErrorIs(t, err, types.ErrInsufficientSignatures)

	_, err = k.ExecuteGovernanceVAA(ctx, []byte{0x01, 0x02})
	require.ErrorIs(t, err, types.ErrMalformedEnvelope)
}

func Test_ExecuteGovernanceVAA_OldGuardianSet(t *testing.T) {
	ctx, k, guardians := createTestInputWithGuardians(t, 1)

	next := testutil.NewECDSAGuardians(1)
	_, err := k.ExecuteGovernanceVAA(ctx, signedGovernanceVAA(guardians, 0, 1, guardianSetUpgradePacket(1, next.Keys(), types.ChainIDUnset)))
	require.NoError(t, err)

	// set 0 is still active but no longer current
	third := testutil.NewECDSAGuardians(1)
	_, err = k.ExecuteGovernanceVAA(ctx, signedGovernanceVAA(guardians, 0, 2, guardianSetUpgradePacket(2, third.Keys(), types.ChainIDUnset)))
	require.ErrorIs(t, err, types.ErrInvalidGuardianSet)

	// a failed handler leaves the digest unconsumed
	v := guardians.Sign(types.NewGovernanceVAA(0, 0, 2, 0, guardianSetUpgradePacket(2, third.Keys(), types.ChainIDUnset)))
	consumed, err := k.IsVAAConsumed(ctx, v.SigningDigest().Bytes())
	require.NoError(t, err)
	require.False(t, consumed)

	// the current set can upgrade
	_, err = k.ExecuteGovernanceVAA(ctx, signedGovernanceVAA(next, 1, 2, guardianSetUpgradePacket(2, third.Keys(), types.ChainIDUnset)))
	require.NoError(t, err)
}

func Test_ExecuteGovernanceVAA_NonSequentialIndex(t *testing.T) {
	ctx, k, guardians := createTestInputWithGuardians(t, 1)

	next := testutil.NewECDSAGuardians(1)
	_, err := k.ExecuteGovernanceVAA(ctx, signedGovernanceVAA(guardians, 0, 1, guardianSetUpgradePacket(3, next.Keys(), types.ChainIDUnset)))
	require.ErrorIs(t, err, types.ErrNonSequentialGuardianSet)
}

func Test_ExecuteGovernanceVAA_SchnorrUpgradeInheritsScheme(t *testing.T) {
	ctx, k, _ := createTestInputWithGuardians(t, 1)

	// replace the seeded ECDSA set with a Schnorr set at index 1
	schnorrGuardians := testutil.NewSchnorrGuardians(3)
	require.NoError(t, k.RotateGuardianSet(ctx, schnorrGuardians.GuardianSet(1)))

	next := testutil.NewSchnorrGuardians(4)
	bz := signedGovernanceVAA(schnorrGuardians, 1, 1, guardianSetUpgradePacket(2, next.Keys(), types.ChainIDUnset))
	_, err := k.ExecuteGovernanceVAA(ctx, bz)
	require.NoError(t, err)

	current, err := k.GetCurrentGuardianSet(ctx)
	require.NoError(t, err)
	require.Equal(t, types.SchemeSchnorr, current.Scheme)
	require.Equal(t, next.Keys(), current.Keys)

	// ECDSA width keys do not parse under a Schnorr set
	bz = signedGovernanceVAA(next, 2, 2, guardianSetUpgradePacket(3, testutil.NewECDSAGuardians(2).Keys(), types.ChainIDUnset))
	_, err = k.ExecuteGovernanceVAA(ctx, bz)
	require.ErrorIs(t, err, types.ErrInvalidGovernancePacket)
}

func Test_GovernanceRouter_ExtraRoute(t *testing.T) {
	ctx, k, guardians := createTestInputWithGuardians(t, 1)

	var called int
	k.GovernanceRouter().AddRoute(types.TokenBridgeModule, types.ActionRegisterChain, func(_ context.Context, _ *types.VAA, packet *types.GovernancePacket) error {
		called++
		require.Equal(t, []byte{0x01}, packet.Payload)
		return nil
	})

	packet := types.GovernancePacket{
		Module:  types.TokenBridgeModule,
		Action:  types.ActionRegisterChain,
		Payload: []byte{0x01},
	}
	_, err := k.ExecuteGovernanceVAA(ctx, signedGovernanceVAA(guardians, 0, 1, packet))
	require.NoError(t, err)
	require.Equal(t, 1, called)

	require.Panics(t, func() {
		k.GovernanceRouter().AddRoute(types.TokenBridgeModule, types.ActionRegisterChain, nil)
	})
}
