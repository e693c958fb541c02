package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/initia-labs/attestation/x/vaa/keeper"
	"github.com/initia-labs/attestation/x/vaa/testutil"
	"github.com/initia-labs/attestation/x/vaa/types"
)

func Test_MsgServer_ExecuteGovernanceVAA(t *testing.T) {
	ctx, k, guardians := createTestInputWithGuardians(t, 1)
	ms := keeper.NewMsgServerImpl(k)

	bz := signedGovernanceVAA(guardians, 0, 1, guardianSetUpgradePacket(1, testutil.NewECDSAGuardians(2).Keys(), types.ChainIDUnset))
	res, err := ms.ExecuteGovernanceVAA(ctx, &types.MsgExecuteGovernanceVAA{Signer: "relayer", VAA: bz})
	require.NoError(t, err)
	require.Equal(t, "Core", res.Module)
	require.Equal(t, uint8(types.ActionGuardianSetUpgrade), res.Action)

	_, err = ms.ExecuteGovernanceVAA(ctx, &types.MsgExecuteGovernanceVAA{Signer: "relayer", VAA: bz})
	require.ErrorIs(t, err, types.ErrAlreadyExecuted)

	_, err = ms.ExecuteGovernanceVAA(ctx, &types.MsgExecuteGovernanceVAA{Signer: "relayer", VAA: bz[:10]})
	require.ErrorIs(t, err, types.ErrMalformedEnvelope)
}

func Test_MsgServer_UpdateParams(t *testing.T) {
	ctx, k, _ := createTestInputWithGuardians(t, 1)
	ms := keeper.NewMsgServerImpl(k)

	params := types.NewParams(types.ChainIDEthereum, 60)
	_, err := ms.UpdateParams(ctx, &types.MsgUpdateParams{Authority: "someone", Params: params})
	require.ErrorIs(t, err, sdkerrors.ErrUnauthorized)

	_, err = ms.UpdateParams(ctx, &types.MsgUpdateParams{Authority: testAuthority, Params: types.NewParams(types.ChainIDUnset, 60)})
	require.ErrorIs(t, err, sdkerrors.ErrInvalidRequest)

	_, err = ms.UpdateParams(ctx, &types.MsgUpdateParams{Params: params})
	require.ErrorIs(t, err, sdkerrors.ErrInvalidRequest)

	_, err = ms.UpdateParams(ctx, &types.MsgUpdateParams{Authority: testAuthority, Params: params})
	require.NoError(t, err)

	got, err := k.GetParams(ctx)
	require.NoError(t, err)
	require.Equal(t, params, got)

	local, err := k.LocalChainID(ctx)
	require.NoError(t, err)
	require.Equal(t, types.ChainIDEthereum, local)
}
