package keeper_test

import (
	"testing"
	"time"

	tmproto "github.com/cometbft/cometbft/proto/tendermint/types"

	"github.com/stretchr/testify/require"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/initia-labs/attestation/x/vaa/keeper"
	"github.com/initia-labs/attestation/x/vaa/testutil"
	"github.com/initia-labs/attestation/x/vaa/types"
)

const testAuthority = "authority"

var genesisTime = time.Date(2020, time.April, 22, 12, 0, 0, 0, time.UTC)

func _createTestInput(
	t testing.TB,
	db dbm.DB,
) (sdk.Context, *keeper.Keeper) {
	keys := storetypes.NewKVStoreKeys(types.StoreKey)
	ms := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	for _, v := range keys {
		ms.MountStoreWithDB(v, storetypes.StoreTypeIAVL, db)
	}

	require.NoError(t, ms.LoadLatestVersion())

	ctx := sdk.NewContext(ms, tmproto.Header{
		Height: 1234567,
		Time:   genesisTime,
	}, false, log.NewNopLogger())

	vaaKeeper := keeper.NewKeeper(
		runtime.NewKVStoreService(keys[types.StoreKey]),
		testAuthority,
	)
	require.NoError(t, vaaKeeper.SetParams(ctx, types.DefaultParams()))

	return ctx, vaaKeeper
}

// createTestInputWithGuardians installs an ECDSA guardian set of size n
// under index 0.
func createTestInputWithGuardians(t testing.TB, n int) (sdk.Context, *keeper.Keeper, *testutil.Guardians) {
	ctx, k := _createTestInput(t, dbm.NewMemDB())

	guardians := testutil.NewECDSAGuardians(n)
	require.NoError(t, k.AppendGuardianSet(ctx, guardians.GuardianSet(0)))

	return ctx, k, guardians
}

func signedGovernanceVAA(guardians *testutil.Guardians, gsIndex uint32, sequence uint64, packet types.GovernancePacket) []byte {
	v := types.NewGovernanceVAA(gsIndex, 0, sequence, 0, packet)
	return testutil.MustMarshal(guardians.Sign(v))
}

func guardianSetUpgradePacket(index uint32, keys []types.HexBytes, chain types.ChainID) types.GovernancePacket {
	upgrade := types.GuardianSetUpgrade{NewIndex: index}
	for _, key := range keys {
		upgrade.Keys = append(upgrade.Keys, key)
	}

	return types.GovernancePacket{
		Module:  types.CoreModule,
		Action:  types.ActionGuardianSetUpgrade,
		Chain:   chain,
		Payload: upgrade.Serialize(),
	}
}
