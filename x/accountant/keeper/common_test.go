package keeper_test

import (
	"encoding/json"
	"testing"
	"time"

	tmproto "github.com/cometbft/cometbft/proto/tendermint/types"

	"github.com/stretchr/testify/require"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/initia-labs/attestation/x/accountant/keeper"
	"github.com/initia-labs/attestation/x/accountant/types"
	vaakeeper "github.com/initia-labs/attestation/x/vaa/keeper"
	"github.com/initia-labs/attestation/x/vaa/testutil"
	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

const testAuthority = "authority"

var genesisTime = time.Date(2020, time.April, 22, 12, 0, 0, 0, time.UTC)

// token used by most tests; native to Ethereum
var (
	testToken      = vaatypes.Address{31: 0xee}
	testTokenChain = vaatypes.ChainIDEthereum
)

type testInput struct {
	Ctx       sdk.Context
	VaaKeeper *vaakeeper.Keeper
	Keeper    *keeper.Keeper
	Guardians *testutil.Guardians
}

func _createTestInput(
	t testing.TB,
	db dbm.DB,
) testInput {
	keys := storetypes.NewKVStoreKeys(vaatypes.StoreKey, types.StoreKey)
	ms := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	for _, v := range keys {
		ms.MountStoreWithDB(v, storetypes.StoreTypeIAVL, db)
	}

	require.NoError(t, ms.LoadLatestVersion())

	ctx := sdk.NewContext(ms, tmproto.Header{
		Height: 1234567,
		Time:   genesisTime,
	}, false, log.NewNopLogger())

	vaaKeeper := vaakeeper.NewKeeper(
		runtime.NewKVStoreService(keys[vaatypes.StoreKey]),
		testAuthority,
	)
	require.NoError(t, vaaKeeper.SetParams(ctx, vaatypes.DefaultParams()))

	accountantKeeper := keeper.NewKeeper(
		runtime.NewKVStoreService(keys[types.StoreKey]),
		vaaKeeper,
	)

	return testInput{
		Ctx:       ctx,
		VaaKeeper: vaaKeeper,
		Keeper:    accountantKeeper,
	}
}

// createTestInput installs an ECDSA guardian set of size n under index 0.
func createTestInput(t testing.TB, n int) testInput {
	input := _createTestInput(t, dbm.NewMemDB())

	input.Guardians = testutil.NewECDSAGuardians(n)
	require.NoError(t, input.VaaKeeper.AppendGuardianSet(input.Ctx, input.Guardians.GuardianSet(0)))

	return input
}

// emitterOf returns the token bridge emitter used for chain in tests.
func emitterOf(chain vaatypes.ChainID) vaatypes.Address {
	return vaatypes.Address{0: byte(chain >> 8), 1: byte(chain), 31: 0x01}
}

func registerEmitters(t testing.TB, input testInput, chains ...vaatypes.ChainID) {
	for _, chain := range chains {
		require.NoError(t, input.Keeper.SetChainRegistration(input.Ctx, chain, emitterOf(chain)))
	}
}

func transferPayload(amount uint64, tokenChain vaatypes.ChainID, token vaatypes.Address, recipientChain vaatypes.ChainID) []byte {
	return types.TransferPayload{
		Amount:         math.NewUint(amount),
		TokenAddress:   token,
		TokenChain:     tokenChain,
		Recipient:      vaatypes.Address{31: 0x99},
		RecipientChain: recipientChain,
		Fee:            math.ZeroUint(),
	}.Serialize()
}

// signedTransfer returns an envelope from chain's registered emitter signed
// by the given guardians, or by all of them without indices.
func signedTransfer(guardians *testutil.Guardians, chain vaatypes.ChainID, sequence uint64, payload []byte, indices ...int) []byte {
	v := testutil.NewVAA(0, chain, emitterOf(chain), sequence, payload)
	return testutil.MustMarshal(guardians.Sign(v, indices...))
}

func signedGovernance(guardians *testutil.Guardians, sequence uint64, packet vaatypes.GovernancePacket) []byte {
	v := vaatypes.NewGovernanceVAA(0, 0, sequence, 0, packet)
	return testutil.MustMarshal(guardians.Sign(v))
}

func newObservation(chain vaatypes.ChainID, sequence uint64, payload []byte) types.Observation {
	return types.Observation{
		TxHash:           []byte{byte(chain), byte(sequence), 0xaa},
		Timestamp:        1_600_000_000,
		Nonce:            7,
		EmitterChain:     chain,
		EmitterAddress:   emitterOf(chain),
		Sequence:         sequence,
		ConsistencyLevel: 32,
		Payload:          payload,
	}
}

// submitObservations signs the batch with guardian i and submits it.
func submitObservations(t testing.TB, input testInput, i int, observations ...types.Observation) []types.SubmitObservationResponse {
	bz, err := json.Marshal(observations)
	require.NoError(t, err)

	sig := input.Guardians.SignMessage(i, types.SubmittedObservationsPrefix, bz)
	responses, err := input.Keeper.SubmitObservations(input.Ctx, bz, 0, *sig)
	require.NoError(t, err)
	require.Len(t, responses, len(observations))

	return responses
}

func balanceOf(t testing.TB, input testInput, chain, tokenChain vaatypes.ChainID, token vaatypes.Address) math.Uint {
	balance, _, err := input.Keeper.GetBalance(input.Ctx, types.NewAccountKey(chain, tokenChain, token))
	require.NoError(t, err)

	return balance
}
