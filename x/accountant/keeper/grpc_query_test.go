package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cosmossdk.io/collections"
	"cosmossdk.io/math"

	"github.com/initia-labs/attestation/x/accountant/keeper"
	"github.com/initia-labs/attestation/x/accountant/types"
	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

func Test_Query_Balance(t *testing.T) {
	input := createTestInput(t, 1)
	q := keeper.NewQueryServer(input.Keeper)

	key := types.NewAccountKey(vaatypes.ChainIDBSC, testTokenChain, testToken)
	_, err := q.Balance(input.Ctx, &types.QueryBalanceRequest{Key: key})
	require.ErrorIs(t, err, collections.ErrNotFound)

	require.NoError(t, input.Keeper.Accounts.Set(input.Ctx, key, math.NewUint(42)))
	res, err := q.Balance(input.Ctx, &types.QueryBalanceRequest{Key: key})
	require.NoError(t, err)
	require.Equal(t, math.NewUint(42), res.Balance)
}

func Test_Query_AllAccounts(t *testing.T) {
	input := createTestInput(t, 1)
	q := keeper.NewQueryServer(input.Keeper)

	chains := []vaatypes.ChainID{vaatypes.ChainIDPolygon, vaatypes.ChainIDEthereum, vaatypes.ChainIDBSC}
	for i, chain := range chains {
		setBalance(t, input, chain, testTokenChain, math.NewUint(uint64(i+1)))
	}

	res, err := q.AllAccounts(input.Ctx, &types.QueryAllAccountsRequest{})
	require.NoError(t, err)
	require.Len(t, res.Accounts, 3)

	// ordered by chain
	require.Equal(t, vaatypes.ChainIDEthereum, res.Accounts[0].Key.ChainID)
	require.Equal(t, vaatypes.ChainIDBSC, res.Accounts[1].Key.ChainID)
	require.Equal(t, vaatypes.ChainIDPolygon, res.Accounts[2].Key.ChainID)

	res, err = q.AllAccounts(input.Ctx, &types.QueryAllAccountsRequest{StartAfter: &res.Accounts[0].Key, Limit: 1})
	require.NoError(t, err)
	require.Len(t, res.Accounts, 1)
	require.Equal(t, vaatypes.ChainIDBSC, res.Accounts[0].Key.ChainID)
	require.Equal(t, math.NewUint(3), res.Accounts[0].Balance)
}

func Test_Query_Transfers(t *testing.T) {
	input := createTestInput(t, 4)
	registerEmitters(t, input, testTokenChain)

	var batch [][]byte
	for seq := uint64(1); seq <= 3; seq++ {
		batch = append(batch, signedTransfer(input.Guardians, testTokenChain, seq, transferPayload(10*seq, testTokenChain, testToken, vaatypes.ChainIDInitia)))
	}
	digests, err := input.Keeper.SubmitVAAs(input.Ctx, batch)
	require.NoError(t, err)

	q := keeper.NewQueryServer(input.Keeper)
	res, err := q.AllTransfers(input.Ctx, &types.QueryAllTransfersRequest{})
	require.NoError(t, err)
	require.Len(t, res.Transfers, 3)
	for i, tr := range res.Transfers {
		require.Equal(t, uint64(i+1), tr.Key.Sequence)
		require.Equal(t, digests[i], []byte(tr.Digest))
		require.Equal(t, math.NewUint(10*uint64(i+1)), tr.Data.Amount)
	}

	res, err = q.AllTransfers(input.Ctx, &types.QueryAllTransfersRequest{StartAfter: &res.Transfers[1].Key})
	require.NoError(t, err)
	require.Len(t, res.Transfers, 1)
	require.Equal(t, uint64(3), res.Transfers[0].Key.Sequence)

	status, err := q.TransferStatus(input.Ctx, &types.QueryTransferStatusRequest{Key: res.Transfers[0].Key})
	require.NoError(t, err)
	require.NotNil(t, status.Status.Committed)
	require.Equal(t, digests[2], []byte(status.Status.Committed.Digest))
	require.Empty(t, status.Status.Pending)
}

func Test_Query_TransferStatus(t *testing.T) {
	input := createTestInput(t, 4)
	registerEmitters(t, input, testTokenChain)
	q := keeper.NewQueryServer(input.Keeper)

	o := newObservation(testTokenChain, 1, transferPayload(100, testTokenChain, testToken, vaatypes.ChainIDInitia))
	missing := types.NewTransferKey(testTokenChain, emitterOf(testTokenChain), 2)

	_, err := q.TransferStatus(input.Ctx, &types.QueryTransferStatusRequest{Key: o.Key()})
	require.ErrorIs(t, err, types.ErrTransferNotFound)

	submitObservations(t, input, 1, o)

	res, err := q.TransferStatus(input.Ctx, &types.QueryTransferStatusRequest{Key: o.Key()})
	require.NoError(t, err)
	require.Nil(t, res.Status.Committed)
	require.Len(t, res.Status.Pending, 1)
	require.True(t, res.Status.Pending[0].HasSignature(1))

	pending, err := q.AllPendingTransfers(input.Ctx, &types.QueryAllPendingTransfersRequest{})
	require.NoError(t, err)
	require.Len(t, pending.Pending, 1)
	require.Equal(t, o.Key(), pending.Pending[0].Key)

	batch, err := q.BatchTransferStatus(input.Ctx, &types.QueryBatchTransferStatusRequest{Keys: []types.TransferKey{o.Key(), missing}})
	require.NoError(t, err)
	require.Len(t, batch.Details, 2)
	require.NotNil(t, batch.Details[0].Status)
	require.Equal(t, missing, batch.Details[1].Key)
	require.Nil(t, batch.Details[1].Status)
}

func Test_Query_Modifications(t *testing.T) {
	input := createTestInput(t, 1)
	q := keeper.NewQueryServer(input.Keeper)

	for seq := uint64(1); seq <= 3; seq++ {
		require.NoError(t, input.Keeper.ModifyBalance(input.Ctx, newModification(seq, types.ModificationKindAdd, seq)))
	}

	res, err := q.Modification(input.Ctx, &types.QueryModificationRequest{Sequence: 2})
	require.NoError(t, err)
	require.Equal(t, math.NewUint(2), res.Modification.Amount)

	_, err = q.Modification(input.Ctx, &types.QueryModificationRequest{Sequence: 4})
	require.ErrorIs(t, err, collections.ErrNotFound)

	start := uint64(1)
	all, err := q.AllModifications(input.Ctx, &types.QueryAllModificationsRequest{StartAfter: &start})
	require.NoError(t, err)
	require.Len(t, all.Modifications, 2)
	require.Equal(t, uint64(2), all.Modifications[0].Sequence)
	require.Equal(t, uint64(3), all.Modifications[1].Sequence)
}

func Test_Query_ChainRegistration(t *testing.T) {
	input := createTestInput(t, 1)
	q := keeper.NewQueryServer(input.Keeper)

	_, err := q.ChainRegistration(input.Ctx, &types.QueryChainRegistrationRequest{Chain: vaatypes.ChainIDBSC})
	require.ErrorIs(t, err, types.ErrUnregisteredEmitter)

	registerEmitters(t, input, vaatypes.ChainIDBSC)
	res, err := q.ChainRegistration(input.Ctx, &types.QueryChainRegistrationRequest{Chain: vaatypes.ChainIDBSC})
	require.NoError(t, err)
	require.Equal(t, emitterOf(vaatypes.ChainIDBSC), res.Address)
}

func Test_Query_ValidateTransfer(t *testing.T) {
	input := createTestInput(t, 1)
	q := keeper.NewQueryServer(input.Keeper)

	_, err := q.ValidateTransfer(input.Ctx, &types.QueryValidateTransferRequest{
		Transfer: newTransfer(vaatypes.ChainIDEthereum, 1, 100, vaatypes.ChainIDEthereum, vaatypes.ChainIDBSC),
	})
	require.NoError(t, err)

	_, err = q.ValidateTransfer(input.Ctx, &types.QueryValidateTransferRequest{
		Transfer: newTransfer(vaatypes.ChainIDBSC, 1, 100, vaatypes.ChainIDEthereum, vaatypes.ChainIDPolygon),
	})
	require.ErrorIs(t, err, types.ErrMissingWrappedAccount)
}
