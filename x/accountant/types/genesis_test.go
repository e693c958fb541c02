package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cosmossdk.io/math"

	"github.com/initia-labs/attestation/x/accountant/types"
	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

func TestValidateGenesis(t *testing.T) {
	require.NoError(t, types.ValidateGenesis(types.DefaultGenesisState()))

	account := types.Account{
		Key:     types.NewAccountKey(vaatypes.ChainIDEthereum, vaatypes.ChainIDEthereum, vaatypes.Address{}),
		Balance: math.NewUint(1),
	}
	transfer := types.TransferDetails{
		Transfer: types.Transfer{
			Key:  types.NewTransferKey(vaatypes.ChainIDEthereum, vaatypes.Address{31: 0x01}, 1),
			Data: types.TransferData{Amount: math.NewUint(1)},
		},
		Digest: make([]byte, 32),
	}
	registration := types.ChainRegistration{Chain: vaatypes.ChainIDEthereum}

	valid := types.GenesisState{
		Accounts:           []types.Account{account},
		Transfers:          []types.TransferDetails{transfer},
		ChainRegistrations: []types.ChainRegistration{registration},
	}
	require.NoError(t, types.ValidateGenesis(&valid))

	cases := map[string]types.GenesisState{
		"duplicate account":      {Accounts: []types.Account{account, account}},
		"nil balance":            {Accounts: []types.Account{{Key: account.Key}}},
		"duplicate transfer":     {Transfers: []types.TransferDetails{transfer, transfer}},
		"short digest":           {Transfers: []types.TransferDetails{{Transfer: transfer.Transfer, Digest: []byte{1}}}},
		"pending and committed":  {Transfers: []types.TransferDetails{transfer}, PendingTransfers: []types.PendingTransfer{{Key: transfer.Key}}},
		"duplicate registration": {ChainRegistrations: []types.ChainRegistration{registration, registration}},
	}
	for name, genState := range cases {
		require.ErrorIs(t, types.ValidateGenesis(&genState), types.ErrInvalidGenesis, name)
	}

	modifications := types.GenesisState{
		Modifications: []types.Modification{
			{Sequence: 1, Amount: math.OneUint()},
			{Sequence: 1, Amount: math.OneUint()},
		},
	}
	require.ErrorIs(t, types.ValidateGenesis(&modifications), types.ErrNonMonotonicModification)
}
