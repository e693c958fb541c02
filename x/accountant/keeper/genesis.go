package keeper

import (
	"context"

	"github.com/initia-labs/attestation/x/accountant/types"
	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

// InitGenesis loads the ledger.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := types.ValidateGenesis(&genState); err != nil {
		return err
	}

	for _, a := range genState.Accounts {
		if err := k.Accounts.Set(ctx, a.Key, a.Balance); err != nil {
			return err
		}
	}

	for _, t := range genState.Transfers {
		if err := k.Transfers.Set(ctx, t.Key, t.Data); err != nil {
			return err
		}

		if err := k.Digests.Set(ctx, t.Key, t.Digest); err != nil {
			return err
		}
	}

	for _, p := range genState.PendingTransfers {
		if err := k.PendingTransfers.Set(ctx, p.Key, p.Data); err != nil {
			return err
		}
	}

	for _, m := range genState.Modifications {
		if err := k.Modifications.Set(ctx, m.Sequence, m); err != nil {
			return err
		}
	}

	for _, r := range genState.ChainRegistrations {
		if err := k.SetChainRegistration(ctx, r.Chain, r.EmitterAddress); err != nil {
			return err
		}
	}

	return nil
}

// ExportGenesis export genesis state
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	genState := types.DefaultGenesisState()

	q := NewQueryServer(&k)

	accounts, err := q.AllAccounts(ctx, &types.QueryAllAccountsRequest{})
	if err != nil {
		return nil, err
	}
	genState.Accounts = accounts.Accounts

	transfers, err := q.AllTransfers(ctx, &types.QueryAllTransfersRequest{})
	if err != nil {
		return nil, err
	}
	genState.Transfers = transfers.Transfers

	pending, err := q.AllPendingTransfers(ctx, &types.QueryAllPendingTransfersRequest{})
	if err != nil {
		return nil, err
	}
	genState.PendingTransfers = pending.Pending

	modifications, err := q.AllModifications(ctx, &types.QueryAllModificationsRequest{})
	if err != nil {
		return nil, err
	}
	genState.Modifications = modifications.Modifications

	err = k.ChainRegistrations.Walk(ctx, nil, func(chain vaatypes.ChainID, bz []byte) (bool, error) {
		emitter, err := vaatypes.AddressFromBytes(bz)
		if err != nil {
			return true, err
		}

		genState.ChainRegistrations = append(genState.ChainRegistrations, types.ChainRegistration{
			Chain:          chain,
			EmitterAddress: emitter,
		})
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return genState, nil
}
