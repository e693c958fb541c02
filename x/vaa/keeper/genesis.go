package keeper

import (
	"context"

	"github.com/initia-labs/attestation/x/vaa/types"
)

// InitGenesis stores params, guardian sets and consumed digests.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := types.ValidateGenesis(&genState); err != nil {
		return err
	}

	if err := k.SetParams(ctx, genState.Params); err != nil {
		return err
	}

	for _, gs := range genState.GuardianSets {
		if err := k.GuardianSets.Set(ctx, gs.Index, gs); err != nil {
			return err
		}
	}

	if len(genState.GuardianSets) > 0 {
		if err := k.CurrentGuardianSetIndex.Set(ctx, genState.CurrentGuardianSet); err != nil {
			return err
		}
	}

	for _, digest := range genState.ConsumedVAAs {
		if err := k.ConsumedVAAs.Set(ctx, digest); err != nil {
			return err
		}
	}

	return nil
}

// ExportGenesis export genesis state
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	var genState types.GenesisState

	var err error
	genState.Params, err = k.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	err = k.IterateGuardianSets(ctx, func(gs types.GuardianSet) (bool, error) {
		genState.GuardianSets = append(genState.GuardianSets, gs)
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	if len(genState.GuardianSets) > 0 {
		genState.CurrentGuardianSet, err = k.CurrentGuardianSetIndex.Get(ctx)
		if err != nil {
			return nil, err
		}
	}

	err = k.ConsumedVAAs.Walk(ctx, nil, func(digest []byte) (bool, error) {
		genState.ConsumedVAAs = append(genState.ConsumedVAAs, append([]byte{}, digest...))
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return &genState, nil
}
