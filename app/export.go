package app

import (
	"github.com/pkg/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	accountanttypes "github.com/initia-labs/attestation/x/accountant/types"
	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

// ExportGenesis exports the state of every module at the latest version.
func (app *EngineApp) ExportGenesis() (GenesisState, error) {
	genState := GenesisState{}

	err := app.Query(func(ctx sdk.Context) error {
		vaaGenState, err := app.VaaKeeper.ExportGenesis(ctx)
		if err != nil {
			return errors.Wrapf(err, "failed to export %s genesis", vaatypes.ModuleName)
		}
		genState[vaatypes.ModuleName] = mustMarshalJSON(vaaGenState)

		accountantGenState, err := app.AccountantKeeper.ExportGenesis(ctx)
		if err != nil {
			return errors.Wrapf(err, "failed to export %s genesis", accountanttypes.ModuleName)
		}
		genState[accountanttypes.ModuleName] = mustMarshalJSON(accountantGenState)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return genState, nil
}
