package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"

	accountanttypes "github.com/initia-labs/attestation/x/accountant/types"
	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

// GenesisState - The genesis state of the engine is represented here as a map of raw json
// messages key'd by a identifier string.
// The identifier is used to determine which module genesis information belongs
// to so it may be appropriately routed during init.
type GenesisState map[string]json.RawMessage

// AppGenesis is the content of genesis.json.
type AppGenesis struct {
	GenesisTime time.Time    `json:"genesis_time"`
	AppState    GenesisState `json:"app_state"`
}

// NewDefaultGenesisState generates the default state for the application.
func NewDefaultGenesisState(config EngineConfig) GenesisState {
	vaaGenState := vaatypes.DefaultGenesisState()
	vaaGenState.Params = config.Params()

	return GenesisState{
		vaatypes.ModuleName:        mustMarshalJSON(vaaGenState),
		accountanttypes.ModuleName: mustMarshalJSON(accountanttypes.DefaultGenesisState()),
	}
}

// ConfigureGuardianSet installs gs as the initial guardian set.
func (genState GenesisState) ConfigureGuardianSet(gs vaatypes.GuardianSet) (GenesisState, error) {
	vaaGenState, err := genState.VaaGenesis()
	if err != nil {
		return nil, err
	}

	vaaGenState.GuardianSets = append(vaaGenState.GuardianSets, gs)
	vaaGenState.CurrentGuardianSet = gs.Index
	genState[vaatypes.ModuleName] = mustMarshalJSON(vaaGenState)

	return genState, nil
}

// ConfigureChainRegistrations registers token bridge emitters.
func (genState GenesisState) ConfigureChainRegistrations(registrations ...accountanttypes.ChainRegistration) (GenesisState, error) {
	accountantGenState, err := genState.AccountantGenesis()
	if err != nil {
		return nil, err
	}

	accountantGenState.ChainRegistrations = append(accountantGenState.ChainRegistrations, registrations...)
	genState[accountanttypes.ModuleName] = mustMarshalJSON(accountantGenState)

	return genState, nil
}

// VaaGenesis decodes the vaa module genesis.
func (genState GenesisState) VaaGenesis() (*vaatypes.GenesisState, error) {
	var vaaGenState vaatypes.GenesisState
	if bz, ok := genState[vaatypes.ModuleName]; ok {
		if err := json.Unmarshal(bz, &vaaGenState); err != nil {
			return nil, errors.Wrapf(err, "failed to decode %s genesis", vaatypes.ModuleName)
		}

		return &vaaGenState, nil
	}

	return vaatypes.DefaultGenesisState(), nil
}

// AccountantGenesis decodes the accountant module genesis.
func (genState GenesisState) AccountantGenesis() (*accountanttypes.GenesisState, error) {
	var accountantGenState accountanttypes.GenesisState
	if bz, ok := genState[accountanttypes.ModuleName]; ok {
		if err := json.Unmarshal(bz, &accountantGenState); err != nil {
			return nil, errors.Wrapf(err, "failed to decode %s genesis", accountanttypes.ModuleName)
		}

		return &accountantGenState, nil
	}

	return accountanttypes.DefaultGenesisState(), nil
}

// Validate validates every module genesis.
func (genState GenesisState) Validate() error {
	vaaGenState, err := genState.VaaGenesis()
	if err != nil {
		return err
	}

	if err := vaatypes.ValidateGenesis(vaaGenState); err != nil {
		return errors.Wrapf(err, "invalid %s genesis", vaatypes.ModuleName)
	}

	accountantGenState, err := genState.AccountantGenesis()
	if err != nil {
		return err
	}

	if err := accountanttypes.ValidateGenesis(accountantGenState); err != nil {
		return errors.Wrapf(err, "invalid %s genesis", accountanttypes.ModuleName)
	}

	return nil
}

// InitGenesis loads genState into a fresh engine and commits it.
func (app *EngineApp) InitGenesis(genState GenesisState) error {
	vaaGenState, err := genState.VaaGenesis()
	if err != nil {
		return err
	}

	accountantGenState, err := genState.AccountantGenesis()
	if err != nil {
		return err
	}

	_, err = app.Execute(func(ctx sdk.Context) error {
		if version := app.cms.LastCommitID().Version; version != 0 {
			return errors.Errorf("engine already initialized at version %d", version)
		}

		if err := app.VaaKeeper.InitGenesis(ctx, *vaaGenState); err != nil {
			return errors.Wrapf(err, "failed to init %s genesis", vaatypes.ModuleName)
		}

		if err := app.AccountantKeeper.InitGenesis(ctx, *accountantGenState); err != nil {
			return errors.Wrapf(err, "failed to init %s genesis", accountanttypes.ModuleName)
		}

		return nil
	})

	return err
}

// ReadGenesisFile reads genesis.json.
func ReadGenesisFile(path string) (*AppGenesis, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var appGenesis AppGenesis
	if err := json.Unmarshal(bz, &appGenesis); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}

	return &appGenesis, nil
}

// WriteGenesisFile writes genesis.json, creating parent directories.
func WriteGenesisFile(path string, appGenesis *AppGenesis) error {
	bz, err := json.MarshalIndent(appGenesis, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, bz, 0o600)
}

func mustMarshalJSON(v any) json.RawMessage {
	bz, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	return bz
}
