package types

import (
	"github.com/pkg/errors"
)

// GenesisState is the vaa module genesis.
type GenesisState struct {
	Params             Params        `json:"params"`
	GuardianSets       []GuardianSet `json:"guardian_sets"`
	CurrentGuardianSet uint32        `json:"current_guardian_set"`
	ConsumedVAAs       []HexBytes    `json:"consumed_vaas"`
}

// NewGenesisState creates a new GenesisState object
func NewGenesisState(params Params, sets []GuardianSet, current uint32, consumed []HexBytes) *GenesisState {
	return &GenesisState{
		Params:             params,
		GuardianSets:       sets,
		CurrentGuardianSet: current,
		ConsumedVAAs:       consumed,
	}
}

// DefaultGenesisState gets raw genesis raw message for testing
func DefaultGenesisState() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
	}
}

// ValidateGenesis performs basic validation of vaa genesis data returning an
// error for any failed validation criteria.
func ValidateGenesis(data *GenesisState) error {
	if err := data.Params.Validate(); err != nil {
		return err
	}

	if len(data.GuardianSets) == 0 {
		return nil
	}

	for i, gs := range data.GuardianSets {
		if i > 0 && gs.Index != data.GuardianSets[i-1].Index+1 {
			return errors.Wrapf(ErrNonSequentialGuardianSet, "guardian set %d follows %d", gs.Index, data.GuardianSets[i-1].Index)
		}

		if err := gs.Validate(); err != nil {
			return errors.Wrapf(err, "guardian set %d", gs.Index)
		}
	}

	last := data.GuardianSets[len(data.GuardianSets)-1]
	if data.CurrentGuardianSet != last.Index {
		return errors.Wrapf(ErrUnknownGuardianSet, "current guardian set %d is not the latest %d", data.CurrentGuardianSet, last.Index)
	}

	return nil
}
