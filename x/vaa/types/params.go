package types

import (
	"fmt"

	"github.com/pkg/errors"

	"gopkg.in/yaml.v3"
)

// Default parameter values
const (
	// DefaultGuardianSetGracePeriod is how long, in seconds, a superseded
	// guardian set keeps verifying envelopes already in flight.
	DefaultGuardianSetGracePeriod = uint64(24 * 60 * 60)
)

// Params are the vaa module parameters.
type Params struct {
	LocalChainID           ChainID `json:"local_chain_id" yaml:"local_chain_id"`
	GuardianSetGracePeriod uint64  `json:"guardian_set_grace_period" yaml:"guardian_set_grace_period"`
}

// NewParams creates a new Params instance
func NewParams(localChainID ChainID, gracePeriod uint64) Params {
	return Params{
		LocalChainID:           localChainID,
		GuardianSetGracePeriod: gracePeriod,
	}
}

// DefaultParams returns default vaa parameters
func DefaultParams() Params {
	return NewParams(DefaultLocalChainID, DefaultGuardianSetGracePeriod)
}

func (p Params) String() string {
	out, err := yaml.Marshal(p)
	if err != nil {
		panic(err)
	}
	return string(out)
}

// Validate performs basic validation on vaa parameters
func (p Params) Validate() error {
	if err := validateLocalChainID(p.LocalChainID); err != nil {
		return errors.Wrap(err, "invalid local_chain_id")
	}

	return nil
}

func validateLocalChainID(id ChainID) error {
	if id == ChainIDUnset {
		return fmt.Errorf("local chain id must be non zero")
	}

	return nil
}
