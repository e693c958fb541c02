package types

import (
	"github.com/pkg/errors"

	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

// TransferDetails is a committed transfer together with the digest of the
// message that carried it.
type TransferDetails struct {
	Transfer
	Digest vaatypes.HexBytes `json:"digest"`
}

// ChainRegistration is the registered token bridge emitter of a chain.
type ChainRegistration struct {
	Chain          vaatypes.ChainID `json:"chain"`
	EmitterAddress vaatypes.Address `json:"emitter_address"`
}

// GenesisState is the accountant module genesis.
type GenesisState struct {
	Accounts           []Account           `json:"accounts"`
	Transfers          []TransferDetails   `json:"transfers"`
	PendingTransfers   []PendingTransfer   `json:"pending_transfers"`
	Modifications      []Modification      `json:"modifications"`
	ChainRegistrations []ChainRegistration `json:"chain_registrations"`
}

// DefaultGenesisState returns an empty ledger.
func DefaultGenesisState() *GenesisState {
	return &GenesisState{}
}

// ValidateGenesis checks keys are unique and balances are set.
func ValidateGenesis(data *GenesisState) error {
	accounts := make(map[AccountKey]struct{}, len(data.Accounts))
	for _, a := range data.Accounts {
		if _, ok := accounts[a.Key]; ok {
			return errors.Wrapf(ErrInvalidGenesis, "duplicate account %s", a.Key)
		}
		if a.Balance.IsNil() {
			return errors.Wrapf(ErrInvalidGenesis, "account %s has no balance", a.Key)
		}
		accounts[a.Key] = struct{}{}
	}

	transfers := make(map[TransferKey]struct{}, len(data.Transfers))
	for _, t := range data.Transfers {
		if _, ok := transfers[t.Key]; ok {
			return errors.Wrapf(ErrInvalidGenesis, "duplicate transfer %s", t.Key)
		}
		if len(t.Digest) != 32 {
			return errors.Wrapf(ErrInvalidGenesis, "transfer %s has a %d byte digest", t.Key, len(t.Digest))
		}
		if t.Data.Amount.IsNil() {
			return errors.Wrapf(ErrInvalidGenesis, "transfer %s has no amount", t.Key)
		}
		transfers[t.Key] = struct{}{}
	}

	for _, p := range data.PendingTransfers {
		if _, ok := transfers[p.Key]; ok {
			return errors.Wrapf(ErrInvalidGenesis, "transfer %s is both pending and committed", p.Key)
		}
	}

	var last uint64
	for i, m := range data.Modifications {
		if i > 0 && m.Sequence <= last {
			return errors.Wrapf(ErrNonMonotonicModification, "modification %d follows %d", m.Sequence, last)
		}
		if m.Amount.IsNil() {
			return errors.Wrapf(ErrInvalidGenesis, "modification %d has no amount", m.Sequence)
		}
		last = m.Sequence
	}

	chains := make(map[vaatypes.ChainID]struct{}, len(data.ChainRegistrations))
	for _, r := range data.ChainRegistrations {
		if _, ok := chains[r.Chain]; ok {
			return errors.Wrapf(ErrInvalidGenesis, "duplicate registration for chain %d", r.Chain)
		}
		chains[r.Chain] = struct{}{}
	}

	return nil
}
