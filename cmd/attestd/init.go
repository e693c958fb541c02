package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/initia-labs/attestation/app"
	"github.com/initia-labs/attestation/crypto/guardian"
	accountanttypes "github.com/initia-labs/attestation/x/accountant/types"
	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

const (
	flagGuardianKeys = "guardian-keys"
	flagScheme       = "scheme"
	flagRegister     = "register"
	flagOverwrite    = "overwrite"
)

// InitCmd writes app.toml and a genesis file into the home directory.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the engine configuration and genesis file",
		Long: `Write config/app.toml and config/genesis.json into the home directory.

The genesis guardian set is built from --guardian-keys. Token bridge emitters
are registered with --register chain=emitter-address, one flag per chain.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home, config, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			overwrite, err := cmd.Flags().GetBool(flagOverwrite)
			if err != nil {
				return err
			}

			if _, err := os.Stat(genesisPath(home)); err == nil && !overwrite {
				return errors.Errorf("genesis file already exists: %s", genesisPath(home))
			}

			now := time.Now().UTC()
			genState := app.NewDefaultGenesisState(config)

			keys, err := cmd.Flags().GetStringSlice(flagGuardianKeys)
			if err != nil {
				return err
			}

			if len(keys) != 0 {
				schemeName, err := cmd.Flags().GetString(flagScheme)
				if err != nil {
					return err
				}

				gs, err := genesisGuardianSet(schemeName, keys, now)
				if err != nil {
					return err
				}

				if genState, err = genState.ConfigureGuardianSet(gs); err != nil {
					return err
				}
			}

			registers, err := cmd.Flags().GetStringArray(flagRegister)
			if err != nil {
				return err
			}

			registrations, err := parseRegistrations(registers)
			if err != nil {
				return err
			}

			if genState, err = genState.ConfigureChainRegistrations(registrations...); err != nil {
				return err
			}

			if err := genState.Validate(); err != nil {
				return err
			}

			if err := app.WriteConfigFile(configPath(home), config); err != nil {
				return err
			}

			if err := app.WriteGenesisFile(genesisPath(home), &app.AppGenesis{
				GenesisTime: now,
				AppState:    genState,
			}); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s and %s\n", configPath(home), genesisPath(home))
			return err
		},
	}

	app.AddConfigFlags(cmd)
	cmd.Flags().StringSlice(flagGuardianKeys, nil, "Hex encoded keys of the genesis guardian set, in index order")
	cmd.Flags().String(flagScheme, vaatypes.SchemeECDSA.String(), "Signature scheme of the genesis guardian set (ecdsa|schnorr)")
	cmd.Flags().StringArray(flagRegister, nil, "Token bridge emitter registration as chain=emitter-address")
	cmd.Flags().Bool(flagOverwrite, false, "Overwrite an existing genesis file")

	return cmd
}

func genesisGuardianSet(schemeName string, keys []string, now time.Time) (vaatypes.GuardianSet, error) {
	scheme, err := guardian.ParseScheme(schemeName)
	if err != nil {
		return vaatypes.GuardianSet{}, err
	}

	gs := vaatypes.GuardianSet{
		Index:        0,
		CreationTime: uint64(now.Unix()),
		Scheme:       scheme,
	}

	for _, key := range keys {
		var bz vaatypes.HexBytes
		if err := bz.UnmarshalText([]byte(strings.TrimSpace(key))); err != nil {
			return gs, errors.Wrapf(err, "invalid guardian key %q", key)
		}

		gs.Keys = append(gs.Keys, bz)
	}

	return gs, gs.Validate()
}

func parseRegistrations(registers []string) ([]accountanttypes.ChainRegistration, error) {
	registrations := make([]accountanttypes.ChainRegistration, 0, len(registers))
	for _, register := range registers {
		chain, emitter, found := strings.Cut(register, "=")
		if !found {
			return nil, errors.Errorf("invalid registration %q, expected chain=emitter-address", register)
		}

		chainID, err := strconv.ParseUint(chain, 10, 16)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid chain in registration %q", register)
		}

		address, err := vaatypes.AddressFromHex(emitter)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid emitter in registration %q", register)
		}

		registrations = append(registrations, accountanttypes.ChainRegistration{
			Chain:          vaatypes.ChainID(chainID),
			EmitterAddress: address,
		})
	}

	return registrations, nil
}
