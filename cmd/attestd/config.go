package main

import (
	"io/fs"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/initia-labs/attestation/app"
	"github.com/initia-labs/attestation/client"
)

func configPath(home string) string {
	return filepath.Join(home, app.ConfigDirName, app.ConfigFileName)
}

func genesisPath(home string) string {
	return filepath.Join(home, app.ConfigDirName, app.GenesisFileName)
}

// loadConfig resolves the engine config of cmd. Flags set on the command
// line win over ATTEST_ environment variables, which win over app.toml.
func loadConfig(cmd *cobra.Command) (string, app.EngineConfig, error) {
	v, err := client.NewViper(cmd)
	if err != nil {
		return "", app.EngineConfig{}, err
	}

	home := v.GetString(client.FlagHome)
	if home == "" {
		return "", app.EngineConfig{}, errors.New("home directory not set")
	}

	v.SetConfigFile(configPath(home))
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", app.EngineConfig{}, errors.Wrapf(err, "failed to read %s", configPath(home))
	}

	config := app.GetConfig(v)
	if err := config.Validate(); err != nil {
		return "", app.EngineConfig{}, err
	}

	return home, config, nil
}
