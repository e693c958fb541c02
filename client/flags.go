package client

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/initia-labs/attestation/app"
)

const (
	// FlagHome is the engine home directory
	FlagHome = "home"
	// FlagNode is the REST gateway a command talks to
	FlagNode = "node"
	// FlagOutput selects json or yaml output
	FlagOutput = "output"
	// FlagFrom names the sender of a message
	FlagFrom = "from"
	// FlagLimit bounds list queries
	FlagLimit = "limit"
	// FlagStartAfter starts list queries after a key
	FlagStartAfter = "start-after"
)

const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	// DefaultNode is the gateway address used when --node is not set
	DefaultNode = "http://" + app.DefaultRESTAddress
)

// AddQueryFlagsToCmd adds the flags every query command takes.
func AddQueryFlagsToCmd(cmd *cobra.Command) {
	cmd.Flags().String(FlagNode, DefaultNode, "REST gateway of the engine")
	AddOutputFlagToCmd(cmd)
}

// AddTxFlagsToCmd adds the flags every message command takes.
func AddTxFlagsToCmd(cmd *cobra.Command) {
	cmd.Flags().String(FlagNode, DefaultNode, "REST gateway of the engine")
	cmd.Flags().String(FlagFrom, "", "Name recorded as the sender of the message")
	AddOutputFlagToCmd(cmd)
}

// AddOutputFlagToCmd adds --output.
func AddOutputFlagToCmd(cmd *cobra.Command) {
	cmd.Flags().StringP(FlagOutput, "o", OutputFormatJSON, "Output format (json|yaml)")
}

// AddPaginationFlagsToCmd adds --limit and optionally --start-after.
func AddPaginationFlagsToCmd(cmd *cobra.Command, startAfter bool) {
	cmd.Flags().Uint32(FlagLimit, 0, "Maximum number of entries to return, 0 for all")
	if startAfter {
		cmd.Flags().Uint64(FlagStartAfter, 0, "Only return entries after this key")
	}
}

// NewViper binds the flags of cmd and the ATTEST_ environment variables.
// A flag set on the command line wins over the environment.
func NewViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(app.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	return v, nil
}
