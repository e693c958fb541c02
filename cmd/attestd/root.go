package main

import (
	"github.com/spf13/cobra"

	sdkclient "github.com/cosmos/cosmos-sdk/client"

	"github.com/initia-labs/attestation/app"
	"github.com/initia-labs/attestation/client"
	accountantcli "github.com/initia-labs/attestation/x/accountant/client/cli"
	vaacli "github.com/initia-labs/attestation/x/vaa/client/cli"
)

// NewRootCmd creates a new root command for attestd. It is called once in the
// main function.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           app.AppName,
		Short:         "Guardian attestation engine",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// set the default command outputs
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			return nil
		},
	}

	rootCmd.PersistentFlags().String(client.FlagHome, app.DefaultNodeHome, "Directory for config and data")

	initRootCmd(rootCmd)

	return rootCmd
}

func initRootCmd(rootCmd *cobra.Command) {
	rootCmd.AddCommand(
		InitCmd(),
		StartCmd(),
		ExportCmd(),
		vaacli.GetVAACmd(),
		vaacli.GetQuorumCmd(),
		vaacli.GetKeysCmd(),
		queryCommand(),
		txCommand(),
	)
}

func queryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "query",
		Aliases:                    []string{"q"},
		Short:                      "Querying subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       sdkclient.ValidateCmd,
	}

	cmd.AddCommand(
		vaacli.GetQueryCmd(),
		accountantcli.GetQueryCmd(),
	)

	return cmd
}

func txCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "tx",
		Short:                      "Transactions subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       sdkclient.ValidateCmd,
	}

	cmd.AddCommand(
		vaacli.GetTxCmd(),
		accountantcli.GetTxCmd(),
	)

	return cmd
}
