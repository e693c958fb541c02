package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	sdkclient "github.com/cosmos/cosmos-sdk/client"

	"github.com/initia-labs/attestation/client"
	"github.com/initia-labs/attestation/x/vaa/types"
)

// GetTxCmd returns the message commands of the vaa module.
func GetTxCmd() *cobra.Command {
	txCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "VAA transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       sdkclient.ValidateCmd,
	}

	txCmd.AddCommand(
		ExecuteGovernanceCmd(),
		UpdateParamsCmd(),
	)

	return txCmd
}

// ExecuteGovernanceCmd submits a governance envelope to the core module.
func ExecuteGovernanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "execute-governance [vaa]",
		Short: "Execute a guardian set upgrade or another core governance action",
		Long: `Execute a signed governance envelope addressed to the core module.
The envelope may be given as hex, base64 or a path to a file holding either.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientContext(cmd)
			if err != nil {
				return err
			}

			_, bz, err := ParseVAAArg(args[0])
			if err != nil {
				return err
			}

			msg := types.MsgExecuteGovernanceVAA{Signer: clientCtx.From, VAA: bz}
			if err := msg.Validate(); err != nil {
				return err
			}

			return clientCtx.Broadcast("/vaa/governance", msg)
		},
	}

	client.AddTxFlagsToCmd(cmd)
	return cmd
}

// UpdateParamsCmd replaces the vaa parameters. --from must be the authority.
func UpdateParamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-params [local-chain-id] [guardian-set-grace-period]",
		Short: "Update the vaa parameters",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientContext(cmd)
			if err != nil {
				return err
			}

			chainID, err := strconv.ParseUint(args[0], 10, 16)
			if err != nil {
				return err
			}

			gracePeriod, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return err
			}

			msg := types.MsgUpdateParams{
				Authority: clientCtx.From,
				Params:    types.NewParams(types.ChainID(chainID), gracePeriod),
			}
			if err := msg.Validate(); err != nil {
				return err
			}

			return clientCtx.Broadcast("/vaa/params", msg)
		},
	}

	client.AddTxFlagsToCmd(cmd)
	return cmd
}
