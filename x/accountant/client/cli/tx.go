package cli

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	sdkclient "github.com/cosmos/cosmos-sdk/client"

	"github.com/initia-labs/attestation/client"
	"github.com/initia-labs/attestation/x/accountant/types"
	vaacli "github.com/initia-labs/attestation/x/vaa/client/cli"
)

// GetTxCmd returns the message commands of the accountant module.
func GetTxCmd() *cobra.Command {
	txCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Accountant transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       sdkclient.ValidateCmd,
	}

	txCmd.AddCommand(
		SubmitVAAsCmd(),
		SubmitObservationsCmd(),
	)

	return txCmd
}

// SubmitVAAsCmd submits signed token bridge or governance envelopes.
func SubmitVAAsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit-vaas [vaa] [vaa]...",
		Short: "Submit signed envelopes to the accountant",
		Long: `Submit signed envelopes to the accountant. The batch is applied atomically:
if any envelope fails none of them is recorded.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientContext(cmd)
			if err != nil {
				return err
			}

			msg := types.MsgSubmitVAAs{Sender: clientCtx.From}
			for _, arg := range args {
				_, bz, err := vaacli.ParseVAAArg(arg)
				if err != nil {
					return errors.Wrapf(err, "invalid vaa %q", arg)
				}

				msg.VAAs = append(msg.VAAs, bz)
			}

			if err := msg.Validate(); err != nil {
				return err
			}

			return clientCtx.Broadcast("/accountant/vaas", msg)
		},
	}

	client.AddTxFlagsToCmd(cmd)
	return cmd
}

// SubmitObservationsCmd signs a batch of observations as one guardian and
// submits it.
func SubmitObservationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit-observations [path/to/observations.json]",
		Short: "Sign and submit a batch of observations",
		Long: `Sign a JSON array of observations with a guardian key and submit it.
Each observation reports its own status; a batch is only rejected as a whole
when the signature or the guardian set is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientContext(cmd)
			if err != nil {
				return err
			}

			contents, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			observations, err := types.ParseObservations(contents)
			if err != nil {
				return errors.Wrap(err, "failed to parse observations")
			}

			// sign the canonical encoding so the engine hashes the same bytes
			bz, err := json.Marshal(observations)
			if err != nil {
				return err
			}

			signer, index, err := vaacli.SignerFromFlags(clientCtx)
			if err != nil {
				return err
			}

			sig, err := signer.SignMessage(index, types.SubmittedObservationsPrefix, bz)
			if err != nil {
				return err
			}

			msg := types.MsgSubmitObservations{
				Sender:           clientCtx.From,
				Observations:     bz,
				GuardianSetIndex: clientCtx.Viper.GetUint32(FlagGuardianSet),
				Signature:        *sig,
			}
			if err := msg.Validate(); err != nil {
				return err
			}

			return clientCtx.Broadcast("/accountant/observations", msg)
		},
	}

	cmd.Flags().AddFlagSet(fsGuardianSet)
	cmd.Flags().AddFlagSet(fsSigner)
	_ = cmd.MarkFlagRequired(vaacli.FlagKey)
	client.AddTxFlagsToCmd(cmd)

	return cmd
}
