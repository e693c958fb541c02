package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	sdkclient "github.com/cosmos/cosmos-sdk/client"

	"github.com/initia-labs/attestation/client"
	"github.com/initia-labs/attestation/crypto/guardian"
	"github.com/initia-labs/attestation/x/vaa/types"
)

const (
	FlagKey              = "key"
	FlagIndex            = "index"
	FlagScheme           = "scheme"
	FlagGuardianSet      = "guardian-set"
	FlagEmitterChain     = "emitter-chain"
	FlagEmitterAddress   = "emitter-address"
	FlagSequence         = "sequence"
	FlagNonce            = "nonce"
	FlagTimestamp        = "timestamp"
	FlagConsistencyLevel = "consistency-level"
)

// EncodedVAA is the output of commands producing an envelope.
type EncodedVAA struct {
	VAA    types.HexBytes `json:"vaa"`
	Digest string         `json:"digest"`
}

// GetVAACmd returns offline envelope tooling.
func GetVAACmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "vaa",
		Short:                      "Build, inspect and sign envelopes offline",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       sdkclient.ValidateCmd,
	}

	cmd.AddCommand(
		NewVAACmd(),
		ParseVAACmd(),
		DigestVAACmd(),
		SignVAACmd(),
	)

	return cmd
}

// NewVAACmd builds an unsigned envelope around a payload.
func NewVAACmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new [payload]",
		Short: "Build an unsigned envelope carrying payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientContext(cmd)
			if err != nil {
				return err
			}

			payload, err := ParseBytesArg(args[0])
			if err != nil {
				return err
			}

			emitterAddress, err := types.AddressFromHex(clientCtx.Viper.GetString(FlagEmitterAddress))
			if err != nil {
				return err
			}

			timestamp := clientCtx.Viper.GetUint32(FlagTimestamp)
			if timestamp == 0 {
				timestamp = uint32(time.Now().Unix())
			}

			v := &types.VAA{
				Version:          types.SupportedVAAVersion,
				GuardianSetIndex: clientCtx.Viper.GetUint32(FlagGuardianSet),
				Timestamp:        timestamp,
				Nonce:            clientCtx.Viper.GetUint32(FlagNonce),
				EmitterChain:     types.ChainID(clientCtx.Viper.GetUint16(FlagEmitterChain)),
				EmitterAddress:   emitterAddress,
				Sequence:         clientCtx.Viper.GetUint64(FlagSequence),
				ConsistencyLevel: uint8(clientCtx.Viper.GetUint(FlagConsistencyLevel)),
				Payload:          payload,
			}

			return printVAA(clientCtx, v)
		},
	}

	cmd.Flags().Uint32(FlagGuardianSet, 0, "Guardian set index the envelope will be signed by")
	cmd.Flags().Uint16(FlagEmitterChain, 0, "Chain id of the emitter")
	cmd.Flags().String(FlagEmitterAddress, "", "Hex encoded 32 byte emitter address")
	cmd.Flags().Uint64(FlagSequence, 0, "Emitter sequence number")
	cmd.Flags().Uint32(FlagNonce, 0, "Message nonce")
	cmd.Flags().Uint32(FlagTimestamp, 0, "Unix timestamp, now when zero")
	cmd.Flags().Uint8(FlagConsistencyLevel, 0, "Consistency level")
	_ = cmd.MarkFlagRequired(FlagEmitterChain)
	_ = cmd.MarkFlagRequired(FlagEmitterAddress)
	client.AddOutputFlagToCmd(cmd)

	return cmd
}

// ParseVAACmd prints the fields of an envelope.
func ParseVAACmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [vaa]",
		Short: "Decode an envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientContext(cmd)
			if err != nil {
				return err
			}

			v, _, err := ParseVAAArg(args[0])
			if err != nil {
				return err
			}

			return clientCtx.PrintObject(NewVAAView(v))
		},
	}

	client.AddOutputFlagToCmd(cmd)
	return cmd
}

// DigestVAACmd prints the digest guardians sign for an envelope.
func DigestVAACmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest [vaa]",
		Short: "Print the signing digest of an envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, _, err := ParseVAAArg(args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), v.HexDigest())
			return err
		},
	}

	return cmd
}

// SignVAACmd adds one guardian signature to an envelope.
func SignVAACmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign [vaa]",
		Short: "Sign an envelope as one guardian",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientContext(cmd)
			if err != nil {
				return err
			}

			v, _, err := ParseVAAArg(args[0])
			if err != nil {
				return err
			}

			signer, index, err := SignerFromFlags(clientCtx)
			if err != nil {
				return err
			}

			if err := signer.SignVAA(index, v); err != nil {
				return err
			}

			return printVAA(clientCtx, v)
		},
	}

	AddSignerFlagsToCmd(cmd)
	client.AddOutputFlagToCmd(cmd)
	return cmd
}

// AddSignerFlagsToCmd adds the flags naming a guardian key.
func AddSignerFlagsToCmd(cmd *cobra.Command) {
	cmd.Flags().String(FlagKey, "", "Hex encoded guardian private key")
	cmd.Flags().Uint8(FlagIndex, 0, "Index of the guardian in its set")
	cmd.Flags().String(FlagScheme, types.SchemeECDSA.String(), "Signature scheme (ecdsa|schnorr)")
	_ = cmd.MarkFlagRequired(FlagKey)
}

// SignerFromFlags loads the guardian key given by the signer flags.
func SignerFromFlags(clientCtx client.Context) (*guardian.Signer, uint8, error) {
	scheme, err := guardian.ParseScheme(clientCtx.Viper.GetString(FlagScheme))
	if err != nil {
		return nil, 0, err
	}

	signer, err := guardian.SignerFromHex(scheme, clientCtx.Viper.GetString(FlagKey))
	if err != nil {
		return nil, 0, err
	}

	return signer, uint8(clientCtx.Viper.GetUint(FlagIndex)), nil
}

func printVAA(clientCtx client.Context, v *types.VAA) error {
	bz, err := v.Marshal()
	if err != nil {
		return err
	}

	return clientCtx.PrintObject(EncodedVAA{VAA: bz, Digest: v.HexDigest()})
}

// GetQuorumCmd prints the quorum of a guardian set size.
func GetQuorumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quorum [num-guardians]",
		Short: "Print the number of signatures a guardian set of the given size needs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), types.CalculateQuorum(n))
			return err
		},
	}
}

// GuardianKey is the output of the keys commands.
type GuardianKey struct {
	Scheme      string         `json:"scheme"`
	PrivateKey  types.HexBytes `json:"private_key,omitempty"`
	GuardianKey types.HexBytes `json:"guardian_key"`
}

// GetKeysCmd returns guardian key tooling.
func GetKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "keys",
		Short:                      "Generate and inspect guardian keys",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       sdkclient.ValidateCmd,
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a guardian private key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clientCtx, err := client.GetClientContext(cmd)
			if err != nil {
				return err
			}

			scheme, err := guardian.ParseScheme(clientCtx.Viper.GetString(FlagScheme))
			if err != nil {
				return err
			}

			signer, err := guardian.GenerateSigner(scheme)
			if err != nil {
				return err
			}

			return clientCtx.PrintObject(GuardianKey{
				Scheme:      scheme.String(),
				PrivateKey:  signer.PrivKeyBytes(),
				GuardianKey: signer.Key(),
			})
		},
	}
	generateCmd.Flags().String(FlagScheme, types.SchemeECDSA.String(), "Signature scheme (ecdsa|schnorr)")
	client.AddOutputFlagToCmd(generateCmd)

	showCmd := &cobra.Command{
		Use:   "show [private-key]",
		Short: "Print the guardian key of a private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientContext(cmd)
			if err != nil {
				return err
			}

			scheme, err := guardian.ParseScheme(clientCtx.Viper.GetString(FlagScheme))
			if err != nil {
				return err
			}

			signer, err := guardian.SignerFromHex(scheme, args[0])
			if err != nil {
				return err
			}

			return clientCtx.PrintObject(GuardianKey{
				Scheme:      scheme.String(),
				GuardianKey: signer.Key(),
			})
		},
	}
	showCmd.Flags().String(FlagScheme, types.SchemeECDSA.String(), "Signature scheme (ecdsa|schnorr)")
	client.AddOutputFlagToCmd(showCmd)

	cmd.AddCommand(generateCmd, showCmd)
	return cmd
}
