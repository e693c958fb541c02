package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	sdkclient "github.com/cosmos/cosmos-sdk/client"

	"github.com/initia-labs/attestation/client"
	"github.com/initia-labs/attestation/x/accountant/types"
	vaacli "github.com/initia-labs/attestation/x/vaa/client/cli"
	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

// GetQueryCmd returns the query commands of the accountant module.
func GetQueryCmd() *cobra.Command {
	queryCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for the accountant module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       sdkclient.ValidateCmd,
	}
	queryCmd.AddCommand(
		GetCmdBalance(),
		GetCmdAccounts(),
		GetCmdTransfers(),
		GetCmdTransferStatus(),
		GetCmdPending(),
		GetCmdModifications(),
		GetCmdModification(),
		GetCmdChainRegistration(),
		GetCmdMissingObservations(),
	)
	return queryCmd
}

func GetCmdBalance() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance [chain] [token-chain] [token-address]",
		Short: "Query the balance of one account",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientContext(cmd)
			if err != nil {
				return err
			}

			chain, err := parseChainID(args[0])
			if err != nil {
				return err
			}

			tokenChain, err := parseChainID(args[1])
			if err != nil {
				return err
			}

			token, err := vaatypes.AddressFromHex(args[2])
			if err != nil {
				return err
			}

			return clientCtx.Query(fmt.Sprintf("/accountant/accounts/%d/%d/%s", chain, tokenChain, token), nil)
		},
	}
	client.AddQueryFlagsToCmd(cmd)
	return cmd
}

func GetCmdAccounts() *cobra.Command {
	return listCmd("accounts", "List accounts in key order", "/accountant/accounts", false)
}

func GetCmdTransfers() *cobra.Command {
	return listCmd("transfers", "List committed transfers with their digests", "/accountant/transfers", false)
}

func GetCmdPending() *cobra.Command {
	return listCmd("pending", "List transfers waiting for a quorum of observations", "/accountant/pending", false)
}

func GetCmdModifications() *cobra.Command {
	return listCmd("modifications", "List balance modifications", "/accountant/modifications", true)
}

func listCmd(use, short, path string, startAfter bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clientCtx, err := client.GetClientContext(cmd)
			if err != nil {
				return err
			}

			return clientCtx.Query(path, vaacli.PaginationParams(cmd))
		},
	}
	client.AddQueryFlagsToCmd(cmd)
	client.AddPaginationFlagsToCmd(cmd, startAfter)
	return cmd
}

func GetCmdTransferStatus() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer-status [emitter-chain] [emitter-address] [sequence]",
		Short: "Query whether a transfer is committed or pending",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientContext(cmd)
			if err != nil {
				return err
			}

			chain, err := parseChainID(args[0])
			if err != nil {
				return err
			}

			emitter, err := vaatypes.AddressFromHex(args[1])
			if err != nil {
				return err
			}

			sequence, err := strconv.ParseUint(args[2], 10, 64)
			if err != nil {
				return err
			}

			return clientCtx.Query(fmt.Sprintf("/accountant/transfers/%d/%s/%d", chain, emitter, sequence), nil)
		},
	}
	client.AddQueryFlagsToCmd(cmd)
	return cmd
}

func GetCmdModification() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modification [sequence]",
		Short: "Query a balance modification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientContext(cmd)
			if err != nil {
				return err
			}

			sequence, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return err
			}

			return clientCtx.Query(fmt.Sprintf("/accountant/modifications/%d", sequence), nil)
		},
	}
	client.AddQueryFlagsToCmd(cmd)
	return cmd
}

func GetCmdChainRegistration() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registration [chain]",
		Short: "Query the token bridge emitter registered for a chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientContext(cmd)
			if err != nil {
				return err
			}

			chain, err := parseChainID(args[0])
			if err != nil {
				return err
			}

			return clientCtx.Query(fmt.Sprintf("/accountant/registrations/%d", chain), nil)
		},
	}
	client.AddQueryFlagsToCmd(cmd)
	return cmd
}

func GetCmdMissingObservations() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "missing-observations [guardian-set] [guardian-index]",
		Short: "List pending observations a guardian has not signed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientContext(cmd)
			if err != nil {
				return err
			}

			gsIndex, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return err
			}

			index, err := strconv.ParseUint(args[1], 10, 8)
			if err != nil {
				return err
			}

			return clientCtx.Query(fmt.Sprintf("/accountant/missing_observations/%d/%d", gsIndex, index), nil)
		},
	}
	client.AddQueryFlagsToCmd(cmd)
	return cmd
}

func parseChainID(s string) (vaatypes.ChainID, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	return vaatypes.ChainID(v), err
}
