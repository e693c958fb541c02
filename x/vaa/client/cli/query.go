package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	sdkclient "github.com/cosmos/cosmos-sdk/client"

	"github.com/initia-labs/attestation/client"
	"github.com/initia-labs/attestation/x/vaa/types"
)

// GetQueryCmd returns the query commands of the vaa module.
func GetQueryCmd() *cobra.Command {
	queryCmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Querying commands for the vaa module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       sdkclient.ValidateCmd,
	}
	queryCmd.AddCommand(
		GetCmdQueryParams(),
		GetCmdGuardianSet(),
		GetCmdGuardianSets(),
		GetCmdVerify(),
		GetCmdConsumed(),
	)
	return queryCmd
}

func GetCmdQueryParams() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Query the current vaa parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clientCtx, err := client.GetClientContext(cmd)
			if err != nil {
				return err
			}

			return clientCtx.Query("/vaa/params", nil)
		},
	}
	client.AddQueryFlagsToCmd(cmd)
	return cmd
}

func GetCmdGuardianSet() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "guardian-set [index]",
		Short:   "Query a guardian set, the current one without index",
		Aliases: []string{"gs"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientContext(cmd)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return clientCtx.Query("/vaa/guardian_sets/current", nil)
			}

			index, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return err
			}

			return clientCtx.Query(fmt.Sprintf("/vaa/guardian_sets/%d", index), nil)
		},
	}
	client.AddQueryFlagsToCmd(cmd)
	return cmd
}

func GetCmdGuardianSets() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guardian-sets",
		Short: "List guardian sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clientCtx, err := client.GetClientContext(cmd)
			if err != nil {
				return err
			}

			return clientCtx.Query("/vaa/guardian_sets", PaginationParams(cmd))
		},
	}
	client.AddQueryFlagsToCmd(cmd)
	client.AddPaginationFlagsToCmd(cmd, true)
	return cmd
}

func GetCmdVerify() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [vaa]",
		Short: "Verify an envelope against the engine without consuming it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientContext(cmd)
			if err != nil {
				return err
			}

			_, bz, err := ParseVAAArg(args[0])
			if err != nil {
				return err
			}

			return clientCtx.Broadcast("/vaa/verify", types.QueryVerifyVAARequest{VAA: bz})
		},
	}
	client.AddQueryFlagsToCmd(cmd)
	return cmd
}

func GetCmdConsumed() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consumed [digest]",
		Short: "Query whether an envelope digest was consumed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientContext(cmd)
			if err != nil {
				return err
			}

			var digest types.HexBytes
			if err := digest.UnmarshalText([]byte(args[0])); err != nil {
				return err
			}

			return clientCtx.Query("/vaa/consumed/"+digest.String(), nil)
		},
	}
	client.AddQueryFlagsToCmd(cmd)
	return cmd
}

// PaginationParams reads --limit and --start-after into url parameters.
func PaginationParams(cmd *cobra.Command) url.Values {
	params := url.Values{}
	if limit, err := cmd.Flags().GetUint32(client.FlagLimit); err == nil && limit != 0 {
		params.Set("limit", strconv.FormatUint(uint64(limit), 10))
	}

	if cmd.Flags().Changed(client.FlagStartAfter) {
		startAfter, _ := cmd.Flags().GetUint64(client.FlagStartAfter)
		params.Set("start_after", strconv.FormatUint(startAfter, 10))
	}

	return params
}
