package cli

import (
	flag "github.com/spf13/pflag"

	vaacli "github.com/initia-labs/attestation/x/vaa/client/cli"
	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

const (
	// FlagGuardianSet is the guardian set the observation signer belongs to
	FlagGuardianSet = vaacli.FlagGuardianSet
)

// common flagsets to add to various functions
var (
	fsGuardianSet = flag.NewFlagSet("", flag.ContinueOnError)
	fsSigner      = flag.NewFlagSet("", flag.ContinueOnError)
)

func init() {
	fsGuardianSet.Uint32(FlagGuardianSet, 0, "Index of the guardian set signing the observations")
	fsSigner.String(vaacli.FlagKey, "", "Hex encoded guardian private key")
	fsSigner.Uint8(vaacli.FlagIndex, 0, "Index of the guardian in its set")
	fsSigner.String(vaacli.FlagScheme, vaatypes.SchemeECDSA.String(), "Signature scheme (ecdsa|schnorr)")
}
