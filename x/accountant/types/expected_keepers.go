package types

import (
	"context"

	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

// VaaKeeper is the part of the vaa keeper the ledger depends on.
type VaaKeeper interface {
	VerifyVAA(ctx context.Context, v *vaatypes.VAA) error
	VerifyMessageSignature(ctx context.Context, prefix, data []byte, gsIndex uint32, sig *vaatypes.Signature) error
	CalculateQuorum(ctx context.Context, gsIndex uint32) (int, error)
	LocalChainID(ctx context.Context) (vaatypes.ChainID, error)
}
