package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/cosmos-sdk/telemetry"

	"github.com/initia-labs/attestation/x/vaa/types"
)

// VerifyVAA checks that v carries a quorum of valid signatures from the
// guardian set it names, and that this set is still active.
func (k Keeper) VerifyVAA(ctx context.Context, v *types.VAA) error {
	gs, err := k.GetActiveGuardianSet(ctx, v.GuardianSetIndex)
	if err != nil {
		return err
	}

	digest := v.SigningDigest()
	if err := k.verifySignatures(gs, digest.Bytes(), v.Signatures); err != nil {
		telemetry.IncrCounter(1, types.ModuleName, "verify_failed")
		return err
	}

	telemetry.IncrCounter(1, types.ModuleName, "verified")
	return nil
}

// ParseAndVerifyVAA decodes bz and verifies it.
func (k Keeper) ParseAndVerifyVAA(ctx context.Context, bz []byte) (*types.VAA, error) {
	v, err := types.Unmarshal(bz)
	if err != nil {
		return nil, err
	}

	if err := k.VerifyVAA(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}

// VerifyMessageSignature checks a single guardian signature over
// keccak256(prefix || data) against the active guardian set gsIndex.
func (k Keeper) VerifyMessageSignature(ctx context.Context, prefix, data []byte, gsIndex uint32, sig *types.Signature) error {
	gs, err := k.GetActiveGuardianSet(ctx, gsIndex)
	if err != nil {
		return err
	}

	if int(sig.Index) >= len(gs.Keys) {
		return errorsmod.Wrapf(types.ErrIndexOutOfRange, "index %d, guardian set %d has %d keys", sig.Index, gs.Index, len(gs.Keys))
	}

	digest, err := types.MessageSigningDigest(prefix, data)
	if err != nil {
		return err
	}

	verifier, err := k.verifier(gs.Scheme)
	if err != nil {
		return err
	}

	return verifier.VerifySignature(digest.Bytes(), sig, gs.Keys[sig.Index])
}

// CalculateQuorum returns the quorum of the active guardian set gsIndex.
func (k Keeper) CalculateQuorum(ctx context.Context, gsIndex uint32) (int, error) {
	gs, err := k.GetActiveGuardianSet(ctx, gsIndex)
	if err != nil {
		return 0, err
	}

	return gs.Quorum(), nil
}

func (k Keeper) verifier(scheme types.SignatureScheme) (types.SignatureVerifier, error) {
	verifier, ok := k.verifiers[scheme]
	if !ok {
		return nil, errorsmod.Wrapf(types.ErrUnknownSignatureScheme, "%s", scheme)
	}

	return verifier, nil
}

// verifySignatures enforces the quorum before any cryptography, then the
// ordering and range of guardian indices, then checks every signature.
func (k Keeper) verifySignatures(gs types.GuardianSet, digest []byte, sigs []*types.Signature) error {
	quorum := gs.Quorum()
	if len(sigs) < quorum {
		return errorsmod.Wrapf(types.ErrInsufficientSignatures, "got %d, quorum %d", len(sigs), quorum)
	}

	for i, sig := range sigs {
		if i > 0 && sig.Index <= sigs[i-1].Index {
			return errorsmod.Wrapf(types.ErrNonMonotonicIndex, "index %d follows %d", sig.Index, sigs[i-1].Index)
		}

		if int(sig.Index) >= len(gs.Keys) {
			return errorsmod.Wrapf(types.ErrIndexOutOfRange, "index %d, guardian set %d has %d keys", sig.Index, gs.Index, len(gs.Keys))
		}
	}

	verifier, err := k.verifier(gs.Scheme)
	if err != nil {
		return err
	}

	for _, sig := range sigs {
		if err := verifier.VerifySignature(digest, sig, gs.Keys[sig.Index]); err != nil {
			return err
		}
	}

	return nil
}
