package keeper

import (
	"bytes"

	errorsmod "cosmossdk.io/errors"

	"github.com/initia-labs/attestation/crypto/ethsecp256k1"
	"github.com/initia-labs/attestation/crypto/schnorr"
	"github.com/initia-labs/attestation/x/vaa/types"
)

var (
	_ types.SignatureVerifier = ECDSAVerifier{}
	_ types.SignatureVerifier = SchnorrVerifier{}
)

// ECDSAVerifier recovers the signer address from R, S and the recovery id
// and compares it with the 20 byte guardian address.
type ECDSAVerifier struct{}

func (ECDSAVerifier) VerifySignature(digest []byte, sig *types.Signature, key []byte) error {
	addr, err := ethsecp256k1.RecoverAddress(digest, sig.Bytes())
	if err != nil {
		return errorsmod.Wrapf(types.ErrSignatureMismatch, "guardian %d: %v", sig.Index, err)
	}

	if !bytes.Equal(addr.Bytes(), key) {
		return errorsmod.Wrapf(types.ErrSignatureMismatch, "guardian %d: recovered %s", sig.Index, addr.Hex())
	}

	return nil
}

// SchnorrVerifier checks Schnorr signatures whose R field carries the 20 byte
// nonce commitment right aligned.
type SchnorrVerifier struct{}

func (SchnorrVerifier) VerifySignature(digest []byte, sig *types.Signature, key []byte) error {
	var zero [32 - schnorr.CommitmentSize]byte
	if !bytes.Equal(sig.R[:len(zero)], zero[:]) || sig.V != 0 {
		return errorsmod.Wrapf(types.ErrSignatureMismatch, "guardian %d: malformed schnorr signature", sig.Index)
	}

	if err := schnorr.Verify(key, digest, sig.R[len(zero):], sig.S[:]); err != nil {
		return errorsmod.Wrapf(types.ErrSignatureMismatch, "guardian %d: %v", sig.Index, err)
	}

	return nil
}
