package guardian

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"

	"github.com/initia-labs/attestation/crypto/ethsecp256k1"
	"github.com/initia-labs/attestation/crypto/schnorr"
	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

// Signer holds the private key of one guardian under a signature scheme.
type Signer struct {
	scheme  vaatypes.SignatureScheme
	ecdsa   *ethsecp256k1.PrivKey
	schnorr *schnorr.PrivKey
}

// GenerateSigner returns a random signer for scheme.
func GenerateSigner(scheme vaatypes.SignatureScheme) (*Signer, error) {
	switch scheme {
	case vaatypes.SchemeECDSA:
		return &Signer{scheme: scheme, ecdsa: ethsecp256k1.GenerateKey()}, nil
	case vaatypes.SchemeSchnorr:
		key, err := schnorr.GenerateKey()
		if err != nil {
			return nil, err
		}

		return &Signer{scheme: scheme, schnorr: key}, nil
	default:
		return nil, errors.Wrapf(vaatypes.ErrUnknownSignatureScheme, "%s", scheme)
	}
}

// NewSigner wraps a 32 byte private scalar.
func NewSigner(scheme vaatypes.SignatureScheme, bz []byte) (*Signer, error) {
	switch scheme {
	case vaatypes.SchemeECDSA:
		key, err := ethsecp256k1.PrivKeyFromBytes(bz)
		if err != nil {
			return nil, err
		}

		return &Signer{scheme: scheme, ecdsa: key}, nil
	case vaatypes.SchemeSchnorr:
		key, err := schnorr.PrivKeyFromBytes(bz)
		if err != nil {
			return nil, err
		}

		return &Signer{scheme: scheme, schnorr: key}, nil
	default:
		return nil, errors.Wrapf(vaatypes.ErrUnknownSignatureScheme, "%s", scheme)
	}
}

// SignerFromHex parses a hex encoded private scalar, with or without 0x prefix.
func SignerFromHex(scheme vaatypes.SignatureScheme, s string) (*Signer, error) {
	bz, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid private key")
	}

	return NewSigner(scheme, bz)
}

// ParseScheme parses "ecdsa" or "schnorr".
func ParseScheme(s string) (vaatypes.SignatureScheme, error) {
	switch strings.ToLower(s) {
	case vaatypes.SchemeECDSA.String():
		return vaatypes.SchemeECDSA, nil
	case vaatypes.SchemeSchnorr.String():
		return vaatypes.SchemeSchnorr, nil
	default:
		return 0, errors.Wrapf(vaatypes.ErrUnknownSignatureScheme, "%q", s)
	}
}

// Scheme returns the signature scheme of the signer.
func (s *Signer) Scheme() vaatypes.SignatureScheme {
	return s.scheme
}

// Key returns the public guardian key stored in a guardian set: a 20 byte
// address for ECDSA, a 32 byte commitment for Schnorr.
func (s *Signer) Key() vaatypes.HexBytes {
	if s.scheme == vaatypes.SchemeSchnorr {
		return s.schnorr.PubKey()
	}

	return s.ecdsa.Address().Bytes()
}

// PrivKeyBytes returns the private scalar.
func (s *Signer) PrivKeyBytes() []byte {
	if s.scheme == vaatypes.SchemeSchnorr {
		return s.schnorr.Bytes()
	}

	return s.ecdsa.Bytes()
}

// SignDigest signs digest as the guardian at index.
func (s *Signer) SignDigest(index uint8, digest []byte) (*vaatypes.Signature, error) {
	if s.scheme == vaatypes.SchemeSchnorr {
		commitment, sig, err := s.schnorr.Sign(digest)
		if err != nil {
			return nil, err
		}

		return vaatypes.NewSchnorrSignature(index, commitment, sig), nil
	}

	bz, err := s.ecdsa.Sign(digest)
	if err != nil {
		return nil, err
	}

	return vaatypes.SignatureFromBytes(index, bz)
}

// SignVAA adds the signature of the guardian at index to v.
func (s *Signer) SignVAA(index uint8, v *vaatypes.VAA) error {
	sig, err := s.SignDigest(index, v.SigningDigest().Bytes())
	if err != nil {
		return err
	}

	v.AddSignature(sig)
	return nil
}

// SignMessage signs keccak256(prefix || data) as the guardian at index.
func (s *Signer) SignMessage(index uint8, prefix, data []byte) (*vaatypes.Signature, error) {
	digest, err := vaatypes.MessageSigningDigest(prefix, data)
	if err != nil {
		return nil, err
	}

	return s.SignDigest(index, digest.Bytes())
}
