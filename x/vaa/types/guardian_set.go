package types

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"time"

	errorsmod "cosmossdk.io/errors"
)

// MaxGuardians bounds a guardian set to what a signature index can address.
const MaxGuardians = 256

// SignatureScheme selects how guardian signatures of a set are checked.
type SignatureScheme uint8

const (
	// SchemeECDSA keys are 20 byte addresses recovered from secp256k1 ECDSA signatures.
	SchemeECDSA SignatureScheme = iota
	// SchemeSchnorr keys are 32 byte px<<1|parity commitments checked with one recovery call.
	SchemeSchnorr
)

// KeyLength returns the byte width of a guardian key under the scheme.
func (s SignatureScheme) KeyLength() int {
	switch s {
	case SchemeECDSA:
		return 20
	case SchemeSchnorr:
		return 32
	default:
		return 0
	}
}

// String implements fmt.Stringer.
func (s SignatureScheme) String() string {
	switch s {
	case SchemeECDSA:
		return "ecdsa"
	case SchemeSchnorr:
		return "schnorr"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// SignatureVerifier checks one guardian signature over a digest against the
// guardian key stored in the set.
type SignatureVerifier interface {
	VerifySignature(digest []byte, sig *Signature, key []byte) error
}

// GuardianSet is a versioned, ordered list of guardian keys.
type GuardianSet struct {
	Index          uint32          `json:"index"`
	Keys           []HexBytes      `json:"keys"`
	CreationTime   uint64          `json:"creation_time"`
	ExpirationTime uint64          `json:"expiration_time"`
	Scheme         SignatureScheme `json:"scheme"`
}

// IsActive reports whether the set may still verify signatures at now.
// An expiration time of zero means the set has no successor yet.
func (gs GuardianSet) IsActive(now time.Time) bool {
	return gs.ExpirationTime == 0 || uint64(now.Unix()) < gs.ExpirationTime
}

// Quorum returns the number of signatures the set needs.
func (gs GuardianSet) Quorum() int {
	return CalculateQuorum(len(gs.Keys))
}

// KeyIndex returns the position of key in the set.
func (gs GuardianSet) KeyIndex(key []byte) (int, bool) {
	for i, k := range gs.Keys {
		if bytes.Equal(k, key) {
			return i, true
		}
	}

	return -1, false
}

// Validate checks the set is non empty, addressable by a u8 index and that
// all keys have the scheme width and are unique.
func (gs GuardianSet) Validate() error {
	if len(gs.Keys) == 0 {
		return errorsmod.Wrap(ErrInvalidGuardianSet, "empty guardian set")
	}

	if len(gs.Keys) > MaxGuardians {
		return errorsmod.Wrapf(ErrInvalidGuardianSet, "too many guardians: %d", len(gs.Keys))
	}

	width := gs.Scheme.KeyLength()
	if width == 0 {
		return errorsmod.Wrapf(ErrUnknownSignatureScheme, "scheme %d", gs.Scheme)
	}

	seen := make(map[string]struct{}, len(gs.Keys))
	for i, key := range gs.Keys {
		if len(key) != width {
			return errorsmod.Wrapf(ErrInvalidGuardianSet, "key %d has length %d, expected %d", i, len(key), width)
		}

		if _, ok := seen[string(key)]; ok {
			return errorsmod.Wrapf(ErrInvalidGuardianSet, "duplicate key %x", []byte(key))
		}
		seen[string(key)] = struct{}{}
	}

	return nil
}

// HexBytes is a byte slice that encodes to JSON as a hex string.
type HexBytes []byte

// String implements fmt.Stringer.
func (b HexBytes) String() string {
	return hex.EncodeToString(b)
}

// MarshalText implements encoding.TextMarshaler.
func (b HexBytes) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(b)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *HexBytes) UnmarshalText(text []byte) error {
	bz, err := hex.DecodeString(string(bytes.TrimPrefix(text, []byte("0x"))))
	if err != nil {
		return err
	}

	*b = bz
	return nil
}
