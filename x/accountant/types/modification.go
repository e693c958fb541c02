package types

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

// ModificationKind is the direction of a balance modification.
type ModificationKind uint8

const (
	ModificationKindUnknown ModificationKind = iota
	ModificationKindAdd
	ModificationKindSub
)

// String implements fmt.Stringer.
func (k ModificationKind) String() string {
	switch k {
	case ModificationKindAdd:
		return "add"
	case ModificationKindSub:
		return "sub"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// MarshalJSON implements json.Marshaler.
func (k ModificationKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (k *ModificationKind) UnmarshalJSON(bz []byte) error {
	var s string
	if err := json.Unmarshal(bz, &s); err != nil {
		return err
	}

	switch s {
	case "add":
		*k = ModificationKindAdd
	case "sub":
		*k = ModificationKindSub
	default:
		return fmt.Errorf("unknown modification kind %q", s)
	}

	return nil
}

// ModificationReasonLength is the fixed width of the reason field.
const ModificationReasonLength = 32

// ModifyBalancePayloadLength is sequence(8) + chain(2) + token_chain(2) +
// token_address(32) + kind(1) + amount(32) + reason(32).
const ModifyBalancePayloadLength = 8 + 2 + 2 + vaatypes.AddressLength + 1 + 32 + ModificationReasonLength

// Modification is a governance approved adjustment of one account balance.
type Modification struct {
	Sequence     uint64           `json:"sequence"`
	ChainID      vaatypes.ChainID `json:"chain_id"`
	TokenChain   vaatypes.ChainID `json:"token_chain"`
	TokenAddress vaatypes.Address `json:"token_address"`
	Kind         ModificationKind `json:"kind"`
	Amount       math.Uint        `json:"amount"`
	Reason       string           `json:"reason"`
}

// AccountKey returns the key of the modified account.
func (m Modification) AccountKey() AccountKey {
	return NewAccountKey(m.ChainID, m.TokenChain, m.TokenAddress)
}

// ParseModifyBalance decodes the payload of a GlobalAccountant ModifyBalance
// governance action.
func ParseModifyBalance(bz []byte) (Modification, error) {
	if len(bz) != ModifyBalancePayloadLength {
		return Modification{}, errorsmod.Wrapf(ErrInvalidPayload, "modify balance length %d, expected %d", len(bz), ModifyBalancePayloadLength)
	}

	m := Modification{
		Sequence:   binary.BigEndian.Uint64(bz[0:8]),
		ChainID:    vaatypes.ChainID(binary.BigEndian.Uint16(bz[8:10])),
		TokenChain: vaatypes.ChainID(binary.BigEndian.Uint16(bz[10:12])),
		Kind:       ModificationKind(bz[44]),
		Amount:     readUint256(bz[45:77]),
		Reason:     strings.TrimRight(string(bytes.TrimRight(bz[77:], "\x00")), " "),
	}
	copy(m.TokenAddress[:], bz[12:44])

	if m.Kind != ModificationKindAdd && m.Kind != ModificationKindSub {
		return Modification{}, errorsmod.Wrapf(ErrInvalidPayload, "unsupported modification kind %d", bz[44])
	}

	return m, nil
}

// Serialize encodes the modification as a ModifyBalance payload. The reason
// is truncated or space padded to 32 bytes.
func (m Modification) Serialize() []byte {
	bz := make([]byte, ModifyBalancePayloadLength)
	binary.BigEndian.PutUint64(bz[0:8], m.Sequence)
	binary.BigEndian.PutUint16(bz[8:10], uint16(m.ChainID))
	binary.BigEndian.PutUint16(bz[10:12], uint16(m.TokenChain))
	copy(bz[12:44], m.TokenAddress[:])
	bz[44] = uint8(m.Kind)
	putUint256(bz[45:77], m.Amount)

	reason := bz[77:]
	n := copy(reason, m.Reason)
	for i := n; i < len(reason); i++ {
		reason[i] = ' '
	}

	return bz
}

// RegisterChainPayloadLength is chain(2) + emitter_address(32).
const RegisterChainPayloadLength = 2 + vaatypes.AddressLength

// RegisterChain is the TokenBridge action registering the emitter of a chain.
type RegisterChain struct {
	Chain          vaatypes.ChainID `json:"chain"`
	EmitterAddress vaatypes.Address `json:"emitter_address"`
}

// ParseRegisterChain decodes a RegisterChain payload.
func ParseRegisterChain(bz []byte) (RegisterChain, error) {
	if len(bz) != RegisterChainPayloadLength {
		return RegisterChain{}, errorsmod.Wrapf(ErrInvalidPayload, "register chain length %d, expected %d", len(bz), RegisterChainPayloadLength)
	}

	r := RegisterChain{Chain: vaatypes.ChainID(binary.BigEndian.Uint16(bz[0:2]))}
	copy(r.EmitterAddress[:], bz[2:])
	return r, nil
}

// Serialize encodes the RegisterChain payload.
func (r RegisterChain) Serialize() []byte {
	bz := make([]byte, RegisterChainPayloadLength)
	binary.BigEndian.PutUint16(bz[0:2], uint16(r.Chain))
	copy(bz[2:], r.EmitterAddress[:])
	return bz
}
