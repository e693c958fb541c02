package types

import (
	"encoding/binary"
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

// Token bridge payload types carrying a transfer.
const (
	PayloadTypeTransfer            = 1
	PayloadTypeTransferWithPayload = 3
)

// TransferPayloadLength is the size of a plain transfer payload; transfers
// with payload carry at least as many bytes.
const TransferPayloadLength = 133

// TransferData is the part of a token bridge transfer the ledger tracks.
type TransferData struct {
	Amount         math.Uint        `json:"amount"`
	TokenChain     vaatypes.ChainID `json:"token_chain"`
	TokenAddress   vaatypes.Address `json:"token_address"`
	RecipientChain vaatypes.ChainID `json:"recipient_chain"`
}

// Transfer is a committed or candidate transfer.
type Transfer struct {
	Key  TransferKey  `json:"key"`
	Data TransferData `json:"data"`
}

// Account is a balance together with its key.
type Account struct {
	Key     AccountKey `json:"key"`
	Balance math.Uint  `json:"balance"`
}

// ParseTransferPayload extracts the transfer data from a token bridge
// payload of type 1 or 3.
//
// Layout: type u8 | amount u256 | token_address [32] | token_chain u16 |
// to [32] | to_chain u16 | fee or from_address [32] | payload...
func ParseTransferPayload(payload []byte) (TransferData, error) {
	if len(payload) == 0 {
		return TransferData{}, errorsmod.Wrap(ErrUnknownPayloadType, "empty payload")
	}

	switch payload[0] {
	case PayloadTypeTransfer:
		if len(payload) != TransferPayloadLength {
			return TransferData{}, errorsmod.Wrapf(ErrInvalidPayload, "transfer payload length %d, expected %d", len(payload), TransferPayloadLength)
		}
	case PayloadTypeTransferWithPayload:
		if len(payload) < TransferPayloadLength {
			return TransferData{}, errorsmod.Wrapf(ErrInvalidPayload, "transfer with payload length %d is shorter than %d", len(payload), TransferPayloadLength)
		}
	default:
		return TransferData{}, errorsmod.Wrapf(ErrUnknownPayloadType, "type %d", payload[0])
	}

	data := TransferData{
		Amount:         math.NewUintFromBigInt(new(big.Int).SetBytes(payload[1:33])),
		TokenChain:     vaatypes.ChainID(binary.BigEndian.Uint16(payload[65:67])),
		RecipientChain: vaatypes.ChainID(binary.BigEndian.Uint16(payload[99:101])),
	}
	copy(data.TokenAddress[:], payload[33:65])

	return data, nil
}

// TransferPayload is a plain token bridge transfer message.
type TransferPayload struct {
	Amount         math.Uint
	TokenAddress   vaatypes.Address
	TokenChain     vaatypes.ChainID
	Recipient      vaatypes.Address
	RecipientChain vaatypes.ChainID
	Fee            math.Uint
}

// Serialize encodes the transfer as a type 1 payload.
func (p TransferPayload) Serialize() []byte {
	bz := make([]byte, TransferPayloadLength)
	bz[0] = PayloadTypeTransfer
	putUint256(bz[1:33], p.Amount)
	copy(bz[33:65], p.TokenAddress[:])
	binary.BigEndian.PutUint16(bz[65:67], uint16(p.TokenChain))
	copy(bz[67:99], p.Recipient[:])
	binary.BigEndian.PutUint16(bz[99:101], uint16(p.RecipientChain))
	putUint256(bz[101:133], p.Fee)
	return bz
}

func putUint256(dst []byte, v math.Uint) {
	if v.IsNil() {
		return
	}

	v.BigInt().FillBytes(dst)
}

func readUint256(src []byte) math.Uint {
	return math.NewUintFromBigInt(new(big.Int).SetBytes(src))
}

// CheckedAdd returns a + b or ErrBalanceOverflow.
func CheckedAdd(a, b math.Uint) (math.Uint, error) {
	sum := new(big.Int).Add(a.BigInt(), b.BigInt())
	if err := math.UintOverflow(sum); err != nil {
		return math.Uint{}, errorsmod.Wrap(ErrBalanceOverflow, err.Error())
	}

	return math.NewUintFromBigInt(sum), nil
}

// CheckedSub returns a - b or ErrInsufficientBalance.
func CheckedSub(a, b math.Uint) (math.Uint, error) {
	if a.LT(b) {
		return math.Uint{}, errorsmod.Wrapf(ErrInsufficientBalance, "balance %s, amount %s", a, b)
	}

	return a.Sub(b), nil
}
