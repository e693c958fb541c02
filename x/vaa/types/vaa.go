package types

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"

	errorsmod "cosmossdk.io/errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// SupportedVAAVersion is the only envelope version accepted by Unmarshal.
	SupportedVAAVersion = 0x01

	// HeaderLength is the fixed part of the header preceding the signatures.
	HeaderLength = 6
	// SignatureLength is the encoded size of one guardian signature.
	SignatureLength = 66
	// BodyLength is the fixed part of the body preceding the payload.
	BodyLength = 51
	// MinVAALength is the size of an envelope without signatures and payload.
	MinVAALength = HeaderLength + BodyLength

	// MinMessagePrefixLength is the shortest domain prefix MessageSigningDigest accepts.
	MinMessagePrefixLength = 32
)

// Signature is a single guardian signature inside an envelope. For ECDSA
// sets R and S are the curve values and V the recovery id. For Schnorr sets
// R carries the 20 byte nonce commitment right aligned, S the response
// scalar, and V is zero.
type Signature struct {
	Index uint8    `json:"index"`
	R     [32]byte `json:"r"`
	S     [32]byte `json:"s"`
	V     uint8    `json:"v"`
}

// SignatureFromBytes builds a Signature from a 65 byte R || S || V slice.
func SignatureFromBytes(index uint8, bz []byte) (*Signature, error) {
	if len(bz) != 65 {
		return nil, errorsmod.Wrapf(ErrInvalidSignature, "expected 65 bytes, got %d", len(bz))
	}

	sig := &Signature{Index: index, V: bz[64]}
	copy(sig.R[:], bz[:32])
	copy(sig.S[:], bz[32:64])
	return sig, nil
}

// NewSchnorrSignature packs a 20 byte commitment and a 32 byte scalar into
// the envelope signature layout.
func NewSchnorrSignature(index uint8, commitment, s []byte) *Signature {
	sig := &Signature{Index: index}
	copy(sig.R[32-len(commitment):], commitment)
	copy(sig.S[:], s)
	return sig
}

// Bytes returns R || S || V.
func (s Signature) Bytes() []byte {
	bz := make([]byte, 65)
	copy(bz[:32], s.R[:])
	copy(bz[32:64], s.S[:])
	bz[64] = s.V
	return bz
}

type signatureJSON struct {
	Index uint8    `json:"index"`
	R     HexBytes `json:"r"`
	S     HexBytes `json:"s"`
	V     uint8    `json:"v"`
}

// MarshalJSON encodes R and S as hex strings.
func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(signatureJSON{Index: s.Index, R: s.R[:], S: s.S[:], V: s.V})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Signature) UnmarshalJSON(bz []byte) error {
	var raw signatureJSON
	if err := json.Unmarshal(bz, &raw); err != nil {
		return err
	}

	if len(raw.R) != 32 || len(raw.S) != 32 {
		return errorsmod.Wrapf(ErrInvalidSignature, "r and s must be 32 bytes, got %d and %d", len(raw.R), len(raw.S))
	}

	*s = Signature{Index: raw.Index, V: raw.V}
	copy(s.R[:], raw.R)
	copy(s.S[:], raw.S)
	return nil
}

// VAA is a verifiable action approval, the signed envelope carrying one
// cross chain message.
type VAA struct {
	Version          uint8
	GuardianSetIndex uint32
	Signatures       []*Signature

	Timestamp        uint32
	Nonce            uint32
	EmitterChain     ChainID
	EmitterAddress   Address
	Sequence         uint64
	ConsistencyLevel uint8
	Payload          []byte
}

// Unmarshal decodes an envelope from its wire format. Any truncation,
// version mismatch or short signature list is reported as ErrMalformedEnvelope.
func Unmarshal(data []byte) (*VAA, error) {
	if len(data) < MinVAALength {
		return nil, errorsmod.Wrapf(ErrMalformedEnvelope, "length %d is shorter than the minimum %d", len(data), MinVAALength)
	}

	v := &VAA{}
	v.Version = data[0]
	if v.Version != SupportedVAAVersion {
		return nil, errorsmod.Wrapf(ErrMalformedEnvelope, "unsupported version %d", v.Version)
	}

	v.GuardianSetIndex = binary.BigEndian.Uint32(data[1:5])

	lenSignatures := int(data[5])
	sigEnd := HeaderLength + lenSignatures*SignatureLength
	if len(data) < sigEnd+BodyLength {
		return nil, errorsmod.Wrapf(ErrMalformedEnvelope, "length %d too short for %d signatures", len(data), lenSignatures)
	}

	v.Signatures = make([]*Signature, lenSignatures)
	for i := 0; i < lenSignatures; i++ {
		offset := HeaderLength + i*SignatureLength
		sig := &Signature{Index: data[offset]}
		copy(sig.R[:], data[offset+1:offset+33])
		copy(sig.S[:], data[offset+33:offset+65])
		sig.V = data[offset+65]
		v.Signatures[i] = sig
	}

	if err := v.unmarshalBody(data[sigEnd:]); err != nil {
		return nil, err
	}

	return v, nil
}

func (v *VAA) unmarshalBody(body []byte) error {
	if len(body) < BodyLength {
		return errorsmod.Wrapf(ErrMalformedEnvelope, "body length %d is shorter than %d", len(body), BodyLength)
	}

	v.Timestamp = binary.BigEndian.Uint32(body[0:4])
	v.Nonce = binary.BigEndian.Uint32(body[4:8])
	v.EmitterChain = ChainID(binary.BigEndian.Uint16(body[8:10]))
	copy(v.EmitterAddress[:], body[10:42])
	v.Sequence = binary.BigEndian.Uint64(body[42:50])
	v.ConsistencyLevel = body[50]
	v.Payload = slices.Clone(body[BodyLength:])
	if v.Payload == nil {
		v.Payload = []byte{}
	}

	return nil
}

// Marshal encodes the envelope into its wire format.
func (v *VAA) Marshal() ([]byte, error) {
	if len(v.Signatures) > 255 {
		return nil, errorsmod.Wrapf(ErrMalformedEnvelope, "too many signatures: %d", len(v.Signatures))
	}

	body := v.MarshalBody()
	bz := make([]byte, HeaderLength, HeaderLength+len(v.Signatures)*SignatureLength+len(body))
	bz[0] = v.Version
	binary.BigEndian.PutUint32(bz[1:5], v.GuardianSetIndex)
	bz[5] = uint8(len(v.Signatures))

	for _, sig := range v.Signatures {
		bz = append(bz, sig.Index)
		bz = append(bz, sig.R[:]...)
		bz = append(bz, sig.S[:]...)
		bz = append(bz, sig.V)
	}

	return append(bz, body...), nil
}

// MarshalBody encodes the signed part of the envelope.
func (v *VAA) MarshalBody() []byte {
	body := make([]byte, BodyLength, BodyLength+len(v.Payload))
	binary.BigEndian.PutUint32(body[0:4], v.Timestamp)
	binary.BigEndian.PutUint32(body[4:8], v.Nonce)
	binary.BigEndian.PutUint16(body[8:10], uint16(v.EmitterChain))
	copy(body[10:42], v.EmitterAddress[:])
	binary.BigEndian.PutUint64(body[42:50], v.Sequence)
	body[50] = v.ConsistencyLevel
	return append(body, v.Payload...)
}

// SigningDigest returns the double keccak256 of the body, the value every
// guardian signs.
func (v *VAA) SigningDigest() common.Hash {
	return Digest(v.MarshalBody())
}

// HexDigest returns the hex encoded signing digest.
func (v *VAA) HexDigest() string {
	return hex.EncodeToString(v.SigningDigest().Bytes())
}

// MessageID returns "chain/emitter/sequence".
func (v *VAA) MessageID() string {
	return fmt.Sprintf("%d/%s/%d", v.EmitterChain, v.EmitterAddress, v.Sequence)
}

// AddSignature inserts sig keeping the list ordered by guardian index. An
// existing signature for the same index is replaced.
func (v *VAA) AddSignature(sig *Signature) {
	i, found := slices.BinarySearchFunc(v.Signatures, sig.Index, func(s *Signature, index uint8) int {
		return int(s.Index) - int(index)
	})
	if found {
		v.Signatures[i] = sig
		return
	}

	v.Signatures = slices.Insert(v.Signatures, i, sig)
}

// Digest returns keccak256(keccak256(body)).
func Digest(body []byte) common.Hash {
	return crypto.Keccak256Hash(crypto.Keccak256(body))
}

// MessageSigningDigest returns keccak256(prefix || data). The prefix
// separates signatures over arbitrary data from envelope signatures and
// must be at least 32 bytes long.
func MessageSigningDigest(prefix, data []byte) (common.Hash, error) {
	if len(prefix) < MinMessagePrefixLength {
		return common.Hash{}, errorsmod.Wrapf(ErrInvalidSignature, "message prefix must be at least %d bytes", MinMessagePrefixLength)
	}

	return crypto.Keccak256Hash(prefix, data), nil
}
