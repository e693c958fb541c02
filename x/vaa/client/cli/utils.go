package cli

import (
	"encoding/base64"
	"encoding/hex"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/initia-labs/attestation/x/vaa/types"
)

// ParseBytesArg decodes a hex (optionally 0x prefixed) or base64 argument.
// An argument naming an existing file is decoded from the file contents.
func ParseBytesArg(arg string) ([]byte, error) {
	if contents, err := os.ReadFile(arg); err == nil {
		arg = string(contents)
	}

	arg = strings.TrimSpace(arg)
	if bz, err := hex.DecodeString(strings.TrimPrefix(arg, "0x")); err == nil {
		return bz, nil
	}

	bz, err := base64.StdEncoding.DecodeString(arg)
	if err != nil {
		return nil, errors.New("argument is neither hex, base64 nor a readable file")
	}

	return bz, nil
}

// ParseVAAArg decodes an envelope argument in any form ParseBytesArg accepts.
func ParseVAAArg(arg string) (*types.VAA, []byte, error) {
	bz, err := ParseBytesArg(arg)
	if err != nil {
		return nil, nil, err
	}

	v, err := types.Unmarshal(bz)
	if err != nil {
		return nil, nil, err
	}

	return v, bz, nil
}

// SignatureView is the printable form of a guardian signature.
type SignatureView struct {
	Index     uint8          `json:"index"`
	Signature types.HexBytes `json:"signature"`
}

// VAAView is the printable form of an envelope.
type VAAView struct {
	Version          uint8           `json:"version"`
	GuardianSetIndex uint32          `json:"guardian_set_index"`
	Signatures       []SignatureView `json:"signatures"`
	Timestamp        uint32          `json:"timestamp"`
	Nonce            uint32          `json:"nonce"`
	EmitterChain     types.ChainID   `json:"emitter_chain"`
	EmitterAddress   types.Address   `json:"emitter_address"`
	Sequence         uint64          `json:"sequence"`
	ConsistencyLevel uint8           `json:"consistency_level"`
	Payload          types.HexBytes  `json:"payload"`
	Digest           string          `json:"digest"`
	MessageID        string          `json:"message_id"`
}

// NewVAAView returns the printable form of v.
func NewVAAView(v *types.VAA) VAAView {
	signatures := make([]SignatureView, len(v.Signatures))
	for i, sig := range v.Signatures {
		signatures[i] = SignatureView{Index: sig.Index, Signature: sig.Bytes()}
	}

	return VAAView{
		Version:          v.Version,
		GuardianSetIndex: v.GuardianSetIndex,
		Signatures:       signatures,
		Timestamp:        v.Timestamp,
		Nonce:            v.Nonce,
		EmitterChain:     v.EmitterChain,
		EmitterAddress:   v.EmitterAddress,
		Sequence:         v.Sequence,
		ConsistencyLevel: v.ConsistencyLevel,
		Payload:          v.Payload,
		Digest:           v.HexDigest(),
		MessageID:        v.MessageID(),
	}
}
