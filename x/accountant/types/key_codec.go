package types

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	collcodec "cosmossdk.io/collections/codec"

	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

// TransferKey identifies a transfer by the message that carried it.
type TransferKey struct {
	EmitterChain   vaatypes.ChainID `json:"emitter_chain"`
	EmitterAddress vaatypes.Address `json:"emitter_address"`
	Sequence       uint64           `json:"sequence"`
}

// NewTransferKey creates a new TransferKey instance
func NewTransferKey(chain vaatypes.ChainID, emitter vaatypes.Address, sequence uint64) TransferKey {
	return TransferKey{EmitterChain: chain, EmitterAddress: emitter, Sequence: sequence}
}

// String returns "chain/emitter/sequence".
func (k TransferKey) String() string {
	return fmt.Sprintf("%d/%s/%d", k.EmitterChain, k.EmitterAddress, k.Sequence)
}

// AccountKey identifies the balance of one token on one chain.
type AccountKey struct {
	ChainID      vaatypes.ChainID `json:"chain_id"`
	TokenChain   vaatypes.ChainID `json:"token_chain"`
	TokenAddress vaatypes.Address `json:"token_address"`
}

// NewAccountKey creates a new AccountKey instance
func NewAccountKey(chainID, tokenChain vaatypes.ChainID, tokenAddress vaatypes.Address) AccountKey {
	return AccountKey{ChainID: chainID, TokenChain: tokenChain, TokenAddress: tokenAddress}
}

// IsNative reports whether the account holds tokens on their origin chain.
func (k AccountKey) IsNative() bool {
	return k.ChainID == k.TokenChain
}

// String returns "chain/token_chain/token_address".
func (k AccountKey) String() string {
	return fmt.Sprintf("%d/%d/%s", k.ChainID, k.TokenChain, k.TokenAddress)
}

const (
	transferKeyLength = 2 + vaatypes.AddressLength + 8
	accountKeyLength  = 2 + 2 + vaatypes.AddressLength
)

var (
	// TransferKeyCodec orders transfer keys by chain, emitter and sequence.
	TransferKeyCodec collcodec.KeyCodec[TransferKey] = fixedKeyCodec[TransferKey]{
		name: "transfer_key",
		size: transferKeyLength,
		encode: func(buffer []byte, key TransferKey) {
			binary.BigEndian.PutUint16(buffer[0:2], uint16(key.EmitterChain))
			copy(buffer[2:34], key.EmitterAddress[:])
			binary.BigEndian.PutUint64(buffer[34:42], key.Sequence)
		},
		decode: func(buffer []byte) TransferKey {
			var key TransferKey
			key.EmitterChain = vaatypes.ChainID(binary.BigEndian.Uint16(buffer[0:2]))
			copy(key.EmitterAddress[:], buffer[2:34])
			key.Sequence = binary.BigEndian.Uint64(buffer[34:42])
			return key
		},
	}

	// AccountKeyCodec orders account keys by chain, token chain and token address.
	AccountKeyCodec collcodec.KeyCodec[AccountKey] = fixedKeyCodec[AccountKey]{
		name: "account_key",
		size: accountKeyLength,
		encode: func(buffer []byte, key AccountKey) {
			binary.BigEndian.PutUint16(buffer[0:2], uint16(key.ChainID))
			binary.BigEndian.PutUint16(buffer[2:4], uint16(key.TokenChain))
			copy(buffer[4:36], key.TokenAddress[:])
		},
		decode: func(buffer []byte) AccountKey {
			var key AccountKey
			key.ChainID = vaatypes.ChainID(binary.BigEndian.Uint16(buffer[0:2]))
			key.TokenChain = vaatypes.ChainID(binary.BigEndian.Uint16(buffer[2:4]))
			copy(key.TokenAddress[:], buffer[4:36])
			return key
		},
	}
)

// fixedKeyCodec encodes struct keys into a fixed number of big endian bytes
// so that the store iterates them in field order.
type fixedKeyCodec[T fmt.Stringer] struct {
	name   string
	size   int
	encode func(buffer []byte, key T)
	decode func(buffer []byte) T
}

func (c fixedKeyCodec[T]) Encode(buffer []byte, key T) (int, error) {
	if len(buffer) < c.size {
		return 0, fmt.Errorf("%w: %s buffer too small", collcodec.ErrEncoding, c.name)
	}

	c.encode(buffer, key)
	return c.size, nil
}

func (c fixedKeyCodec[T]) Decode(buffer []byte) (int, T, error) {
	if len(buffer) < c.size {
		var key T
		return 0, key, fmt.Errorf("%w: %s requires %d bytes, got %d", collcodec.ErrEncoding, c.name, c.size, len(buffer))
	}

	return c.size, c.decode(buffer), nil
}

func (c fixedKeyCodec[T]) Size(_ T) int { return c.size }

func (c fixedKeyCodec[T]) EncodeJSON(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (c fixedKeyCodec[T]) DecodeJSON(b []byte) (T, error) {
	var key T
	err := json.Unmarshal(b, &key)
	return key, err
}

func (c fixedKeyCodec[T]) Stringify(key T) string { return key.String() }

func (c fixedKeyCodec[T]) KeyType() string { return c.name }

func (c fixedKeyCodec[T]) EncodeNonTerminal(buffer []byte, key T) (int, error) {
	return c.Encode(buffer, key)
}

func (c fixedKeyCodec[T]) DecodeNonTerminal(buffer []byte) (int, T, error) {
	return c.Decode(buffer)
}

func (c fixedKeyCodec[T]) SizeNonTerminal(key T) int { return c.Size(key) }
