package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AddressLength is the byte length of emitter and token addresses.
const AddressLength = 32

// Address is a chain agnostic 32 byte address. Shorter native addresses
// are left padded with zeros.
type Address [AddressLength]byte

// ChainID is the protocol level identifier of a chain.
type ChainID uint16

const (
	// ChainIDUnset is the universal target of governance actions.
	ChainIDUnset ChainID = 0

	ChainIDSolana    ChainID = 1
	ChainIDEthereum  ChainID = 2
	ChainIDTerra     ChainID = 3
	ChainIDBSC       ChainID = 4
	ChainIDPolygon   ChainID = 5
	ChainIDAvalanche ChainID = 6
	ChainIDOasis     ChainID = 7
	ChainIDAlgorand  ChainID = 8
	ChainIDAptos     ChainID = 22
	ChainIDSui       ChainID = 21
	ChainIDInitia    ChainID = 3104
)

// DefaultLocalChainID is the chain id governance actions are matched against
// when no other value is configured.
const DefaultLocalChainID = ChainIDInitia

// String implements fmt.Stringer.
func (c ChainID) String() string {
	return strconv.FormatUint(uint64(c), 10)
}

// AddressFromBytes left pads the given bytes into an Address.
func AddressFromBytes(bz []byte) (Address, error) {
	var addr Address
	if len(bz) > AddressLength {
		return addr, fmt.Errorf("address too long: %d bytes", len(bz))
	}

	copy(addr[AddressLength-len(bz):], bz)
	return addr, nil
}

// AddressFromHex parses a hex encoded address, with or without 0x prefix.
func AddressFromHex(s string) (Address, error) {
	bz, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return Address{}, err
	}

	return AddressFromBytes(bz)
}

// Bytes returns a copy of the address bytes.
func (a Address) Bytes() []byte {
	bz := make([]byte, AddressLength)
	copy(bz, a[:])
	return bz
}

// String returns the lower case hex encoding without prefix.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// MarshalJSON implements json.Marshaler.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Address) UnmarshalJSON(bz []byte) error {
	var s string
	if err := json.Unmarshal(bz, &s); err != nil {
		return err
	}

	addr, err := AddressFromHex(s)
	if err != nil {
		return err
	}

	*a = addr
	return nil
}
