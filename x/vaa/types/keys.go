package types

const (
	// ModuleName is the name of the vaa module
	ModuleName = "vaa"

	// StoreKey is the string store representation
	StoreKey = ModuleName

	// RouterKey is the msg router key for the vaa module
	RouterKey = ModuleName
)

// Keys for vaa store
// Items are stored with the following key: values
var (
	ParamsKey             = []byte{0x11} // key for parameters for module x/vaa
	CurrentGuardianSetKey = []byte{0x21} // key for the index of the active guardian set
	GuardianSetPrefix     = []byte{0x22} // prefix for guardian sets by index
	ConsumedVAAPrefix     = []byte{0x31} // prefix for consumed vaa digests
)
