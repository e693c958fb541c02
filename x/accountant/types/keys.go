package types

const (
	// ModuleName is the name of the accountant module
	ModuleName = "accountant"

	// StoreKey is the string store representation
	StoreKey = ModuleName

	// RouterKey is the msg router key for the accountant module
	RouterKey = ModuleName
)

// Keys for accountant store
// Items are stored with the following key: values
var (
	AccountsPrefix           = []byte{0x11} // prefix for account balances
	TransfersPrefix          = []byte{0x21} // prefix for committed transfers
	DigestsPrefix            = []byte{0x22} // prefix for committed message digests
	PendingTransfersPrefix   = []byte{0x23} // prefix for partially observed transfers
	ModificationsPrefix      = []byte{0x31} // prefix for balance modifications
	ChainRegistrationsPrefix = []byte{0x41} // prefix for registered token bridge emitters
)

// SubmittedObservationsPrefix is prepended to a serialized observation batch
// before guardians sign it.
var SubmittedObservationsPrefix = []byte("acct_sub_obsfig_000000000000000000|")
