package types

import (
	"cosmossdk.io/math"

	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

// QueryBalanceRequest selects one account.
type QueryBalanceRequest struct {
	Key AccountKey `json:"key"`
}

// QueryBalanceResponse returns an account balance.
type QueryBalanceResponse struct {
	Balance math.Uint `json:"balance"`
}

// QueryAllAccountsRequest lists accounts after StartAfter.
type QueryAllAccountsRequest struct {
	StartAfter *AccountKey `json:"start_after,omitempty"`
	Limit      uint32      `json:"limit,omitempty"`
}

// QueryAllAccountsResponse lists accounts in key order.
type QueryAllAccountsResponse struct {
	Accounts []Account `json:"accounts"`
}

// QueryAllTransfersRequest lists committed transfers after StartAfter.
type QueryAllTransfersRequest struct {
	StartAfter *TransferKey `json:"start_after,omitempty"`
	Limit      uint32       `json:"limit,omitempty"`
}

// QueryAllTransfersResponse lists committed transfers with their digests.
type QueryAllTransfersResponse struct {
	Transfers []TransferDetails `json:"transfers"`
}

// QueryAllPendingTransfersRequest lists pending transfers after StartAfter.
type QueryAllPendingTransfersRequest struct {
	StartAfter *TransferKey `json:"start_after,omitempty"`
	Limit      uint32       `json:"limit,omitempty"`
}

// QueryAllPendingTransfersResponse lists pending transfers in key order.
type QueryAllPendingTransfersResponse struct {
	Pending []PendingTransfer `json:"pending"`
}

// QueryModificationRequest selects a modification by sequence.
type QueryModificationRequest struct {
	Sequence uint64 `json:"sequence"`
}

// QueryModificationResponse returns one modification.
type QueryModificationResponse struct {
	Modification Modification `json:"modification"`
}

// QueryAllModificationsRequest lists modifications after StartAfter.
type QueryAllModificationsRequest struct {
	StartAfter *uint64 `json:"start_after,omitempty"`
	Limit      uint32  `json:"limit,omitempty"`
}

// QueryAllModificationsResponse lists modifications in sequence order.
type QueryAllModificationsResponse struct {
	Modifications []Modification `json:"modifications"`
}

// QueryChainRegistrationRequest selects the emitter of a chain.
type QueryChainRegistrationRequest struct {
	Chain vaatypes.ChainID `json:"chain"`
}

// QueryChainRegistrationResponse returns a registered emitter.
type QueryChainRegistrationResponse struct {
	Address vaatypes.Address `json:"address"`
}

// QueryMissingObservationsRequest asks which pending transfers of a
// guardian set lack a signature from guardian Index.
type QueryMissingObservationsRequest struct {
	GuardianSet uint32 `json:"guardian_set"`
	Index       uint8  `json:"index"`
}

// MissingObservation identifies a pending observation by its source tx.
type MissingObservation struct {
	ChainID vaatypes.ChainID `json:"chain_id"`
	TxHash  []byte           `json:"tx_hash"`
}

// QueryMissingObservationsResponse lists missing observations.
type QueryMissingObservationsResponse struct {
	Missing []MissingObservation `json:"missing"`
}

// TransferStatus is either a committed transfer with its digest or the
// pending entries of a key.
type TransferStatus struct {
	Committed *TransferStatusCommitted `json:"committed,omitempty"`
	Pending   []PendingData            `json:"pending,omitempty"`
}

// TransferStatusCommitted is the committed branch of TransferStatus.
type TransferStatusCommitted struct {
	Data   TransferData      `json:"data"`
	Digest vaatypes.HexBytes `json:"digest"`
}

// QueryTransferStatusRequest selects a transfer key.
type QueryTransferStatusRequest struct {
	Key TransferKey `json:"key"`
}

// QueryTransferStatusResponse returns the status of a key.
type QueryTransferStatusResponse struct {
	Status TransferStatus `json:"status"`
}

// QueryBatchTransferStatusRequest selects several transfer keys.
type QueryBatchTransferStatusRequest struct {
	Keys []TransferKey `json:"keys"`
}

// TransferDetailsStatus is the status of one key; Status is nil for
// unknown keys.
type TransferDetailsStatus struct {
	Key    TransferKey     `json:"key"`
	Status *TransferStatus `json:"status"`
}

// QueryBatchTransferStatusResponse returns one entry per requested key.
type QueryBatchTransferStatusResponse struct {
	Details []TransferDetailsStatus `json:"details"`
}

// QueryValidateTransferRequest checks a transfer against current balances.
type QueryValidateTransferRequest struct {
	Transfer Transfer `json:"transfer"`
}

// QueryValidateTransferResponse is empty on success.
type QueryValidateTransferResponse struct{}
