package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/initia-labs/attestation/x/accountant/types"
)

type Querier struct {
	*Keeper
}

// NewQueryServer returns an implementation of the accountant query service.
func NewQueryServer(k *Keeper) Querier {
	return Querier{k}
}

// Balance returns the balance of one account.
func (q Querier) Balance(ctx context.Context, req *types.QueryBalanceRequest) (*types.QueryBalanceResponse, error) {
	balance, err := q.Accounts.Get(ctx, req.Key)
	if err != nil {
		return nil, err
	}

	return &types.QueryBalanceResponse{Balance: balance}, nil
}

// AllAccounts lists accounts after StartAfter.
func (q Querier) AllAccounts(ctx context.Context, req *types.QueryAllAccountsRequest) (*types.QueryAllAccountsResponse, error) {
	res := &types.QueryAllAccountsResponse{}
	err := q.Accounts.Walk(ctx, startAfter(req.StartAfter), func(key types.AccountKey, balance math.Uint) (bool, error) {
		res.Accounts = append(res.Accounts, types.Account{Key: key, Balance: balance})
		return limitReached(len(res.Accounts), req.Limit), nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// AllTransfers lists committed transfers after StartAfter with their digests.
func (q Querier) AllTransfers(ctx context.Context, req *types.QueryAllTransfersRequest) (*types.QueryAllTransfersResponse, error) {
	res := &types.QueryAllTransfersResponse{}
	err := q.Transfers.Walk(ctx, startAfter(req.StartAfter), func(key types.TransferKey, data types.TransferData) (bool, error) {
		digest, err := q.Digests.Get(ctx, key)
		if err != nil {
			return true, err
		}

		res.Transfers = append(res.Transfers, types.TransferDetails{
			Transfer: types.Transfer{Key: key, Data: data},
			Digest:   digest,
		})
		return limitReached(len(res.Transfers), req.Limit), nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// AllPendingTransfers lists pending transfers after StartAfter.
func (q Querier) AllPendingTransfers(ctx context.Context, req *types.QueryAllPendingTransfersRequest) (*types.QueryAllPendingTransfersResponse, error) {
	res := &types.QueryAllPendingTransfersResponse{}
	err := q.PendingTransfers.Walk(ctx, startAfter(req.StartAfter), func(key types.TransferKey, data []types.PendingData) (bool, error) {
		res.Pending = append(res.Pending, types.PendingTransfer{Key: key, Data: data})
		return limitReached(len(res.Pending), req.Limit), nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// Modification returns the modification with the given sequence.
func (q Querier) Modification(ctx context.Context, req *types.QueryModificationRequest) (*types.QueryModificationResponse, error) {
	m, err := q.Modifications.Get(ctx, req.Sequence)
	if err != nil {
		return nil, err
	}

	return &types.QueryModificationResponse{Modification: m}, nil
}

// AllModifications lists modifications after StartAfter.
func (q Querier) AllModifications(ctx context.Context, req *types.QueryAllModificationsRequest) (*types.QueryAllModificationsResponse, error) {
	res := &types.QueryAllModificationsResponse{}
	err := q.Modifications.Walk(ctx, startAfter(req.StartAfter), func(_ uint64, m types.Modification) (bool, error) {
		res.Modifications = append(res.Modifications, m)
		return limitReached(len(res.Modifications), req.Limit), nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// ChainRegistration returns the registered emitter of a chain.
func (q Querier) ChainRegistration(ctx context.Context, req *types.QueryChainRegistrationRequest) (*types.QueryChainRegistrationResponse, error) {
	address, err := q.GetChainRegistration(ctx, req.Chain)
	if err != nil {
		return nil, err
	}

	return &types.QueryChainRegistrationResponse{Address: address}, nil
}

// MissingObservations lists pending observations of a guardian set that the
// guardian at Index has not signed.
func (q Querier) MissingObservations(ctx context.Context, req *types.QueryMissingObservationsRequest) (*types.QueryMissingObservationsResponse, error) {
	res := &types.QueryMissingObservationsResponse{}
	err := q.PendingTransfers.Walk(ctx, nil, func(_ types.TransferKey, pending []types.PendingData) (bool, error) {
		for _, data := range pending {
			if data.GuardianSetIndex == req.GuardianSet && !data.HasSignature(req.Index) {
				res.Missing = append(res.Missing, types.MissingObservation{
					ChainID: data.EmitterChain,
					TxHash:  data.TxHash,
				})
			}
		}

		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// TransferStatus returns the committed data or pending entries of a key.
func (q Querier) TransferStatus(ctx context.Context, req *types.QueryTransferStatusRequest) (*types.QueryTransferStatusResponse, error) {
	status, err := q.GetTransferStatus(ctx, req.Key)
	if err != nil {
		return nil, err
	}

	return &types.QueryTransferStatusResponse{Status: *status}, nil
}

// BatchTransferStatus returns the status of several keys. Unknown keys get a
// nil status.
func (q Querier) BatchTransferStatus(ctx context.Context, req *types.QueryBatchTransferStatusRequest) (*types.QueryBatchTransferStatusResponse, error) {
	res := &types.QueryBatchTransferStatusResponse{}
	for _, key := range req.Keys {
		status, err := q.GetTransferStatus(ctx, key)
		if err != nil && !errors.Is(err, types.ErrTransferNotFound) {
			return nil, err
		}

		res.Details = append(res.Details, types.TransferDetailsStatus{Key: key, Status: status})
	}

	return res, nil
}

// ValidateTransfer checks a transfer against current balances.
func (q Querier) ValidateTransfer(ctx context.Context, req *types.QueryValidateTransferRequest) (*types.QueryValidateTransferResponse, error) {
	if err := q.Keeper.ValidateTransfer(ctx, req.Transfer); err != nil {
		return nil, err
	}

	return &types.QueryValidateTransferResponse{}, nil
}

// GetTransferStatus returns the status of key or ErrTransferNotFound.
func (k Keeper) GetTransferStatus(ctx context.Context, key types.TransferKey) (*types.TransferStatus, error) {
	digest, found, err := k.getDigest(ctx, key)
	if err != nil {
		return nil, err
	}

	if found {
		data, err := k.Transfers.Get(ctx, key)
		if err != nil {
			return nil, err
		}

		return &types.TransferStatus{
			Committed: &types.TransferStatusCommitted{Data: data, Digest: digest},
		}, nil
	}

	pending, err := k.getPending(ctx, key)
	if err != nil {
		return nil, err
	} else if len(pending) == 0 {
		return nil, errorsmod.Wrapf(types.ErrTransferNotFound, "transfer with key %s", key)
	}

	return &types.TransferStatus{Pending: pending}, nil
}

func startAfter[K any](key *K) collections.Ranger[K] {
	if key == nil {
		return nil
	}

	return new(collections.Range[K]).StartExclusive(*key)
}

func limitReached(n int, limit uint32) bool {
	return limit != 0 && n >= int(limit)
}
