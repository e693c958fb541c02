package service

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/initia-labs/attestation/app"
	accountanttypes "github.com/initia-labs/attestation/x/accountant/types"
	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

const (
	paramStartAfter = "start_after"
	paramLimit      = "limit"
)

// RegisterQueryRoutes registers the read only routes.
func (s *Server) RegisterQueryRoutes(r *mux.Router) {
	vaaQuerier := s.app.VaaQueryServer()
	accountantQuerier := s.app.AccountantQueryServer()

	r.HandleFunc("/vaa/params", handleQuery(s, vaaQuerier.Params, emptyRequest[vaatypes.QueryParamsRequest])).Methods(http.MethodGet)
	r.HandleFunc("/vaa/guardian_sets", handleQuery(s, vaaQuerier.GuardianSets, parseGuardianSetsRequest)).Methods(http.MethodGet)
	r.HandleFunc("/vaa/guardian_sets/current", handleQuery(s, vaaQuerier.CurrentGuardianSet, emptyRequest[vaatypes.QueryCurrentGuardianSetRequest])).Methods(http.MethodGet)
	r.HandleFunc("/vaa/guardian_sets/{index:[0-9]+}", handleQuery(s, vaaQuerier.GuardianSet, parseGuardianSetRequest)).Methods(http.MethodGet)
	r.HandleFunc("/vaa/consumed/{digest}", handleQuery(s, vaaQuerier.Consumed, parseConsumedRequest)).Methods(http.MethodGet)
	r.HandleFunc("/vaa/verify", handleQuery(s, vaaQuerier.VerifyVAA, bodyRequest[vaatypes.QueryVerifyVAARequest])).Methods(http.MethodPost)

	r.HandleFunc("/accountant/accounts", handleQuery(s, accountantQuerier.AllAccounts, parseAllAccountsRequest)).Methods(http.MethodGet)
	r.HandleFunc("/accountant/accounts/{chain}/{token_chain}/{token}", handleQuery(s, accountantQuerier.Balance, parseBalanceRequest)).Methods(http.MethodGet)
	r.HandleFunc("/accountant/transfers", handleQuery(s, accountantQuerier.AllTransfers, parseAllTransfersRequest)).Methods(http.MethodGet)
	r.HandleFunc("/accountant/transfers/status", handleQuery(s, accountantQuerier.BatchTransferStatus, bodyRequest[accountanttypes.QueryBatchTransferStatusRequest])).Methods(http.MethodPost)
	r.HandleFunc("/accountant/transfers/validate", handleQuery(s, accountantQuerier.ValidateTransfer, bodyRequest[accountanttypes.QueryValidateTransferRequest])).Methods(http.MethodPost)
	r.HandleFunc("/accountant/transfers/{chain}/{emitter}/{sequence}", handleQuery(s, accountantQuerier.TransferStatus, parseTransferStatusRequest)).Methods(http.MethodGet)
	r.HandleFunc("/accountant/pending", handleQuery(s, accountantQuerier.AllPendingTransfers, parseAllPendingTransfersRequest)).Methods(http.MethodGet)
	r.HandleFunc("/accountant/modifications", handleQuery(s, accountantQuerier.AllModifications, parseAllModificationsRequest)).Methods(http.MethodGet)
	r.HandleFunc("/accountant/modifications/{sequence}", handleQuery(s, accountantQuerier.Modification, parseModificationRequest)).Methods(http.MethodGet)
	r.HandleFunc("/accountant/registrations/{chain}", handleQuery(s, accountantQuerier.ChainRegistration, parseChainRegistrationRequest)).Methods(http.MethodGet)
	r.HandleFunc("/accountant/missing_observations/{guardian_set}/{index}", handleQuery(s, accountantQuerier.MissingObservations, parseMissingObservationsRequest)).Methods(http.MethodGet)
}

// handleQuery builds a request with parse and answers it against the latest
// committed state.
func handleQuery[Req, Res any](
	s *Server,
	handler func(context.Context, *Req) (*Res, error),
	parse func(http.ResponseWriter, *http.Request) (*Req, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parse(w, r)
		if err != nil {
			s.writeError(w, err)
			return
		}

		res, err := app.Query(s.app, handler, req)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, res)
	}
}

func emptyRequest[Req any](http.ResponseWriter, *http.Request) (*Req, error) {
	return new(Req), nil
}

func bodyRequest[Req any](w http.ResponseWriter, r *http.Request) (*Req, error) {
	req := new(Req)
	if err := decodeBody(w, r, req); err != nil {
		return nil, err
	}

	return req, nil
}

func parseGuardianSetsRequest(_ http.ResponseWriter, r *http.Request) (*vaatypes.QueryGuardianSetsRequest, error) {
	limit, err := queryLimit(r)
	if err != nil {
		return nil, err
	}

	req := &vaatypes.QueryGuardianSetsRequest{Limit: limit}
	if s := r.URL.Query().Get(paramStartAfter); s != "" {
		startAfter, err := parseUint(paramStartAfter, s, 32)
		if err != nil {
			return nil, err
		}

		index := uint32(startAfter)
		req.StartAfter = &index
	}

	return req, nil
}

func parseGuardianSetRequest(_ http.ResponseWriter, r *http.Request) (*vaatypes.QueryGuardianSetRequest, error) {
	index, err := pathUint(r, "index", 32)
	if err != nil {
		return nil, err
	}

	return &vaatypes.QueryGuardianSetRequest{Index: uint32(index)}, nil
}

func parseConsumedRequest(_ http.ResponseWriter, r *http.Request) (*vaatypes.QueryConsumedRequest, error) {
	var digest vaatypes.HexBytes
	if err := digest.UnmarshalText([]byte(mux.Vars(r)["digest"])); err != nil {
		return nil, sdkerrors.ErrInvalidRequest.Wrapf("invalid digest: %v", err)
	}

	return &vaatypes.QueryConsumedRequest{Digest: digest}, nil
}

func parseAllAccountsRequest(_ http.ResponseWriter, r *http.Request) (*accountanttypes.QueryAllAccountsRequest, error) {
	limit, err := queryLimit(r)
	if err != nil {
		return nil, err
	}

	return &accountanttypes.QueryAllAccountsRequest{Limit: limit}, nil
}

func parseBalanceRequest(_ http.ResponseWriter, r *http.Request) (*accountanttypes.QueryBalanceRequest, error) {
	chain, err := pathChain(r, "chain")
	if err != nil {
		return nil, err
	}

	tokenChain, err := pathChain(r, "token_chain")
	if err != nil {
		return nil, err
	}

	token, err := pathAddress(r, "token")
	if err != nil {
		return nil, err
	}

	return &accountanttypes.QueryBalanceRequest{
		Key: accountanttypes.NewAccountKey(chain, tokenChain, token),
	}, nil
}

func parseAllTransfersRequest(_ http.ResponseWriter, r *http.Request) (*accountanttypes.QueryAllTransfersRequest, error) {
	limit, err := queryLimit(r)
	if err != nil {
		return nil, err
	}

	return &accountanttypes.QueryAllTransfersRequest{Limit: limit}, nil
}

func parseTransferStatusRequest(_ http.ResponseWriter, r *http.Request) (*accountanttypes.QueryTransferStatusRequest, error) {
	chain, err := pathChain(r, "chain")
	if err != nil {
		return nil, err
	}

	emitter, err := pathAddress(r, "emitter")
	if err != nil {
		return nil, err
	}

	sequence, err := pathUint(r, "sequence", 64)
	if err != nil {
		return nil, err
	}

	return &accountanttypes.QueryTransferStatusRequest{
		Key: accountanttypes.NewTransferKey(chain, emitter, sequence),
	}, nil
}

func parseAllPendingTransfersRequest(_ http.ResponseWriter, r *http.Request) (*accountanttypes.QueryAllPendingTransfersRequest, error) {
	limit, err := queryLimit(r)
	if err != nil {
		return nil, err
	}

	return &accountanttypes.QueryAllPendingTransfersRequest{Limit: limit}, nil
}

func parseAllModificationsRequest(_ http.ResponseWriter, r *http.Request) (*accountanttypes.QueryAllModificationsRequest, error) {
	limit, err := queryLimit(r)
	if err != nil {
		return nil, err
	}

	req := &accountanttypes.QueryAllModificationsRequest{Limit: limit}
	if s := r.URL.Query().Get(paramStartAfter); s != "" {
		startAfter, err := parseUint(paramStartAfter, s, 64)
		if err != nil {
			return nil, err
		}

		req.StartAfter = &startAfter
	}

	return req, nil
}

func parseModificationRequest(_ http.ResponseWriter, r *http.Request) (*accountanttypes.QueryModificationRequest, error) {
	sequence, err := pathUint(r, "sequence", 64)
	if err != nil {
		return nil, err
	}

	return &accountanttypes.QueryModificationRequest{Sequence: sequence}, nil
}

func parseChainRegistrationRequest(_ http.ResponseWriter, r *http.Request) (*accountanttypes.QueryChainRegistrationRequest, error) {
	chain, err := pathChain(r, "chain")
	if err != nil {
		return nil, err
	}

	return &accountanttypes.QueryChainRegistrationRequest{Chain: chain}, nil
}

func parseMissingObservationsRequest(_ http.ResponseWriter, r *http.Request) (*accountanttypes.QueryMissingObservationsRequest, error) {
	gsIndex, err := pathUint(r, "guardian_set", 32)
	if err != nil {
		return nil, err
	}

	index, err := pathUint(r, "index", 8)
	if err != nil {
		return nil, err
	}

	return &accountanttypes.QueryMissingObservationsRequest{
		GuardianSet: uint32(gsIndex),
		Index:       uint8(index),
	}, nil
}

func parseUint(name, s string, bitSize int) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, bitSize)
	if err != nil {
		return 0, sdkerrors.ErrInvalidRequest.Wrapf("invalid %s %q", name, s)
	}

	return v, nil
}

func pathUint(r *http.Request, name string, bitSize int) (uint64, error) {
	return parseUint(name, mux.Vars(r)[name], bitSize)
}

func pathChain(r *http.Request, name string) (vaatypes.ChainID, error) {
	v, err := pathUint(r, name, 16)
	return vaatypes.ChainID(v), err
}

func pathAddress(r *http.Request, name string) (vaatypes.Address, error) {
	addr, err := vaatypes.AddressFromHex(mux.Vars(r)[name])
	if err != nil {
		return addr, sdkerrors.ErrInvalidRequest.Wrapf("invalid %s: %v", name, err)
	}

	return addr, nil
}

func queryLimit(r *http.Request) (uint32, error) {
	s := r.URL.Query().Get(paramLimit)
	if s == "" {
		return 0, nil
	}

	limit, err := parseUint(paramLimit, s, 32)
	return uint32(limit), err
}
