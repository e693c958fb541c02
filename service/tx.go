package service

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/initia-labs/attestation/app"
)

// TxResponse is the body of a successful message submission.
type TxResponse struct {
	Height int64      `json:"height"`
	Result any        `json:"result"`
	Events sdk.Events `json:"events"`
}

type validatable interface {
	Validate() error
}

// RegisterTxRoutes registers the message submission routes.
func (s *Server) RegisterTxRoutes(r *mux.Router) {
	r.HandleFunc("/accountant/vaas", handleTx(s, s.app.AccountantMsgServer().SubmitVAAs)).Methods(http.MethodPost)
	r.HandleFunc("/accountant/observations", handleTx(s, s.app.AccountantMsgServer().SubmitObservations)).Methods(http.MethodPost)
	r.HandleFunc("/vaa/governance", handleTx(s, s.app.VaaMsgServer().ExecuteGovernanceVAA)).Methods(http.MethodPost)
	r.HandleFunc("/vaa/params", handleTx(s, s.app.VaaMsgServer().UpdateParams)).Methods(http.MethodPost)
}

// handleTx decodes a message from the request body and delivers it as one
// committed invocation.
func handleTx[Req, Res any](s *Server, handler func(context.Context, *Req) (*Res, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := new(Req)
		if err := decodeBody(w, r, req); err != nil {
			s.writeError(w, err)
			return
		}

		if msg, ok := any(req).(validatable); ok {
			if err := msg.Validate(); err != nil {
				s.writeError(w, err)
				return
			}
		}

		res, result, err := app.Deliver(s.app, handler, req)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, TxResponse{
			Height: result.CommitID.Version,
			Result: res,
			Events: result.Events,
		})
	}
}
