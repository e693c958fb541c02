package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/IGLOU-EU/go-wildcard"
	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/initia-labs/attestation/app"
	accountanttypes "github.com/initia-labs/attestation/x/accountant/types"
	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 10 * time.Second

	// maxBodyBytes bounds request bodies
	maxBodyBytes = 4 << 20
)

// Server exposes the engine message and query handlers over HTTP.
type Server struct {
	app    *app.EngineApp
	logger log.Logger
	router *mux.Router

	allowedOrigins []string
}

// NewServer builds the REST gateway of engine.
func NewServer(engine *app.EngineApp) *Server {
	s := &Server{
		app:    engine,
		logger: engine.Logger().With("module", "rest"),
		router: mux.NewRouter(),

		allowedOrigins: engine.Config().REST.CORSAllowedOrigins,
	}

	s.RegisterTxRoutes(s.router)
	s.RegisterQueryRoutes(s.router)

	return s
}

// Handler returns the http handler serving every route.
func (s *Server) Handler() http.Handler {
	handler := s.recoverPanics(s.router)
	if len(s.allowedOrigins) == 0 {
		return handler
	}

	return s.cors(handler)
}

// recoverPanics turns a handler panic into an internal error response.
func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			s.logger.Error("panic recovered", "method", r.Method, "path", r.URL.Path, "panic", rec, "stack", string(debug.Stack()))
			s.writeError(w, errorsmod.Wrap(errorsmod.ErrPanic, "request handler panicked"))
		}()

		next.ServeHTTP(w, r)
	})
}

// cors answers preflight requests and tags responses to allowed origins.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" || !s.originAllowed(origin) {
			next.ServeHTTP(w, r)
			return
		}

		header := w.Header()
		header.Set("Access-Control-Allow-Origin", origin)
		header.Add("Vary", "Origin")

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			header.Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, pattern := range s.allowedOrigins {
		if wildcard.Match(pattern, origin) {
			return true
		}
	}

	return false
}

// Start serves the gateway on address and blocks until ctx is done or the
// listener fails.
func (s *Server) Start(ctx context.Context, address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("starting REST gateway", "address", address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})
	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.logger.Info("stopping REST gateway")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Codespace string `json:"codespace"`
	Code      uint32 `json:"code"`
	Error     string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := httpStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}

	codespace, code, _ := errorsmod.ABCIInfo(err, false)
	s.writeJSON(w, status, ErrorResponse{
		Codespace: codespace,
		Code:      code,
		Error:     err.Error(),
	})
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, collections.ErrNotFound),
		errors.Is(err, sdkerrors.ErrNotFound),
		errors.Is(err, accountanttypes.ErrTransferNotFound),
		errors.Is(err, accountanttypes.ErrUnregisteredEmitter),
		errors.Is(err, vaatypes.ErrUnknownGuardianSet):
		return http.StatusNotFound
	case errors.Is(err, sdkerrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, vaatypes.ErrAlreadyExecuted),
		errors.Is(err, accountanttypes.ErrDigestMismatch),
		errors.Is(err, accountanttypes.ErrDuplicateTransfer),
		errors.Is(err, accountanttypes.ErrDuplicateModification):
		return http.StatusConflict
	}

	var registered *errorsmod.Error
	if errors.As(err, &registered) && !errors.Is(err, errorsmod.ErrPanic) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		return sdkerrors.ErrInvalidRequest.Wrapf("failed to decode request body: %v", err)
	}

	return nil
}
