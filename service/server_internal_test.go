package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	errorsmod "cosmossdk.io/errors"

	"github.com/initia-labs/attestation/app"
	"github.com/initia-labs/attestation/x/vaa/testutil"
)

func TestHandler_RecoversPanics(t *testing.T) {
	s := NewServer(app.SetupWithGuardians(t, testutil.NewECDSAGuardians(1)))
	s.router.HandleFunc("/panic", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var res ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, errorsmod.ErrPanic.Codespace(), res.Codespace)
	require.Equal(t, errorsmod.ErrPanic.ABCICode(), res.Code)
	require.NotContains(t, res.Error, "boom")

	// the server keeps serving after a panic
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vaa/params", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHTTPStatus(t *testing.T) {
	require.Equal(t, http.StatusInternalServerError, httpStatus(errorsmod.Wrap(errorsmod.ErrPanic, "x")))
}
