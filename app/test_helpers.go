package app

// DONTCOVER

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"

	accountanttypes "github.com/initia-labs/attestation/x/accountant/types"
	"github.com/initia-labs/attestation/x/vaa/testutil"
)

// GenesisTime is the block time test engines start at.
var GenesisTime = time.Date(2020, time.April, 22, 12, 0, 0, 0, time.UTC)

func getOrCreateMemDB(db *dbm.DB) dbm.DB {
	if db != nil {
		return *db
	}
	return dbm.NewMemDB()
}

func setup(t testing.TB, db *dbm.DB) *EngineApp {
	config := DefaultEngineConfig()
	config.DBBackend = string(dbm.MemDBBackend)

	app, err := NewEngineApp(log.NewNopLogger(), getOrCreateMemDB(db), config)
	require.NoError(t, err)

	app.SetClock(func() time.Time { return GenesisTime })
	return app
}

// SetupWithGuardians returns an initialized engine whose guardian set 0 is
// guardians and whose token bridge emitters are registrations.
func SetupWithGuardians(t testing.TB, guardians *testutil.Guardians, registrations ...accountanttypes.ChainRegistration) *EngineApp {
	app := setup(t, nil)

	genState, err := NewDefaultGenesisState(app.Config()).ConfigureGuardianSet(guardians.GuardianSet(0))
	require.NoError(t, err)

	genState, err = genState.ConfigureChainRegistrations(registrations...)
	require.NoError(t, err)

	require.NoError(t, genState.Validate())
	require.NoError(t, app.InitGenesis(genState))

	return app
}
