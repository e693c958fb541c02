package app

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"

	tmproto "github.com/cometbft/cometbft/proto/tendermint/types"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"

	accountantkeeper "github.com/initia-labs/attestation/x/accountant/keeper"
	accountanttypes "github.com/initia-labs/attestation/x/accountant/types"
	vaakeeper "github.com/initia-labs/attestation/x/vaa/keeper"
	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

var (
	// DefaultNodeHome default home directories for the application daemon
	DefaultNodeHome string
)

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}

	DefaultNodeHome = filepath.Join(userHomeDir, "."+AppName)
}

// EngineApp hosts the vaa and accountant modules on a single commit
// multistore. Every state transition goes through Execute, which runs one
// invocation at a time and commits it.
type EngineApp struct {
	logger log.Logger
	db     dbm.DB
	cms    storetypes.CommitMultiStore
	keys   map[string]*storetypes.KVStoreKey
	config EngineConfig

	// serializes invocations and commits
	mtx   sync.Mutex
	clock func() time.Time

	VaaKeeper        *vaakeeper.Keeper
	AccountantKeeper *accountantkeeper.Keeper
}

// NewEngineApp mounts the module stores on db and loads the latest version.
func NewEngineApp(logger log.Logger, db dbm.DB, config EngineConfig) (*EngineApp, error) {
	keys := storetypes.NewKVStoreKeys(vaatypes.StoreKey, accountanttypes.StoreKey)

	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}

	if err := cms.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "failed to load latest version")
	}

	app := &EngineApp{
		logger: logger,
		db:     db,
		cms:    cms,
		keys:   keys,
		config: config,
		clock:  time.Now,
	}

	app.VaaKeeper = vaakeeper.NewKeeper(
		runtime.NewKVStoreService(keys[vaatypes.StoreKey]),
		config.Authority,
	)
	app.AccountantKeeper = accountantkeeper.NewKeeper(
		runtime.NewKVStoreService(keys[accountanttypes.StoreKey]),
		app.VaaKeeper,
	)

	return app, nil
}

// Logger returns the app logger.
func (app *EngineApp) Logger() log.Logger {
	return app.logger
}

// Config returns the engine config the app was created with.
func (app *EngineApp) Config() EngineConfig {
	return app.config
}

// SetClock overrides the block time source.
func (app *EngineApp) SetClock(clock func() time.Time) {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	app.clock = clock
}

// LastCommitID returns the id of the latest committed version.
func (app *EngineApp) LastCommitID() storetypes.CommitID {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	return app.cms.LastCommitID()
}

// ExecResult is the outcome of one committed invocation.
type ExecResult struct {
	CommitID storetypes.CommitID
	Events   sdk.Events
}

// Execute runs fn against a branch of the latest state. When fn succeeds the
// branch is written and committed as a new version; otherwise nothing is
// persisted. It returns the version fn was committed at and the events it
// emitted.
func (app *EngineApp) Execute(fn func(ctx sdk.Context) error) (ExecResult, error) {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	cache := app.cms.CacheMultiStore()
	ctx := app.newContext(cache)
	if err := fn(ctx); err != nil {
		return ExecResult{}, err
	}

	cache.Write()
	commitID := app.cms.Commit()

	app.logger.Debug("committed", "version", commitID.Version, "hash", commitID.String())
	return ExecResult{CommitID: commitID, Events: ctx.EventManager().Events()}, nil
}

// Query runs fn against a branch of the latest state and discards any write.
func (app *EngineApp) Query(fn func(ctx sdk.Context) error) error {
	app.mtx.Lock()
	defer app.mtx.Unlock()

	return fn(app.newContext(app.cms.CacheMultiStore()))
}

// Close closes the underlying database.
func (app *EngineApp) Close() error {
	return app.db.Close()
}

func (app *EngineApp) newContext(ms storetypes.MultiStore) sdk.Context {
	return sdk.NewContext(ms, tmproto.Header{
		Height: app.cms.LastCommitID().Version + 1,
		Time:   app.clock().UTC(),
	}, false, app.logger)
}
