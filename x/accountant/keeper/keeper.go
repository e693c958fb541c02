package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	corestoretypes "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/initia-labs/attestation/x/accountant/types"
	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

type Keeper struct {
	storeService corestoretypes.KVStoreService

	Schema collections.Schema

	Accounts           collections.Map[types.AccountKey, math.Uint]
	Transfers          collections.Map[types.TransferKey, types.TransferData]
	Digests            collections.Map[types.TransferKey, []byte]
	PendingTransfers   collections.Map[types.TransferKey, []types.PendingData]
	Modifications      collections.Map[uint64, types.Modification]
	ChainRegistrations collections.Map[vaatypes.ChainID, []byte]

	vaaKeeper types.VaaKeeper
	router    *vaatypes.GovernanceRouter
}

// NewKeeper creates a new accountant Keeper instance. Governance envelopes
// submitted to the ledger are dispatched through its own router, which
// handles TokenBridge RegisterChain and GlobalAccountant ModifyBalance.
func NewKeeper(
	storeService corestoretypes.KVStoreService,
	vaaKeeper types.VaaKeeper,
) *Keeper {
	sb := collections.NewSchemaBuilder(storeService)
	k := &Keeper{
		storeService: storeService,

		Accounts:           collections.NewMap(sb, types.AccountsPrefix, "accounts", types.AccountKeyCodec, vaatypes.NewJSONValueCodec[math.Uint]("balance")),
		Transfers:          collections.NewMap(sb, types.TransfersPrefix, "transfers", types.TransferKeyCodec, vaatypes.NewJSONValueCodec[types.TransferData]("transfer_data")),
		Digests:            collections.NewMap(sb, types.DigestsPrefix, "digests", types.TransferKeyCodec, collections.BytesValue),
		PendingTransfers:   collections.NewMap(sb, types.PendingTransfersPrefix, "pending_transfers", types.TransferKeyCodec, vaatypes.NewJSONValueCodec[[]types.PendingData]("pending_data")),
		Modifications:      collections.NewMap(sb, types.ModificationsPrefix, "modifications", collections.Uint64Key, vaatypes.NewJSONValueCodec[types.Modification]("modification")),
		ChainRegistrations: collections.NewMap(sb, types.ChainRegistrationsPrefix, "chain_registrations", vaatypes.ChainIDKey, collections.BytesValue),

		vaaKeeper: vaaKeeper,
		router:    vaatypes.NewGovernanceRouter(),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema

	k.router.
		AddRoute(vaatypes.TokenBridgeModule, vaatypes.ActionRegisterChain, k.handleRegisterChain).
		AddRoute(vaatypes.GlobalAccountantModule, vaatypes.ActionModifyBalance, k.handleModifyBalance)

	return k
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// GetBalance returns the balance of an account, zero when it does not exist.
func (k Keeper) GetBalance(ctx context.Context, key types.AccountKey) (math.Uint, bool, error) {
	balance, err := k.Accounts.Get(ctx, key)
	if err != nil && errors.Is(err, collections.ErrNotFound) {
		return math.ZeroUint(), false, nil
	} else if err != nil {
		return math.Uint{}, false, err
	}

	return balance, true, nil
}

// GetChainRegistration returns the registered token bridge emitter of chain.
func (k Keeper) GetChainRegistration(ctx context.Context, chain vaatypes.ChainID) (vaatypes.Address, error) {
	bz, err := k.ChainRegistrations.Get(ctx, chain)
	if err != nil && errors.Is(err, collections.ErrNotFound) {
		return vaatypes.Address{}, errorsmod.Wrapf(types.ErrUnregisteredEmitter, "no emitter registered for chain %d", chain)
	} else if err != nil {
		return vaatypes.Address{}, err
	}

	return vaatypes.AddressFromBytes(bz)
}

// SetChainRegistration registers emitter as the token bridge of chain,
// replacing any earlier registration.
func (k Keeper) SetChainRegistration(ctx context.Context, chain vaatypes.ChainID, emitter vaatypes.Address) error {
	return k.ChainRegistrations.Set(ctx, chain, emitter.Bytes())
}

// checkRegisteredEmitter fails unless emitter is the registered emitter of chain.
func (k Keeper) checkRegisteredEmitter(ctx context.Context, chain vaatypes.ChainID, emitter vaatypes.Address) error {
	registered, err := k.GetChainRegistration(ctx, chain)
	if err != nil {
		return err
	}

	if registered != emitter {
		return errorsmod.Wrapf(types.ErrUnregisteredEmitter, "unknown emitter address %s for chain %d", emitter, chain)
	}

	return nil
}

// getDigest returns the committed digest of key, if any.
func (k Keeper) getDigest(ctx context.Context, key types.TransferKey) ([]byte, bool, error) {
	digest, err := k.Digests.Get(ctx, key)
	if err != nil && errors.Is(err, collections.ErrNotFound) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}

	return digest, true, nil
}

// getPending returns the pending entries of key.
func (k Keeper) getPending(ctx context.Context, key types.TransferKey) ([]types.PendingData, error) {
	pending, err := k.PendingTransfers.Get(ctx, key)
	if err != nil && errors.Is(err, collections.ErrNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return pending, nil
}
