package keeper

import (
	"context"

	"cosmossdk.io/collections"
	corestoretypes "cosmossdk.io/core/store"
	"cosmossdk.io/log"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/initia-labs/attestation/x/vaa/types"
)

type Keeper struct {
	storeService corestoretypes.KVStoreService

	Schema collections.Schema

	Params                  collections.Item[types.Params]
	CurrentGuardianSetIndex collections.Item[uint32]
	GuardianSets            collections.Map[uint32, types.GuardianSet]
	ConsumedVAAs            collections.KeySet[[]byte]

	replayGuard ReplayGuard[[]byte]
	verifiers   map[types.SignatureScheme]types.SignatureVerifier
	router      *types.GovernanceRouter

	authority string
}

// NewKeeper creates a new vaa Keeper instance with the ECDSA and Schnorr
// verifiers and the Core governance routes registered.
func NewKeeper(
	storeService corestoretypes.KVStoreService,
	authority string,
) *Keeper {
	sb := collections.NewSchemaBuilder(storeService)
	k := &Keeper{
		storeService: storeService,

		Params:                  collections.NewItem(sb, types.ParamsKey, "params", types.NewJSONValueCodec[types.Params]("params")),
		CurrentGuardianSetIndex: collections.NewItem(sb, types.CurrentGuardianSetKey, "current_guardian_set_index", collections.Uint32Value),
		GuardianSets:            collections.NewMap(sb, types.GuardianSetPrefix, "guardian_sets", collections.Uint32Key, types.NewJSONValueCodec[types.GuardianSet]("guardian_set")),
		ConsumedVAAs:            collections.NewKeySet(sb, types.ConsumedVAAPrefix, "consumed_vaas", collections.BytesKey),

		verifiers: map[types.SignatureScheme]types.SignatureVerifier{
			types.SchemeECDSA:   ECDSAVerifier{},
			types.SchemeSchnorr: SchnorrVerifier{},
		},
		router:    types.NewGovernanceRouter(),
		authority: authority,
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema
	k.replayGuard = NewReplayGuard(k.ConsumedVAAs)

	k.router.AddRoute(types.CoreModule, types.ActionGuardianSetUpgrade, k.handleGuardianSetUpgrade)

	return k
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// GetAuthority returns the address allowed to update params.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// SetSignatureVerifier installs or replaces the verifier of a scheme.
func (k *Keeper) SetSignatureVerifier(scheme types.SignatureScheme, verifier types.SignatureVerifier) {
	k.verifiers[scheme] = verifier
}

// GovernanceRouter returns the core governance router so other modules can
// register additional actions executed through ExecuteGovernanceVAA.
func (k Keeper) GovernanceRouter() *types.GovernanceRouter {
	return k.router
}

// GetParams returns the module parameters.
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	return k.Params.Get(ctx)
}

// SetParams stores the module parameters.
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}

	return k.Params.Set(ctx, params)
}

// LocalChainID returns the chain id governance packets are matched against.
func (k Keeper) LocalChainID(ctx context.Context) (types.ChainID, error) {
	params, err := k.Params.Get(ctx)
	if err != nil {
		return 0, err
	}

	return params.LocalChainID, nil
}
