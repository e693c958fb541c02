package keeper

import (
	"context"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/initia-labs/attestation/x/accountant/types"
)

// CommitTransfer locks or burns the amount on the source account, unlocks or
// mints it on the destination account and records the transfer.
func (k Keeper) CommitTransfer(ctx context.Context, t types.Transfer) error {
	src, dst, err := k.transfer(ctx, t)
	if err != nil {
		return err
	}

	if err := k.Accounts.Set(ctx, src.Key, src.Balance); err != nil {
		return err
	}

	if err := k.Accounts.Set(ctx, dst.Key, dst.Balance); err != nil {
		return err
	}

	if err := k.Transfers.Set(ctx, t.Key, t.Data); err != nil {
		return err
	}

	k.Logger(ctx).Info("transfer committed", "key", t.Key.String(), "amount", t.Data.Amount.String(), "recipient_chain", t.Data.RecipientChain)
	telemetry.IncrCounter(1, types.ModuleName, "transfer_committed")

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute(types.AttributeKeyKey, t.Key.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, t.Data.Amount.String()),
			sdk.NewAttribute(types.AttributeKeyTokenChain, strconv.FormatUint(uint64(t.Data.TokenChain), 10)),
			sdk.NewAttribute(types.AttributeKeyTokenAddress, t.Data.TokenAddress.String()),
			sdk.NewAttribute(types.AttributeKeyRecipientChain, strconv.FormatUint(uint64(t.Data.RecipientChain), 10)),
		),
	)

	return nil
}

// ValidateTransfer checks t could be committed without changing state.
func (k Keeper) ValidateTransfer(ctx context.Context, t types.Transfer) error {
	_, _, err := k.transfer(ctx, t)
	return err
}

// transfer computes the updated source and destination accounts of t.
func (k Keeper) transfer(ctx context.Context, t types.Transfer) (src, dst types.Account, err error) {
	found, err := k.Transfers.Has(ctx, t.Key)
	if err != nil {
		return src, dst, err
	} else if found {
		return src, dst, errorsmod.Wrapf(types.ErrDuplicateTransfer, "%s", t.Key)
	}

	src.Key = types.NewAccountKey(t.Key.EmitterChain, t.Data.TokenChain, t.Data.TokenAddress)
	balance, exists, err := k.GetBalance(ctx, src.Key)
	if err != nil {
		return src, dst, err
	} else if !exists && !src.Key.IsNative() {
		return src, dst, errorsmod.Wrapf(types.ErrMissingWrappedAccount, "%s", src.Key)
	}
	src.Balance = balance

	dst.Key = types.NewAccountKey(t.Data.RecipientChain, t.Data.TokenChain, t.Data.TokenAddress)
	if dst.Key != src.Key {
		balance, exists, err = k.GetBalance(ctx, dst.Key)
		if err != nil {
			return src, dst, err
		} else if !exists && dst.Key.IsNative() {
			return src, dst, errorsmod.Wrapf(types.ErrMissingNativeAccount, "%s", dst.Key)
		}
		dst.Balance = balance
	}

	src.Balance, err = lockOrBurn(src, t.Data.Amount)
	if err != nil {
		return src, dst, errorsmod.Wrap(err, "source account")
	}

	// a transfer back to the emitting chain applies both legs to one account
	if dst.Key == src.Key {
		src.Balance, err = unlockOrMint(src, t.Data.Amount)
		if err != nil {
			return src, dst, errorsmod.Wrap(err, "destination account")
		}

		return src, src, nil
	}

	dst.Balance, err = unlockOrMint(dst, t.Data.Amount)
	if err != nil {
		return src, dst, errorsmod.Wrap(err, "destination account")
	}

	return src, dst, nil
}

// lockOrBurn locks native tokens or burns wrapped ones.
func lockOrBurn(a types.Account, amount math.Uint) (math.Uint, error) {
	if a.Key.IsNative() {
		return types.CheckedAdd(a.Balance, amount)
	}

	return types.CheckedSub(a.Balance, amount)
}

// unlockOrMint unlocks native tokens or mints wrapped ones.
func unlockOrMint(a types.Account, amount math.Uint) (math.Uint, error) {
	if a.Key.IsNative() {
		return types.CheckedSub(a.Balance, amount)
	}

	return types.CheckedAdd(a.Balance, amount)
}
