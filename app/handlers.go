package app

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	accountantkeeper "github.com/initia-labs/attestation/x/accountant/keeper"
	vaakeeper "github.com/initia-labs/attestation/x/vaa/keeper"
)

// Deliver runs a msg server method as one committed invocation.
func Deliver[Req, Res any](app *EngineApp, handler func(context.Context, Req) (Res, error), req Req) (res Res, result ExecResult, err error) {
	result, err = app.Execute(func(ctx sdk.Context) error {
		res, err = handler(ctx, req)
		return err
	})

	return res, result, err
}

// Query runs a query server method against the latest version.
func Query[Req, Res any](app *EngineApp, handler func(context.Context, Req) (Res, error), req Req) (res Res, err error) {
	err = app.Query(func(ctx sdk.Context) error {
		res, err = handler(ctx, req)
		return err
	})

	return res, err
}

// VaaMsgServer returns the vaa msg server.
func (app *EngineApp) VaaMsgServer() vaakeeper.MsgServer {
	return vaakeeper.NewMsgServerImpl(app.VaaKeeper)
}

// VaaQueryServer returns the vaa query server.
func (app *EngineApp) VaaQueryServer() vaakeeper.Querier {
	return vaakeeper.NewQueryServer(app.VaaKeeper)
}

// AccountantMsgServer returns the accountant msg server.
func (app *EngineApp) AccountantMsgServer() accountantkeeper.MsgServer {
	return accountantkeeper.NewMsgServerImpl(app.AccountantKeeper)
}

// AccountantQueryServer returns the accountant query server.
func (app *EngineApp) AccountantQueryServer() accountantkeeper.Querier {
	return accountantkeeper.NewQueryServer(app.AccountantKeeper)
}
