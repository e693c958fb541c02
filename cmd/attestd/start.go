package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/initia-labs/attestation/app"
	"github.com/initia-labs/attestation/service"
)

const flagOutputDocument = "output-document"

// StartCmd runs the engine and its REST gateway until interrupted.
func StartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the engine",
		Long: `Open the engine database, load genesis on first start and serve the REST
gateway until the process receives SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home, config, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return startEngine(ctx, home, config)
		},
	}

	app.AddConfigFlags(cmd)
	return cmd
}

func openEngine(home string, config app.EngineConfig) (*app.EngineApp, error) {
	logger, err := app.NewLogger(config)
	if err != nil {
		return nil, err
	}

	db, err := app.OpenDB(home, config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	engine, err := app.NewEngineApp(logger, db, config)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return engine, nil
}

func startEngine(ctx context.Context, home string, config app.EngineConfig) error {
	engine, err := openEngine(home, config)
	if err != nil {
		return err
	}
	defer engine.Close()

	logger := engine.Logger()
	if engine.LastCommitID().Version == 0 {
		appGenesis, err := app.ReadGenesisFile(genesisPath(home))
		if err != nil {
			return err
		}

		if err := appGenesis.AppState.Validate(); err != nil {
			return err
		}

		if err := engine.InitGenesis(appGenesis.AppState); err != nil {
			return err
		}

		logger.Info("initialized from genesis", "genesis_time", appGenesis.GenesisTime)
	}

	logger.Info("engine started", "version", engine.LastCommitID().Version, "chain_id", config.ChainID)

	g, ctx := errgroup.WithContext(ctx)
	if config.REST.Enable {
		g.Go(func() error {
			return service.NewServer(engine).Start(ctx, config.REST.Address)
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("stopping engine")
		return nil
	})

	return g.Wait()
}

// ExportCmd writes the committed state as a genesis document.
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export state to JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home, config, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			appGenesis, err := exportGenesis(home, config)
			if err != nil {
				return err
			}

			outputDocument, err := cmd.Flags().GetString(flagOutputDocument)
			if err != nil {
				return err
			}

			if outputDocument != "" {
				return app.WriteGenesisFile(outputDocument, appGenesis)
			}

			bz, err := json.MarshalIndent(appGenesis, "", "  ")
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
			return err
		},
	}

	app.AddConfigFlags(cmd)
	cmd.Flags().String(flagOutputDocument, "", "Exported state is written to the given file instead of STDOUT")

	return cmd
}

func exportGenesis(home string, config app.EngineConfig) (*app.AppGenesis, error) {
	engine, err := openEngine(home, config)
	if err != nil {
		return nil, err
	}
	defer engine.Close()

	genState, err := engine.ExportGenesis()
	if err != nil {
		return nil, err
	}

	return &app.AppGenesis{GenesisTime: time.Now().UTC(), AppState: genState}, nil
}
