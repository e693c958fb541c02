package app

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	servertypes "github.com/cosmos/cosmos-sdk/server/types"

	vaatypes "github.com/initia-labs/attestation/x/vaa/types"
)

const (
	// DefaultRESTAddress is the default listen address of the REST gateway
	DefaultRESTAddress = "127.0.0.1:1317"

	// DefaultAuthority is the signer allowed to update vaa params
	DefaultAuthority = "gov"
)

const (
	flagChainID                = "chain-id"
	flagGuardianSetGracePeriod = "guardian-set-grace-period"
	flagDBBackend              = "db-backend"
	flagLogLevel               = "log-level"
	flagAuthority              = "authority"
	flagRESTEnable             = "rest.enable"
	flagRESTAddress            = "rest.address"
	flagRESTCORSAllowedOrigins = "rest.cors-allowed-origins"
)

// EngineConfig is the engine configuration stored in app.toml.
type EngineConfig struct {
	ChainID                uint16     `mapstructure:"chain-id" toml:"chain-id" comment:"Protocol chain id of this engine; governance actions must target it or chain 0."`
	GuardianSetGracePeriod uint64     `mapstructure:"guardian-set-grace-period" toml:"guardian-set-grace-period" comment:"Seconds a replaced guardian set keeps verifying messages."`
	DBBackend              string     `mapstructure:"db-backend" toml:"db-backend" comment:"Database backend: goleveldb or memdb."`
	LogLevel               string     `mapstructure:"log-level" toml:"log-level" comment:"Log level, e.g. info or x/accountant:debug,*:info."`
	Authority              string     `mapstructure:"authority" toml:"authority" comment:"Signer allowed to update vaa params."`
	REST                   RESTConfig `mapstructure:"rest" toml:"rest"`
}

// RESTConfig configures the REST gateway.
type RESTConfig struct {
	Enable  bool   `mapstructure:"enable" toml:"enable" comment:"Enable the REST gateway."`
	Address string `mapstructure:"address" toml:"address" comment:"Address the REST gateway listens on."`

	CORSAllowedOrigins []string `mapstructure:"cors-allowed-origins" toml:"cors-allowed-origins" comment:"Origins allowed to make cross origin requests; * wildcards are matched. Empty disables CORS."`
}

// DefaultEngineConfig returns the default settings for EngineConfig
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		ChainID:                uint16(vaatypes.DefaultLocalChainID),
		GuardianSetGracePeriod: vaatypes.DefaultGuardianSetGracePeriod,
		DBBackend:              string(dbm.GoLevelDBBackend),
		LogLevel:               "info",
		Authority:              DefaultAuthority,
		REST: RESTConfig{
			Enable:  true,
			Address: DefaultRESTAddress,
		},
	}
}

// GetConfig load config values from the app options
func GetConfig(appOpts servertypes.AppOptions) EngineConfig {
	return EngineConfig{
		ChainID:                cast.ToUint16(appOpts.Get(flagChainID)),
		GuardianSetGracePeriod: cast.ToUint64(appOpts.Get(flagGuardianSetGracePeriod)),
		DBBackend:              cast.ToString(appOpts.Get(flagDBBackend)),
		LogLevel:               cast.ToString(appOpts.Get(flagLogLevel)),
		Authority:              cast.ToString(appOpts.Get(flagAuthority)),
		REST: RESTConfig{
			Enable:  cast.ToBool(appOpts.Get(flagRESTEnable)),
			Address: cast.ToString(appOpts.Get(flagRESTAddress)),

			CORSAllowedOrigins: cast.ToStringSlice(appOpts.Get(flagRESTCORSAllowedOrigins)),
		},
	}
}

// Validate performs basic validation on the config.
func (c EngineConfig) Validate() error {
	if c.ChainID == 0 {
		return errors.New("chain-id must be non zero")
	}

	switch dbm.BackendType(c.DBBackend) {
	case dbm.GoLevelDBBackend, dbm.MemDBBackend:
	default:
		return errors.Errorf("unsupported db-backend %q", c.DBBackend)
	}

	if c.REST.Enable && c.REST.Address == "" {
		return errors.New("rest.address must be set when rest is enabled")
	}

	return nil
}

// Params returns the vaa params a fresh genesis gets from this config.
func (c EngineConfig) Params() vaatypes.Params {
	return vaatypes.NewParams(vaatypes.ChainID(c.ChainID), c.GuardianSetGracePeriod)
}

// AddConfigFlags registers the engine config flags on cmd.
func AddConfigFlags(cmd *cobra.Command) {
	defaults := DefaultEngineConfig()

	cmd.Flags().Uint16(flagChainID, defaults.ChainID, "Protocol chain id of this engine")
	cmd.Flags().Uint64(flagGuardianSetGracePeriod, defaults.GuardianSetGracePeriod, "Seconds a replaced guardian set keeps verifying messages")
	cmd.Flags().String(flagDBBackend, defaults.DBBackend, "Database backend: goleveldb or memdb")
	cmd.Flags().String(flagLogLevel, defaults.LogLevel, "Log level")
	cmd.Flags().String(flagAuthority, defaults.Authority, "Signer allowed to update vaa params")
	cmd.Flags().Bool(flagRESTEnable, defaults.REST.Enable, "Enable the REST gateway")
	cmd.Flags().String(flagRESTAddress, defaults.REST.Address, "Address the REST gateway listens on")
	cmd.Flags().StringSlice(flagRESTCORSAllowedOrigins, defaults.REST.CORSAllowedOrigins, "Origins allowed to make cross origin requests")
}

// WriteConfigFile writes config to path as toml, creating parent directories.
func WriteConfigFile(path string, config EngineConfig) error {
	bz, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to encode config")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, bz, 0o600)
}

// ReadConfigFile reads a config written by WriteConfigFile. Missing keys
// keep their default values.
func ReadConfigFile(path string) (EngineConfig, error) {
	config := DefaultEngineConfig()

	tree, err := toml.LoadFile(path)
	if err != nil {
		return config, errors.Wrapf(err, "failed to load %s", path)
	}

	if err := tree.Unmarshal(&config); err != nil {
		return config, errors.Wrapf(err, "failed to decode %s", path)
	}

	return config, nil
}

// OpenDB opens the engine database under home.
func OpenDB(home string, config EngineConfig) (dbm.DB, error) {
	return dbm.NewDB(AppName, dbm.BackendType(config.DBBackend), filepath.Join(home, DataDirName))
}

// NewLogger builds the engine logger from the configured log level.
func NewLogger(config EngineConfig) (log.Logger, error) {
	filter, err := log.ParseLogLevel(config.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log-level %q", config.LogLevel)
	}

	return log.NewLogger(os.Stderr, log.FilterOption(filter)), nil
}
