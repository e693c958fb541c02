package app

const (
	// AppName is the application name
	AppName = "attestd"

	// EnvPrefix is environment variable prefix for the app
	EnvPrefix = "ATTEST"

	// ConfigFileName is the name of the engine config file under the config dir
	ConfigFileName = "app.toml"

	// GenesisFileName is the name of the genesis file under the config dir
	GenesisFileName = "genesis.json"

	// DataDirName holds the database
	DataDirName = "data"

	// ConfigDirName holds app.toml and genesis.json
	ConfigDirName = "config"
)
