package config

const (
	defaultConfigPath   = "~/.config/pemm/config.toml"
	projectConfigName   = "pemm.toml"
	defaultHandlistPath = "data/macomber-miracles.txt"
	defaultIncipitsPath = "data/incipits.csv"
	defaultOutputDir    = "output"
	defaultDatabasePath = "~/.local/share/pemm/pemm.db"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"

	envOutputDir = "PEMM_OUTPUT_DIR"
)

// Default returns a Config populated with repository defaults. The output
// directory is left empty so normalize can apply the environment fallback.
func Default() Config {
	return Config{
		Paths: Paths{
			Handlist: defaultHandlistPath,
			Incipits: defaultIncipitsPath,
		},
		Database: Database{
			Path: defaultDatabasePath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
