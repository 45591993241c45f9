package config

// Defaults applied before any config file, env var or flag.
const (
	DefaultStateFile = ".molsel/state.db"
	DefaultOutput    = "table"
	DefaultLimit     = 50
)

// Config holds the resolved CLI configuration.
type Config struct {
	StatePath string `koanf:"state_path"` // named-selection database path
	Output    string `koanf:"output"`     // table, json, csv or count
	Limit     int    `koanf:"limit"`      // max rows rendered in tables, 0 = unlimited
	Verbose   bool   `koanf:"verbose"`
}
