package main

const (
	defaultTopN     = 10
	defaultBindHost = "127.0.0.1"
	defaultAPIPort  = 3000
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	TopN       int    `mapstructure:"top-n"`
	Format     string `mapstructure:"format"`
	NoColor    bool   `mapstructure:"no-color"`
	APIEnabled bool   `mapstructure:"api-enabled"`
	APIPort    int    `mapstructure:"api-port"`
	APIAddr    string `mapstructure:"api-addr"`
	ConfigPath string `mapstructure:"-"` // not from config file
}
