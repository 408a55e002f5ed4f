// Package cmd holds the Kong command structs for the eht CLI.
package cmd

// LogConfig groups logging options shared by all commands.
type LogConfig struct {
	Level string `help:"Log level: debug, info, warn, error" default:"info" enum:"debug,info,warn,error" env:"EHT_LOG_LEVEL"`
	File  string `help:"Also write logs to this file" env:"EHT_LOG_FILE"`
}

// CLI is the root command structure parsed by Kong.
type CLI struct {
	ConfigFile string    `name:"config" help:"Path to a configuration file (JSON/YAML/TOML)" env:"EHT_CONFIG"`
	Log        LogConfig `embed:"" prefix:"log."`

	Generate  Generate       `cmd:"" help:"Scan annotated engine headers and regenerate all bindings"`
	Watch     Watch          `cmd:"" help:"Regenerate bindings whenever the scanned headers change"`
	ConfigCmd ConfigCommand  `cmd:"" name:"config" help:"Configuration helpers"`
	Version   VersionCommand `cmd:"" help:"Print the eht version"`
}
