package config

import "flag"

// Flags are the command-line overrides shared by daetool subcommands.
type Flags struct {
	config   *string
	debug    *bool
	compact  *bool
	encoding *string
	upAxis   *string
	logFile  *string
}

// RegisterFlags defines the shared flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		config:   fs.String("config", "", "Path to config file"),
		debug:    fs.Bool("debug", false, "Enable debug logging"),
		compact:  fs.Bool("compact", false, "Write documents without indentation"),
		encoding: fs.String("encoding", "", "Output character encoding (default utf-8)"),
		upAxis:   fs.String("up-axis", "", "Up axis written to <asset> (X_UP, Y_UP, Z_UP)"),
		logFile:  fs.String("log-file", "", "Also log to this rotating file"),
	}
}

// ConfigPath returns the explicit config path if provided via --config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.config
}

// apply applies flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if *f.debug {
		cfg.Logging.Level = "debug"
	}
	if *f.compact {
		cfg.Output.Indent = ""
	}
	if *f.encoding != "" {
		cfg.Output.Encoding = *f.encoding
	}
	if *f.upAxis != "" {
		cfg.Asset.UpAxis = *f.upAxis
	}
	if *f.logFile != "" {
		cfg.Logging.LogFile = *f.logFile
	}
}
