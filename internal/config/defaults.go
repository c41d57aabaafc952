package config

const (
	defaultConfigPath      = "~/.config/sortdir/config.toml"
	projectConfigName      = "sortdir.toml"
	defaultUnknownPolicy   = UnknownLeave
	defaultMaxArchiveDepth = 10
	maxArchiveDepthLimit   = 64
	defaultMaxExtractBytes = 4 << 30
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Sort: Sort{
			Unknown:         defaultUnknownPolicy,
			MaxArchiveDepth: defaultMaxArchiveDepth,
			MaxExtractBytes: defaultMaxExtractBytes,
			PruneEmpty:      false,
			Lock:            true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
