package config

const (
	defaultConfigPath      = "~/.config/dcimport/config.toml"
	defaultMountPoint      = "/media/camera"
	defaultSourceSubdir    = "DCIM/100CANON"
	defaultDestinationBase = "~/photos"
	defaultLogDir          = "~/.local/share/dcimport/logs"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultLogRetention    = 30
	defaultSettleTimeout   = 30
	defaultPollInterval    = 500
	defaultWatchSubsystem  = "block"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Transfer: Transfer{
			MountPoint:      defaultMountPoint,
			SourceSubdir:    defaultSourceSubdir,
			DestinationBase: defaultDestinationBase,
		},
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetention,
		},
		Watch: Watch{
			SettleTimeout: defaultSettleTimeout,
			PollInterval:  defaultPollInterval,
			Subsystem:     defaultWatchSubsystem,
		},
	}
}
