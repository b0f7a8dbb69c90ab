package config

const (
	defaultStateDir               = "~/.local/share/traduce"
	defaultLogDir                 = "~/.local/share/traduce/logs"
	defaultLogRetentionDays       = 60
	defaultCatalogBaseURL         = "https://www.googleapis.com/books/v1"
	defaultCatalogTimeoutSeconds  = 10
	defaultTargetLanguage         = "es"
	defaultMaxCandidates          = 40
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
	defaultHeartbeatInterval      = 15
	defaultHeartbeatTimeout       = 120
	defaultNotifyRequestTimeout   = 10
	defaultQueuePollInterval      = 5
	defaultErrorRetryInterval     = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Catalog: Catalog{
			BaseURL:        defaultCatalogBaseURL,
			TimeoutSeconds: defaultCatalogTimeoutSeconds,
		},
		Investigation: Investigation{
			TargetLanguage:     defaultTargetLanguage,
			MaxCandidates:      defaultMaxCandidates,
			RelaxedTitleSearch: true,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Investigation:  true,
			Queue:          true,
			Errors:         true,
		},
		Workflow: Workflow{
			QueuePollInterval:  defaultQueuePollInterval,
			ErrorRetryInterval: defaultErrorRetryInterval,
			HeartbeatInterval:  defaultHeartbeatInterval,
			HeartbeatTimeout:   defaultHeartbeatTimeout,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
