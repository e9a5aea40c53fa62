package config

const (
	defaultJournalPath = "~/.local/share/broom/journal.db"
	defaultLogLevel    = "info"
	defaultLogFormat   = "console"
)

// Default returns a Config populated with repository defaults. Paths and
// routing rules have no defaults; they come from the rules file.
func Default() Config {
	return Config{
		Journal: Journal{
			Enabled: true,
			Path:    defaultJournalPath,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
