package config

// History backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds the application configuration.
type Config struct {
	Theme             string `yaml:"theme"`
	Language          string `yaml:"language"`
	HistoryBackend    string `yaml:"history_backend"`
	HistoryPath       string `yaml:"history_path"`
	HistoryQuotaBytes int64  `yaml:"history_quota_bytes"`
	MaxFileSize       int64  `yaml:"max_file_size"`
	DownloadDir       string `yaml:"download_dir"`
	SnippetLanguage   string `yaml:"snippet_language"`
	LogLevel          string `yaml:"log_level"`
	VimMode           bool   `yaml:"vim_mode"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Theme:             "catppuccin-mocha",
		Language:          "",
		HistoryBackend:    BackendJSON,
		HistoryPath:       "",
		HistoryQuotaBytes: 5 << 20,
		MaxFileSize:       50 << 20,
		DownloadDir:       ".",
		SnippetLanguage:   "javascript",
		LogLevel:          "info",
		VimMode:           true,
	}
}

// normalize replaces values the program cannot use with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	switch c.HistoryBackend {
	case BackendJSON, BackendSQLite, BackendMemory:
	default:
		c.HistoryBackend = def.HistoryBackend
	}
	switch c.SnippetLanguage {
	case "javascript", "python", "php":
	default:
		c.SnippetLanguage = def.SnippetLanguage
	}
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = def.MaxFileSize
	}
	if c.HistoryQuotaBytes < 0 {
		c.HistoryQuotaBytes = 0
	}
	if c.Theme == "" {
		c.Theme = def.Theme
	}
}
