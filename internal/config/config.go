package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Current sales rep; used as the creator reference on new clients
	User UserConfig `yaml:"user"`

	// Search-as-you-type tuning
	Search SearchConfig `yaml:"search"`

	// Log output
	Log LogConfig `yaml:"log"`

	// Outbound email for visit notifications
	Notify NotifyConfig `yaml:"notify"`

	// Header printed on exported reports
	Branding BrandingConfig `yaml:"branding"`
}

type DatabaseConfig struct {
	Path      string `yaml:"path"`      // Path to SQLite database
	Encrypted bool   `yaml:"encrypted"` // Use SQLCipher with a keyring-held key
}

type UserConfig struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Phone string `yaml:"phone"`
}

type SearchConfig struct {
	DebounceMS int `yaml:"debounce_ms"` // Quiescence delay before a query fires
	Limit      int `yaml:"limit"`       // Max rows returned per query
}

// Debounce returns the configured quiescence delay
func (s SearchConfig) Debounce() time.Duration {
	return time.Duration(s.DebounceMS) * time.Millisecond
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	Path  string `yaml:"path"`  // File path, or "stderr"
}

type NotifyConfig struct {
	SMTPHost string `yaml:"smtp_host"`
	SMTPPort int    `yaml:"smtp_port"`
	Username string `yaml:"username"`
	From     string `yaml:"from"`
	// Password is read from SALESDESK_SMTP_PASSWORD, never from the file
	Password string `yaml:"-"`
}

// Enabled reports whether enough SMTP settings exist to send mail
func (n NotifyConfig) Enabled() bool {
	return n.SMTPHost != "" && n.From != ""
}

type BrandingConfig struct {
	Company     string `yaml:"company"`
	ReportTitle string `yaml:"report_title"`
}

// DefaultConfigPath returns ~/.config/salesdesk/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "salesdesk", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "salesdesk", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	base := filepath.Join(homeDir, ".config", "salesdesk")

	return &Config{
		Database: DatabaseConfig{
			Path:      filepath.Join(base, "salesdesk.db"),
			Encrypted: true,
		},
		User: UserConfig{
			ID: "local",
		},
		Search: SearchConfig{
			DebounceMS: 300,
			Limit:      10,
		},
		Log: LogConfig{
			Level: "info",
			Path:  filepath.Join(base, "salesdesk.log"),
		},
		Notify: NotifyConfig{
			SMTPPort: 587,
		},
		Branding: BrandingConfig{
			Company:     "salesdesk",
			ReportTitle: "Client Directory",
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg.applyEnv()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

func (c *Config) applyEnv() {
	if pw := os.Getenv("SALESDESK_SMTP_PASSWORD"); pw != "" {
		c.Notify.Password = pw
	}
	if c.Search.DebounceMS <= 0 {
		c.Search.DebounceMS = 300
	}
	if c.Search.Limit <= 0 {
		c.Search.Limit = 10
	}
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the database and log directories
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(filepath.Dir(c.Database.Path), 0755); err != nil {
		return err
	}

	if c.Log.Path != "" && c.Log.Path != "stderr" {
		if err := os.MkdirAll(filepath.Dir(c.Log.Path), 0755); err != nil {
			return err
		}
	}

	return nil
}
