package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// DefaultPassword is the admin password a fresh install starts with.
// Change it before exposing the server.
const DefaultPassword = "clubdesk"

// AdminConfig is the single admin login. The password is stored as a
// bcrypt hash, never in the clear.
type AdminConfig struct {
	User         string `yaml:"user"`
	PasswordHash string `yaml:"password_hash"`
}

// EmailConfig holds the Resend delivery settings. An empty APIKey
// disables outbound email.
type EmailConfig struct {
	APIKey     string `yaml:"api_key"`
	From       string `yaml:"from"`
	AdminEmail string `yaml:"admin_email"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// DBPath is the SQLite database file.
	DBPath string `yaml:"db_path"`

	// StaticDir is served under /static/.
	StaticDir string `yaml:"static_dir"`

	// Locale controls calendar direction: "en" or "he".
	Locale string `yaml:"locale"`

	// DigestCron schedules the weekly summary email (cron syntax).
	// Empty disables the digest.
	DigestCron string `yaml:"digest_cron"`

	Admin AdminConfig `yaml:"admin"`
	Email EmailConfig `yaml:"email"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:     ":8080",
		DBPath:     "clubdesk.db",
		StaticDir:  "static",
		Locale:     "en",
		DigestCron: "0 8 * * 0",
		Admin: AdminConfig{
			User:         "admin",
			PasswordHash: defaultPasswordHash(),
		},
		Email: EmailConfig{
			From: "ClubDesk <noreply@clubdesk.local>",
		},
	}
}

// defaultPasswordHash derives the stored hash for DefaultPassword.
// Hashing at startup keeps the config free of a stale literal that
// could drift from the password it claims to encode.
func defaultPasswordHash() string {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		// GenerateFromPassword only fails on an out-of-range cost.
		panic(err)
	}
	return string(hash)
}

// Normalize fills in missing values so partially written configs still
// behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.DBPath == "" {
		c.DBPath = "clubdesk.db"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	switch c.Locale {
	case "en", "he":
	default:
		c.Locale = "en"
	}
	if c.Admin.User == "" {
		c.Admin.User = "admin"
	}
	if c.Email.From == "" {
		c.Email.From = "ClubDesk <noreply@clubdesk.local>"
	}
}

// applyEnv lets secrets come from the environment instead of the file.
func (c *Config) applyEnv() {
	if v := os.Getenv("CLUBDESK_RESEND_KEY"); v != "" {
		c.Email.APIKey = v
	}
	if v := os.Getenv("CLUBDESK_ADMIN_HASH"); v != "" {
		c.Admin.PasswordHash = v
	}
	if v := os.Getenv("CLUBDESK_ADDR"); v != "" {
		c.Listen = v
	}
}

// Load reads configuration from the given YAML path.
// PRE: path is non-empty
// POST: a missing file is created with defaults and 0600 perms
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			cfg.applyEnv()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	cfg.applyEnv()
	return &cfg, nil
}

// Save writes the configuration atomically with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".clubdesk-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
