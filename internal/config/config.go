// Package config handles application configuration management.
// It supports YAML files and environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Wiki   WikiConfig   `mapstructure:"wiki" yaml:"wiki"`
	Export ExportConfig `mapstructure:"export" yaml:"export"`
}

// WikiConfig holds the target wiki and the account used for uploads. The
// password is stored in cleartext; restrictive file permissions are the only
// protection, which is a known limitation.
type WikiConfig struct {
	APIURL   string `mapstructure:"api_url" yaml:"api_url"`
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
}

// ExportConfig holds the per-batch export settings
type ExportConfig struct {
	Overwrite            bool   `mapstructure:"overwrite" yaml:"overwrite"`
	CategorizeCamera     bool   `mapstructure:"categorize_camera" yaml:"categorize_camera"`
	TitleInDescription   bool   `mapstructure:"title_in_description" yaml:"title_in_description"`
	Language             string `mapstructure:"language" yaml:"language"`
	NamingPattern        string `mapstructure:"naming_pattern" yaml:"naming_pattern"`
	AuthorPattern        string `mapstructure:"author_pattern" yaml:"author_pattern"`
	DescriptionTemplates string `mapstructure:"description_templates" yaml:"description_templates"`
	Comment              string `mapstructure:"comment" yaml:"comment"`
}

// TemplatePrefixes splits the comma-separated description template list,
// trimming whitespace and dropping empty entries.
func (e ExportConfig) TemplatePrefixes() []string {
	var prefixes []string
	for _, p := range strings.Split(e.DescriptionTemplates, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			prefixes = append(prefixes, p)
		}
	}
	return prefixes
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("wiki.api_url", "https://commons.wikimedia.org/w/api.php")
	v.SetDefault("export.language", "en")
	v.SetDefault("export.naming_pattern", "$TITLE ($FILE_NAME)")
	v.SetDefault("export.author_pattern", "[[User:$USERNAME|$CREATOR]]")
	v.SetDefault("export.description_templates", "Description")
	v.SetDefault("export.comment", "Uploaded with dtMediaWiki")

	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w", err)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK - we'll use defaults and env vars
	}

	// Environment variable overrides
	v.SetEnvPrefix("DTMEDIAWIKI")
	v.AutomaticEnv()

	_ = v.BindEnv("wiki.username", "DTMEDIAWIKI_USERNAME")
	_ = v.BindEnv("wiki.password", "DTMEDIAWIKI_PASSWORD")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Save writes the current configuration to file
func Save(cfg *Config) error {
	configDir, err := getConfigDir()
	if err != nil {
		return fmt.Errorf("failed to determine config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")

	v := viper.New()
	v.Set("wiki", cfg.Wiki)
	v.Set("export", cfg.Export)

	if err := v.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Set restrictive permissions on config file (contains credentials)
	if err := os.Chmod(configPath, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	return nil
}

// getConfigDir returns the configuration directory path
func getConfigDir() (string, error) {
	if configDir := os.Getenv("DTMEDIAWIKI_CONFIG_DIR"); configDir != "" {
		return configDir, nil
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "dtmediawiki"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", "dtmediawiki"), nil
}

// GetConfigDir returns the configuration directory (exported for other packages)
func GetConfigDir() (string, error) {
	return getConfigDir()
}
