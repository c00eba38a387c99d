package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Settings is the top-level configuration struct for the tool itself: where
// the managed ossec.conf lives, how backups are kept, and how logging and
// file watching behave. It does not affect editing semantics.
// Tags are used by Viper to map YAML keys to struct fields.
type Settings struct {
	LogLevel      string        `mapstructure:"log_level"`
	ConfigPath    string        `mapstructure:"config_path"`
	BackupDir     string        `mapstructure:"backup_dir"`
	CreateBackups bool          `mapstructure:"create_backups"`
	KeepBackups   int           `mapstructure:"keep_backups"`
	Watch         WatchSettings `mapstructure:"watch"`
}

// WatchSettings controls the optional watcher that reports external changes
// to the managed file.
type WatchSettings struct {
	Enabled         bool `mapstructure:"enabled"`
	DebounceSeconds int  `mapstructure:"debounce_seconds"`
}

// LoadSettings reads the tool configuration from a YAML file (ossecconf.yaml)
// and environment variables. It uses Viper for robust configuration
// management, allowing for defaults and environment variable overrides.
func LoadSettings() (*Settings, error) {
	v := viper.New()
	v.SetConfigName("ossecconf") // ossecconf.yaml
	v.SetConfigType("yaml")
	v.AddConfigPath(".") // Search in current directory
	v.AddConfigPath("/etc/ossecconf/")

	// Set default values
	v.SetDefault("log_level", "info")
	v.SetDefault("config_path", "/var/ossec/etc/ossec.conf")
	v.SetDefault("backup_dir", "")
	v.SetDefault("create_backups", true)
	v.SetDefault("keep_backups", 10)
	v.SetDefault("watch.enabled", false)
	v.SetDefault("watch.debounce_seconds", 2)

	// Read environment variables
	v.SetEnvPrefix("OSSECCONF") // Look for OSSECCONF_ prefix
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // Replace dots with underscores for nested keys
	v.AutomaticEnv() // Automatically bind environment variables to config keys

	// Read configuration file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Println("Config file not found, using defaults and environment variables.")
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &settings, nil
}
