// Package config loads the moonshot daemon's configuration: logging
// setup, the acceptor's RadSec/RADIUS server and identity AVPs, and the
// initiator's NAI/realm, following the same viper-backed file + environment
// + defaults precedence the rest of the pack's services use.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig controls internal/obslog.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// AcceptorConfig configures the RADIUS/RadSec transport and identity AVPs
// used by an acceptor credential.
type AcceptorConfig struct {
	RadiusServer    string        `mapstructure:"radius_server"`
	RadiusSecret    string        `mapstructure:"radius_secret"`
	RadiusTimeout   time.Duration `mapstructure:"radius_timeout"`
	ServiceName     string        `mapstructure:"service_name"`
	HostName        string        `mapstructure:"host_name"`
	ServiceSpecific string        `mapstructure:"service_specific"`
	RealmName       string        `mapstructure:"realm_name"`
}

// InitiatorConfig configures the default identity an initiator credential
// presents when none is supplied by the caller.
type InitiatorConfig struct {
	NAI string `mapstructure:"nai"`
}

// Config is the top-level moonshot daemon configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Acceptor  AcceptorConfig  `mapstructure:"acceptor"`
	Initiator InitiatorConfig `mapstructure:"initiator"`
}

// DefaultConfig returns the configuration used when no file, flag, or
// environment variable overrides a value.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Acceptor: AcceptorConfig{
			RadiusTimeout: 5 * time.Second,
		},
	}
}

// Load reads configuration from configPath (or the default search
// locations, if empty) over DefaultConfig. Environment variables prefixed
// MOONSHOT_ override only keys that appear in the file; when no config
// file is found, DefaultConfig is returned and the environment is not
// consulted.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	found, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if !found {
		return cfg, nil
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("moonshot: unmarshal config: %w", err)
	}

	return cfg, nil
}

func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("MOONSHOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}

	v.AddConfigPath(defaultConfigDir())
	v.AddConfigPath(".")
	v.SetConfigName("moonshot")
	v.SetConfigType("yaml")
}

func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("moonshot: read config file: %w", err)
	}
	return true, nil
}

func defaultConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "moonshot")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "moonshot")
}
