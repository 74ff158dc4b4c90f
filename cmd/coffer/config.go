// Config loading for the coffer CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyDataDir       = "data_dir"
	cfgKeyListenAddr    = "listen_addr"
	cfgKeyExchangeKey   = "exchange.api_key"
	cfgKeyExchangeFree  = "exchange.free_url"
	cfgKeyExchangeKeyed = "exchange.keyed_url"
	cfgKeySessionSecret = "session.secret"
	cfgKeySessionTTL    = "session.ttl_hours"

	// Defaults applied when config.yaml leaves a key unset.
	defaultListenAddr      = ":8080"
	defaultSessionTTLHours = 24
)

// envExchangeAPIKey overrides exchange.api_key when set.
const envExchangeAPIKey = "EXCHANGE_API_KEY"

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Coffer configuration

# Data directory holding the CSV tables (optional; overridable by --data-dir)
# data_dir:

# Address the HTTP server listens on
# listen_addr: :8080

# Exchange rate service. Without an API key the free endpoint is used.
# exchange:
#   api_key:
#   free_url:
#   keyed_url:

# Session tokens. An empty secret generates a fresh one per process,
# which signs out every user when the server restarts.
# session:
#   secret:
#   ttl_hours: 24
`

// loadConfig reads config.yaml from the resolved config directory using Viper.
// It creates the config directory and a default config.yaml on first run.
// A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyListenAddr, defaultListenAddr)
	v.SetDefault(cfgKeySessionTTL, defaultSessionTTLHours)
	if err := v.BindEnv(cfgKeyExchangeKey, envExchangeAPIKey); err != nil {
		return nil, fmt.Errorf("bind exchange env: %w", err)
	}
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Missing config.yaml is not an error.
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
