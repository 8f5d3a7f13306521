package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config is an in memory representation of the node configuration file.
type Config struct {
	API       *APIConfig       `toml:"api"`
	Datastore *DatastoreConfig `toml:"datastore"`
	Chain     *ChainConfig     `toml:"chain"`
}

// APIConfig holds all configuration options related to the api.
type APIConfig struct {
	Address string `toml:"address"`
}

func newDefaultAPIConfig() *APIConfig {
	return &APIConfig{
		Address: "127.0.0.1:3453",
	}
}

// DatastoreConfig holds all the configuration options for the datastore.
type DatastoreConfig struct {
	Type string `toml:"type"`
	Path string `toml:"path"`
}

func newDefaultDatastoreConfig() *DatastoreConfig {
	return &DatastoreConfig{
		Type: "mem",
		Path: "",
	}
}

// ChainConfig holds the chain store tunables.
type ChainConfig struct {
	// HeadChangeBufferSize is loaded and saved with the config file. The
	// chain store does not read it; it sizes each head-change subscriber
	// channel with its own fixed value of 16.
	HeadChangeBufferSize int `toml:"headChangeBufferSize"`
	// NetworkName is recorded in the genesis init actor.
	NetworkName string `toml:"networkName"`
}

func newDefaultChainConfig() *ChainConfig {
	return &ChainConfig{
		HeadChangeBufferSize: 16,
		NetworkName:          "venus-lite-local",
	}
}

// NewDefaultConfig returns a config object with all the fields filled out to
// their default values.
func NewDefaultConfig() *Config {
	return &Config{
		API:       newDefaultAPIConfig(),
		Datastore: newDefaultDatastoreConfig(),
		Chain:     newDefaultChainConfig(),
	}
}

// WriteFile writes the config to the given file path.
func (cfg *Config) WriteFile(file string) error {
	f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close() // nolint: errcheck

	return toml.NewEncoder(f).Encode(*cfg)
}

// ReadFile reads a config file from disk.
func ReadFile(file string) (*Config, error) {
	cfg := NewDefaultConfig()
	if _, err := os.Stat(file); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(file, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode config file %s", file)
	}

	return cfg, nil
}
