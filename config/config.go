package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultService  = "liquidgov"
	DefaultLogLevel = "info"
	DefaultHasher   = "keccak256"
	DefaultDepth    = uint32(5)
	DefaultEndpoint = "localhost:4318"
)

// Config is the on-disk TOML configuration. An empty DataDir selects an
// in-memory store.
type Config struct {
	DataDir     string     `toml:"DataDir"`
	GenesisFile string     `toml:"GenesisFile"`
	Governance  Governance `toml:"governance"`
	Logging     Logging    `toml:"logging"`
	Telemetry   Telemetry  `toml:"telemetry"`
}

// Default returns the configuration written when no file exists.
func Default() *Config {
	return &Config{
		DataDir: "./liquidgov-data",
		Governance: Governance{
			Hasher:          DefaultHasher,
			DelegationDepth: DefaultDepth,
		},
		Logging: Logging{
			Service: DefaultService,
			Level:   DefaultLogLevel,
		},
		Telemetry: Telemetry{
			Endpoint: DefaultEndpoint,
		},
	}
}

// Load loads the configuration from the given path, creating a default file
// when none exists. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	} else if err != nil {
		return nil, err
	}

	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, fmt.Errorf("config file %s has unknown keys: %s", path, strings.Join(keys, ", "))
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Governance.Hasher) == "" {
		c.Governance.Hasher = DefaultHasher
	}
	if c.Governance.DelegationDepth == 0 {
		c.Governance.DelegationDepth = DefaultDepth
	}
	if strings.TrimSpace(c.Logging.Service) == "" {
		c.Logging.Service = DefaultService
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if strings.TrimSpace(c.Telemetry.Endpoint) == "" {
		c.Telemetry.Endpoint = DefaultEndpoint
	}
}

// createDefault creates and saves a default configuration file.
func createDefault(path string) (*Config, error) {
	cfg := Default()
	if err := persist(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func persist(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
