package config

import (
	"os"

	"galaxypoker-server/internal/util"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the Galaxy Poker server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	JWT            struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	Table struct {
		SmallBlind int `yaml:"smallBlind" envconfig:"small_blind"`
		BigBlind   int `yaml:"bigBlind" envconfig:"big_blind"`
		// TurnClock is the number of seconds a player has to act before
		// a fold (or check, when legal) is forced on their behalf
		TurnClock int `yaml:"turnClock" envconfig:"turn_clock"`
	}
	Log struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
func Load() error {
	config = Config{}

	configFile := util.Getenv("GP_CONFIG_FILE", "config.yaml")
	if file, err := os.Open(configFile); err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("gp", &config); err != nil {
		return err
	}

	setDefaults(&config)

	config.loaded = true
	return nil
}

func setDefaults(c *Config) {
	if c.Table.SmallBlind == 0 {
		c.Table.SmallBlind = 25
	}

	if c.Table.BigBlind == 0 {
		c.Table.BigBlind = c.Table.SmallBlind * 2
	}

	if c.Table.TurnClock == 0 {
		c.Table.TurnClock = 30
	}
}
