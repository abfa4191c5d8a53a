package configs

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

var (
	//go:embed config.example.yaml
	defaultConfigYAML string

	defaultsOnce sync.Once
	defaults     *viper.Viper
	defaultsErr  error
)

func embeddedDefaults() (*viper.Viper, error) {
	defaultsOnce.Do(func() {
		v := viper.New()
		v.SetConfigType("yaml")
		if err := v.ReadConfig(strings.NewReader(defaultConfigYAML)); err != nil {
			defaultsErr = fmt.Errorf("failed to read embedded config.example.yaml: %w", err)
			return
		}
		defaults = v
	})

	return defaults, defaultsErr
}

// RegisterDefaults makes every key of the embedded config.example.yaml the
// lowest priority value of v, below the config file, env and flags.
func RegisterDefaults(v *viper.Viper) error {
	d, err := embeddedDefaults()
	if err != nil {
		return err
	}

	for _, key := range d.AllKeys() {
		v.SetDefault(key, d.Get(key))
	}

	return nil
}

// DefaultConfig returns the parsed configuration from the embedded config.example.yaml.
func DefaultConfig() (Config, error) {
	d, err := embeddedDefaults()
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := d.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode embedded config.example.yaml: %w", err)
	}

	return cfg, nil
}

// MustDefaultConfig returns embedded defaults or panics if they cannot be loaded.
func MustDefaultConfig() Config {
	cfg, err := DefaultConfig()
	if err != nil {
		panic(err)
	}
	return cfg
}
