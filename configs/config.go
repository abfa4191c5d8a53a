package configs

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/compose-network/sendmessage-migrations/internal/migrations"
)

var Values Config

type (
	NetworkName    string
	RepositoryName string

	Config struct {
		Migration    Migration                     `mapstructure:"migration"`
		Wallet       Wallet                        `mapstructure:"wallet"`
		Networks     map[NetworkName]Network       `mapstructure:"networks"`
		Repositories map[RepositoryName]Repository `mapstructure:"repositories"`
		Devnet       Devnet                        `mapstructure:"devnet"`
		OutputDir    string                        `mapstructure:"output-dir"`
	}

	Migration struct {
		ArtifactsPath       string   `mapstructure:"artifacts-path"`
		GatewayAddress      string   `mapstructure:"gateway-address"`
		GasServiceAddress   string   `mapstructure:"gas-service-address"`
		WaitForConfirmation bool     `mapstructure:"wait-for-confirmation"`
		Networks            []string `mapstructure:"networks"`
	}

	Wallet struct {
		PrivateKey string `mapstructure:"private-key"`
	}

	Network struct {
		ChainID int    `mapstructure:"chain-id"`
		RPCURL  string `mapstructure:"rpc-url"`
	}

	Repository struct {
		URL    string `mapstructure:"url"`
		Branch string `mapstructure:"branch"`
		Path   string `mapstructure:"path"`
	}

	Devnet struct {
		Image         string `mapstructure:"image"`
		ContainerName string `mapstructure:"container-name"`
		Port          int    `mapstructure:"port"`
		ChainID       int    `mapstructure:"chain-id"`
	}
)

const (
	RepositoryNameContracts RepositoryName = "contracts"

	NetworkNameLinea    NetworkName = "linea"
	NetworkNameOptimism NetworkName = "optimism"
	NetworkNameDevnet   NetworkName = "devnet"
)

// Validate checks the settings needed by the deploy command.
func (c *Config) Validate() error {
	var errs []error

	if c.Migration.ArtifactsPath == "" {
		errs = append(errs, errors.New("migration.artifacts-path is required"))
	}
	if c.Migration.GatewayAddress != "" {
		if err := migrations.ValidateAddress("gateway", c.Migration.GatewayAddress); err != nil {
			errs = append(errs, fmt.Errorf("migration.gateway-address '%s' is not a hex address: %w", c.Migration.GatewayAddress, err))
		}
	}
	if c.Migration.GasServiceAddress != "" {
		if err := migrations.ValidateAddress("gas service", c.Migration.GasServiceAddress); err != nil {
			errs = append(errs, fmt.Errorf("migration.gas-service-address '%s' is not a hex address: %w", c.Migration.GasServiceAddress, err))
		}
	}
	if c.Wallet.PrivateKey == "" {
		errs = append(errs, errors.New("wallet.private-key is required"))
	}

	if len(c.Networks) == 0 {
		errs = append(errs, errors.New("at least one entry in networks is required"))
	}
	for name, network := range c.Networks {
		if err := network.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("networks.%s: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}

	return nil
}

func (n Network) Validate() error {
	var errs []error

	if n.ChainID <= 0 {
		errs = append(errs, errors.New("chain-id is required"))
	}
	if n.RPCURL == "" {
		errs = append(errs, errors.New("rpc-url is required"))
	} else if u, err := url.Parse(n.RPCURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("rpc-url '%s' is not a valid URL", n.RPCURL))
	}

	return errors.Join(errs...)
}

// Select returns the networks with the given names. Empty names fall back to
// migration.networks, and all configured networks when that is empty too.
func (c *Config) Select(names []string) (map[NetworkName]Network, error) {
	if len(names) == 0 {
		names = c.Migration.Networks
	}
	if len(names) == 0 {
		return c.Networks, nil
	}

	selected := make(map[NetworkName]Network, len(names))
	for _, name := range names {
		network, ok := c.Networks[NetworkName(name)]
		if !ok {
			return nil, fmt.Errorf("network '%s' is not configured", name)
		}
		selected[NetworkName(name)] = network
	}

	return selected, nil
}

func (r Repository) Validate() error {
	var errs []error

	if r.URL == "" {
		errs = append(errs, errors.New("url is required"))
	}
	if r.Branch == "" {
		errs = append(errs, errors.New("branch is required"))
	}

	return errors.Join(errs...)
}

func (d Devnet) Validate() error {
	var errs []error

	if d.Image == "" {
		errs = append(errs, errors.New("devnet.image is required"))
	}
	if d.ContainerName == "" {
		errs = append(errs, errors.New("devnet.container-name is required"))
	}
	if d.Port <= 0 || d.Port > 65535 {
		errs = append(errs, fmt.Errorf("devnet.port %d is out of range", d.Port))
	}
	if d.ChainID <= 0 {
		errs = append(errs, errors.New("devnet.chain-id is required"))
	}

	return errors.Join(errs...)
}
