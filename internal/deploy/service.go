package deploy

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/compose-network/sendmessage-migrations/configs"
	"github.com/compose-network/sendmessage-migrations/internal/artifacts"
	"github.com/compose-network/sendmessage-migrations/internal/chain"
	"github.com/compose-network/sendmessage-migrations/internal/logger"
	"github.com/compose-network/sendmessage-migrations/internal/migrations"
	"github.com/compose-network/sendmessage-migrations/internal/output"
	"github.com/compose-network/sendmessage-migrations/internal/records"
	"github.com/ethereum/go-ethereum/crypto"
)

type (
	// Client is a chain backend that owns a connection.
	Client interface {
		chain.Backend
		Close()
	}

	// Dialer opens a ready client for an RPC URL.
	Dialer func(ctx context.Context, url string) (Client, error)

	// Service runs the SendMessage deployment step on a set of networks.
	Service struct {
		dial    Dialer
		records *records.Store
		output  *output.Generator
		logger  *slog.Logger
	}
)

func NewService(dial Dialer, store *records.Store, generator *output.Generator) *Service {
	return &Service{
		dial:    dial,
		records: store,
		output:  generator,
		logger:  logger.Named("deploy_service"),
	}
}

// Deploy deploys SendMessage to every network, in name order, stopping at the
// first failure. Successful deployments are recorded as they happen.
func (s *Service) Deploy(ctx context.Context, cfg configs.Config, networks map[configs.NetworkName]configs.Network) ([]output.Deployment, error) {
	step := migrations.DefaultConfiguration().WithOverrides(cfg.Migration.GatewayAddress, cfg.Migration.GasServiceAddress)
	if err := step.Validate(); err != nil {
		return nil, err
	}

	privateKey, err := chain.ParsePrivateKey(cfg.Wallet.PrivateKey)
	if err != nil {
		return nil, err
	}

	s.logger.With("path", cfg.Migration.ArtifactsPath).Info("loading compiled artifacts")
	registry, err := artifacts.Load(cfg.Migration.ArtifactsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load artifacts: %w", err)
	}

	contract, err := registry.Resolve(migrations.ArtifactSendMessage)
	if err != nil {
		return nil, err
	}

	s.logger.
		With("deployer", crypto.PubkeyToAddress(privateKey.PublicKey).Hex()).
		With("gateway", step.GatewayAddress).
		With("gas_service", step.GasServiceAddress).
		With("networks", len(networks)).
		Info("starting deployment")

	var deployments []output.Deployment
	for _, name := range slices.Sorted(maps.Keys(networks)) {
		network := networks[name]

		deployment, err := s.deployToNetwork(ctx, name, network, registry, privateKey, step, cfg.Migration.WaitForConfirmation)
		if err != nil {
			return deployments, fmt.Errorf("failed to deploy to %s: %w", name, err)
		}
		deployment.Contract = contract
		deployments = append(deployments, deployment)
	}

	if err := s.output.Generate(ctx, deployments); err != nil {
		return deployments, err
	}

	s.logger.With("output", s.output.Path()).Info("deployment finished")

	return deployments, nil
}

func (s *Service) deployToNetwork(
	ctx context.Context,
	name configs.NetworkName,
	network configs.Network,
	registry *artifacts.Registry,
	privateKey *ecdsa.PrivateKey,
	step migrations.Configuration,
	wait bool,
) (output.Deployment, error) {
	log := s.logger.With("network", name).With("url", network.RPCURL)

	log.Info("waiting for network RPC")
	client, err := s.dial(ctx, network.RPCURL)
	if err != nil {
		return output.Deployment{}, err
	}
	defer client.Close()

	if err := chain.VerifyChainID(ctx, client, int64(network.ChainID)); err != nil {
		return output.Deployment{}, err
	}

	deployer := chain.NewDeployer(client, registry, privateKey, chain.WithConfirmation(wait))
	address, err := migrations.DeploySendMessage(ctx, deployer, step)
	if err != nil {
		return output.Deployment{}, err
	}

	if err := s.records.Save(records.Record{
		Network:  string(name),
		ChainID:  network.ChainID,
		Contract: migrations.ArtifactSendMessage,
		Address:  address.Hex(),
	}); err != nil {
		return output.Deployment{}, err
	}

	log.With("address", address.Hex()).Info("SendMessage deployed")

	return output.Deployment{
		Network: name,
		ChainID: network.ChainID,
		RPCURL:  network.RPCURL,
		Address: address,
	}, nil
}
