package devnet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/compose-network/sendmessage-migrations/configs"
	"github.com/compose-network/sendmessage-migrations/internal/infra/docker"
	"github.com/compose-network/sendmessage-migrations/internal/logger"
)

const anvilPort = 8545

// Containers is the container runtime the devnet needs.
type Containers interface {
	EnsureImage(ctx context.Context, imageName string) error
	StartContainer(ctx context.Context, opts docker.ContainerOptions) (string, error)
	RemoveContainer(ctx context.Context, name string) error
}

// Service runs a local anvil chain in a container
type Service struct {
	containers Containers
	logger     *slog.Logger
}

func NewService(containers Containers) *Service {
	return &Service{
		containers: containers,
		logger:     logger.Named("devnet"),
	}
}

// Up starts anvil and returns its RPC URL.
func (s *Service) Up(ctx context.Context, cfg configs.Devnet) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	if err := s.containers.EnsureImage(ctx, cfg.Image); err != nil {
		return "", err
	}

	if _, err := s.containers.StartContainer(ctx, containerOptions(cfg)); err != nil {
		return "", fmt.Errorf("failed to start devnet: %w", err)
	}

	url := fmt.Sprintf("http://localhost:%d", cfg.Port)
	s.logger.With("url", url).With("chain_id", cfg.ChainID).Info("devnet is starting")

	return url, nil
}

// Down removes the anvil container.
func (s *Service) Down(ctx context.Context, cfg configs.Devnet) error {
	return s.containers.RemoveContainer(ctx, cfg.ContainerName)
}

// containerOptions runs anvil as a single shell command, the foundry image
// entrypoint is /bin/sh -c.
func containerOptions(cfg configs.Devnet) docker.ContainerOptions {
	return docker.ContainerOptions{
		Name:  cfg.ContainerName,
		Image: cfg.Image,
		Cmd:   []string{fmt.Sprintf("anvil --host 0.0.0.0 --port %d --chain-id %d", anvilPort, cfg.ChainID)},
		Ports: map[int]int{cfg.Port: anvilPort},
	}
}
