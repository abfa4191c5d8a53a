package docker

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/compose-network/sendmessage-migrations/internal/logger"
	"github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
)

type Client struct {
	cli    *client.Client
	logger *slog.Logger
}

// New creates a Docker client from the environment.
func New() (*Client, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}

	return &Client{cli: cli, logger: logger.Named("docker_client")}, nil
}

// Close closes the Docker client connection.
func (c *Client) Close() error {
	return c.cli.Close()
}

// ImageExists checks if a Docker image exists locally.
func (c *Client) ImageExists(ctx context.Context, imageName string) (bool, error) {
	_, err := c.cli.ImageInspect(ctx, imageName)
	if err != nil {
		if errdefs.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// EnsureImage pulls imageName unless it is already present.
func (c *Client) EnsureImage(ctx context.Context, imageName string) error {
	exists, err := c.ImageExists(ctx, imageName)
	if err != nil {
		return fmt.Errorf("failed to inspect image %s: %w", imageName, err)
	}
	if exists {
		return nil
	}

	return c.PullImage(ctx, imageName)
}

// PullImage pulls a Docker image from a registry.
func (c *Client) PullImage(ctx context.Context, imageName string) error {
	c.logger.With("image", imageName).Info("pulling docker image")

	resp, err := c.cli.ImagePull(ctx, imageName, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("failed to pull image: %w", err)
	}
	defer resp.Close()

	if err := readProgress(resp, c.logger); err != nil {
		return fmt.Errorf("pull of %s failed: %w", imageName, err)
	}

	c.logger.With("image", imageName).Info("docker image pulled successfully")
	return nil
}

// readProgress drains a docker JSON progress stream and returns the last
// error message it reported.
func readProgress(r io.Reader, log *slog.Logger) error {
	scanner := bufio.NewScanner(r)
	var streamErr error
	for scanner.Scan() {
		line := scanner.Bytes()
		log.Debug(string(line))

		var msg struct {
			Error       string `json:"error"`
			ErrorDetail struct {
				Message string `json:"message"`
			} `json:"errorDetail"`
		}
		if err := json.Unmarshal(line, &msg); err == nil && msg.Error != "" {
			streamErr = errors.New(msg.Error)
			log.Error("docker error", "error", msg.Error)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading progress output: %w", err)
	}

	return streamErr
}
