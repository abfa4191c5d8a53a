package docker

import (
	"context"
	"fmt"
	"strconv"

	"github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
)

type ContainerOptions struct {
	Name  string
	Image string
	Cmd   []string
	// Ports maps a host port on 127.0.0.1 to a container TCP port.
	Ports map[int]int
}

// StartContainer creates and starts a detached container. A running
// container with the same name is left untouched.
func (c *Client) StartContainer(ctx context.Context, opts ContainerOptions) (string, error) {
	log := c.logger.With("container", opts.Name)

	info, err := c.cli.ContainerInspect(ctx, opts.Name)
	switch {
	case err == nil && info.State != nil && info.State.Running:
		log.Info("container already running")
		return info.ID, nil
	case err == nil:
		log.Info("removing stopped container")
		if err := c.cli.ContainerRemove(ctx, info.ID, container.RemoveOptions{Force: true}); err != nil {
			return "", fmt.Errorf("failed to remove stopped container: %w", err)
		}
	case !errdefs.IsNotFound(err):
		return "", fmt.Errorf("failed to inspect container: %w", err)
	}

	exposed, bindings := portBindings(opts.Ports)

	resp, err := c.cli.ContainerCreate(ctx,
		&container.Config{
			Image:        opts.Image,
			Cmd:          opts.Cmd,
			ExposedPorts: exposed,
		},
		&container.HostConfig{
			PortBindings: bindings,
		},
		nil, nil, opts.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create container: %w", err)
	}

	if err := c.cli.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		_ = c.cli.ContainerRemove(ctx, resp.ID, container.RemoveOptions{Force: true})
		return "", fmt.Errorf("failed to start container: %w", err)
	}

	log.With("id", resp.ID).Info("container started")
	return resp.ID, nil
}

// RemoveContainer force-removes the named container. Removing a container
// that does not exist is not an error.
func (c *Client) RemoveContainer(ctx context.Context, name string) error {
	err := c.cli.ContainerRemove(ctx, name, container.RemoveOptions{Force: true, RemoveVolumes: true})
	if err != nil && !errdefs.IsNotFound(err) {
		return fmt.Errorf("failed to remove container %s: %w", name, err)
	}

	c.logger.With("container", name).Info("container removed")
	return nil
}

func portBindings(ports map[int]int) (nat.PortSet, nat.PortMap) {
	exposed := make(nat.PortSet, len(ports))
	bindings := make(nat.PortMap, len(ports))
	for hostPort, containerPort := range ports {
		port := nat.Port(fmt.Sprintf("%d/tcp", containerPort))
		exposed[port] = struct{}{}
		bindings[port] = append(bindings[port], nat.PortBinding{
			HostIP:   "127.0.0.1",
			HostPort: strconv.Itoa(hostPort),
		})
	}
	return exposed, bindings
}
