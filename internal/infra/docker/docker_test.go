package docker

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortBindings(t *testing.T) {
	exposed, bindings := portBindings(map[int]int{18545: 8545})

	port := nat.Port("8545/tcp")
	assert.Contains(t, exposed, port)
	require.Len(t, bindings[port], 1)
	assert.Equal(t, nat.PortBinding{HostIP: "127.0.0.1", HostPort: "18545"}, bindings[port][0])
}

func TestReadProgress(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	ok := strings.NewReader(`{"status":"Pulling from foundry-rs/foundry"}
{"status":"Download complete"}
`)
	require.NoError(t, readProgress(ok, log))

	failed := strings.NewReader(`{"status":"Pulling"}
{"error":"manifest unknown","errorDetail":{"message":"manifest unknown"}}
`)
	err := readProgress(failed, log)
	require.Error(t, err)
	assert.Equal(t, "manifest unknown", err.Error())
}
