package deploy

import (
	"bytes"
	"strings"
	"testing"

	"github.com/compose-network/sendmessage-migrations/configs"
	"github.com/compose-network/sendmessage-migrations/internal/infra/filesystem/json"
	"github.com/compose-network/sendmessage-migrations/internal/migrations"
	"github.com/compose-network/sendmessage-migrations/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withOutputDir(t *testing.T, dir string) {
	t.Helper()
	previous := configs.Values
	configs.Values.OutputDir = dir
	t.Cleanup(func() { configs.Values = previous })
}

func lineWith(t *testing.T, out, network string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, network) {
			return line
		}
	}
	require.Failf(t, "missing row", "no row for %s in:\n%s", network, out)
	return ""
}

func TestAddressesCmd_PrintsKnownDeployments(t *testing.T) {
	withOutputDir(t, t.TempDir())

	var buf bytes.Buffer
	addressesCmd.SetOut(&buf)
	t.Cleanup(func() { addressesCmd.SetOut(nil) })

	require.NoError(t, addressesCmd.RunE(addressesCmd, nil))

	out := buf.String()
	assert.Contains(t, lineWith(t, out, "linea"), "0x752Be5CE15994EE59eB172c2132b569731C1b148")
	assert.Contains(t, lineWith(t, out, "optimism"), "0x4EF3469C8F4c87Bd16e3E85E489dE4845b776E8c")
	assert.NotContains(t, out, "devnet")
}

func TestAddressesCmd_IncludesPersistedRecords(t *testing.T) {
	dir := t.TempDir()
	withOutputDir(t, dir)

	require.NoError(t, records.NewStore(dir, json.NewReadWriter()).Save(records.Record{
		Network:  "devnet",
		ChainID:  31337,
		Contract: migrations.ArtifactSendMessage,
		Address:  "0x5FbDB2315678afecb367f032d93F642f64180aa3",
	}))

	var buf bytes.Buffer
	addressesCmd.SetOut(&buf)
	t.Cleanup(func() { addressesCmd.SetOut(nil) })

	require.NoError(t, addressesCmd.RunE(addressesCmd, nil))

	devnet := lineWith(t, buf.String(), "devnet")
	assert.Contains(t, devnet, "31337")
	assert.Contains(t, devnet, "0x5FbDB2315678afecb367f032d93F642f64180aa3")
	assert.Contains(t, lineWith(t, buf.String(), "linea"), "0x752Be5CE15994EE59eB172c2132b569731C1b148")
}
