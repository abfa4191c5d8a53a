package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloner_ReusesExistingCheckout(t *testing.T) {
	destDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(destDir, "contracts", ".git"), 0755))

	path, err := NewCloner().Clone(context.Background(), destDir, Repository{
		Name: "contracts",
		URL:  "https://invalid.example/contracts.git",
		Ref:  "main",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(destDir, "contracts"), path)
}
