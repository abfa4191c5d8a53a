package artifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/compose-network/sendmessage-migrations/internal/logger"
	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Compiler compiles Solidity contracts with forge
type Compiler struct {
	projectDir string
	outputPath string
	logger     *slog.Logger
}

// NewCompiler creates a compiler for the forge project in projectDir that
// writes the combined artifacts to outputPath.
func NewCompiler(projectDir, outputPath string) *Compiler {
	return &Compiler{
		projectDir: projectDir,
		outputPath: outputPath,
		logger:     logger.Named("artifacts_compiler"),
	}
}

// Compile compiles the named contracts and persists them as contracts.json
func (c *Compiler) Compile(ctx context.Context, contractNames []ContractName) error {
	c.logger.
		With("project_dir", c.projectDir).
		Info("starting contract compilation")

	c.logger.Info("installing forge dependencies")
	if err := c.forge(ctx, "install").Run(); err != nil {
		return fmt.Errorf("forge install failed: %w", err)
	}

	compiled := make(map[ContractName]map[string]any, len(contractNames))
	for _, name := range contractNames {
		c.logger.With("name", name).Info("compiling contract")

		abiJSON, bytecodeHex, err := c.inspect(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to compile %s: %w", name, err)
		}

		compiled[name] = map[string]any{
			"abi":      json.RawMessage(abiJSON),
			"bytecode": bytecodeHex,
		}
	}

	if err := writeContractsJSON(c.outputPath, compiled); err != nil {
		return err
	}

	c.logger.With("path", c.outputPath).Info("contracts compiled successfully")

	return nil
}

func (c *Compiler) forge(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "forge", args...)
	cmd.Dir = c.projectDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

// inspect returns the raw JSON ABI and 0x prefixed creation bytecode of a contract
func (c *Compiler) inspect(ctx context.Context, name ContractName) ([]byte, string, error) {
	abiCmd := c.forge(ctx, "inspect", string(name), "abi", "--json")
	abiCmd.Stdout = nil
	abiOutput, err := abiCmd.Output()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get ABI: %w", err)
	}

	if _, err := abi.JSON(strings.NewReader(string(abiOutput))); err != nil {
		return nil, "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	bytecodeCmd := c.forge(ctx, "inspect", string(name), "bytecode")
	bytecodeCmd.Stdout = nil
	bytecodeOutput, err := bytecodeCmd.Output()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get bytecode: %w", err)
	}

	return abiOutput, strings.TrimSpace(string(bytecodeOutput)), nil
}

func writeContractsJSON(path string, contracts map[ContractName]map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(contracts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal contracts: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}

	return nil
}
