package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Registry resolves contract names to compiled artifacts.
type Registry struct {
	contracts map[ContractName]CompiledContract
}

// NewRegistry creates a registry over already loaded contracts.
func NewRegistry(contracts map[ContractName]CompiledContract) *Registry {
	return &Registry{contracts: contracts}
}

// Load reads artifacts from path. A file is read as a combined contracts.json,
// a directory as one truffle artifact per *.json file.
func Load(path string) (*Registry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat artifacts path: %w", err)
	}

	if !info.IsDir() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		contracts, err := parseContracts(data)
		if err != nil {
			return nil, err
		}
		return NewRegistry(contracts), nil
	}

	files, err := filepath.Glob(filepath.Join(path, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts in %s: %w", path, err)
	}

	contracts := make(map[ContractName]CompiledContract, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		contract, err := parseTruffleArtifact(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(file), err)
		}
		contracts[contract.Name] = contract
	}

	return NewRegistry(contracts), nil
}

// Resolve returns the compiled contract registered under name.
func (r *Registry) Resolve(name string) (CompiledContract, error) {
	contract, ok := r.contracts[ContractName(name)]
	if !ok {
		return CompiledContract{}, fmt.Errorf("%w: %s", ErrContractNotFound, name)
	}
	return contract, nil
}

// Names returns the registered contract names in sorted order.
func (r *Registry) Names() []ContractName {
	names := make([]ContractName, 0, len(r.contracts))
	for name := range r.contracts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// parseContracts parses contracts.json data into a CompiledContract map
func parseContracts(data []byte) (map[ContractName]CompiledContract, error) {
	var result map[string]struct {
		ABI      json.RawMessage `json:"abi"`
		Bytecode string          `json:"bytecode"`
	}

	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse compiled contracts: %w", err)
	}

	loaded := make(map[ContractName]CompiledContract, len(result))
	for name, raw := range result {
		contract, err := newCompiledContract(name, raw.ABI, raw.Bytecode)
		if err != nil {
			return nil, err
		}
		loaded[contract.Name] = contract
	}

	return loaded, nil
}

func parseTruffleArtifact(data []byte) (CompiledContract, error) {
	var artifact struct {
		ContractName string          `json:"contractName"`
		ABI          json.RawMessage `json:"abi"`
		Bytecode     string          `json:"bytecode"`
	}

	if err := json.Unmarshal(data, &artifact); err != nil {
		return CompiledContract{}, fmt.Errorf("failed to parse artifact: %w", err)
	}
	if artifact.ContractName == "" {
		return CompiledContract{}, fmt.Errorf("artifact has no contractName")
	}

	return newCompiledContract(artifact.ContractName, artifact.ABI, artifact.Bytecode)
}

func newCompiledContract(name string, rawABI json.RawMessage, bytecode string) (CompiledContract, error) {
	parsedABI, err := abi.JSON(strings.NewReader(string(rawABI)))
	if err != nil {
		return CompiledContract{}, fmt.Errorf("failed to parse ABI for %s: %w", name, err)
	}

	bytecodeHex := strings.TrimPrefix(strings.TrimSpace(bytecode), "0x")
	if bytecodeHex == "" {
		return CompiledContract{}, fmt.Errorf("empty bytecode for %s", name)
	}

	return CompiledContract{
		Name:     ContractName(name),
		ABI:      parsedABI,
		RawABI:   string(rawABI),
		Bytecode: common.Hex2Bytes(bytecodeHex),
	}, nil
}
