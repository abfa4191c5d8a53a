package output

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/compose-network/sendmessage-migrations/configs"
	"github.com/compose-network/sendmessage-migrations/internal/artifacts"
	"github.com/compose-network/sendmessage-migrations/internal/infra/filesystem"
	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

const fileName = "output.yaml"

// Deployment is a contract created on a network during this run.
type Deployment struct {
	Network  configs.NetworkName
	ChainID  int
	RPCURL   string
	Contract artifacts.CompiledContract
	Address  common.Address
}

// Generator writes output.yaml describing the deployments of a run
type Generator struct {
	dir    string
	writer filesystem.Writer
}

func NewGenerator(dir string, writer filesystem.Writer) *Generator {
	return &Generator{dir: dir, writer: writer}
}

// Path returns where Generate writes.
func (g *Generator) Path() string {
	return filepath.Join(g.dir, fileName)
}

func (g *Generator) Generate(_ context.Context, deployments []Deployment) error {
	model := &Model{Networks: make(map[configs.NetworkName]Network, len(deployments))}

	for _, d := range deployments {
		network, ok := model.Networks[d.Network]
		if !ok {
			network = Network{
				ChainID:   d.ChainID,
				RPCURL:    d.RPCURL,
				Contracts: map[string]ContractConfig{},
			}
		}
		network.Contracts[strings.ToLower(string(d.Contract.Name))] = ContractConfig{
			Address: d.Address,
			ABI:     SingleQuotedString(compactJSON(d.Contract.RawABI)),
		}
		model.Networks[d.Network] = network
	}

	data, err := yaml.Marshal(model)
	if err != nil {
		return fmt.Errorf("could not marshal output model. Err: '%w'", err)
	}

	if err := g.writer.WriteBytes(g.Path(), data); err != nil {
		return fmt.Errorf("could not write output file. Err: '%w'", err)
	}

	return nil
}

func compactJSON(jsonStr string) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(jsonStr)); err != nil {
		return jsonStr
	}
	return buf.String()
}
