package output

import (
	"github.com/compose-network/sendmessage-migrations/configs"
	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

type (
	Model struct {
		Networks map[configs.NetworkName]Network `yaml:"networks"`
	}

	Network struct {
		ChainID   int                       `yaml:"chain-id"`
		RPCURL    string                    `yaml:"rpc-url"`
		Contracts map[string]ContractConfig `yaml:"contracts"`
	}

	ContractConfig struct {
		Address common.Address     `yaml:"address"`
		ABI     SingleQuotedString `yaml:"abi"`
	}

	SingleQuotedString string
)

func (s SingleQuotedString) MarshalYAML() (any, error) {
	node := &yaml.Node{
		Kind:  yaml.ScalarNode,
		Style: yaml.SingleQuotedStyle,
		Value: string(s),
	}
	return node, nil
}
