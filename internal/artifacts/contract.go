package artifacts

import (
	"errors"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

type (
	ContractName string

	CompiledContract struct {
		Name     ContractName
		ABI      abi.ABI
		RawABI   string
		Bytecode []byte
	}
)

const (
	ContractNameSendMessage ContractName = "SendMessage"

	contractsFileName = "contracts.json"
)

var ErrContractNotFound = errors.New("contract artifact not found")

// Contracts lists the artifacts the compile command builds.
var Contracts = map[ContractName]struct{}{
	ContractNameSendMessage: {},
}
