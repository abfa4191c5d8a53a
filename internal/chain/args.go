package chain

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var ErrMalformedArgument = errors.New("malformed constructor argument")

// constructorArguments converts string arguments of address inputs to
// common.Address. Every other argument is passed through for the ABI packer.
func constructorArguments(contractABI abi.ABI, args []any) ([]any, error) {
	inputs := contractABI.Constructor.Inputs
	if len(inputs) != len(args) {
		return nil, fmt.Errorf("%w: constructor takes %d arguments, got %d", ErrMalformedArgument, len(inputs), len(args))
	}

	converted := make([]any, len(args))
	for i, input := range inputs {
		converted[i] = args[i]

		if input.Type.T != abi.AddressTy {
			continue
		}
		value, ok := args[i].(string)
		if !ok {
			continue
		}
		if len(value) != 2+2*common.AddressLength || !common.IsHexAddress(value) {
			return nil, fmt.Errorf("%w: %s '%s' is not an address", ErrMalformedArgument, input.Name, value)
		}
		converted[i] = common.HexToAddress(value)
	}

	return converted, nil
}
