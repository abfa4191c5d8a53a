package migrations

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

var ErrInvalidAddress = errors.New("invalid address")

// Validate reports every address in c that is not 0x followed by 40 hex characters.
// The addresses are never rewritten.
func (c Configuration) Validate() error {
	var errs []error

	if err := ValidateAddress("gateway", c.GatewayAddress); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateAddress("gas service", c.GasServiceAddress); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ValidateAddress fails with ErrInvalidAddress unless value is 0x followed by
// 40 hex characters.
func ValidateAddress(field, value string) error {
	if len(value) != 2+2*common.AddressLength || !common.IsHexAddress(value) {
		return fmt.Errorf("%w: %s address '%s' (length %d)", ErrInvalidAddress, field, value, len(value))
	}
	return nil
}
