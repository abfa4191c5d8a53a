package migrations

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// ArtifactSendMessage is the artifact deployed by DeploySendMessage.
const ArtifactSendMessage = "SendMessage"

const (
	// GatewayAddress is the cross-chain gateway passed to the SendMessage constructor.
	GatewayAddress = "0xe432150cce91c13a887f7D836923d5597adD8E31"

	// GasServiceAddress is the gas service passed to the SendMessage constructor.
	GasServiceAddress = "0xbE406F0189A0B4cf3A05C286473D23791Dd44Cc6"
)

type (
	// Deployer submits a contract creation for a named artifact.
	Deployer interface {
		Deploy(ctx context.Context, artifact string, constructorArgs ...any) (common.Address, error)
	}

	// Configuration holds the SendMessage constructor arguments.
	Configuration struct {
		GatewayAddress    string
		GasServiceAddress string
	}
)

// KnownDeployments lists where SendMessage has already been deployed.
// It is informational only and is not checked against chain state.
var KnownDeployments = map[string]string{
	"linea":    "0x752Be5CE15994EE59eB172c2132b569731C1b148",
	"optimism": "0x4EF3469C8F4c87Bd16e3E85E489dE4845b776E8c",
}

// DefaultConfiguration returns the built-in constructor arguments.
func DefaultConfiguration() Configuration {
	return Configuration{
		GatewayAddress:    GatewayAddress,
		GasServiceAddress: GasServiceAddress,
	}
}

// WithOverrides returns c with every non-empty override applied.
func (c Configuration) WithOverrides(gatewayAddress, gasServiceAddress string) Configuration {
	if gatewayAddress != "" {
		c.GatewayAddress = gatewayAddress
	}
	if gasServiceAddress != "" {
		c.GasServiceAddress = gasServiceAddress
	}
	return c
}

// DeploySendMessage deploys the SendMessage artifact with the gateway and gas
// service addresses as constructor arguments. Errors from d are returned as is.
func DeploySendMessage(ctx context.Context, d Deployer, cfg Configuration) (common.Address, error) {
	return d.Deploy(ctx, ArtifactSendMessage, cfg.GatewayAddress, cfg.GasServiceAddress)
}
