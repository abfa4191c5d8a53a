package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/compose-network/sendmessage-migrations/internal/artifacts"
	"github.com/compose-network/sendmessage-migrations/internal/logger"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const (
	defaultGasLimit      = uint64(10_000_000)
	defaultDeployTimeout = time.Minute
)

type (
	// Backend is the RPC surface needed to create contracts.
	Backend interface {
		bind.ContractBackend
		bind.DeployBackend
		ChainID(ctx context.Context) (*big.Int, error)
	}

	// ArtifactResolver maps an artifact name to its compiled contract.
	ArtifactResolver interface {
		Resolve(name string) (artifacts.CompiledContract, error)
	}

	// Deployer submits contract creation transactions signed by a single key.
	Deployer struct {
		backend                       Backend
		resolver                      ArtifactResolver
		privateKey                    *ecdsa.PrivateKey
		gasLimit                      uint64
		waitForDeploymentConfirmation bool
		logger                        *slog.Logger
	}

	Option func(*Deployer)
)

// WithConfirmation makes Deploy wait for the creation receipt.
func WithConfirmation(wait bool) Option {
	return func(d *Deployer) {
		d.waitForDeploymentConfirmation = wait
	}
}

// NewDeployer creates a contract deployer
func NewDeployer(backend Backend, resolver ArtifactResolver, privateKey *ecdsa.PrivateKey, opts ...Option) *Deployer {
	d := &Deployer{
		backend:    backend,
		resolver:   resolver,
		privateKey: privateKey,
		gasLimit:   defaultGasLimit,
		logger:     logger.Named("chain_deployer"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Deploy resolves artifact, packs constructorArgs against its ABI and sends
// the creation transaction. It returns the address the contract is created at.
func (d *Deployer) Deploy(ctx context.Context, artifact string, constructorArgs ...any) (common.Address, error) {
	contract, err := d.resolver.Resolve(artifact)
	if err != nil {
		return common.Address{}, err
	}

	args, err := constructorArguments(contract.ABI, constructorArgs)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid constructor arguments for %s: %w", artifact, err)
	}

	d.logger.With("contract", artifact).Info("deploying contract")

	address, err := d.deployContract(ctx, contract, args...)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to deploy %s: %w", artifact, err)
	}

	d.logger.
		With("contract", artifact).
		With("address", address.Hex()).
		Info("deployed")

	return address, nil
}

func (d *Deployer) deployContract(ctx context.Context, contract artifacts.CompiledContract, constructorArgs ...any) (common.Address, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultDeployTimeout)
	defer cancel()

	chainID, err := d.backend.ChainID(ctx)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to get chain ID: %w", err)
	}

	auth, err := bind.NewKeyedTransactorWithChainID(d.privateKey, chainID)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to create transactor: %w", err)
	}

	gasPrice, err := d.backend.SuggestGasPrice(ctx)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to get gas price: %w", err)
	}

	auth.Context = ctx
	auth.GasLimit = d.gasLimit
	auth.GasPrice = gasPrice

	address, tx, _, err := bind.DeployContract(auth, contract.ABI, contract.Bytecode, d.backend, constructorArgs...)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to send deployment transaction: %w", err)
	}

	d.logger.
		With("address", address).
		With("tx_hash", tx.Hash().Hex()).
		With("chain_id", chainID).
		Info("contract deployment transaction sent")

	if d.waitForDeploymentConfirmation {
		receipt, err := bind.WaitMined(ctx, d.backend, tx)
		if err != nil {
			return common.Address{}, fmt.Errorf("failed to wait for transaction: %w", err)
		}

		if receipt.Status != types.ReceiptStatusSuccessful {
			return common.Address{}, fmt.Errorf("contract deployment failed with status %d", receipt.Status)
		}
	}

	return address, nil
}
