package chain

import (
	"context"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/compose-network/sendmessage-migrations/internal/artifacts"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	gatewayAddress    = "0xe432150cce91c13a887f7D836923d5597adD8E31"
	gasServiceAddress = "0xbE406F0189A0B4cf3A05C286473D23791Dd44Cc6"

	constructorABI = `[{"type":"constructor","inputs":[{"name":"gateway_","type":"address"},{"name":"gasReceiver_","type":"address"}],"stateMutability":"nonpayable"}]`
)

var (
	// initCode returns empty runtime code: PUSH1 0 PUSH1 0 RETURN.
	initCode = []byte{0x60, 0x00, 0x60, 0x00, 0xf3}
	// revertingInitCode is PUSH1 0 PUSH1 0 REVERT.
	revertingInitCode = []byte{0x60, 0x00, 0x60, 0x00, 0xfd}
)

func sendMessageContract(t *testing.T) artifacts.CompiledContract {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(constructorABI))
	require.NoError(t, err)
	return artifacts.CompiledContract{
		Name:     artifacts.ContractNameSendMessage,
		ABI:      parsed,
		RawABI:   constructorABI,
		Bytecode: initCode,
	}
}

type simulatedChain struct {
	backend *simulated.Backend
	client  simulated.Client
}

func newSimulatedChain(t *testing.T, funded common.Address) *simulatedChain {
	t.Helper()
	balance := new(big.Int).Mul(big.NewInt(1000), big.NewInt(params.Ether))
	backend := simulated.NewBackend(types.GenesisAlloc{
		funded: {Balance: balance},
	})
	t.Cleanup(func() { _ = backend.Close() })

	return &simulatedChain{backend: backend, client: backend.Client()}
}

// commitInBackground mines a block every 100ms until the test ends, so
// receipts become available to callers blocked in bind.WaitMined.
func (s *simulatedChain) commitInBackground(t *testing.T) {
	t.Helper()
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.backend.Commit()
			}
		}
	}()
	t.Cleanup(func() {
		close(stop)
		wg.Wait()
	})
}

func TestDeployer_DeploysToSimulatedBackend(t *testing.T) {
	ctx := context.Background()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)

	sim := newSimulatedChain(t, from)
	registry := artifacts.NewRegistry(map[artifacts.ContractName]artifacts.CompiledContract{
		artifacts.ContractNameSendMessage: sendMessageContract(t),
	})

	deployer := NewDeployer(sim.client, registry, key)
	address, err := deployer.Deploy(ctx, "SendMessage", gatewayAddress, gasServiceAddress)
	require.NoError(t, err)
	assert.Equal(t, crypto.CreateAddress(from, 0), address)

	sim.backend.Commit()

	nonce, err := sim.client.NonceAt(ctx, from, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), nonce)
}

func TestDeployer_WaitsForReceipt(t *testing.T) {
	ctx := context.Background()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)

	sim := newSimulatedChain(t, from)
	sim.commitInBackground(t)
	registry := artifacts.NewRegistry(map[artifacts.ContractName]artifacts.CompiledContract{
		artifacts.ContractNameSendMessage: sendMessageContract(t),
	})

	deployer := NewDeployer(sim.client, registry, key, WithConfirmation(true))
	address, err := deployer.Deploy(ctx, "SendMessage", gatewayAddress, gasServiceAddress)
	require.NoError(t, err)
	assert.Equal(t, crypto.CreateAddress(from, 0), address)

	nonce, err := sim.client.NonceAt(ctx, from, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), nonce)
}

func TestDeployer_FailedReceiptIsAnError(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	sim := newSimulatedChain(t, crypto.PubkeyToAddress(key.PublicKey))
	sim.commitInBackground(t)

	contract := sendMessageContract(t)
	contract.Bytecode = revertingInitCode
	registry := artifacts.NewRegistry(map[artifacts.ContractName]artifacts.CompiledContract{
		artifacts.ContractNameSendMessage: contract,
	})

	deployer := NewDeployer(sim.client, registry, key, WithConfirmation(true))
	address, err := deployer.Deploy(context.Background(), "SendMessage", gatewayAddress, gasServiceAddress)
	require.ErrorContains(t, err, "failed to deploy SendMessage: contract deployment failed with status 0")
	assert.Equal(t, common.Address{}, address)
}

func TestDeployer_UnknownArtifact(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	sim := newSimulatedChain(t, crypto.PubkeyToAddress(key.PublicKey))

	deployer := NewDeployer(sim.client, artifacts.NewRegistry(nil), key)
	_, err = deployer.Deploy(context.Background(), "SendMessage", gatewayAddress, gasServiceAddress)
	require.ErrorIs(t, err, artifacts.ErrContractNotFound)
}

func TestDeployer_MalformedAddressIsNotSubmitted(t *testing.T) {
	ctx := context.Background()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)
	sim := newSimulatedChain(t, from)

	registry := artifacts.NewRegistry(map[artifacts.ContractName]artifacts.CompiledContract{
		artifacts.ContractNameSendMessage: sendMessageContract(t),
	})

	deployer := NewDeployer(sim.client, registry, key)
	_, err = deployer.Deploy(ctx, "SendMessage", "0xe432150cce91c13a887f7D836923d5597adD8E3", gasServiceAddress)
	require.ErrorIs(t, err, ErrMalformedArgument)

	nonce, err := sim.client.PendingNonceAt(ctx, from)
	require.NoError(t, err)
	assert.Zero(t, nonce)
}

func TestConstructorArguments(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(constructorABI))
	require.NoError(t, err)

	t.Run("strings become addresses", func(t *testing.T) {
		args, err := constructorArguments(parsed, []any{gatewayAddress, gasServiceAddress})
		require.NoError(t, err)
		assert.Equal(t, []any{common.HexToAddress(gatewayAddress), common.HexToAddress(gasServiceAddress)}, args)
	})

	t.Run("addresses pass through", func(t *testing.T) {
		gw := common.HexToAddress(gatewayAddress)
		args, err := constructorArguments(parsed, []any{gw, gasServiceAddress})
		require.NoError(t, err)
		assert.Equal(t, gw, args[0])
	})

	t.Run("wrong count", func(t *testing.T) {
		_, err := constructorArguments(parsed, []any{gatewayAddress})
		require.ErrorIs(t, err, ErrMalformedArgument)
	})

	t.Run("too long", func(t *testing.T) {
		_, err := constructorArguments(parsed, []any{gatewayAddress, gasServiceAddress + "1"})
		require.ErrorIs(t, err, ErrMalformedArgument)
	})
}

func TestVerifyChainID(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	sim := newSimulatedChain(t, crypto.PubkeyToAddress(key.PublicKey))

	chainID, err := sim.client.ChainID(context.Background())
	require.NoError(t, err)

	require.NoError(t, VerifyChainID(context.Background(), sim.client, chainID.Int64()))
	require.ErrorContains(t, VerifyChainID(context.Background(), sim.client, 59144), "chain ID mismatch")
}

func TestParsePrivateKey(t *testing.T) {
	key, err := ParsePrivateKey("0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), crypto.PubkeyToAddress(key.PublicKey))

	_, err = ParsePrivateKey("0x1234")
	require.Error(t, err)
}
