package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

const (
	rpcReadyAttempts = 120
	rpcReadyInterval = time.Second
)

// Dial waits until the RPC at url serves blocks and returns a client for it.
func Dial(ctx context.Context, url string) (*ethclient.Client, error) {
	var lastErr error
	for range rpcReadyAttempts {
		client, err := ethclient.DialContext(ctx, url)
		if err == nil {
			if _, err = client.BlockNumber(ctx); err == nil {
				return client, nil
			}
			client.Close()
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(rpcReadyInterval):
		}
	}

	return nil, fmt.Errorf("timed out waiting for RPC at %s: %w", url, lastErr)
}

// VerifyChainID fails when the chain behind backend is not the expected one.
func VerifyChainID(ctx context.Context, backend Backend, expected int64) error {
	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain ID: %w", err)
	}
	if chainID.Cmp(big.NewInt(expected)) != 0 {
		return fmt.Errorf("chain ID mismatch: configured %d, RPC reports %s", expected, chainID)
	}
	return nil
}

// ParsePrivateKey parses a hex private key with or without the 0x prefix.
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return privateKey, nil
}
