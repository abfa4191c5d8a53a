package devnet

import (
	"fmt"
	"log/slog"

	"github.com/compose-network/sendmessage-migrations/configs"
	"github.com/compose-network/sendmessage-migrations/internal/chain"
	"github.com/compose-network/sendmessage-migrations/internal/infra/docker"
	"github.com/spf13/cobra"
)

var CMD = &cobra.Command{
	Use:   "devnet",
	Short: "Manage a local anvil chain for test deployments",
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Start the local anvil chain and wait until it serves RPC",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := docker.New()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx := cmd.Context()
		url, err := NewService(client).Up(ctx, configs.Values.Devnet)
		if err != nil {
			return err
		}

		rpc, err := chain.Dial(ctx, url)
		if err != nil {
			return fmt.Errorf("devnet did not become ready: %w", err)
		}
		defer rpc.Close()

		if err := chain.VerifyChainID(ctx, rpc, int64(configs.Values.Devnet.ChainID)); err != nil {
			return err
		}

		slog.With("url", url).Info("devnet is ready")
		return nil
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Remove the local anvil chain",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := docker.New()
		if err != nil {
			return err
		}
		defer client.Close()

		return NewService(client).Down(cmd.Context(), configs.Values.Devnet)
	},
}

func init() {
	CMD.AddCommand(upCmd)
	CMD.AddCommand(downCmd)
}
