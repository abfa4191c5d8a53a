package deploy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/compose-network/sendmessage-migrations/configs"
	"github.com/compose-network/sendmessage-migrations/internal/chain"
	"github.com/compose-network/sendmessage-migrations/internal/infra/filesystem/json"
	"github.com/compose-network/sendmessage-migrations/internal/output"
	"github.com/compose-network/sendmessage-migrations/internal/records"
	"github.com/spf13/cobra"
)

var CMD = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy the SendMessage contract to the configured networks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configs.Values
		slog.Info("starting deploy command. Validating config", slog.Any("networks", networkNames))

		if err := cfg.Validate(); err != nil {
			return err
		}

		networks, err := cfg.Select(networkNames)
		if err != nil {
			return err
		}

		fs := json.NewReadWriter()
		service := NewService(
			dialEthereum,
			records.NewStore(cfg.OutputDir, fs),
			output.NewGenerator(cfg.OutputDir, fs),
		)

		deployments, err := service.Deploy(cmd.Context(), cfg, networks)
		if err != nil {
			return fmt.Errorf("deployment failed: %w", err)
		}

		slog.With("count", len(deployments)).Info("deploy completed successfully")

		return nil
	},
}

func dialEthereum(ctx context.Context, url string) (Client, error) {
	client, err := chain.Dial(ctx, url)
	if err != nil {
		return nil, err
	}
	return client, nil
}
