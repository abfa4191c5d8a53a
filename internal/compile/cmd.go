package compile

import (
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"

	"github.com/compose-network/sendmessage-migrations/configs"
	"github.com/compose-network/sendmessage-migrations/internal/artifacts"
	"github.com/compose-network/sendmessage-migrations/internal/infra/git"
	"github.com/spf13/cobra"
)

const servicesDirName = "services"

var CMD = &cobra.Command{
	Use:   "compile",
	Short: "Compile SendMessage from the contracts repository",
	Long:  "Clones the contracts repository, compiles it with forge and writes contracts.json with ABIs and bytecodes",
	RunE: func(cmd *cobra.Command, args []string) error {
		slog.Info("running contract compilation command")
		ctx := cmd.Context()
		cfg := configs.Values

		repo, ok := cfg.Repositories[configs.RepositoryNameContracts]
		if !ok {
			return fmt.Errorf("could not find: '%s' repository in the configuration", configs.RepositoryNameContracts)
		}
		if err := repo.Validate(); err != nil {
			return fmt.Errorf("repositories.%s: %w", configs.RepositoryNameContracts, err)
		}

		servicesDir := filepath.Join(cfg.OutputDir, servicesDirName)
		checkout, err := git.NewCloner().Clone(ctx, servicesDir, git.Repository{
			Name: string(configs.RepositoryNameContracts),
			URL:  repo.URL,
			Ref:  repo.Branch,
		})
		if err != nil {
			return fmt.Errorf("failed to clone repository: '%w'", err)
		}

		compiler := artifacts.NewCompiler(filepath.Join(checkout, repo.Path), cfg.Migration.ArtifactsPath)

		names := slices.Sorted(maps.Keys(artifacts.Contracts))
		slog.Info("starting contract compilation", "contracts", names)
		if err := compiler.Compile(ctx, names); err != nil {
			return fmt.Errorf("contract compilation failed: %w", err)
		}

		slog.Info("contract compilation completed successfully")

		return nil
	},
}
