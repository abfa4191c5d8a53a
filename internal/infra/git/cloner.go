package git

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/compose-network/sendmessage-migrations/internal/logger"
)

// Repository represents a git repository to clone
type Repository struct {
	Name string
	URL  string
	Ref  string // branch or tag
}

// Cloner performs shallow clones with the git binary
type Cloner struct {
	logger *slog.Logger
}

func NewCloner() *Cloner {
	return &Cloner{logger: logger.Named("git_cloner")}
}

// Clone clones repo into destDir/<name> and returns the checkout path. An
// existing checkout is reused as is.
func (c *Cloner) Clone(ctx context.Context, destDir string, repo Repository) (string, error) {
	repoPath := filepath.Join(destDir, repo.Name)
	log := c.logger.With("name", repo.Name).With("path", repoPath)

	if _, err := os.Stat(filepath.Join(repoPath, ".git")); err == nil {
		log.Info("repository already cloned, skipping")
		return repoPath, nil
	}

	log.With("url", repo.URL).With("ref", repo.Ref).Info("cloning repository")

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", "--recurse-submodules", "--branch", repo.Ref, repo.URL, repoPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git clone of %s failed: %w", repo.Name, err)
	}

	log.Info("repository cloned successfully")
	return repoPath, nil
}
