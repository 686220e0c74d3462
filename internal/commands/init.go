package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tallybook-dev/tallybook/internal/config"
	"github.com/tallybook-dev/tallybook/internal/gitops"
	"github.com/tallybook-dev/tallybook/internal/store"
)

func newInitCommand() *cobra.Command {
	var useGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledger directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(absDir, useGit)
		},
	}

	cmd.Flags().BoolVar(&useGit, "git", false, "initialize a git repository and enable auto-commit")

	return cmd
}

func runInit(dir string, useGit bool) error {
	if err := store.Init(dir); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	cfg := config.Default()
	cfg.Git.AutoCommit = useGit
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return err
	}

	if useGit && !gitops.IsRepo(dir) {
		if err := gitops.Init(dir); err != nil {
			return err
		}
		if _, err := gitops.CommitAll(dir, "Initialize ledger", cfg.Git.AuthorName, cfg.Git.AuthorEmail); err != nil {
			return err
		}
	}

	fmt.Printf("Initialized ledger in %s\n", dir)
	return nil
}
