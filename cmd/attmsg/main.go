package main

import (
	"fmt"
	"os"

	"github.com/wahlandcase/attuned.commitmsg/internal/config"
	"github.com/wahlandcase/attuned.commitmsg/internal/git"
	"github.com/wahlandcase/attuned.commitmsg/internal/hook"
	"github.com/wahlandcase/attuned.commitmsg/internal/logging"
	"github.com/wahlandcase/attuned.commitmsg/internal/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose    bool
	configPath string
	dryRun     bool

	logger *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "attmsg [commit-msg-file] [source] [sha]",
		Short: "prepare-commit-msg hook that adds the branch ticket to commit messages",
		Long: `attmsg reads the ticket ID (e.g. ATT-123) from the current branch name and
inserts it into the commit message unless the message already has it.

Git calls it with the message file as first argument; run "attmsg install"
to register it as the repository's prepare-commit-msg hook.`,
		Args:          cobra.MaximumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ui.ConfigureOutput(os.Stderr)
			logger = logging.New(verbose, os.Stderr)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: runHook,
	}

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Print debug output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: user and repository .attmsg.toml)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the rewritten message instead of writing it")

	rootCmd.AddCommand(newInstallCmd(), newConfigCmd(), newLogCmd())

	return rootCmd
}

// runHook never fails the commit: problems are reported and git carries on
func runHook(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		logger.Error("failed to get working directory", zap.Error(err))
		return nil
	}

	cfg, err := loadConfig(cwd)
	if err != nil {
		logger.Error("failed to load config", zap.Error(err))
		return nil
	}

	path, err := hook.MessageFilePath(args, os.Getenv)
	if err != nil {
		logger.Error(err.Error())
		return nil
	}
	logger.Debug("commit message file", zap.String("path", path))

	h := hook.New(cfg, logger, func() (string, error) {
		return git.CurrentBranch(cwd)
	})
	if err := h.Run(path, dryRun, cmd.OutOrStdout()); err != nil {
		logger.Error(err.Error())
	}

	return nil
}

// loadConfig loads the config for the repository containing dir
func loadConfig(dir string) (*config.Config, error) {
	root, err := git.RepoRoot(dir)
	if err != nil {
		logger.Debug("no repository config", zap.Error(err))
		root = ""
	}
	return config.Load(configPath, root)
}
