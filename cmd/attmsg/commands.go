package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wahlandcase/attuned.commitmsg/internal/config"
	"github.com/wahlandcase/attuned.commitmsg/internal/git"
	"github.com/wahlandcase/attuned.commitmsg/internal/hook"
	"github.com/wahlandcase/attuned.commitmsg/internal/ui"

	"github.com/spf13/cobra"
)

func notARepoError(dir string) error {
	return fmt.Errorf("%s is not a git repository", dir)
}

func newInstallCmd() *cobra.Command {
	var force bool
	var binary string

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install attmsg as the repository's prepare-commit-msg hook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			if !git.IsGitRepo(cwd) {
				return notARepoError(cwd)
			}

			hooksDir, err := git.HooksDir(cwd)
			if err != nil {
				return err
			}

			if binary == "" {
				if binary, err = os.Executable(); err != nil {
					return fmt.Errorf("failed to locate attmsg binary: %w", err)
				}
			}

			path, err := hook.Install(hooksDir, binary, force)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Installed %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing hook not installed by attmsg")
	cmd.Flags().StringVar(&binary, "binary", "", "Command the hook runs (default: this executable)")

	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cwd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration to " + config.FileName + " in the repository root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			if !git.IsGitRepo(cwd) {
				return notARepoError(cwd)
			}

			root, err := git.RepoRoot(cwd)
			if err != nil {
				return err
			}

			path := filepath.Join(root, config.FileName)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			if err := config.New().Save(path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}

func newLogCmd() *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "List commits of the current branch and the tickets they reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cwd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if base == "" {
				base = git.DetectMainBranch(cwd)
			}

			commits, err := git.CommitsSince(cwd, base, cfg.TicketRegex())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ui.ConfigureOutput(out)
			fmt.Fprintln(out, ui.SectionHeader("COMMITS SINCE "+base, ui.ColorCyan))

			missing := 0
			for _, c := range commits {
				if !c.HasTicket() {
					missing++
				}
				fmt.Fprintln(out, ui.CommitLine(c))
			}

			if missing > 0 {
				fmt.Fprintf(out, "\n%s\n", ui.Warning(fmt.Sprintf("%d of %d commits have no ticket", missing, len(commits))))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "Branch to compare against (default: main or master)")

	return cmd
}
