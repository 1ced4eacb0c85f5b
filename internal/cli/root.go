package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/monoctl/monoctl/internal/filesystem"
	"github.com/monoctl/monoctl/internal/git"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command.
func NewRootCommand(fs filesystem.FileSystem, gitClient git.Client) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "monoctl",
		Short: "Workspace dependency graph and affected-project tooling",
		Long: `monoctl manages Go multi-module workspaces: it discovers member
projects, builds their dependency graph and computes which projects a
set of changed files modifies or affects, so builds and tests can run
against a subset of the repository instead of all of it.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(NewListCommand(fs, gitClient))
	rootCmd.AddCommand(NewGraphCommand(fs))
	rootCmd.AddCommand(NewAffectedCommand(fs, gitClient))
	rootCmd.AddCommand(NewRunCommand(fs, gitClient))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	fs := filesystem.NewOSFileSystem()
	gitClient := git.NewOSClient()

	rootCmd := NewRootCommand(fs, gitClient)

	return rootCmd.ExecuteContext(context.Background())
}
