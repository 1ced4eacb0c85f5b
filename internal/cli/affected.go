package cli

import (
	"fmt"

	"github.com/monoctl/monoctl/internal/filesystem"
	"github.com/monoctl/monoctl/internal/git"
	"github.com/monoctl/monoctl/internal/graph"
	"github.com/monoctl/monoctl/internal/models"
	"github.com/spf13/cobra"
)

// AffectedCommand handles the affected command.
type AffectedCommand struct {
	fs           filesystem.FileSystem
	git          git.Client
	base         string
	modifiedOnly bool
}

// NewAffectedCommand creates a new affected command.
func NewAffectedCommand(fs filesystem.FileSystem, gitClient git.Client) *cobra.Command {
	cmd := &AffectedCommand{
		fs:  fs,
		git: gitClient,
	}

	cobraCmd := &cobra.Command{
		Use:   "affected",
		Short: "Print projects affected by changes against a base ref",
		Long: `Print the names of every project that is modified by the changed
files against --base, or that transitively depends on a modified
project. Output is one name per line, alphabetically, suitable for
shell pipelines.`,
		Example: `  # Projects to retest for the current branch
  monoctl affected --base origin/main

  # Only the projects owning changed files
  monoctl affected --base origin/main --modified-only`,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.base, "base", "", "Git ref to diff against (defaults to HEAD)")
	cobraCmd.Flags().BoolVar(&cmd.modifiedOnly, "modified-only", false,
		"Print only projects owning changed files")

	return cobraCmd
}

// Run executes the affected command.
func (c *AffectedCommand) Run(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())

	ws, err := loadWorkspace(c.fs)
	if err != nil {
		return err
	}

	changed, err := changedFiles(c.git.WithContext(cmd.Context()), logger, c.base)
	if err != nil {
		return err
	}

	ws = ws.UpdateStatuses(changed)

	for _, project := range ws.Ordered(graph.OrderAlphabetical) {
		if c.modifiedOnly && project.Status != models.StatusModified {
			continue
		}
		if project.Status == models.StatusUnaffected {
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), project.Name)
	}

	return nil
}
