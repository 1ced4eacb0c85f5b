package cli

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/monoctl/monoctl/internal/filesystem"
	"github.com/monoctl/monoctl/internal/git"
	"github.com/monoctl/monoctl/internal/graph"
	"github.com/spf13/cobra"
)

// ListCommand handles the list command.
type ListCommand struct {
	fs    filesystem.FileSystem
	git   git.Client
	flags filterFlags
}

// NewListCommand creates a new list command.
func NewListCommand(fs filesystem.FileSystem, gitClient git.Client) *cobra.Command {
	cmd := &ListCommand{
		fs:  fs,
		git: gitClient,
	}

	cobraCmd := &cobra.Command{
		Use:   "list",
		Short: "List workspace projects with status and skip flags",
		Long: `List every project of the workspace along with its change status
(unaffected, affected or modified) and whether the current filter flags
would skip it. Filtering never removes projects from the listing.`,
		Example: `  # List all projects with statuses against HEAD
  monoctl list

  # Show what a filtered run against main would cover
  monoctl list --affected --base main`,
		RunE: cmd.Run,
	}

	addFilterFlags(cobraCmd, &cmd.flags)

	return cobraCmd
}

// Run executes the list command.
func (c *ListCommand) Run(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())

	ws, err := loadWorkspace(c.fs)
	if err != nil {
		return err
	}

	changed, err := changedFiles(c.git.WithContext(cmd.Context()), logger, c.flags.base)
	if err != nil {
		return err
	}

	ws = applyFilters(ws, changed, c.flags)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPATH\tROOT\tSTATUS\tSKIP")

	for _, project := range ws.Ordered(graph.OrderAlphabetical) {
		rel, relErr := filepath.Rel(ws.RootPath, project.RootPath)
		if relErr != nil {
			rel = project.RootPath
		}

		name := project.Name
		if project.Skip {
			name = skippedStyle.Render(name)
		}

		root := ""
		if project.Root {
			root = rootStyle.Render("root")
		}

		skip := ""
		if project.Skip {
			skip = "skip"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			name, rel, root, renderStatus(project.Status), skip)
	}

	return w.Flush()
}
