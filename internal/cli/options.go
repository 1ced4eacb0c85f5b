package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/monoctl/monoctl/internal/config"
	"github.com/monoctl/monoctl/internal/filesystem"
	"github.com/monoctl/monoctl/internal/git"
	"github.com/monoctl/monoctl/internal/workspace"
	"github.com/spf13/cobra"
)

// filterFlags are the shared project-selection flags of list, affected
// and run.
type filterFlags struct {
	ignore    []string
	selected  []string
	affected  bool
	modified  bool
	onlyRoots bool
	base      string
}

func addFilterFlags(cmd *cobra.Command, flags *filterFlags) {
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil,
		"Project names to skip unconditionally")
	cmd.Flags().StringSliceVarP(&flags.selected, "project", "p", nil,
		"Limit to the given projects")
	cmd.Flags().BoolVar(&flags.affected, "affected", false,
		"Limit to projects affected by changes against --base")
	cmd.Flags().BoolVar(&flags.modified, "modified", false,
		"Limit to projects owning changed files against --base")
	cmd.Flags().BoolVar(&flags.onlyRoots, "only-roots", false,
		"Limit to root projects (nothing depends on them)")
	cmd.Flags().StringVar(&flags.base, "base", "",
		"Git ref to diff against (defaults to HEAD)")
}

// loadWorkspace detects, scans and assembles the workspace from the
// current directory.
func loadWorkspace(fs filesystem.FileSystem) (*workspace.Workspace, error) {
	scanner := workspace.NewScanner(fs)

	rootPath, err := scanner.Detect()
	if err != nil {
		return nil, fmt.Errorf("failed to detect workspace: %w", err)
	}

	root, members, err := scanner.Scan(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to scan workspace: %w", err)
	}

	cfg, err := config.Load(fs, rootPath)
	if err != nil {
		return nil, err
	}

	ws, err := workspace.Assemble(root, members, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble workspace: %w", err)
	}

	return ws, nil
}

// changedFiles fetches the changed-file list for the given base ref.
// Outside a git repository it returns an empty list: statuses then stay
// unaffected instead of failing the command.
func changedFiles(gitClient git.Client, logger *log.Logger, base string) ([]string, error) {
	isRepo, err := gitClient.IsRepo()
	if err != nil {
		return nil, fmt.Errorf("failed to check git repository: %w", err)
	}
	if !isRepo {
		logger.Debug("not a git repository, no changed files")
		return nil, nil
	}

	files, err := gitClient.ChangedFiles(base)
	if err != nil {
		return nil, fmt.Errorf("failed to list changed files: %w", err)
	}

	logger.Debug("collected changed files", "base", base, "count", len(files))
	return files, nil
}

// applyFilters recomputes statuses and resolves the filter flags into a
// new workspace value.
func applyFilters(ws *workspace.Workspace, changed []string, flags filterFlags) *workspace.Workspace {
	ws = ws.UpdateStatuses(changed)
	return ws.Filter(workspace.FilterOptions{
		Ignore:       flags.ignore,
		Select:       flags.selected,
		OnlyRoots:    flags.onlyRoots,
		Affected:     flags.affected,
		Modified:     flags.modified,
		ChangedFiles: changed,
	})
}
