package git

import (
	"context"
)

// Client provides an abstraction over the git operations monoctl needs
// for change detection.
//
// monoctl never interprets repository state itself; it only consumes the
// changed-file list a client hands back. Paths returned by ChangedFiles
// are relative to the repository root.
type Client interface {
	// IsRepo reports whether the current directory is inside a git
	// repository.
	IsRepo() (bool, error)

	// CurrentBranch returns the name of the checked-out branch.
	CurrentBranch() (string, error)

	// ChangedFiles returns the files that differ from base: committed,
	// staged and unstaged changes plus untracked files. An empty base
	// compares against HEAD.
	ChangedFiles(base string) ([]string, error)

	// WithContext returns a client whose commands run under ctx.
	WithContext(ctx context.Context) Client
}
