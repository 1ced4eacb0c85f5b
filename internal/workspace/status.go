package workspace

import (
	"github.com/monoctl/monoctl/internal/models"
)

// UpdateStatuses returns a copy of the workspace with every project's
// status recomputed from the changed-file list.
//
// Projects in the affected set are marked affected first, then projects
// in the modified set are overwritten as modified: modified is always
// the final status for a project that is both.
func (w *Workspace) UpdateStatuses(changedFiles []string) *Workspace {
	modified := w.ModifiedProjects(changedFiles)
	affected := w.Graph.Affected(modified)

	next := w.clone()
	for _, project := range next.Projects {
		project.Status = models.StatusUnaffected
	}
	for name := range affected {
		if project, ok := next.Projects[name]; ok {
			project.Status = models.StatusAffected
		}
	}
	for name := range modified {
		if project, ok := next.Projects[name]; ok {
			project.Status = models.StatusModified
		}
	}

	return next
}

// FilterOptions is the composite filter specification resolved by Filter.
type FilterOptions struct {
	// Ignore lists project names to skip unconditionally.
	Ignore []string

	// Select, when non-empty, limits the run to the listed projects.
	Select []string

	// OnlyRoots skips every project something else depends on.
	OnlyRoots bool

	// Affected skips projects outside the affected set of ChangedFiles.
	Affected bool

	// Modified skips projects outside the modified set of ChangedFiles.
	Modified bool

	// ChangedFiles is the changed-file list the affected and modified
	// sets are computed from.
	ChangedFiles []string
}

// Filter returns a copy of the workspace with every project's skip flag
// resolved against the filter specification.
//
// Rules apply in order, first match wins: ignore, select, only-roots,
// affected, modified. No project is ever removed from the project map;
// callers can still inspect skipped projects. The affected and modified
// sets are recomputed on every call so a changed underlying file state
// is visible immediately.
func (w *Workspace) Filter(opts FilterOptions) *Workspace {
	ignored := toSet(opts.Ignore)
	selected := toSet(opts.Select)

	var modified, affected map[string]struct{}
	if opts.Affected || opts.Modified {
		modified = w.ModifiedProjects(opts.ChangedFiles)
		affected = w.Graph.Affected(modified)
	}

	next := w.clone()
	for name, project := range next.Projects {
		project.Skip = skipProject(name, project, ignored, selected, opts, affected, modified)
	}

	return next
}

func skipProject(
	name string,
	project *models.Project,
	ignored, selected map[string]struct{},
	opts FilterOptions,
	affected, modified map[string]struct{},
) bool {
	if _, ok := ignored[name]; ok {
		return true
	}
	if len(selected) > 0 {
		if _, ok := selected[name]; !ok {
			return true
		}
	}
	if opts.OnlyRoots && !project.Root {
		return true
	}
	if opts.Affected {
		if _, ok := affected[name]; !ok {
			return true
		}
	}
	if opts.Modified {
		if _, ok := modified[name]; !ok {
			return true
		}
	}
	return false
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
