package workspace

import (
	"path/filepath"
	"strings"
)

// ModifiedProjects maps changed file paths to the set of project names
// owning them.
//
// Each file is attributed to the project whose root path is the longest
// matching prefix of the file's absolute path. Paths may be absolute or
// relative to the workspace root. A file matching no project is dropped:
// repository roots commonly contain top-level files belonging to no
// project.
func (w *Workspace) ModifiedProjects(changedFiles []string) map[string]struct{} {
	modified := make(map[string]struct{})

	for _, file := range changedFiles {
		if !filepath.IsAbs(file) {
			file = filepath.Join(w.RootPath, file)
		}
		file = filepath.Clean(file)

		if name, ok := w.owningProject(file); ok {
			modified[name] = struct{}{}
		}
	}

	return modified
}

// owningProject finds the project with the longest root path that is a
// prefix of the given absolute file path.
func (w *Workspace) owningProject(file string) (string, bool) {
	var (
		owner   string
		longest int
		found   bool
	)

	for name, project := range w.Projects {
		root := filepath.Clean(project.RootPath)
		if !isPathPrefix(root, file) {
			continue
		}
		if !found || len(root) > longest {
			owner = name
			longest = len(root)
			found = true
		}
	}

	return owner, found
}

func isPathPrefix(dir, path string) bool {
	if dir == path {
		return true
	}
	return strings.HasPrefix(path, dir+string(filepath.Separator))
}
