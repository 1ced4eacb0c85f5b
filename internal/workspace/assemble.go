package workspace

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"

	"github.com/monoctl/monoctl/internal/config"
	"github.com/monoctl/monoctl/internal/graph"
	"github.com/monoctl/monoctl/internal/models"
)

// Assemble validates the scanned descriptors and builds the workspace.
//
// Descriptors matching cfg.IgnoreProjects or cfg.IgnorePaths are dropped
// before any validation. Assembly fails without returning a partial
// workspace when the root does not declare itself a workspace, when two
// surviving descriptors share a name, or when a surviving member is
// itself a workspace root. Input descriptors are never mutated.
func Assemble(root models.Descriptor, members []models.Descriptor, cfg config.Config) (*Workspace, error) {
	if !root.IsWorkspaceRoot {
		return nil, &NotAWorkspaceError{Path: root.RootPath}
	}

	surviving := applyIgnores(root.RootPath, members, cfg)

	if err := checkDuplicates(surviving); err != nil {
		return nil, err
	}

	for _, d := range surviving {
		if d.IsWorkspaceRoot {
			return nil, &NestedWorkspaceError{Name: d.Name, RootPath: d.RootPath}
		}
	}

	projects := make(map[string]*models.Project, len(surviving))
	for _, d := range surviving {
		projects[d.Name] = models.NewProject(d)
	}

	ws := &Workspace{
		RootPath: root.RootPath,
		Projects: projects,
		Graph:    graph.Build(projects, graph.Options{}),
	}
	markRoots(ws)

	return ws, nil
}

// applyIgnores drops descriptors matching the configured project names
// or root-relative path prefixes.
func applyIgnores(rootPath string, members []models.Descriptor, cfg config.Config) []models.Descriptor {
	ignoredNames := make(map[string]struct{}, len(cfg.IgnoreProjects))
	for _, name := range cfg.IgnoreProjects {
		ignoredNames[name] = struct{}{}
	}

	var surviving []models.Descriptor
	for _, d := range members {
		if _, ok := ignoredNames[d.Name]; ok {
			continue
		}
		if matchesIgnoredPath(rootPath, d.RootPath, cfg.IgnorePaths) {
			continue
		}
		surviving = append(surviving, d)
	}

	return surviving
}

func matchesIgnoredPath(rootPath, projectPath string, prefixes []string) bool {
	rel, err := filepath.Rel(rootPath, projectPath)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, prefix := range prefixes {
		prefix = strings.TrimSuffix(filepath.ToSlash(prefix), "/")
		if prefix == "" {
			continue
		}
		if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
			return true
		}
	}

	return false
}

// checkDuplicates reports every name collision, each error enumerating
// all manifests declaring the name.
func checkDuplicates(descriptors []models.Descriptor) error {
	manifests := make(map[string][]string)
	for _, d := range descriptors {
		manifests[d.Name] = append(manifests[d.Name], d.ManifestPath)
	}

	var names []string
	for name, paths := range manifests {
		if len(paths) > 1 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		paths := manifests[name]
		sort.Strings(paths)
		errs = append(errs, &DuplicateNameError{Name: name, ManifestPaths: paths})
	}

	return errors.Join(errs...)
}

// markRoots derives the root flag of every project from the graph's
// source vertices.
func markRoots(ws *Workspace) {
	sources := make(map[string]struct{})
	for _, name := range ws.Graph.Sources() {
		sources[name] = struct{}{}
	}

	for name, project := range ws.Projects {
		_, isSource := sources[name]
		project.Root = isSource
	}
}
