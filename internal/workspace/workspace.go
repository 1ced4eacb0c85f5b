package workspace

import (
	"sort"

	"github.com/monoctl/monoctl/internal/graph"
	"github.com/monoctl/monoctl/internal/models"
)

// Workspace is the assembled set of member projects under one repository
// root together with their dependency graph.
//
// The workspace owns its projects exclusively: status and skip fields are
// only ever written by UpdateStatuses and Filter, both of which return a
// new Workspace value and leave the receiver untouched. The graph is
// immutable after assembly and shared between copies.
type Workspace struct {
	// RootPath is the absolute path of the workspace root.
	RootPath string

	// Projects maps project name to project.
	Projects map[string]*models.Project

	// Graph is the workspace-only dependency graph.
	Graph *graph.Graph
}

// Project returns the project with the given name.
func (w *Workspace) Project(name string) (*models.Project, error) {
	project, ok := w.Projects[name]
	if !ok {
		return nil, &UnknownProjectError{Name: name}
	}
	return project, nil
}

// MustProject returns the project with the given name and panics if it
// does not exist. Convenience wrapper over Project for callers that have
// already validated the name.
func (w *Workspace) MustProject(name string) *models.Project {
	project, err := w.Project(name)
	if err != nil {
		panic(err)
	}
	return project
}

// ProjectNames returns all project names in alphabetical order.
func (w *Workspace) ProjectNames() []string {
	names := make([]string, 0, len(w.Projects))
	for name := range w.Projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ordered returns the projects enumerated in the given graph order.
// The returned slice is freshly allocated on every call so callers can
// iterate it while deriving new workspace values.
func (w *Workspace) Ordered(mode graph.OrderMode) []*models.Project {
	var projects []*models.Project
	for _, name := range w.Graph.Order(mode) {
		if project, ok := w.Projects[name]; ok {
			projects = append(projects, project)
		}
	}
	return projects
}

// clone returns a deep copy of the workspace. Projects are copied;
// the immutable graph is shared.
func (w *Workspace) clone() *Workspace {
	projects := make(map[string]*models.Project, len(w.Projects))
	for name, project := range w.Projects {
		projects[name] = project.Clone()
	}

	return &Workspace{
		RootPath: w.RootPath,
		Projects: projects,
		Graph:    w.Graph,
	}
}
