package models

// DependencyKind classifies a declared dependency of a project.
type DependencyKind string

const (
	// DependencyPath is a dependency resolved to another project in the
	// same workspace.
	DependencyPath DependencyKind = "path"

	// DependencyExternal is any other declared dependency (a versioned
	// module outside the workspace).
	DependencyExternal DependencyKind = "external"
)

// Dependency is a single declared dependency of a project.
type Dependency struct {
	// Name is the dependency identifier. For path dependencies this is
	// the name of the target workspace project.
	Name string

	// Kind indicates whether the dependency resolves inside the workspace.
	Kind DependencyKind

	// Target carries the version (external) or relative path (path)
	// the dependency was declared with.
	Target string
}

// Descriptor is the plain project description handed to the workspace
// assembler by the manifest scanner. It carries no behavior.
type Descriptor struct {
	// Name is the project identifier declared by the manifest.
	Name string

	// RootPath is the absolute path to the project root.
	RootPath string

	// ManifestPath is the path to the manifest the descriptor was read from.
	ManifestPath string

	// ModulePath is the full module path from go.mod.
	ModulePath string

	// Dependencies lists the declared dependencies in declaration order.
	Dependencies []Dependency

	// IsWorkspaceRoot is true if the project declares itself a workspace
	// (its directory contains a go.work).
	IsWorkspaceRoot bool
}

// Status is the change status of a project relative to a changed-file set.
type Status string

const (
	// StatusUnaffected means neither the project nor anything it depends
	// on owns a changed file.
	StatusUnaffected Status = "unaffected"

	// StatusModified means the project owns at least one changed file.
	StatusModified Status = "modified"

	// StatusAffected means the project transitively depends on a
	// modified project.
	StatusAffected Status = "affected"
)

// Project represents a member project of an assembled workspace.
//
// Status and Skip are transient view state: the workspace recomputes them
// on every status update or filter call and they are not part of the
// project's identity.
type Project struct {
	// Name is the project identifier (unique within the workspace).
	Name string

	// RootPath is the absolute path to the project root.
	RootPath string

	// ManifestPath is the path to the manifest (go.mod).
	ManifestPath string

	// ModulePath is the full module path from go.mod.
	ModulePath string

	// Dependencies lists the declared dependencies in declaration order.
	Dependencies []Dependency

	// Root is true if no other workspace project depends on this one.
	Root bool

	// Status is the change status, recomputed by the workspace.
	Status Status

	// Skip marks the project as excluded by the current filter.
	Skip bool
}

// NewProject creates a Project from its descriptor.
func NewProject(d Descriptor) *Project {
	deps := make([]Dependency, len(d.Dependencies))
	copy(deps, d.Dependencies)

	return &Project{
		Name:         d.Name,
		RootPath:     d.RootPath,
		ManifestPath: d.ManifestPath,
		ModulePath:   d.ModulePath,
		Dependencies: deps,
		Status:       StatusUnaffected,
	}
}

// Clone returns a copy of the project that shares no mutable state with
// the receiver.
func (p *Project) Clone() *Project {
	clone := *p
	clone.Dependencies = make([]Dependency, len(p.Dependencies))
	copy(clone.Dependencies, p.Dependencies)
	return &clone
}

// PathDependencies returns the names of the project's path dependencies
// in declaration order.
func (p *Project) PathDependencies() []string {
	var names []string
	for _, dep := range p.Dependencies {
		if dep.Kind == DependencyPath {
			names = append(names, dep.Name)
		}
	}
	return names
}
