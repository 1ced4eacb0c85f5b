package graph

import (
	"sort"

	"github.com/monoctl/monoctl/internal/models"
)

// VertexKind distinguishes workspace projects from external dependencies.
type VertexKind string

const (
	// KindWorkspace marks a vertex backed by a workspace project.
	KindWorkspace VertexKind = "workspace"

	// KindExternal marks a vertex for a dependency outside the workspace.
	KindExternal VertexKind = "external"
)

// Vertex is a node of the dependency graph.
type Vertex struct {
	Name string
	Kind VertexKind
}

// Graph is a directed dependency graph over workspace projects.
//
// Edges point from a dependant project to each of its dependencies.
// Every workspace project is a vertex even when isolated; external
// dependencies become vertices only when requested at build time.
//
// All query methods are pure reads. A Graph is never mutated after Build
// returns, so it is safe to share across workspace copies.
type Graph struct {
	vertices map[string]Vertex
	out      map[string]map[string]struct{}
	in       map[string]map[string]struct{}
}

// Options configures graph construction.
type Options struct {
	// IncludeExternal adds vertices and edges for external dependencies.
	IncludeExternal bool

	// Ignore lists project names to leave out of the graph entirely.
	Ignore []string
}

// Build constructs the dependency graph for the given projects.
//
// Dependencies pointing at other workspace projects always become edges.
// External dependencies are dropped unless opts.IncludeExternal is set;
// they are outside the graph's universe, not an error. Building twice
// from the same project set yields a structurally identical graph.
func Build(projects map[string]*models.Project, opts Options) *Graph {
	g := &Graph{
		vertices: make(map[string]Vertex),
		out:      make(map[string]map[string]struct{}),
		in:       make(map[string]map[string]struct{}),
	}

	ignored := make(map[string]struct{}, len(opts.Ignore))
	for _, name := range opts.Ignore {
		ignored[name] = struct{}{}
	}

	for name := range projects {
		if _, skip := ignored[name]; skip {
			continue
		}
		g.addVertex(name, KindWorkspace)
	}

	for name, project := range projects {
		if _, skip := ignored[name]; skip {
			continue
		}

		for _, dep := range project.Dependencies {
			switch dep.Kind {
			case models.DependencyPath:
				if _, skip := ignored[dep.Name]; skip {
					continue
				}
				if _, ok := projects[dep.Name]; !ok {
					continue
				}
				g.addEdge(name, dep.Name)
			case models.DependencyExternal:
				if !opts.IncludeExternal {
					continue
				}
				g.addVertex(dep.Name, KindExternal)
				g.addEdge(name, dep.Name)
			}
		}
	}

	return g
}

func (g *Graph) addVertex(name string, kind VertexKind) {
	if _, ok := g.vertices[name]; ok {
		return
	}
	g.vertices[name] = Vertex{Name: name, Kind: kind}
	g.out[name] = make(map[string]struct{})
	g.in[name] = make(map[string]struct{})
}

func (g *Graph) addEdge(from, to string) {
	g.out[from][to] = struct{}{}
	g.in[to][from] = struct{}{}
}

// HasVertex reports whether name is a vertex of the graph.
func (g *Graph) HasVertex(name string) bool {
	_, ok := g.vertices[name]
	return ok
}

// Vertices returns all vertices sorted by name.
func (g *Graph) Vertices() []Vertex {
	vertices := make([]Vertex, 0, len(g.vertices))
	for _, v := range g.vertices {
		vertices = append(vertices, v)
	}
	sort.Slice(vertices, func(i, j int) bool {
		return vertices[i].Name < vertices[j].Name
	})
	return vertices
}

// Dependencies returns the direct dependencies of name, sorted.
func (g *Graph) Dependencies(name string) []string {
	return sortedKeys(g.out[name])
}

// Dependants returns the projects directly depending on name, sorted.
func (g *Graph) Dependants(name string) []string {
	return sortedKeys(g.in[name])
}

// Sources returns the vertices nothing depends on (no incoming edge),
// sorted by name. These are the workspace's root projects.
func (g *Graph) Sources() []string {
	var names []string
	for name := range g.vertices {
		if len(g.in[name]) == 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Sinks returns the vertices with no outgoing edge (no dependencies of
// their own), sorted by name.
func (g *Graph) Sinks() []string {
	var names []string
	for name := range g.vertices {
		if len(g.out[name]) == 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Affected returns changed plus every vertex that transitively depends
// on a member of changed.
//
// This is reverse reachability: the result grows toward dependants by
// following incoming edges, never toward dependencies. Changed names
// that are not vertices of the graph are ignored.
func (g *Graph) Affected(changed map[string]struct{}) map[string]struct{} {
	affected := make(map[string]struct{})

	var queue []string
	for name := range changed {
		if !g.HasVertex(name) {
			continue
		}
		affected[name] = struct{}{}
		queue = append(queue, name)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for dependant := range g.in[current] {
			if _, seen := affected[dependant]; seen {
				continue
			}
			affected[dependant] = struct{}{}
			queue = append(queue, dependant)
		}
	}

	return affected
}

// OrderMode selects an enumeration order for graph vertices.
type OrderMode string

const (
	// OrderAlphabetical is a deterministic total order by name.
	OrderAlphabetical OrderMode = "alphabetical"

	// OrderPostorder places every dependency before its dependants.
	// Tie-breaking between independent vertices is unspecified; on a
	// cyclic graph the ordering guarantee degrades to a partial one.
	OrderPostorder OrderMode = "postorder"
)

// Order enumerates all vertices in the requested mode.
func (g *Graph) Order(mode OrderMode) []string {
	switch mode {
	case OrderPostorder:
		return g.postorder()
	default:
		names := make([]string, 0, len(g.vertices))
		for name := range g.vertices {
			names = append(names, name)
		}
		sort.Strings(names)
		return names
	}
}

// postorder visits dependencies before dependants via depth-first
// traversal. The visited set guards against cycles, so traversal always
// terminates; within a cycle the relative order is arbitrary.
func (g *Graph) postorder() []string {
	visited := make(map[string]struct{}, len(g.vertices))
	order := make([]string, 0, len(g.vertices))

	var visit func(name string)
	visit = func(name string) {
		if _, seen := visited[name]; seen {
			return
		}
		visited[name] = struct{}{}
		for _, dep := range sortedKeys(g.out[name]) {
			visit(dep)
		}
		order = append(order, name)
	}

	roots := make([]string, 0, len(g.vertices))
	for name := range g.vertices {
		roots = append(roots, name)
	}
	sort.Strings(roots)
	for _, name := range roots {
		visit(name)
	}

	return order
}

func sortedKeys(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
