package graph

import (
	"reflect"
	"testing"

	"github.com/monoctl/monoctl/internal/models"
)

// testProjects builds a project map from name -> path dependency names.
func testProjects(deps map[string][]string) map[string]*models.Project {
	projects := make(map[string]*models.Project, len(deps))
	for name, depNames := range deps {
		project := &models.Project{Name: name}
		for _, dep := range depNames {
			project.Dependencies = append(project.Dependencies, models.Dependency{
				Name: dep,
				Kind: models.DependencyPath,
			})
		}
		projects[name] = project
	}
	return projects
}

func set(names ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(names))
	for _, name := range names {
		s[name] = struct{}{}
	}
	return s
}

func TestBuild_EveryProjectIsAVertex(t *testing.T) {
	projects := testProjects(map[string][]string{
		"zoo":      {"foo"},
		"foo":      {},
		"isolated": {},
	})

	g := Build(projects, Options{})

	for name := range projects {
		if !g.HasVertex(name) {
			t.Fatalf("expected vertex %s", name)
		}
	}
}

func TestBuild_ExternalDependenciesDroppedByDefault(t *testing.T) {
	projects := testProjects(map[string][]string{"foo": {}})
	projects["foo"].Dependencies = append(projects["foo"].Dependencies, models.Dependency{
		Name: "github.com/spf13/cobra",
		Kind: models.DependencyExternal,
	})

	g := Build(projects, Options{})
	if g.HasVertex("github.com/spf13/cobra") {
		t.Fatalf("external vertex present without opt-in")
	}

	g = Build(projects, Options{IncludeExternal: true})
	if !g.HasVertex("github.com/spf13/cobra") {
		t.Fatalf("external vertex missing with opt-in")
	}
	if got := g.Dependencies("foo"); !reflect.DeepEqual(got, []string{"github.com/spf13/cobra"}) {
		t.Fatalf("unexpected dependencies: %v", got)
	}
}

func TestBuild_IgnoreDropsVertexAndEdges(t *testing.T) {
	projects := testProjects(map[string][]string{
		"zoo": {"foo"},
		"foo": {},
	})

	g := Build(projects, Options{Ignore: []string{"foo"}})

	if g.HasVertex("foo") {
		t.Fatalf("ignored project still a vertex")
	}
	if got := g.Dependencies("zoo"); len(got) != 0 {
		t.Fatalf("expected no dependencies for zoo, got %v", got)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	projects := testProjects(map[string][]string{
		"zoo": {"foo", "bar"},
		"foo": {"baz"},
		"bar": {"baz"},
		"baz": {},
	})

	first := Build(projects, Options{})
	second := Build(projects, Options{})

	if !reflect.DeepEqual(first.Vertices(), second.Vertices()) {
		t.Fatalf("vertex sets differ")
	}
	for _, vertex := range first.Vertices() {
		if !reflect.DeepEqual(first.Dependencies(vertex.Name), second.Dependencies(vertex.Name)) {
			t.Fatalf("edge sets differ at %s", vertex.Name)
		}
	}
}

func TestSourcesAndSinks(t *testing.T) {
	g := Build(testProjects(map[string][]string{
		"zoo":      {"foo", "bar"},
		"foo":      {"baz"},
		"bar":      {"baz"},
		"baz":      {},
		"isolated": {},
	}), Options{})

	if got := g.Sources(); !reflect.DeepEqual(got, []string{"isolated", "zoo"}) {
		t.Fatalf("unexpected sources: %v", got)
	}
	if got := g.Sinks(); !reflect.DeepEqual(got, []string{"baz", "isolated"}) {
		t.Fatalf("unexpected sinks: %v", got)
	}
}

func TestAffected_Empty(t *testing.T) {
	g := Build(testProjects(map[string][]string{
		"zoo": {"foo"},
		"foo": {},
	}), Options{})

	if got := g.Affected(set()); len(got) != 0 {
		t.Fatalf("affected of empty set not empty: %v", got)
	}
}

func TestAffected_ChangedLeafAffectsAllAncestors(t *testing.T) {
	g := Build(testProjects(map[string][]string{
		"zoo": {"foo", "bar"},
		"foo": {"baz"},
		"bar": {"baz"},
		"baz": {},
	}), Options{})

	got := g.Affected(set("baz"))
	want := set("baz", "foo", "bar", "zoo")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("affected = %v, want %v", got, want)
	}
}

func TestAffected_ChangedRootAffectsOnlyItself(t *testing.T) {
	g := Build(testProjects(map[string][]string{
		"zoo": {"foo"},
		"foo": {},
	}), Options{})

	got := g.Affected(set("zoo"))
	if !reflect.DeepEqual(got, set("zoo")) {
		t.Fatalf("affected = %v, want only zoo", got)
	}
}

func TestAffected_DisconnectedComponents(t *testing.T) {
	g := Build(testProjects(map[string][]string{
		"app": {"lib"},
		"lib": {},
		"web": {"api"},
		"api": {},
	}), Options{})

	got := g.Affected(set("lib"))
	want := set("lib", "app")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("affected crossed components: %v", got)
	}
}

func TestAffected_Monotonic(t *testing.T) {
	g := Build(testProjects(map[string][]string{
		"zoo": {"foo", "bar"},
		"foo": {"baz"},
		"bar": {"baz"},
		"baz": {},
	}), Options{})

	small := g.Affected(set("foo"))
	large := g.Affected(set("foo", "baz"))

	for name := range small {
		if _, ok := large[name]; !ok {
			t.Fatalf("affected not monotonic: %s missing from larger set", name)
		}
	}
	for name := range set("foo", "baz") {
		if _, ok := large[name]; !ok {
			t.Fatalf("affected must contain its input, missing %s", name)
		}
	}
}

func TestAffected_UnknownNamesIgnored(t *testing.T) {
	g := Build(testProjects(map[string][]string{"foo": {}}), Options{})

	got := g.Affected(set("nope"))
	if len(got) != 0 {
		t.Fatalf("unknown changed name produced results: %v", got)
	}
}

func TestOrder_Alphabetical(t *testing.T) {
	g := Build(testProjects(map[string][]string{
		"zoo": {},
		"foo": {},
		"bar": {},
		"baz": {},
	}), Options{})

	got := g.Order(OrderAlphabetical)
	want := []string{"bar", "baz", "foo", "zoo"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestOrder_PostorderRespectsDependencies(t *testing.T) {
	g := Build(testProjects(map[string][]string{
		"zoo": {"foo", "bar"},
		"foo": {"baz"},
		"bar": {"baz"},
		"baz": {},
	}), Options{})

	order := g.Order(OrderPostorder)
	if len(order) != 4 {
		t.Fatalf("expected 4 vertices, got %v", order)
	}

	index := make(map[string]int, len(order))
	for i, name := range order {
		index[name] = i
	}

	if index["baz"] != 0 {
		t.Fatalf("baz not first: %v", order)
	}
	if index["foo"] >= index["zoo"] || index["bar"] >= index["zoo"] {
		t.Fatalf("dependants ordered before dependencies: %v", order)
	}
}

func TestOrder_PostorderTerminatesOnCycle(t *testing.T) {
	g := Build(testProjects(map[string][]string{
		"a": {"b"},
		"b": {"a"},
	}), Options{})

	order := g.Order(OrderPostorder)
	if len(order) != 2 {
		t.Fatalf("expected both vertices enumerated, got %v", order)
	}
}
