package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/monoctl/monoctl/internal/filesystem"
	"github.com/monoctl/monoctl/internal/graph"
	"github.com/spf13/cobra"
)

// GraphCommand handles the graph command.
type GraphCommand struct {
	fs       filesystem.FileSystem
	format   string
	external bool
}

// graphJSON is the JSON serialization of the dependency graph.
type graphJSON struct {
	Nodes []graphNode `json:"nodes"`
	Edges []graphEdge `json:"edges"`
}

type graphNode struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type graphEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// NewGraphCommand creates a new graph command.
func NewGraphCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &GraphCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the workspace dependency graph",
		Long: `Print the dependency graph over workspace projects. Edges point from
a dependant project to each of its dependencies. External dependencies
are left out unless --external is given.`,
		Example: `  # Text tree of the workspace graph
  monoctl graph

  # Graphviz DOT including external dependencies
  monoctl graph --format dot --external | dot -Tsvg > deps.svg`,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.format, "format", "text", "Output format: text, dot or json")
	cobraCmd.Flags().BoolVar(&cmd.external, "external", false, "Include external dependencies as vertices")

	return cobraCmd
}

// Run executes the graph command.
func (c *GraphCommand) Run(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspace(c.fs)
	if err != nil {
		return err
	}

	g := ws.Graph
	if c.external {
		g = graph.Build(ws.Projects, graph.Options{IncludeExternal: true})
	}

	out := cmd.OutOrStdout()
	switch c.format {
	case "text":
		return writeText(out, g)
	case "dot":
		return writeDOT(out, g)
	case "json":
		return writeJSON(out, g)
	default:
		return fmt.Errorf("unknown format %q (must be text, dot or json)", c.format)
	}
}

// writeText prints each vertex with its direct dependencies as a tree
// fragment, alphabetically.
func writeText(w io.Writer, g *graph.Graph) error {
	for _, vertex := range g.Vertices() {
		if vertex.Kind == graph.KindExternal {
			continue
		}

		if _, err := fmt.Fprintln(w, vertex.Name); err != nil {
			return err
		}

		deps := g.Dependencies(vertex.Name)
		for i, dep := range deps {
			branch := "├──"
			if i == len(deps)-1 {
				branch = "└──"
			}
			if _, err := fmt.Fprintf(w, "%s %s\n", branch, dep); err != nil {
				return err
			}
		}
	}

	return nil
}

// writeDOT emits the graph in Graphviz DOT format.
func writeDOT(w io.Writer, g *graph.Graph) error {
	var buf strings.Builder
	buf.WriteString("digraph workspace {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=rounded];\n\n")

	for _, vertex := range g.Vertices() {
		if vertex.Kind == graph.KindExternal {
			fmt.Fprintf(&buf, "  %q [style=\"rounded,dashed\", color=grey];\n", vertex.Name)
			continue
		}
		fmt.Fprintf(&buf, "  %q;\n", vertex.Name)
	}

	buf.WriteString("\n")
	for _, vertex := range g.Vertices() {
		for _, dep := range g.Dependencies(vertex.Name) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", vertex.Name, dep)
		}
	}

	buf.WriteString("}\n")

	_, err := io.WriteString(w, buf.String())
	return err
}

// writeJSON emits the graph as sorted nodes and edges.
func writeJSON(w io.Writer, g *graph.Graph) error {
	out := graphJSON{
		Nodes: []graphNode{},
		Edges: []graphEdge{},
	}

	for _, vertex := range g.Vertices() {
		out.Nodes = append(out.Nodes, graphNode{Name: vertex.Name, Kind: string(vertex.Kind)})
		for _, dep := range g.Dependencies(vertex.Name) {
			out.Edges = append(out.Edges, graphEdge{From: vertex.Name, To: dep})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
