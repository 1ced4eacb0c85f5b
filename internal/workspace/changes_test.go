package workspace

import (
	"reflect"
	"testing"

	"github.com/monoctl/monoctl/internal/config"
	"github.com/monoctl/monoctl/internal/models"
)

func changesWorkspace(t *testing.T) *Workspace {
	t.Helper()

	ws, err := Assemble(workspaceRoot(), []models.Descriptor{
		member("api", "apps/api"),
		member("api-client", "apps/api/client"),
		member("web", "apps/web"),
	}, config.Config{})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	return ws
}

func TestModifiedProjects_LongestPrefixWins(t *testing.T) {
	ws := changesWorkspace(t)

	got := ws.ModifiedProjects([]string{"/ws/apps/api/client/client.go"})
	want := map[string]struct{}{"api-client": {}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("modified = %v, want %v", got, want)
	}
}

func TestModifiedProjects_RelativePathsResolveAgainstRoot(t *testing.T) {
	ws := changesWorkspace(t)

	got := ws.ModifiedProjects([]string{"apps/web/main.go"})
	want := map[string]struct{}{"web": {}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("modified = %v, want %v", got, want)
	}
}

func TestModifiedProjects_UnmatchedFilesDropped(t *testing.T) {
	ws := changesWorkspace(t)

	got := ws.ModifiedProjects([]string{"README.md", "/ws/Makefile", "/elsewhere/file.go"})
	if len(got) != 0 {
		t.Fatalf("unmatched files produced projects: %v", got)
	}
}

func TestModifiedProjects_NoDuplicates(t *testing.T) {
	ws := changesWorkspace(t)

	got := ws.ModifiedProjects([]string{
		"apps/web/main.go",
		"apps/web/handler.go",
		"/ws/apps/web/go.mod",
	})
	want := map[string]struct{}{"web": {}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("modified = %v, want %v", got, want)
	}
}

func TestModifiedProjects_ProjectRootFileCountsAsOwned(t *testing.T) {
	ws := changesWorkspace(t)

	got := ws.ModifiedProjects([]string{"apps/api/go.mod"})
	want := map[string]struct{}{"api": {}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("modified = %v, want %v", got, want)
	}
}
