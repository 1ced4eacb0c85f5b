package workspace

import (
	"errors"
	"testing"

	"github.com/monoctl/monoctl/internal/models"
)

func TestScannerDetect_WalksUpToWorkFile(t *testing.T) {
	fs := NewBuilder("/repo").
		AddProject("app", "apps/app").
		Build()
	fs.SetCurrentDir("/repo/apps/app")

	root, err := NewScanner(fs).Detect()
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if root != "/repo" {
		t.Fatalf("unexpected root: %s", root)
	}
}

func TestScannerDetect_NoWorkspace(t *testing.T) {
	fs := NewBuilder("/repo").Build()
	fs.SetCurrentDir("/elsewhere")

	if _, err := NewScanner(fs).Detect(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestScannerScan_DeclaredProjects(t *testing.T) {
	fs := NewBuilder("/repo").
		AddProject("app", "apps/app", "lib").
		AddProject("lib", "libs/lib").
		Build()

	root, members, err := NewScanner(fs).Scan("/repo")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if !root.IsWorkspaceRoot {
		t.Fatalf("root not recognized as workspace")
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}

	app := findDescriptor(t, members, "app")
	if len(app.Dependencies) != 1 {
		t.Fatalf("unexpected dependencies: %v", app.Dependencies)
	}
	dep := app.Dependencies[0]
	if dep.Name != "lib" || dep.Kind != models.DependencyPath {
		t.Fatalf("lib not classified as path dependency: %+v", dep)
	}
}

func TestScannerScan_ExternalDependenciesStayExternal(t *testing.T) {
	fs := NewBuilder("/repo").
		AddProject("app", "apps/app", "cobra").
		Build()

	_, members, err := NewScanner(fs).Scan("/repo")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	app := findDescriptor(t, members, "app")
	dep := app.Dependencies[0]
	if dep.Kind != models.DependencyExternal {
		t.Fatalf("unresolvable require classified as path dependency: %+v", dep)
	}
	if dep.Name != "github.com/test/cobra" {
		t.Fatalf("external dependency keeps its module path, got %s", dep.Name)
	}
}

func TestScannerScan_FuzzyDiscoversUndeclaredProjects(t *testing.T) {
	fs := NewBuilder("/repo").
		AddProject("app", "apps/app").
		AddUndeclaredProject("tool", "tools/tool").
		Build()

	_, members, err := NewScanner(fs).Scan("/repo")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	findDescriptor(t, members, "tool")
}

func TestScannerScan_GitignoredDirsSkipped(t *testing.T) {
	fs := NewBuilder("/repo").
		AddProject("app", "apps/app").
		AddUndeclaredProject("stale", "vendor/stale").
		AddFile(".gitignore", "vendor/\n").
		Build()

	_, members, err := NewScanner(fs).Scan("/repo")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	for _, d := range members {
		if d.Name == "stale" {
			t.Fatalf("gitignored project discovered: %+v", d)
		}
	}
}

func TestScannerScan_DeclaredProjectWithoutManifest(t *testing.T) {
	builder := NewBuilder("/repo").AddProject("app", "apps/app")
	fs := builder.Build()
	fs.AddFile("/repo/go.work", []byte("go 1.24\n\nuse ./apps/app\nuse ./apps/ghost\n"))
	fs.AddDir("/repo/apps/ghost")

	_, _, err := NewScanner(fs).Scan("/repo")

	var missing *MissingManifestError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingManifestError, got %v", err)
	}
	if missing.Path != "/repo/apps/ghost" {
		t.Fatalf("unexpected path: %s", missing.Path)
	}
}

func TestScannerScan_NestedWorkFileFlagsMember(t *testing.T) {
	fs := NewBuilder("/repo").
		AddProject("inner", "apps/inner").
		Build()
	fs.AddFile("/repo/apps/inner/go.work", []byte("go 1.24\n"))

	_, members, err := NewScanner(fs).Scan("/repo")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	inner := findDescriptor(t, members, "inner")
	if !inner.IsWorkspaceRoot {
		t.Fatalf("nested go.work not flagged")
	}
}

func TestScannerScan_NoWorkFile(t *testing.T) {
	fs := NewBuilder("/repo").Build()
	fs.SetCurrentDir("/repo")

	root, members, err := NewScanner(fs).Scan("/other")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if root.IsWorkspaceRoot {
		t.Fatalf("missing go.work reported as workspace")
	}
	if len(members) != 0 {
		t.Fatalf("members scanned without a workspace: %v", members)
	}
}

func findDescriptor(t *testing.T, members []models.Descriptor, name string) models.Descriptor {
	t.Helper()
	for _, d := range members {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("descriptor %s not found in %v", name, members)
	return models.Descriptor{}
}
