package workspace

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/monoctl/monoctl/internal/filesystem"
)

// Builder assembles mock workspace trees for tests.
type Builder struct {
	fs       *filesystem.MockFileSystem
	root     string
	projects []builderProject
}

type builderProject struct {
	name     string
	path     string
	deps     []string
	declared bool
}

// NewBuilder creates a Builder rooted at the given path. The resulting
// filesystem has its working directory set to the root.
func NewBuilder(root string) *Builder {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir(root)
	fs.SetCurrentDir(root)

	return &Builder{
		fs:   fs,
		root: root,
	}
}

// AddProject adds a project declared in go.work. deps are names of other
// builder projects the go.mod requires.
func (b *Builder) AddProject(name, path string, deps ...string) *Builder {
	b.projects = append(b.projects, builderProject{
		name:     name,
		path:     path,
		deps:     deps,
		declared: true,
	})
	return b
}

// AddUndeclaredProject adds a project with a go.mod but no go.work use
// directive, so only the fuzzy walk can find it.
func (b *Builder) AddUndeclaredProject(name, path string, deps ...string) *Builder {
	b.projects = append(b.projects, builderProject{
		name: name,
		path: path,
		deps: deps,
	})
	return b
}

// AddFile adds an arbitrary file, path relative to the root.
func (b *Builder) AddFile(path, content string) *Builder {
	b.fs.AddFile(filepath.Join(b.root, path), []byte(content))
	return b
}

// Build writes the go.work and per-project manifests and returns the
// mock filesystem.
func (b *Builder) Build() *filesystem.MockFileSystem {
	var uses []string
	for _, project := range b.projects {
		if project.declared {
			uses = append(uses, fmt.Sprintf("use ./%s", filepath.ToSlash(project.path)))
		}

		var requires []string
		for _, dep := range project.deps {
			requires = append(requires, fmt.Sprintf("require %s v0.0.0", modulePath(dep)))
		}

		goMod := fmt.Sprintf("module %s\n\ngo 1.24\n\n%s\n",
			modulePath(project.name), strings.Join(requires, "\n"))
		b.fs.AddFile(filepath.Join(b.root, project.path, ManifestName), []byte(goMod))
	}

	goWork := fmt.Sprintf("go 1.24\n\n%s\n", strings.Join(uses, "\n"))
	b.fs.AddFile(filepath.Join(b.root, WorkFileName), []byte(goWork))

	return b.fs
}

func modulePath(name string) string {
	return "github.com/test/" + name
}
