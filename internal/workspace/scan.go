package workspace

import (
	"bytes"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/monoctl/monoctl/internal/filesystem"
	"github.com/monoctl/monoctl/internal/models"
	"golang.org/x/mod/modfile"
)

// WorkFileName is the manifest declaring a directory a workspace root.
const WorkFileName = "go.work"

// ManifestName is the per-project manifest.
const ManifestName = "go.mod"

// Scanner discovers project descriptors under a workspace root. It is
// the only component that reads manifests; everything downstream works
// on the plain descriptors it produces.
type Scanner struct {
	fs filesystem.FileSystem
}

// NewScanner creates a Scanner on top of the given filesystem.
func NewScanner(fs filesystem.FileSystem) *Scanner {
	return &Scanner{fs: fs}
}

// Detect walks up from the current directory looking for a go.work file
// and returns the directory containing it.
func (s *Scanner) Detect() (string, error) {
	cwd, err := s.fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	dir := cwd
	for {
		if s.fs.Exists(filepath.Join(dir, WorkFileName)) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("workspace not found")
		}
		dir = parent
	}
}

// Scan reads the workspace root and produces the root descriptor plus
// one descriptor per member project.
//
// Members are collected from the go.work use directives and from a
// directory walk for go.mod files honoring the root .gitignore, merged
// by manifest path. Declared dependencies are classified against the
// member set: a require (or relative replace) resolving to another
// member becomes a path dependency, everything else stays external.
func (s *Scanner) Scan(rootPath string) (models.Descriptor, []models.Descriptor, error) {
	root := models.Descriptor{
		Name:         filepath.Base(rootPath),
		RootPath:     rootPath,
		ManifestPath: filepath.Join(rootPath, WorkFileName),
	}

	if !s.fs.Exists(root.ManifestPath) {
		return root, nil, nil
	}
	root.IsWorkspaceRoot = true

	declared, err := s.declaredDirs(root.ManifestPath, rootPath)
	if err != nil {
		return root, nil, err
	}

	discovered, err := s.discoverDirs(rootPath)
	if err != nil {
		return root, nil, err
	}

	dirs := mergeDirs(declared, discovered)

	manifests := make([]*manifest, 0, len(dirs))
	for _, dir := range dirs {
		m, err := s.loadManifest(dir, rootPath)
		if err != nil {
			return root, nil, err
		}
		manifests = append(manifests, m)
	}

	return root, buildDescriptors(manifests), nil
}

// manifest is the raw per-project parse result before dependency
// classification.
type manifest struct {
	dir          string
	manifestPath string
	modulePath   string
	requires     []models.Dependency
	replaceDirs  map[string]string
	nestedWork   bool
}

func (s *Scanner) declaredDirs(workPath, rootPath string) ([]string, error) {
	data, err := s.fs.ReadFile(workPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read go.work: %w", err)
	}

	workFile, err := modfile.ParseWork(workPath, data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse go.work: %w", err)
	}

	var dirs []string
	for _, use := range workFile.Use {
		dir := use.Path
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(rootPath, dir)
		}
		dirs = append(dirs, filepath.Clean(dir))
	}

	return dirs, nil
}

// discoverDirs walks the workspace tree for go.mod files, skipping
// anything the root .gitignore excludes.
func (s *Scanner) discoverDirs(rootPath string) ([]string, error) {
	ignore, err := s.loadRootGitIgnore(rootPath)
	if err != nil {
		return nil, err
	}

	var dirs []string
	err = s.fs.WalkDir(rootPath, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == rootPath {
			return nil
		}

		rel, relErr := filepath.Rel(rootPath, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if entry.IsDir() && entry.Name() == ".git" {
			return filepath.SkipDir
		}

		if ignore != nil {
			if match := ignore.Relative(rel, entry.IsDir()); match != nil && match.Ignore() {
				if entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if entry.IsDir() || filepath.Base(path) != ManifestName {
			return nil
		}

		dir := filepath.Dir(path)
		if dir == rootPath {
			// The root go.mod belongs to the workspace itself,
			// not to a member project.
			return nil
		}
		dirs = append(dirs, dir)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return dirs, nil
}

func (s *Scanner) loadRootGitIgnore(rootPath string) (gitignore.GitIgnore, error) {
	ignorePath := filepath.Join(rootPath, ".gitignore")
	if !s.fs.Exists(ignorePath) {
		return nil, nil
	}

	data, err := s.fs.ReadFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .gitignore: %w", err)
	}

	return gitignore.New(bytes.NewReader(data), rootPath, nil), nil
}

func mergeDirs(declared, discovered []string) []string {
	seen := make(map[string]struct{}, len(declared))
	dirs := make([]string, 0, len(declared)+len(discovered))

	for _, dir := range declared {
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	for _, dir := range discovered {
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}

	return dirs
}

func (s *Scanner) loadManifest(dir, rootPath string) (*manifest, error) {
	manifestPath := filepath.Join(dir, ManifestName)
	if !s.fs.Exists(manifestPath) {
		return nil, &MissingManifestError{Path: dir}
	}

	data, err := s.fs.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", manifestPath, err)
	}

	modFile, err := modfile.Parse(manifestPath, data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", manifestPath, err)
	}

	m := &manifest{
		dir:          dir,
		manifestPath: manifestPath,
		modulePath:   modFile.Module.Mod.Path,
		replaceDirs:  make(map[string]string),
		nestedWork:   dir != rootPath && s.fs.Exists(filepath.Join(dir, WorkFileName)),
	}

	for _, require := range modFile.Require {
		m.requires = append(m.requires, models.Dependency{
			Name:   require.Mod.Path,
			Kind:   models.DependencyExternal,
			Target: require.Mod.Version,
		})
	}

	for _, replace := range modFile.Replace {
		target := replace.New.Path
		if !strings.HasPrefix(target, "./") && !strings.HasPrefix(target, "../") {
			continue
		}
		resolved := filepath.Clean(filepath.Join(dir, target))
		m.replaceDirs[replace.Old.Path] = resolved
	}

	return m, nil
}

// buildDescriptors classifies every manifest's requires against the
// member set and produces the final descriptor list.
func buildDescriptors(manifests []*manifest) []models.Descriptor {
	byModule := make(map[string]*manifest, len(manifests))
	byDir := make(map[string]*manifest, len(manifests))
	for _, m := range manifests {
		byModule[m.modulePath] = m
		byDir[m.dir] = m
	}

	descriptors := make([]models.Descriptor, 0, len(manifests))
	for _, m := range manifests {
		d := models.Descriptor{
			Name:            projectName(m.modulePath),
			RootPath:        m.dir,
			ManifestPath:    m.manifestPath,
			ModulePath:      m.modulePath,
			IsWorkspaceRoot: m.nestedWork,
		}

		for _, dep := range m.requires {
			target := byModule[dep.Name]
			if target == nil {
				if dir, ok := m.replaceDirs[dep.Name]; ok {
					target = byDir[dir]
				}
			}

			if target == nil {
				d.Dependencies = append(d.Dependencies, dep)
				continue
			}

			rel, err := filepath.Rel(m.dir, target.dir)
			if err != nil {
				rel = target.dir
			}
			d.Dependencies = append(d.Dependencies, models.Dependency{
				Name:   projectName(target.modulePath),
				Kind:   models.DependencyPath,
				Target: filepath.ToSlash(rel),
			})
		}

		descriptors = append(descriptors, d)
	}

	return descriptors
}

// projectName extracts the project name from a module path,
// e.g. "github.com/user/project" -> "project".
func projectName(modulePath string) string {
	parts := strings.Split(modulePath, "/")
	if len(parts) > 0 {
		return parts[len(parts)-1]
	}
	return modulePath
}
