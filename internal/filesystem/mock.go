package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MockFileSystem provides an in-memory filesystem for testing.
type MockFileSystem struct {
	files      map[string]*MockFile
	currentDir string
}

// MockFile represents a file in the mock filesystem.
type MockFile struct {
	Content []byte
	Mode    fs.FileMode
	ModTime time.Time
	IsDir   bool
}

// mockFileInfo implements fs.FileInfo.
type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// mockDirEntry implements fs.DirEntry.
type mockDirEntry struct {
	info fs.FileInfo
}

func (m *mockDirEntry) Name() string               { return m.info.Name() }
func (m *mockDirEntry) IsDir() bool                { return m.info.IsDir() }
func (m *mockDirEntry) Type() fs.FileMode          { return m.info.Mode().Type() }
func (m *mockDirEntry) Info() (fs.FileInfo, error) { return m.info, nil }

// NewMockFileSystem creates a new MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:      make(map[string]*MockFile),
		currentDir: "/workspace",
	}
}

// AddFile adds a file to the mock filesystem, creating parent directories.
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	cleanPath := filepath.Clean(path)
	mfs.files[cleanPath] = &MockFile{
		Content: content,
		Mode:    0644,
		ModTime: time.Now(),
	}

	dir := filepath.Dir(cleanPath)
	for dir != "." && dir != "/" && dir != cleanPath {
		if _, exists := mfs.files[dir]; !exists {
			mfs.AddDir(dir)
		}
		dir = filepath.Dir(dir)
	}
}

// AddDir adds a directory to the mock filesystem.
func (mfs *MockFileSystem) AddDir(path string) {
	cleanPath := filepath.Clean(path)
	mfs.files[cleanPath] = &MockFile{
		Mode:    fs.ModeDir | 0755,
		ModTime: time.Now(),
		IsDir:   true,
	}
}

// SetCurrentDir sets the directory returned by Getwd.
func (mfs *MockFileSystem) SetCurrentDir(path string) {
	mfs.currentDir = filepath.Clean(path)
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	file, ok := mfs.files[filepath.Clean(path)]
	if !ok || file.IsDir {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return file.Content, nil
}

func (mfs *MockFileSystem) Stat(path string) (fs.FileInfo, error) {
	cleanPath := filepath.Clean(path)
	file, ok := mfs.files[cleanPath]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return &mockFileInfo{
		name:    filepath.Base(cleanPath),
		size:    int64(len(file.Content)),
		mode:    file.Mode,
		modTime: file.ModTime,
		isDir:   file.IsDir,
	}, nil
}

func (mfs *MockFileSystem) Exists(path string) bool {
	_, ok := mfs.files[filepath.Clean(path)]
	return ok
}

func (mfs *MockFileSystem) Getwd() (string, error) {
	if mfs.currentDir == "" {
		return "", errors.New("no current directory set")
	}
	return mfs.currentDir, nil
}

// WalkDir walks the mock tree in lexical order, honoring fs.SkipDir.
func (mfs *MockFileSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	cleanRoot := filepath.Clean(root)
	if _, ok := mfs.files[cleanRoot]; !ok {
		return &fs.PathError{Op: "walkdir", Path: root, Err: fs.ErrNotExist}
	}

	paths := make([]string, 0, len(mfs.files))
	for path := range mfs.files {
		if path == cleanRoot || strings.HasPrefix(path, cleanRoot+string(filepath.Separator)) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)

	var skipped []string
	for _, path := range paths {
		if isUnderAny(path, skipped) {
			continue
		}

		info, err := mfs.Stat(path)
		if err != nil {
			return err
		}
		entry := &mockDirEntry{info: info}

		if err := fn(path, entry, nil); err != nil {
			if errors.Is(err, fs.SkipDir) {
				if entry.IsDir() {
					skipped = append(skipped, path)
					continue
				}
				skipped = append(skipped, filepath.Dir(path))
				continue
			}
			return err
		}
	}

	return nil
}

func isUnderAny(path string, dirs []string) bool {
	for _, dir := range dirs {
		if strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
