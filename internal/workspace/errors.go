package workspace

import (
	"fmt"
	"strings"
)

// DuplicateNameError reports two or more surviving projects sharing a
// name. ManifestPaths enumerates every offending manifest, not just the
// first collision.
type DuplicateNameError struct {
	Name          string
	ManifestPaths []string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate project name %q declared by %s",
		e.Name, strings.Join(e.ManifestPaths, ", "))
}

// NestedWorkspaceError reports a member project that declares itself a
// workspace root inside an enclosing workspace.
type NestedWorkspaceError struct {
	Name     string
	RootPath string
}

func (e *NestedWorkspaceError) Error() string {
	return fmt.Sprintf("project %q at %s declares a nested workspace", e.Name, e.RootPath)
}

// NotAWorkspaceError reports a workspace root whose manifest does not
// declare it a workspace.
type NotAWorkspaceError struct {
	Path string
}

func (e *NotAWorkspaceError) Error() string {
	return fmt.Sprintf("%s is not a workspace root: no go.work declaration", e.Path)
}

// MissingManifestError reports a project directory without a manifest.
type MissingManifestError struct {
	Path string
}

func (e *MissingManifestError) Error() string {
	return fmt.Sprintf("no manifest found at %s", e.Path)
}

// UnknownProjectError reports a lookup for a project name not present in
// the workspace. Unlike construction errors it is recoverable by the
// caller.
type UnknownProjectError struct {
	Name string
}

func (e *UnknownProjectError) Error() string {
	return fmt.Sprintf("project %q not found in workspace", e.Name)
}
