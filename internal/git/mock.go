package git

import (
	"context"
)

// MockClient implements Client for testing.
type MockClient struct {
	// Repo controls IsRepo.
	Repo bool

	// Branch is returned by CurrentBranch.
	Branch string

	// Files maps a base ref to the changed files returned for it.
	// The empty key serves as the HEAD default.
	Files map[string][]string

	// Err, when set, is returned by every operation.
	Err error
}

// NewMockClient creates a MockClient with no changes recorded.
func NewMockClient() *MockClient {
	return &MockClient{
		Repo:   true,
		Branch: "main",
		Files:  make(map[string][]string),
	}
}

// SetChangedFiles records the changed files returned for base.
func (g *MockClient) SetChangedFiles(base string, files ...string) {
	g.Files[base] = files
}

func (g *MockClient) IsRepo() (bool, error) {
	if g.Err != nil {
		return false, g.Err
	}
	return g.Repo, nil
}

func (g *MockClient) CurrentBranch() (string, error) {
	if g.Err != nil {
		return "", g.Err
	}
	return g.Branch, nil
}

func (g *MockClient) ChangedFiles(base string) ([]string, error) {
	if g.Err != nil {
		return nil, g.Err
	}

	if files, ok := g.Files[base]; ok {
		return append([]string(nil), files...), nil
	}
	return append([]string(nil), g.Files[""]...), nil
}

func (g *MockClient) WithContext(ctx context.Context) Client {
	return g
}
