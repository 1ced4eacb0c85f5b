package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// OSClient implements Client using real git commands.
type OSClient struct {
	ctx context.Context
}

// NewOSClient creates a new OSClient.
func NewOSClient() *OSClient {
	return &OSClient{
		ctx: context.Background(),
	}
}

// WithContext returns a new client with the given context.
func (g *OSClient) WithContext(ctx context.Context) Client {
	return &OSClient{
		ctx: ctx,
	}
}

// IsRepo reports whether the current directory is inside a git work tree.
func (g *OSClient) IsRepo() (bool, error) {
	cmd := exec.CommandContext(g.ctx, "git", "rev-parse", "--is-inside-work-tree")

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return false, nil
		}
		return false, fmt.Errorf("failed to run git rev-parse: %w", err)
	}

	return strings.TrimSpace(out.String()) == "true", nil
}

// CurrentBranch returns the name of the checked-out branch.
func (g *OSClient) CurrentBranch() (string, error) {
	cmd := exec.CommandContext(g.ctx, "git", "rev-parse", "--abbrev-ref", "HEAD")

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}

	return strings.TrimSpace(out.String()), nil
}

// ChangedFiles returns the files differing from base plus untracked
// files, as repository-relative paths.
func (g *OSClient) ChangedFiles(base string) ([]string, error) {
	if base == "" {
		base = "HEAD"
	}

	diffed, err := g.diffNames(base)
	if err != nil {
		return nil, err
	}

	untracked, err := g.untrackedFiles()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(diffed)+len(untracked))
	var files []string
	for _, file := range append(diffed, untracked...) {
		if file == "" {
			continue
		}
		if _, ok := seen[file]; ok {
			continue
		}
		seen[file] = struct{}{}
		files = append(files, file)
	}

	return files, nil
}

func (g *OSClient) diffNames(base string) ([]string, error) {
	cmd := exec.CommandContext(g.ctx, "git", "diff", "--name-only", base)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to diff against %s: %w: %s", base, err, stderr.String())
	}

	return splitLines(out.String()), nil
}

func (g *OSClient) untrackedFiles() ([]string, error) {
	cmd := exec.CommandContext(g.ctx, "git", "ls-files", "--others", "--exclude-standard")

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to list untracked files: %w", err)
	}

	return splitLines(out.String()), nil
}

func splitLines(output string) []string {
	output = strings.TrimSpace(output)
	if output == "" {
		return nil
	}

	lines := strings.Split(output, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}
