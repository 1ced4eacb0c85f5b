package cli

import (
	"testing"

	"github.com/monoctl/monoctl/internal/git"
	"github.com/stretchr/testify/require"
)

func TestAffected_PrintsTransitiveDependants(t *testing.T) {
	fs := testWorkspaceFS(t)
	gitMock := git.NewMockClient()
	gitMock.SetChangedFiles("main", "libs/core/core.go")

	out := executeCommand(t, NewAffectedCommand(fs, gitMock), "--base", "main")

	require.Equal(t, "app\ncore\nlib\nutil\n", out)
}

func TestAffected_ModifiedOnly(t *testing.T) {
	fs := testWorkspaceFS(t)
	gitMock := git.NewMockClient()
	gitMock.SetChangedFiles("main", "libs/core/core.go")

	out := executeCommand(t, NewAffectedCommand(fs, gitMock), "--base", "main", "--modified-only")

	require.Equal(t, "core\n", out)
}

func TestAffected_NoChangesPrintsNothing(t *testing.T) {
	fs := testWorkspaceFS(t)
	gitMock := git.NewMockClient()

	out := executeCommand(t, NewAffectedCommand(fs, gitMock), "--base", "main")

	require.Empty(t, out)
}

func TestAffected_ChangedRootAffectsOnlyItself(t *testing.T) {
	fs := testWorkspaceFS(t)
	gitMock := git.NewMockClient()
	gitMock.SetChangedFiles("main", "apps/app/main.go")

	out := executeCommand(t, NewAffectedCommand(fs, gitMock), "--base", "main")

	require.Equal(t, "app\n", out)
}
