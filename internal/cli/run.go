package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/monoctl/monoctl/internal/filesystem"
	"github.com/monoctl/monoctl/internal/git"
	"github.com/monoctl/monoctl/internal/graph"
	"github.com/monoctl/monoctl/internal/models"
	"github.com/monoctl/monoctl/internal/workspace"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command.
type RunCommand struct {
	fs          filesystem.FileSystem
	git         git.Client
	flags       filterFlags
	interactive bool
	command     []string

	// execute runs the command for one project; tests stub it out.
	execute func(project *models.Project) error
}

// NewRunCommand creates a new run command.
func NewRunCommand(fs filesystem.FileSystem, gitClient git.Client) *cobra.Command {
	cmd := &RunCommand{
		fs:  fs,
		git: gitClient,
	}
	return cmd.cobraCommand()
}

func (c *RunCommand) cobraCommand() *cobra.Command {
	cobraCmd := &cobra.Command{
		Use:   "run [flags] -- <command> [args...]",
		Short: "Run a command in each project matching the filters",
		Long: `Run a command once per project, in dependency order: every project's
dependencies run before the project itself. Projects skipped by the
filter flags are passed over. The command runs with the project root as
working directory and PROJECT / PROJECT_PATH in the environment.`,
		Example: `  # Test everything affected by the current branch
  monoctl run --affected --base origin/main -- go test ./...

  # Build only the root projects
  monoctl run --only-roots -- go build ./...

  # Pick projects interactively
  monoctl run --interactive -- go vet ./...`,
		RunE: c.Run,
	}

	addFilterFlags(cobraCmd, &c.flags)
	cobraCmd.Flags().BoolVarP(&c.interactive, "interactive", "i", false,
		"Select the projects to run in interactively")

	return cobraCmd
}

// Run executes the run command.
func (c *RunCommand) Run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command specified (use -- before command)")
	}
	c.command = args

	logger := loggerFromContext(cmd.Context())

	ws, err := loadWorkspace(c.fs)
	if err != nil {
		return err
	}

	changed, err := changedFiles(c.git.WithContext(cmd.Context()), logger, c.flags.base)
	if err != nil {
		return err
	}

	if c.interactive {
		selected, err := pickProjects(ws)
		if err != nil {
			return err
		}
		if len(selected) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No projects selected")
			return nil
		}
		c.flags.selected = selected
	}

	ws = applyFilters(ws, changed, c.flags)

	var projects []*models.Project
	for _, project := range ws.Ordered(graph.OrderPostorder) {
		if project.Skip {
			logger.Debug("skipping project", "project", project.Name)
			continue
		}
		projects = append(projects, project)
	}

	if len(projects) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No projects match the specified filters")
		return nil
	}

	return c.executeForProjects(cmd, projects)
}

func (c *RunCommand) executeForProjects(cmd *cobra.Command, projects []*models.Project) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Running command for %d project(s)...\n\n", len(projects))

	var failed []string
	for i, project := range projects {
		if i > 0 {
			fmt.Fprintln(out, "\n"+strings.Repeat("-", 60)+"\n")
		}

		fmt.Fprintf(out, "[%d/%d] %s\n", i+1, len(projects), project.Name)

		if err := c.runProject(project); err != nil {
			fmt.Fprintf(out, "Failed: %v\n", err)
			failed = append(failed, project.Name)
			continue
		}

		fmt.Fprintln(out, "Success")
	}

	if len(failed) > 0 {
		fmt.Fprintf(out, "\n%d project(s) failed: %s\n", len(failed), strings.Join(failed, ", "))
		return fmt.Errorf("some projects failed")
	}

	return nil
}

func (c *RunCommand) runProject(project *models.Project) error {
	if c.execute != nil {
		return c.execute(project)
	}
	return c.executeForProject(project)
}

func (c *RunCommand) executeForProject(project *models.Project) error {
	execCmd := exec.Command(c.command[0], c.command[1:]...)
	execCmd.Dir = project.RootPath
	execCmd.Stdout = os.Stdout
	execCmd.Stderr = os.Stderr

	execCmd.Env = append(os.Environ(),
		fmt.Sprintf("PROJECT=%s", project.Name),
		fmt.Sprintf("PROJECT_PATH=%s", project.RootPath),
	)

	return execCmd.Run()
}

// pickProjects opens a multi-select over all workspace projects.
func pickProjects(ws *workspace.Workspace) ([]string, error) {
	names := ws.ProjectNames()
	options := make([]huh.Option[string], len(names))
	for i, name := range names {
		options[i] = huh.NewOption(name, name)
	}

	var selected []string
	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Select projects").
			Options(options...).
			Value(&selected),
	))

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("failed to run project picker: %w", err)
	}

	return selected, nil
}
