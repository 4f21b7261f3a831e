package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mdpkg/mdpkg/internals/commands"
	"github.com/mdpkg/mdpkg/internals/workspace"
)

func init() {
	runner := &testRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "test",
		Short: "Runs the test commands the recipe declares",
		Long: `Runs the test commands the recipe declares, in order.
The build output's bin directory is on the PATH, so the declared entry
points can be invoked directly. The first failing command aborts the run.`,
		Args: cobra.NoArgs,
	}, runner)

	rootCmd.AddCommand(cmd.Command)
}

type testRunner struct{}

func (t *testRunner) RunE(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	ws, err := workspace.NewFromWd()
	if err != nil {
		return err
	}

	scripts := ws.Recipe.Test.Commands
	if len(scripts) == 0 {
		logger.Warn("The recipe declares no test commands")
		return nil
	}

	task := logger.NewTask(len(scripts))
	for i, testCmd := range ws.TestCommands() {
		task.Step("🧪", scripts[i])
		testCmd.Stdout = os.Stdout
		testCmd.Stderr = os.Stderr
		if err := testCmd.Run(); err != nil {
			return &commands.CliError{
				Text: fmt.Sprintf("test command %q failed", scripts[i]),
				Suggestions: []string{
					"Check the test output above",
					`Did the package build? Run "mdpkg build" first`,
				},
			}
		}
	}

	logger.Info(fmt.Sprintf(" ✓ %d test commands passed in %s", len(scripts), time.Since(startTime)))
	return nil
}
