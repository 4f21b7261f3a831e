package cmd

import (
	"fmt"

	"github.com/jwalton/gchalk"
	"github.com/spf13/cobra"

	"github.com/mdpkg/mdpkg/internals/commands"
	"github.com/mdpkg/mdpkg/internals/workspace"
	"github.com/mdpkg/mdpkg/pkg/recipe"
)

func init() {
	runner := &lintRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "lint",
		Short: "Checks the recipe in this directory for problems",
		Args:  cobra.NoArgs,
	}, runner)

	rootCmd.AddCommand(cmd.Command)
}

type lintRunner struct{}

func (l *lintRunner) RunE(cmd *cobra.Command, args []string) error {
	ws, err := workspace.NewFromWd()
	if err != nil {
		return err
	}

	problems := ws.Recipe.Validate()
	if len(problems) == 0 {
		logger.Info(" ✓ " + workspace.RecipeName + " looks good")
		return nil
	}

	for _, problem := range problems {
		level := gchalk.Yellow("warning")
		if problem.Level == recipe.ErrorLevelFatal {
			level = gchalk.Red("error")
		}
		fmt.Printf("%s %s: %s\n", level, gchalk.Bold(problem.Path), problem.Error())
	}

	if fatal := problems.Fatal(); fatal != nil {
		return &commands.CliError{
			Text: "the recipe has fatal problems",
			Suggestions: []string{
				"Fix the errors listed above",
				`Check the recipe format documentation with "mdpkg help"`,
			},
		}
	}
	return nil
}
