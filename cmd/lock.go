package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mdpkg/mdpkg/internals/commands"
	"github.com/mdpkg/mdpkg/internals/index"
	"github.com/mdpkg/mdpkg/internals/workspace"
	"github.com/mdpkg/mdpkg/pkg/recipe"
)

func init() {
	runner := &lockRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "lock",
		Short: "Resolves all requirements and writes the lockfile",
		Args:  cobra.NoArgs,
	}, runner)

	cmd.Flags().BoolVar(&runner.withOptional, "with-optional", false, "Also resolve optional test requirements")

	rootCmd.AddCommand(cmd.Command)
}

type lockRunner struct {
	withOptional bool
}

func (l *lockRunner) RunE(cmd *cobra.Command, args []string) error {
	ws, err := workspace.NewFromWd()
	if err != nil {
		return err
	}
	if fatal := ws.Recipe.Validate().Fatal(); fatal != nil {
		return fatal
	}

	channel, err := configuredChannel()
	if err != nil {
		return err
	}

	resolver := &index.Resolver{Channel: channel, IncludeOptional: l.withOptional}
	lockfile, err := resolver.Resolve(
		cmd.Context(),
		ws.Recipe,
		recipe.PhaseBuild, recipe.PhaseRun, recipe.PhaseTest,
	)
	if err != nil {
		return resolveError(err)
	}

	ws.Lockfile = lockfile
	if err := ws.SaveLockfile(); err != nil {
		return err
	}

	logger.Info(fmt.Sprintf(" ✓ Locked %d requirements in %s", len(lockfile.Dependencies), workspace.LockfileName))
	return nil
}

// resolveError dresses resolver failures with suggestions
func resolveError(err error) error {
	switch typed := err.(type) {
	case *index.ErrPackageNotFound:
		return &commands.CliError{
			Text: typed.Error(),
			Suggestions: []string{
				"Check the spelling of the requirement",
				"Maybe the package lives in a different channel? (--channel)",
			},
		}
	case *index.ErrNoMatch:
		return &commands.CliError{
			Text: typed.Error(),
			Suggestions: []string{
				"Loosen the version constraint",
				fmt.Sprintf(`Check the available versions of %q in the channel`, typed.Spec.Name),
			},
		}
	}
	return err
}
