package cmd

import (
	"fmt"

	"github.com/jwalton/gchalk"
	"github.com/spf13/cobra"

	"github.com/mdpkg/mdpkg/internals/commands"
	"github.com/mdpkg/mdpkg/internals/workspace"
)

func init() {
	runner := &infoRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "info",
		Short: "Shows what the recipe in this directory declares",
		Args:  cobra.NoArgs,
	}, runner)

	rootCmd.AddCommand(cmd.Command)
}

type infoRunner struct{}

func (i *infoRunner) RunE(cmd *cobra.Command, args []string) error {
	ws, err := workspace.NewFromWd()
	if err != nil {
		return err
	}
	r := ws.Recipe

	logger.Headline(r.Identifier())
	if r.About.Summary != "" {
		logger.Info(r.About.Summary)
	}
	fmt.Println()

	printRequirements := func(label string, specs []string) {
		if len(specs) == 0 {
			return
		}
		fmt.Println(gchalk.Bold(label))
		for _, spec := range specs {
			fmt.Println("  " + spec)
		}
	}
	printRequirements("build requirements", r.Requirements.Build)
	printRequirements("run requirements", r.Requirements.Run)
	printRequirements("test requirements", r.Test.Requires)
	printRequirements("optional test requirements", r.Test.OptionalRequires)

	if len(r.Build.EntryPoints) != 0 {
		fmt.Println(gchalk.Bold("entry points"))
		for _, name := range r.EntryPointNames() {
			fmt.Printf("  %s → %s\n", name, r.Build.EntryPoints[name])
		}
	}

	if ws.HasLockfile() {
		fmt.Println(gchalk.Bold("locked"))
		for _, dep := range ws.Lockfile.Dependencies {
			fmt.Printf("  %s@%s (%s)\n", dep.Name, dep.Version, dep.Phase)
		}
	} else {
		logger.Log(`no lockfile, run "mdpkg lock" to resolve the requirements`)
	}

	if r.About.Home != "" || r.About.License != "" {
		fmt.Println(gchalk.Bold("about"))
		if r.About.Home != "" {
			fmt.Println("  home: " + r.About.Home)
		}
		if r.About.License != "" {
			fmt.Println("  license: " + r.About.License)
		}
	}

	// warn about lurking problems, linting has the details
	if fatal := ws.Recipe.Validate().Fatal(); fatal != nil {
		logger.Warn(`the recipe has problems, run "mdpkg lint"`)
	}

	return nil
}
