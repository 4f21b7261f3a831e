package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mdpkg/mdpkg/internals/commands"
	"github.com/mdpkg/mdpkg/internals/workspace"
)

func init() {
	runner := &renderRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "render",
		Short: "Parses the recipe and prints its canonical form",
		Long: `Parses the recipe and prints its canonical form.
With --write the canonical form replaces the mdpkg.toml on disk.`,
		Args: cobra.NoArgs,
	}, runner)

	cmd.Flags().BoolVarP(&runner.write, "write", "w", false, "Rewrite the mdpkg.toml in canonical form")

	rootCmd.AddCommand(cmd.Command)
}

type renderRunner struct {
	write bool
}

func (r *renderRunner) RunE(cmd *cobra.Command, args []string) error {
	ws, err := workspace.NewFromWd()
	if err != nil {
		return err
	}

	if r.write {
		if err := ws.SaveRecipe(); err != nil {
			return err
		}
		logger.Info(" ✓ Rewrote " + workspace.RecipeName)
		return nil
	}

	fmt.Print(ws.Recipe.String())
	return nil
}
