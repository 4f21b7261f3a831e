package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mdpkg/mdpkg/internals/commands"
	"github.com/mdpkg/mdpkg/internals/condafile"
	"github.com/mdpkg/mdpkg/internals/workspace"
)

func init() {
	runner := &importRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "import [meta.yaml]",
		Short: "Converts a conda meta.yaml recipe to a mdpkg.toml",
		Args:  cobra.ExactArgs(1),
	}, runner)

	cmd.Flags().BoolVarP(&runner.force, "force", "f", false, "Overwrite the mdpkg.toml if one exists")
	cmd.Flags().StringSliceVar(&runner.flags, "flag", nil, "Selector flags to enable (can be passed multiple times)")

	rootCmd.AddCommand(cmd.Command)
}

type importRunner struct {
	force bool
	flags []string
}

func (i *importRunner) RunE(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat("./" + workspace.RecipeName); err == nil && !i.force {
		return &commands.CliError{
			Text: "this directory already contains a mdpkg.toml",
			Suggestions: []string{
				"Use --force to overwrite it",
			},
		}
	}

	// flags can come from --flag or the MDPKG_SELECTOR_FLAGS env variable
	enabled := make(map[string]bool)
	for _, flag := range i.flags {
		enabled[flag] = true
	}
	for _, flag := range strings.Fields(viper.GetString("selector_flags")) {
		enabled[flag] = true
	}

	importer := &condafile.Importer{Flags: enabled}
	converted, err := importer.ImportFile(args[0])
	if err != nil {
		return err
	}

	if fatal := converted.Validate().Fatal(); fatal != nil {
		logger.Warn("The converted recipe has problems: " + fatal.Error())
		logger.Warn("Fix them before using it")
	}

	return writeRecipe(converted)
}
