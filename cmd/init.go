package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stoewer/go-strcase"

	"github.com/mdpkg/mdpkg/internals/commands"
	"github.com/mdpkg/mdpkg/internals/workspace"
	"github.com/mdpkg/mdpkg/pkg/recipe"
)

var packageName = regexp.MustCompile(`^([a-z0-9]|[a-z0-9][a-z0-9-_]*[a-z0-9])$`)

func init() {
	runner := &initRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "init [name]",
		Short: "Creates a new recipe in the current directory",
		Args:  cobra.MaximumNArgs(1),
	}, runner)

	cmd.Flags().BoolVarP(&runner.force, "force", "f", false, "Overwrite the mdpkg.toml if one exists")
	cmd.Flags().BoolVarP(&runner.yes, "yes", "y", false, "Choose defaults for all questions. (same as --non-interactive)")

	rootCmd.AddCommand(cmd.Command)
}

type initRunner struct {
	force bool
	yes   bool
}

// defaultRecipe derives a starting recipe from the current directory
func defaultRecipe(name string) *recipe.Recipe {
	r := recipe.New()
	if name == "" {
		wd, err := os.Getwd()
		if err == nil {
			name = strcase.KebabCase(filepath.Base(wd))
		}
	}
	r.Package.Name = strings.ToLower(name)
	r.Package.Version = "0.1.0"
	r.Build.Script = workspace.DefaultBuildScript
	r.About.License = "MIT"
	return r
}

func (i *initRunner) RunE(cmd *cobra.Command, args []string) error {
	if _, err := os.ReadFile("./" + workspace.RecipeName); err == nil && !i.force {
		logger.Fail("This directory already contains a mdpkg.toml. Use --force to overwrite it")
	}

	name := ""
	if len(args) != 0 {
		name = args[0]
	}
	r := defaultRecipe(name)

	if i.yes || viper.GetBool("nonInteractive") {
		// write the toml with defaults
		return writeRecipe(r)
	}

	logger.Info("[package]")
	r.Package.Name = stringPrompt(&promptui.Prompt{
		Label:   "Name",
		Default: r.Package.Name,
		Validate: func(s string) error {
			switch {
			case strings.ToLower(s) != s:
				return errors.New("may only contain lowercase characters")
			case strings.HasPrefix(s, "-"):
				return errors.New("may not start with a -")
			case strings.HasSuffix(s, "-"):
				return errors.New("may not end with a -")
			case !packageName.MatchString(s):
				return errors.New("may only contain alphanumeric characters, dashes and underscores")
			}
			return nil
		},
		AllowEdit: true,
	})

	r.Package.Version = stringPrompt(&promptui.Prompt{
		Label:     "Version",
		Default:   r.Package.Version,
		Validate:  validateVersionString,
		AllowEdit: true,
	})

	r.Package.Description = stringPrompt(&promptui.Prompt{
		Label:     "Description",
		Default:   r.Package.Description,
		AllowEdit: true,
	})

	logger.Info("[build]")
	r.Build.Script = stringPrompt(&promptui.Prompt{
		Label:     "Build script",
		Default:   r.Build.Script,
		AllowEdit: true,
	})

	logger.Info("[about]")
	r.About.License = stringPrompt(&promptui.Prompt{
		Label:     "License",
		Default:   r.About.License,
		AllowEdit: true,
	})
	r.About.Summary = stringPrompt(&promptui.Prompt{
		Label:     "Summary",
		Default:   r.About.Summary,
		AllowEdit: true,
	})

	return writeRecipe(r)
}

func writeRecipe(r *recipe.Recipe) error {
	if err := r.Save("./" + workspace.RecipeName); err != nil {
		return err
	}
	logger.Info(" ✓ Created mdpkg.toml")
	return nil
}

func validateVersionString(s string) error {
	r := recipe.New()
	r.Package.Name = "x"
	r.Package.Version = s
	for _, problem := range r.Validate() {
		if problem.Path == "package.version" {
			return problem
		}
	}
	return nil
}

func stringPrompt(prompt *promptui.Prompt) string {
	res, err := prompt.Run()
	if err != nil {
		logger.Info("Aborting")
		os.Exit(1)
	}
	return res
}
