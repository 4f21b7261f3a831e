package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mdpkg/mdpkg/internals/commands"
	"github.com/mdpkg/mdpkg/internals/workspace"
)

func init() {
	runner := &buildRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "build",
		Short: "Runs the build script, checks the entry points and packs the artifact",
		Args:  cobra.NoArgs,
	}, runner)

	cmd.Flags().BoolVar(&runner.noPack, "no-pack", false, "Skip packing the build output into an artifact")
	cmd.Flags().StringVar(&runner.dist, "dist", "dist", "Directory the packed artifact is written to")

	rootCmd.AddCommand(cmd.Command)
}

type buildRunner struct {
	noPack bool
	dist   string
}

func (b *buildRunner) RunE(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	ws, err := workspace.NewFromWd()
	if err != nil {
		return err
	}
	if fatal := ws.Recipe.Validate().Fatal(); fatal != nil {
		return fatal
	}

	task := logger.NewTask(3)

	task.Step("🏗", "Running the build script")
	if ws.Recipe.Build.Script != "" {
		logger.Log("» " + ws.Recipe.Build.Script)
	} else {
		logger.Log("Using default build step (" + workspace.DefaultBuildScript + ")")
	}

	build := ws.BuildScript()
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		return &commands.CliError{
			Text: "the build script failed",
			Suggestions: []string{
				"Check the build output above",
				"Make sure the script works outside of mdpkg too",
			},
		}
	}

	task.Step("🔎", "Checking entry points")
	resolved, err := ws.ResolveEntryPoints()
	if err != nil {
		return entryPointError(err)
	}
	for _, ep := range resolved {
		logger.Info(fmt.Sprintf(" ✓ %s → %s", ep.Name, ep.Path))
	}

	task.Step("📦", "Packing the artifact")
	if b.noPack {
		logger.Log("skipped (--no-pack)")
	} else {
		artifact, err := ws.Pack(b.dist)
		if err != nil {
			return err
		}
		logger.Info(fmt.Sprintf(
			" ✓ %s (%s, sha256 %s…)",
			artifact.Path,
			humanize.Bytes(uint64(artifact.Size)),
			artifact.Sha256[:12],
		))
	}

	logger.Info("Finished build in " + time.Since(startTime).String())
	return nil
}

func entryPointError(err error) error {
	unresolved, ok := err.(*workspace.ErrEntryPointUnresolved)
	if !ok {
		return err
	}
	return &commands.CliError{
		Text: unresolved.Error(),
		Suggestions: []string{
			fmt.Sprintf("Make sure the build script creates %q", unresolved.Target),
			"Fix the target in build.entryPoints in the mdpkg.toml",
		},
	}
}
