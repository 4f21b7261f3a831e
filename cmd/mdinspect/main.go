// mdinspect prints a summary of trajectory files.
package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mdpkg/mdpkg/internals/commands"
	"github.com/mdpkg/mdpkg/pkg/trajectory"
)

var flagFormat string

func main() {
	runner := commands.RunnerFunc(run)
	cmd := commands.New(&cobra.Command{
		Version: "0.3.0",
		Use:     "mdinspect <file>...",
		Short:   "Show what a trajectory file contains",
		Example: `
  mdinspect water.lammpstrj
  mdinspect --format xyz ambiguous.traj`,
		Args: cobra.MinimumNArgs(1),
	}, runner)

	cmd.Flags().StringVar(&flagFormat, "format", "", "Trajectory format (default: detect from extension)")

	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		if err := inspect(path); err != nil {
			return err
		}
	}
	return nil
}

func inspect(path string) error {
	format := trajectory.Format(flagFormat)
	if flagFormat == "" {
		detected, ok := trajectory.DetectFormat(path)
		if !ok {
			return &commands.CliError{
				Text: fmt.Sprintf("cannot detect the trajectory format of %q", path),
				Suggestions: []string{
					"Use --format to set the format explicitly",
					"Supported formats: lammpstrj, xyz",
				},
			}
		}
		format = detected
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return err
	}

	summary, err := trajectory.Summarize(format, file)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Printf("%s (%s, %s)\n", path, summary.Format, humanize.Bytes(uint64(stat.Size())))
	fmt.Printf("  frames: %d\n", summary.Frames)
	if summary.ConstantAtoms {
		fmt.Printf("  atoms:  %d\n", summary.Atoms)
	} else {
		fmt.Printf("  atoms:  %d in the first frame (count varies!)\n", summary.Atoms)
	}
	if summary.Frames > 1 {
		fmt.Printf("  steps:  %d – %d\n", summary.FirstStep, summary.LastStep)
	}
	if lengths := summary.BoxLengths; lengths != [3]float64{} {
		fmt.Printf("  box:    %g × %g × %g\n", lengths[0], lengths[1], lengths[2])
	}
	return nil
}
