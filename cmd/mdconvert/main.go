// mdconvert converts between trajectory file formats.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdpkg/mdpkg/internals/commands"
	"github.com/mdpkg/mdpkg/pkg/trajectory"
)

var (
	flagFrom   string
	flagTo     string
	flagStart  int
	flagEnd    int
	flagStride int
)

func main() {
	runner := commands.RunnerFunc(run)
	cmd := commands.New(&cobra.Command{
		Version: "0.3.0",
		Use:     "mdconvert <input> <output>",
		Short:   "Convert a trajectory from one format to another",
		Long: `Convert a trajectory from one format to another.
Formats are detected from the file extensions (.lammpstrj, .dump, .xyz)
and can be forced with --from and --to.`,
		Example: `
  mdconvert water.lammpstrj water.xyz
  mdconvert --stride 10 long-run.lammpstrj sampled.xyz`,
		Args: cobra.ExactArgs(2),
	}, runner)

	cmd.Flags().StringVar(&flagFrom, "from", "", "Input format (default: detect from extension)")
	cmd.Flags().StringVar(&flagTo, "to", "", "Output format (default: detect from extension)")
	cmd.Flags().IntVar(&flagStart, "start", 0, "First frame to convert (0 based)")
	cmd.Flags().IntVar(&flagEnd, "end", 0, "Frame to stop at (exclusive, 0 means all)")
	cmd.Flags().IntVar(&flagStride, "stride", 1, "Keep every n-th frame")

	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// pickFormat uses the override if given, else detects from the path
func pickFormat(override string, path string) (trajectory.Format, error) {
	if override != "" {
		return trajectory.Format(override), nil
	}
	format, ok := trajectory.DetectFormat(path)
	if !ok {
		return "", &commands.CliError{
			Text: fmt.Sprintf("cannot detect the trajectory format of %q", path),
			Suggestions: []string{
				"Use --from / --to to set the format explicitly",
				"Supported formats: lammpstrj, xyz",
			},
		}
	}
	return format, nil
}

func run(cmd *cobra.Command, args []string) error {
	inPath, outPath := args[0], args[1]

	inFormat, err := pickFormat(flagFrom, inPath)
	if err != nil {
		return err
	}
	outFormat, err := pickFormat(flagTo, outPath)
	if err != nil {
		return err
	}

	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	reader, err := trajectory.NewReader(inFormat, in)
	if err != nil {
		return err
	}
	writer, err := trajectory.NewWriter(outFormat, out)
	if err != nil {
		return err
	}

	written, err := trajectory.Convert(reader, writer, trajectory.Selection{
		Start:  flagStart,
		End:    flagEnd,
		Stride: flagStride,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}
	if err := out.Sync(); err != nil {
		return err
	}

	fmt.Printf("wrote %d frames to %s\n", written, outPath)
	return nil
}
