package trajectory

import (
	"io"
)

// Summary describes a whole trajectory file
type Summary struct {
	// Format the file was read as
	Format Format
	// Frames is the number of frames in the file
	Frames int
	// Atoms is the atom count of the first frame
	Atoms int
	// FirstStep and LastStep are the timesteps of the first and last frame
	FirstStep int
	LastStep  int
	// BoxLengths are the box edge lengths of the first frame (zero if the
	// format has no box)
	BoxLengths [3]float64
	// ConstantAtoms is false when the atom count changes between frames
	ConstantAtoms bool
}

// Summarize reads a whole trajectory and reports on it
func Summarize(format Format, r io.Reader) (*Summary, error) {
	reader, err := NewReader(format, r)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Format: format, ConstantAtoms: true}
	for {
		frame, err := reader.ReadFrame()
		if err == io.EOF {
			return summary, nil
		}
		if err != nil {
			return nil, err
		}

		if summary.Frames == 0 {
			summary.Atoms = len(frame.Atoms)
			summary.FirstStep = frame.Step
			summary.BoxLengths = frame.BoxLengths()
		} else if len(frame.Atoms) != summary.Atoms {
			summary.ConstantAtoms = false
		}
		summary.LastStep = frame.Step
		summary.Frames++
	}
}
