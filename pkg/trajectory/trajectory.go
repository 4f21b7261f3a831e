/*
Package trajectory reads and writes molecular dynamics trajectory files.

Frames are streamed one at a time, so trajectories larger than memory can be
converted and inspected. Two text formats are supported: LAMMPS dump files
(.lammpstrj) and XYZ files (.xyz).
*/
package trajectory

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format is a supported trajectory file format
type Format string

const (
	// FormatLammps is the LAMMPS text dump format ("ITEM: TIMESTEP" blocks)
	FormatLammps Format = "lammpstrj"
	// FormatXYZ is the plain XYZ format (atom count, comment, one atom per line)
	FormatXYZ Format = "xyz"
)

// Atom is a single atom record of a frame
type Atom struct {
	// ID is the atom id within the frame. LAMMPS dumps carry one, for XYZ
	// files it is the 1-based position in the frame
	ID int
	// Type is the atom type or element symbol
	Type string
	// X, Y and Z are the coordinates
	X, Y, Z float64
}

// Frame is a single configuration of a trajectory: a point in time with the
// coordinates of every atom and the simulation box
type Frame struct {
	// Step is the simulation timestep of this frame
	Step int
	// Box holds the lower and upper box bound per dimension.
	// Zero for formats that don't store a box (XYZ)
	Box [3][2]float64
	// Atoms are the atom records of this frame
	Atoms []Atom
}

// BoxLengths returns the edge lengths of the simulation box
func (f *Frame) BoxLengths() [3]float64 {
	return [3]float64{
		f.Box[0][1] - f.Box[0][0],
		f.Box[1][1] - f.Box[1][0],
		f.Box[2][1] - f.Box[2][0],
	}
}

// HasBox reports whether this frame carries box bounds
func (f *Frame) HasBox() bool {
	return f.BoxLengths() != [3]float64{}
}

// Reader reads trajectory frames one at a time. ReadFrame returns io.EOF
// after the last frame
type Reader interface {
	ReadFrame() (*Frame, error)
}

// Writer writes trajectory frames one at a time
type Writer interface {
	WriteFrame(f *Frame) error
}

// ErrFormat is returned when a file doesn't parse as its format
type ErrFormat struct {
	Line   int
	Reason string
}

func (e *ErrFormat) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// DetectFormat guesses the format from a file name. The second return value
// is false if the extension is not a known trajectory format
func DetectFormat(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lammpstrj", ".dump":
		return FormatLammps, true
	case ".xyz":
		return FormatXYZ, true
	}
	return "", false
}

// NewReader returns a frame reader for the given format
func NewReader(format Format, r io.Reader) (Reader, error) {
	switch format {
	case FormatLammps:
		return NewDumpReader(r), nil
	case FormatXYZ:
		return NewXYZReader(r), nil
	}
	return nil, fmt.Errorf("unknown trajectory format %q", format)
}

// NewWriter returns a frame writer for the given format
func NewWriter(format Format, w io.Writer) (Writer, error) {
	switch format {
	case FormatLammps:
		return NewDumpWriter(w), nil
	case FormatXYZ:
		return NewXYZWriter(w), nil
	}
	return nil, fmt.Errorf("unknown trajectory format %q", format)
}
