package trajectory

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// XYZReader reads multi-frame XYZ files: an atom count line, a comment line
// and one "element x y z" line per atom
type XYZReader struct {
	scanner *bufio.Scanner
	line    int
}

// NewXYZReader returns a reader for XYZ data
func NewXYZReader(r io.Reader) *XYZReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &XYZReader{scanner: scanner}
}

func (x *XYZReader) readLine() (string, error) {
	if !x.scanner.Scan() {
		if err := x.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	x.line++
	return x.scanner.Text(), nil
}

func (x *XYZReader) formatErr(reason string) error {
	return &ErrFormat{Line: x.line, Reason: reason}
}

// ReadFrame reads the next frame. It returns io.EOF after the last one
func (x *XYZReader) ReadFrame() (*Frame, error) {
	countLine, err := x.readLine()
	if err != nil {
		return nil, err
	}
	// tolerate blank lines between frames
	for strings.TrimSpace(countLine) == "" {
		countLine, err = x.readLine()
		if err != nil {
			return nil, err
		}
	}

	count, err := strconv.Atoi(strings.TrimSpace(countLine))
	if err != nil || count < 0 {
		return nil, x.formatErr("expected an atom count")
	}

	comment, err := x.readLine()
	if err != nil {
		return nil, x.formatErr("file ends before the comment line")
	}
	frame := &Frame{Step: stepFromComment(comment)}

	frame.Atoms = make([]Atom, 0, count)
	for i := 0; i < count; i++ {
		atomLine, err := x.readLine()
		if err != nil {
			return nil, x.formatErr("file ends in the middle of a frame")
		}
		fields := strings.Fields(atomLine)
		if len(fields) < 4 {
			return nil, x.formatErr("atom lines need an element and 3 coordinates")
		}

		atom := Atom{ID: i + 1, Type: fields[0]}
		coords := [3]*float64{&atom.X, &atom.Y, &atom.Z}
		for k := 0; k < 3; k++ {
			value, err := strconv.ParseFloat(fields[k+1], 64)
			if err != nil {
				return nil, x.formatErr("coordinate is not a number")
			}
			*coords[k] = value
		}
		frame.Atoms = append(frame.Atoms, atom)
	}

	return frame, nil
}

// stepFromComment recovers a "step=N" hint from the comment line. XYZ has no
// standard place for the timestep, this is what our own writer emits
func stepFromComment(comment string) int {
	for _, field := range strings.Fields(comment) {
		if !strings.HasPrefix(field, "step=") {
			continue
		}
		step, err := strconv.Atoi(strings.TrimPrefix(field, "step="))
		if err == nil {
			return step
		}
	}
	return 0
}

// XYZWriter writes frames in the multi-frame XYZ format
type XYZWriter struct {
	w io.Writer
}

// NewXYZWriter returns a writer producing XYZ data
func NewXYZWriter(w io.Writer) *XYZWriter {
	return &XYZWriter{w: w}
}

// WriteFrame writes a single frame. The box bounds are dropped, XYZ has no
// place for them
func (x *XYZWriter) WriteFrame(f *Frame) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%d\n", len(f.Atoms))
	fmt.Fprintf(&b, "step=%d\n", f.Step)
	for _, atom := range f.Atoms {
		typ := atom.Type
		if typ == "" {
			typ = "X"
		}
		fmt.Fprintf(&b, "%s %g %g %g\n", typ, atom.X, atom.Y, atom.Z)
	}

	_, err := io.WriteString(x.w, b.String())
	return err
}
