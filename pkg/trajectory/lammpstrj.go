package trajectory

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DumpReader reads LAMMPS text dump files. A dump is a sequence of blocks,
// each starting with "ITEM: TIMESTEP" and carrying the atom count, the box
// bounds and one line per atom
type DumpReader struct {
	scanner *bufio.Scanner
	line    int

	// column indices of id, type and the coordinates, taken from the
	// "ITEM: ATOMS ..." header of the first frame
	cols struct {
		id, typ    int
		x, y, z    int
		discovered bool
		total      int
	}
}

// NewDumpReader returns a reader for LAMMPS dump data
func NewDumpReader(r io.Reader) *DumpReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &DumpReader{scanner: scanner}
}

func (d *DumpReader) readLine() (string, error) {
	if !d.scanner.Scan() {
		if err := d.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	d.line++
	return d.scanner.Text(), nil
}

func (d *DumpReader) formatErr(reason string) error {
	return &ErrFormat{Line: d.line, Reason: reason}
}

// ReadFrame reads the next frame. It returns io.EOF after the last one
func (d *DumpReader) ReadFrame() (*Frame, error) {
	header, err := d.readLine()
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(header, "ITEM: TIMESTEP") {
		return nil, d.formatErr("expected ITEM: TIMESTEP")
	}

	frame := &Frame{}

	stepLine, err := d.readLine()
	if err != nil {
		return nil, d.formatErr("dump ends in the middle of a frame")
	}
	frame.Step, err = strconv.Atoi(strings.TrimSpace(stepLine))
	if err != nil {
		return nil, d.formatErr("timestep is not a number")
	}

	header, err = d.readLine()
	if err != nil || !strings.HasPrefix(header, "ITEM: NUMBER OF ATOMS") {
		return nil, d.formatErr("expected ITEM: NUMBER OF ATOMS")
	}
	countLine, err := d.readLine()
	if err != nil {
		return nil, d.formatErr("dump ends in the middle of a frame")
	}
	count, err := strconv.Atoi(strings.TrimSpace(countLine))
	if err != nil || count < 0 {
		return nil, d.formatErr("atom count is not a number")
	}

	header, err = d.readLine()
	if err != nil || !strings.HasPrefix(header, "ITEM: BOX BOUNDS") {
		return nil, d.formatErr("expected ITEM: BOX BOUNDS")
	}
	for k := 0; k < 3; k++ {
		boundsLine, err := d.readLine()
		if err != nil {
			return nil, d.formatErr("dump ends in the middle of the box bounds")
		}
		fields := strings.Fields(boundsLine)
		if len(fields) < 2 {
			return nil, d.formatErr("box bounds need a lower and upper value")
		}
		lo, errLo := strconv.ParseFloat(fields[0], 64)
		hi, errHi := strconv.ParseFloat(fields[1], 64)
		if errLo != nil || errHi != nil {
			return nil, d.formatErr("box bounds are not numbers")
		}
		frame.Box[k] = [2]float64{lo, hi}
	}

	header, err = d.readLine()
	if err != nil || !strings.HasPrefix(header, "ITEM: ATOMS") {
		return nil, d.formatErr("expected ITEM: ATOMS")
	}
	if !d.cols.discovered {
		if err := d.discoverColumns(header); err != nil {
			return nil, err
		}
	}

	frame.Atoms = make([]Atom, 0, count)
	for i := 0; i < count; i++ {
		atomLine, err := d.readLine()
		if err != nil {
			return nil, d.formatErr("dump ends in the middle of the atom list")
		}
		atom, err := d.parseAtom(atomLine)
		if err != nil {
			return nil, err
		}
		frame.Atoms = append(frame.Atoms, atom)
	}

	return frame, nil
}

// discoverColumns finds the id, type, x, y and z columns in the
// "ITEM: ATOMS id type x y z ..." header. Unwrapped (x y z) and unwrapped
// absolute (xu yu zu) coordinates are both accepted
func (d *DumpReader) discoverColumns(header string) error {
	fields := strings.Fields(header)
	if len(fields) <= 2 {
		return d.formatErr("ITEM: ATOMS header carries no columns")
	}
	fields = fields[2:]
	d.cols.total = len(fields)
	d.cols.id, d.cols.typ, d.cols.x, d.cols.y, d.cols.z = -1, -1, -1, -1, -1

	for k, v := range fields {
		switch v {
		case "id":
			d.cols.id = k
		case "type", "element":
			d.cols.typ = k
		case "x", "xu":
			d.cols.x = k
		case "y", "yu":
			d.cols.y = k
		case "z", "zu":
			d.cols.z = k
		}
	}

	if d.cols.x == -1 || d.cols.y == -1 || d.cols.z == -1 {
		return d.formatErr("cannot find the x, y and z columns")
	}
	d.cols.discovered = true
	return nil
}

func (d *DumpReader) parseAtom(line string) (Atom, error) {
	fields := strings.Fields(line)
	if len(fields) != d.cols.total {
		return Atom{}, d.formatErr(fmt.Sprintf(
			"expected %d columns, got %d", d.cols.total, len(fields),
		))
	}

	atom := Atom{}
	if d.cols.id != -1 {
		id, err := strconv.Atoi(fields[d.cols.id])
		if err != nil {
			return Atom{}, d.formatErr("atom id is not a number")
		}
		atom.ID = id
	}
	if d.cols.typ != -1 {
		atom.Type = fields[d.cols.typ]
	}

	coords := [3]*float64{&atom.X, &atom.Y, &atom.Z}
	for k, col := range []int{d.cols.x, d.cols.y, d.cols.z} {
		value, err := strconv.ParseFloat(fields[col], 64)
		if err != nil {
			return Atom{}, d.formatErr("coordinate is not a number")
		}
		*coords[k] = value
	}

	return atom, nil
}

// DumpWriter writes frames in the LAMMPS text dump format
type DumpWriter struct {
	w io.Writer
}

// NewDumpWriter returns a writer producing LAMMPS dump data
func NewDumpWriter(w io.Writer) *DumpWriter {
	return &DumpWriter{w: w}
}

// WriteFrame writes a single frame
func (d *DumpWriter) WriteFrame(f *Frame) error {
	var b strings.Builder
	fmt.Fprintf(&b, "ITEM: TIMESTEP\n%d\n", f.Step)
	fmt.Fprintf(&b, "ITEM: NUMBER OF ATOMS\n%d\n", len(f.Atoms))
	b.WriteString("ITEM: BOX BOUNDS pp pp pp\n")
	for k := 0; k < 3; k++ {
		fmt.Fprintf(&b, "%g %g\n", f.Box[k][0], f.Box[k][1])
	}
	b.WriteString("ITEM: ATOMS id type x y z\n")
	for i, atom := range f.Atoms {
		id := atom.ID
		if id == 0 {
			id = i + 1
		}
		typ := atom.Type
		if typ == "" {
			typ = "1"
		}
		fmt.Fprintf(&b, "%d %s %g %g %g\n", id, typ, atom.X, atom.Y, atom.Z)
	}

	_, err := io.WriteString(d.w, b.String())
	return err
}
