package trajectory

import (
	"io"
)

// Selection restricts which frames of a trajectory are processed
type Selection struct {
	// Start is the first frame to include (0 based)
	Start int
	// End is the frame to stop at (exclusive). <= 0 means no limit
	End int
	// Stride keeps every n-th frame of the selected range. 0 or 1 keeps all
	Stride int
}

// All selects every frame
var All = Selection{}

// Keep reports whether the frame at the given index is part of the selection
func (s Selection) Keep(index int) bool {
	if index < s.Start {
		return false
	}
	if s.End > 0 && index >= s.End {
		return false
	}
	if s.Stride > 1 && (index-s.Start)%s.Stride != 0 {
		return false
	}
	return true
}

// done reports whether no later frame can match anymore
func (s Selection) done(index int) bool {
	return s.End > 0 && index >= s.End
}

// Convert streams frames from r to w, restricted to the given selection.
// It returns the number of frames written
func Convert(r Reader, w Writer, selection Selection) (int, error) {
	written := 0
	for index := 0; ; index++ {
		frame, err := r.ReadFrame()
		if err == io.EOF {
			return written, nil
		}
		if err != nil {
			return written, err
		}

		if selection.done(index) {
			return written, nil
		}
		if !selection.Keep(index) {
			continue
		}

		if err := w.WriteFrame(frame); err != nil {
			return written, err
		}
		written++
	}
}
