package setmath

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidWindow is returned by Window.Validate for malformed or inverted bounds.
var ErrInvalidWindow = errors.New("invalid window")

// Window is an inclusive date range. An empty bound is unbounded on that side.
type Window struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// Unbounded reports whether neither bound is set.
func (w Window) Unbounded() bool {
	return w.Start == "" && w.End == ""
}

// Contains reports whether date lies inside the window. ISO dates are fixed
// width, so string comparison orders them correctly.
func (w Window) Contains(date string) bool {
	if w.Start != "" && date < w.Start {
		return false
	}
	if w.End != "" && date > w.End {
		return false
	}
	return true
}

func (w Window) String() string {
	start, end := w.Start, w.End
	if start == "" {
		start = "…"
	}
	if end == "" {
		end = "…"
	}
	return start + ".." + end
}

// Validate checks that present bounds are ISO dates and that start <= end.
// Filtering itself never needs this; it exists for callers that want to
// reject nonsensical requests up front.
func (w Window) Validate() error {
	for _, b := range []string{w.Start, w.End} {
		if b == "" {
			continue
		}
		if _, err := time.Parse(DateLayout, b); err != nil {
			return fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidWindow, b)
		}
	}
	if w.Start != "" && w.End != "" && w.Start > w.End {
		return fmt.Errorf("%w: start %s is after end %s", ErrInvalidWindow, w.Start, w.End)
	}
	return nil
}

// FilterByRange returns the dates of s inside w. With no bounds the input set
// itself is returned; otherwise a new set is built.
func FilterByRange(s DateSet, w Window) DateSet {
	if w.Unbounded() {
		return s
	}
	out := make(DateSet)
	for d := range s {
		if w.Contains(d) {
			out[d] = struct{}{}
		}
	}
	return out
}
