package sokoban

import (
	"errors"
	"slices"
	"time"
)

// ErrNoAssets is returned when a Renderable is built without any asset path.
var ErrNoAssets = errors.New("renderable needs at least one asset path")

// RenderKind tells the host whether a Renderable changes over time.
type RenderKind uint8

const (
	Static RenderKind = iota
	Animated
)

func (k RenderKind) String() string {
	if k == Animated {
		return "animated"
	}
	return "static"
}

// Renderable is an ordered, non-empty list of asset paths. The zero value is
// not valid; use NewRenderable.
type Renderable struct {
	paths []string
}

// NewRenderable builds a Renderable from one or more asset paths.
func NewRenderable(paths ...string) (Renderable, error) {
	if len(paths) == 0 {
		return Renderable{}, ErrNoAssets
	}
	return Renderable{paths: slices.Clone(paths)}, nil
}

// MustRenderable is like NewRenderable but panics on error. Meant for
// package-level asset tables.
func MustRenderable(paths ...string) Renderable {
	r, err := NewRenderable(paths...)
	if err != nil {
		panic(err)
	}
	return r
}

// Kind is Static for a single path and Animated otherwise.
func (r Renderable) Kind() RenderKind {
	if len(r.paths) > 1 {
		return Animated
	}
	return Static
}

// Len returns the number of frames.
func (r Renderable) Len() int {
	return len(r.paths)
}

// Path returns the asset at index modulo the frame count. Negative indices
// wrap from the end. The zero Renderable has no path and returns "".
func (r Renderable) Path(index int) string {
	n := len(r.paths)
	if n == 0 {
		return ""
	}
	return r.paths[((index%n)+n)%n]
}

// PathAt returns the frame anim selects at the given elapsed time.
func (r Renderable) PathAt(elapsed time.Duration, anim Animation) string {
	return r.Path(anim.FrameIndex(elapsed, len(r.paths)))
}

// Animation is the frame selection policy for animated renderables: the
// frame advances every Step and the pattern restarts every Cycle.
type Animation struct {
	Step  time.Duration
	Cycle time.Duration
}

// DefaultAnimation advances every 250ms within a 1s cycle, giving 4 phases.
var DefaultAnimation = Animation{
	Step:  250 * time.Millisecond,
	Cycle: time.Second,
}

// Phases returns how many steps fit in one cycle.
func (a Animation) Phases() int {
	if a.Step <= 0 || a.Cycle < a.Step {
		return 1
	}
	return int(a.Cycle / a.Step)
}

// FrameIndex maps elapsed time to a frame in [0, frames). It is a pure function.
func (a Animation) FrameIndex(elapsed time.Duration, frames int) int {
	if frames <= 1 || a.Step <= 0 || a.Cycle <= 0 {
		return 0
	}
	if elapsed < 0 {
		elapsed = 0
	}
	phase := int((elapsed % a.Cycle) / a.Step)
	return phase % frames
}
