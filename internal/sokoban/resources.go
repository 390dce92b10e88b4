package sokoban

import (
	"slices"
	"time"
)

// KeyCode is a host-independent key identifier.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

func (k KeyCode) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	}
	return "unknown"
}

// InputQueue holds keys pressed since the last tick. It is consumed as a
// stack: the most recently pushed key is popped first.
type InputQueue struct {
	keys []KeyCode
}

// Push appends a key press.
func (q *InputQueue) Push(key KeyCode) {
	q.keys = append(q.keys, key)
}

// Pop removes and returns the most recently pushed key.
func (q *InputQueue) Pop() (KeyCode, bool) {
	if len(q.keys) == 0 {
		return KeyUnknown, false
	}
	key := q.keys[len(q.keys)-1]
	q.keys = q.keys[:len(q.keys)-1]
	return key, true
}

// Len returns the number of pending keys.
func (q *InputQueue) Len() int {
	return len(q.keys)
}

// Clear drops every pending key.
func (q *InputQueue) Clear() {
	q.keys = q.keys[:0]
}

// Keys returns a copy of the pending keys, oldest first.
func (q *InputQueue) Keys() []KeyCode {
	return slices.Clone(q.keys)
}

// PlayState is the win state of the level.
type PlayState uint8

const (
	Playing PlayState = iota
	Won
)

func (s PlayState) String() string {
	if s == Won {
		return "Won"
	}
	return "Playing"
}

// GamePlay is the play-state resource.
type GamePlay struct {
	State     PlayState
	MoveCount int
}

// Clock accumulates simulated time.
type Clock struct {
	Elapsed time.Duration
}

// Grid is the bounding box of the loaded level.
type Grid struct {
	Width  int
	Height int
}

// Contains reports whether (x, y) lies inside the grid.
func (g Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Index packs an in-bounds cell into a single int key.
func (g Grid) Index(x, y int) int {
	return y*g.Width + x
}

// Step returns the neighbour of (x, y) in direction d. ok is false when the
// neighbour lies outside the grid.
func (g Grid) Step(x, y int, d Direction) (nx, ny int, ok bool) {
	nx, ny = x+d.DX, y+d.DY
	return nx, ny, g.Contains(nx, ny)
}

// Direction is a unit step along one axis.
type Direction struct {
	DX, DY int
}

var (
	DirUp    = Direction{DX: 0, DY: -1}
	DirDown  = Direction{DX: 0, DY: 1}
	DirLeft  = Direction{DX: -1, DY: 0}
	DirRight = Direction{DX: 1, DY: 0}
)

// DirectionForKey maps a direction key to its unit vector.
func DirectionForKey(key KeyCode) (Direction, bool) {
	switch key {
	case KeyUp:
		return DirUp, true
	case KeyDown:
		return DirDown, true
	case KeyLeft:
		return DirLeft, true
	case KeyRight:
		return DirRight, true
	}
	return Direction{}, false
}
