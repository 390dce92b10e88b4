package sokoban

import "github.com/plus3/boxpush/ecs"

// Position is a grid cell plus a draw layer. Z is only used for ordering
// sprites; the simulation ignores it.
type Position struct {
	X, Y int
	Z    int
}

// Draw layers, back to front.
const (
	LayerFloor = 0
	LayerSpot  = 1
	LayerPiece = 2
)

// Wall marks a wall cell. Walls are always Immovable.
type Wall struct{}

// Player marks the entity driven by input. Players are always Movable.
type Player struct{}

// Movable marks entities that can be pushed along a chain.
type Movable struct{}

// Immovable marks entities that block a push chain.
type Immovable struct{}

// BoxColor is the closed set of box and spot colors.
type BoxColor uint8

const (
	Red BoxColor = iota
	Blue
)

func (c BoxColor) String() string {
	switch c {
	case Red:
		return "red"
	case Blue:
		return "blue"
	}
	return "unknown"
}

// Box is a pushable piece of a given color.
type Box struct {
	Color BoxColor
}

// BoxSpot is a target cell; the level is won when every spot holds a box of its color.
type BoxSpot struct {
	Color BoxColor
}

// RegisterComponents registers every component type the simulation stores.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Renderable](registry)
	ecs.RegisterComponent[Wall](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Box](registry)
	ecs.RegisterComponent[BoxSpot](registry)
	ecs.RegisterComponent[Movable](registry)
	ecs.RegisterComponent[Immovable](registry)
}
