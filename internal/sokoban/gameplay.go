package sokoban

import (
	"github.com/charmbracelet/log"
	"github.com/kamstrup/intmap"

	"github.com/plus3/boxpush/ecs"
)

// GameplayStateSystem recomputes the play state from box and spot positions.
// The result depends only on current positions; MoveCount is left alone.
type GameplayStateSystem struct {
	Boxes ecs.Query[struct {
		*Position
		*Box
	}]
	Spots ecs.Query[struct {
		*Position
		*BoxSpot
	}]

	Play ecs.Singleton[GamePlay]
	Grid ecs.Singleton[Grid]

	Logger *log.Logger
}

func (s *GameplayStateSystem) Execute(frame *ecs.UpdateFrame) {
	play, grid := s.Play.Get(), s.Grid.Get()
	if play == nil || grid == nil {
		return
	}

	prev := play.State
	play.State = s.evaluate(*grid)

	if prev != play.State {
		logger := s.Logger
		if logger == nil {
			logger = log.Default()
		}
		logger.Info("play state changed", "from", prev, "to", play.State, "moves", play.MoveCount)
	}
}

func (s *GameplayStateSystem) evaluate(grid Grid) PlayState {
	boxes := intmap.New[int, *Box](max(s.Boxes.Len(), 8))
	for item := range s.Boxes.Values() {
		if grid.Contains(item.Position.X, item.Position.Y) {
			boxes.Put(grid.Index(item.Position.X, item.Position.Y), item.Box)
		}
	}

	for spot := range s.Spots.Values() {
		if !grid.Contains(spot.Position.X, spot.Position.Y) {
			return Playing
		}
		box, ok := boxes.Get(grid.Index(spot.Position.X, spot.Position.Y))
		if !ok || box.Color != spot.BoxSpot.Color {
			return Playing
		}
	}
	return Won
}

// ClockSystem advances the Clock resource by the frame delta.
type ClockSystem struct {
	Clock ecs.Singleton[Clock]
}

func (s *ClockSystem) Execute(frame *ecs.UpdateFrame) {
	if clock := s.Clock.Get(); clock != nil {
		clock.Elapsed += frame.Delta()
	}
}
