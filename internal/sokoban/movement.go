package sokoban

import (
	"github.com/charmbracelet/log"
	"github.com/kamstrup/intmap"

	"github.com/plus3/boxpush/ecs"
)

// MovementSystem pops input and pushes chains of movable entities.
//
// Each player consumes at most one key per tick, most recent first. The scan
// starts one cell beyond the player and walks in the key's direction:
// an immovable cell discards the whole chain, a movable cell joins the chain,
// and the first free cell ends the scan. A chain whose leading piece would
// leave the grid is discarded as well. A surviving chain shifts by one cell
// and costs exactly one move, however long it is.
type MovementSystem struct {
	Players ecs.Query[struct {
		ecs.EntityId
		*Position
		*Player
	}]
	Movables ecs.Query[struct {
		ecs.EntityId
		*Position
		*Movable
	}]
	Immovables ecs.Query[struct {
		ecs.EntityId
		*Position
		*Immovable
	}]

	Input ecs.Singleton[InputQueue]
	Play  ecs.Singleton[GamePlay]
	Grid  ecs.Singleton[Grid]

	// FreezeOnWin drops all input once the level is won.
	FreezeOnWin bool
	Logger      *log.Logger
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	input, play, grid := s.Input.Get(), s.Play.Get(), s.Grid.Get()
	if input == nil || play == nil || grid == nil {
		return
	}

	if s.FreezeOnWin && play.State == Won {
		input.Clear()
		return
	}

	for player := range s.Players.Values() {
		key, ok := input.Pop()
		if !ok {
			return
		}

		dir, ok := DirectionForKey(key)
		if !ok {
			continue
		}

		chain := s.pushChain(*grid, player.Position, dir)
		if chain == nil {
			s.logger().Debug("move blocked", "player", player.EntityId, "key", key,
				"x", player.Position.X, "y", player.Position.Y)
			continue
		}

		play.MoveCount++
		for _, pos := range chain {
			pos.X += dir.DX
			pos.Y += dir.DY
		}
		s.logger().Debug("moved", "player", player.EntityId, "key", key,
			"pushed", len(chain)-1, "moves", play.MoveCount)
	}
}

// pushChain returns the positions that shift when the piece at from steps in
// dir, starting with from itself, or nil when the push is blocked. The grid
// edge blocks the same way an immovable does, so no position ever leaves
// [0,width) x [0,height).
func (s *MovementSystem) pushChain(grid Grid, from *Position, dir Direction) []*Position {
	movables := intmap.New[int, *Position](max(s.Movables.Len(), 8))
	for item := range s.Movables.Values() {
		if grid.Contains(item.Position.X, item.Position.Y) {
			movables.Put(grid.Index(item.Position.X, item.Position.Y), item.Position)
		}
	}

	immovables := intmap.New[int, ecs.EntityId](max(s.Immovables.Len(), 8))
	for id, item := range s.Immovables.Iter() {
		if grid.Contains(item.Position.X, item.Position.Y) {
			immovables.Put(grid.Index(item.Position.X, item.Position.Y), id)
		}
	}

	chain := []*Position{from}
	x, y := from.X, from.Y
	for {
		nx, ny, ok := grid.Step(x, y, dir)
		if !ok {
			return nil
		}

		cell := grid.Index(nx, ny)
		if _, blocked := immovables.Get(cell); blocked {
			return nil
		}

		next, ok := movables.Get(cell)
		if !ok {
			return chain
		}
		chain = append(chain, next)
		x, y = nx, ny
	}
}

func (s *MovementSystem) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}
