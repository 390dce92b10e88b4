package sokoban

import (
	"strings"

	"github.com/plus3/boxpush/ecs"
)

// Snapshot renders the current board in level token form, one row per line.
// A piece standing on a spot is suffixed with "*", so a solved red spot
// reads "RB*". Cells are left-aligned to a common width.
func (w *World) Snapshot() string {
	grid := w.Grid()
	cells := make([]string, grid.Width*grid.Height)
	for i := range cells {
		cells[i] = TokenVoid.String()
	}
	for _, c := range w.level.Cells {
		if c.Token != TokenVoid {
			cells[grid.Index(c.X, c.Y)] = TokenFloor.String()
		}
	}

	type entity = struct {
		*Position
		Wall   *Wall    `ecs:"optional"`
		Player *Player  `ecs:"optional"`
		Box    *Box     `ecs:"optional"`
		Spot   *BoxSpot `ecs:"optional"`
	}

	pieces := make(map[int]string)
	for e := range ecs.NewView[entity](w.storage).Values() {
		if !grid.Contains(e.Position.X, e.Position.Y) {
			continue
		}
		i := grid.Index(e.Position.X, e.Position.Y)
		switch {
		case e.Wall != nil:
			pieces[i] = TokenWall.String()
		case e.Player != nil:
			pieces[i] = TokenPlayer.String()
		case e.Box != nil:
			pieces[i] = boxToken(e.Box.Color).String()
		case e.Spot != nil:
			cells[i] = spotToken(e.Spot.Color).String()
		}
	}

	width := 1
	for i, piece := range pieces {
		if cells[i] == TokenRedSpot.String() || cells[i] == TokenBlueSpot.String() {
			piece += "*"
		}
		cells[i] = piece
	}
	for _, c := range cells {
		width = max(width, len(c))
	}

	var b strings.Builder
	for y := range grid.Height {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := cells[y*grid.Width : (y+1)*grid.Width]
		for x, c := range row {
			if x > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(c)
			if x < len(row)-1 {
				b.WriteString(strings.Repeat(" ", width-len(c)))
			}
		}
	}
	return b.String()
}

func boxToken(c BoxColor) Token {
	if c == Blue {
		return TokenBlueBox
	}
	return TokenRedBox
}

func spotToken(c BoxColor) Token {
	if c == Blue {
		return TokenBlueSpot
	}
	return TokenRedSpot
}
