package sokoban

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/boxpush/ecs"
)

const classicLevel = `
    N N W W W W W W
    W W W . . . . W
    W . . . BB . . W
    W . . RB . . . W
    W . P . . . . W
    W . . . . RS . W
    W . . BS . . . W
    W . . . . . . W
    W W W W W W W W
    `

func newTestStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	return ecs.NewStorage(registry)
}

func count[T any](storage *ecs.Storage) int {
	return ecs.NewView[struct{ Tag *T }](storage).Count()
}

func TestParseToken(t *testing.T) {
	tests := []struct {
		text string
		want Token
	}{
		{".", TokenFloor},
		{"W", TokenWall},
		{"P", TokenPlayer},
		{"N", TokenVoid},
		{"RB", TokenRedBox},
		{"BB", TokenBlueBox},
		{"RS", TokenRedSpot},
		{"BS", TokenBlueSpot},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParseToken(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.text, got.String())
		})
	}

	for _, bad := range []string{"w", "p", "B", "S", "GB", "rb", "..", ""} {
		_, ok := ParseToken(bad)
		assert.False(t, ok, "token %q", bad)
	}
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel(classicLevel)
	require.NoError(t, err)

	assert.Equal(t, 8, level.Width)
	assert.Equal(t, 9, level.Height)
	assert.Equal(t, 2, level.Count(TokenVoid))
	assert.Equal(t, 30, level.Count(TokenWall))
	assert.Equal(t, 1, level.Count(TokenPlayer))
	assert.Equal(t, 1, level.Count(TokenRedBox))
	assert.Equal(t, 1, level.Count(TokenBlueBox))
	assert.Equal(t, 1, level.Count(TokenRedSpot))
	assert.Equal(t, 1, level.Count(TokenBlueSpot))
	assert.Len(t, level.Cells, 72)
}

func TestParseLevelRoundTripText(t *testing.T) {
	level, err := ParseLevel("W W W\nW P W\nW W W")
	require.NoError(t, err)
	assert.Equal(t, "W W W\nW P W\nW W W", level.String())
}

func TestParseLevelUnknownToken(t *testing.T) {
	_, err := ParseLevel("W W W\nW P X\nW W W")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownToken))

	var tokenErr *TokenError
	require.True(t, errors.As(err, &tokenErr))
	assert.Equal(t, 1, tokenErr.Row)
	assert.Equal(t, 2, tokenErr.Col)
	assert.Equal(t, "X", tokenErr.Text)
}

func TestParseLevelEmpty(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\n  \n"} {
		_, err := ParseLevel(text)
		assert.ErrorIs(t, err, ErrEmptyLevel)
	}
}

func TestLoadLevelIsAtomic(t *testing.T) {
	storage := newTestStorage()

	_, err := LoadLevel(storage, "W P RB RS W\nW W W W ?")
	require.ErrorIs(t, err, ErrUnknownToken)

	assert.Zero(t, storage.Len(), "no entity spawned before the bad token was found")
	var grid *Grid
	assert.False(t, storage.ReadSingleton(&grid))
}

func TestLoadLevelEntities(t *testing.T) {
	storage := newTestStorage()

	level, err := LoadLevel(storage, classicLevel)
	require.NoError(t, err)

	floors := ecs.NewView[struct {
		*Position
		*Renderable
	}](storage)
	layer0 := 0
	for item := range floors.Values() {
		if item.Position.Z == LayerFloor {
			layer0++
		}
	}
	assert.Equal(t, 70, layer0, "one floor per non-void cell")

	assert.Equal(t, 30, count[Wall](storage))
	assert.Equal(t, 1, count[Player](storage))
	assert.Equal(t, 2, count[Box](storage))
	assert.Equal(t, 2, count[BoxSpot](storage))
	assert.Equal(t, 30, count[Immovable](storage), "walls are the only immovables")
	assert.Equal(t, 3, count[Movable](storage), "player and boxes are movable")
	assert.Equal(t, 105, storage.Len())

	var grid *Grid
	require.True(t, storage.ReadSingleton(&grid))
	assert.Equal(t, level.Grid(), *grid)
}

func TestLoadLevelTagInvariants(t *testing.T) {
	storage := newTestStorage()
	_, err := LoadLevel(storage, classicLevel)
	require.NoError(t, err)

	type entity = struct {
		ecs.EntityId
		*Position
		Wall      *Wall      `ecs:"optional"`
		Player    *Player    `ecs:"optional"`
		Box       *Box       `ecs:"optional"`
		Spot      *BoxSpot   `ecs:"optional"`
		Movable   *Movable   `ecs:"optional"`
		Immovable *Immovable `ecs:"optional"`
	}

	cells := map[[2]int][2]int{}
	for e := range ecs.NewView[entity](storage).Values() {
		switch {
		case e.Wall != nil:
			assert.NotNil(t, e.Immovable)
			assert.Nil(t, e.Movable)
			assert.Equal(t, LayerPiece, e.Position.Z)
		case e.Player != nil, e.Box != nil:
			assert.NotNil(t, e.Movable)
			assert.Nil(t, e.Immovable)
			assert.Equal(t, LayerPiece, e.Position.Z)
		case e.Spot != nil:
			assert.Nil(t, e.Movable)
			assert.Nil(t, e.Immovable)
			assert.Equal(t, LayerSpot, e.Position.Z)
		default:
			assert.Nil(t, e.Movable)
			assert.Nil(t, e.Immovable)
			assert.Equal(t, LayerFloor, e.Position.Z)
		}

		key := [2]int{e.Position.X, e.Position.Y}
		c := cells[key]
		if e.Movable != nil {
			c[0]++
		}
		if e.Immovable != nil {
			c[1]++
		}
		cells[key] = c
	}

	for cell, c := range cells {
		assert.LessOrEqual(t, c[0], 1, "movables at %v", cell)
		assert.LessOrEqual(t, c[1], 1, "immovables at %v", cell)
	}
}
