package sokoban

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/boxpush/ecs"
)

const frame = 16 * time.Millisecond

func newTestWorld(t *testing.T, text string, freezeOnWin bool) *World {
	t.Helper()
	opts := DefaultOptions()
	opts.FreezeOnWin = freezeOnWin
	opts.Logger = log.New(io.Discard)

	w, err := NewWorld(text, opts)
	require.NoError(t, err)
	return w
}

// positions returns the (x, y) of every entity carrying tag T, in view order.
func positions[T any](w *World) [][2]int {
	var out [][2]int
	for item := range ecs.NewView[struct {
		Pos *Position
		Tag *T
	}](w.Storage()).Values() {
		out = append(out, [2]int{item.Pos.X, item.Pos.Y})
	}
	return out
}

func press(w *World, keys ...KeyCode) {
	for _, k := range keys {
		w.PushKey(k)
	}
	w.Tick(frame)
}

func TestNewWorldRejectsBadLevel(t *testing.T) {
	_, err := NewWorld("W P ?", Options{Logger: log.New(io.Discard)})
	assert.ErrorIs(t, err, ErrUnknownToken)

	_, err = NewWorld("\n\n", Options{Logger: log.New(io.Discard)})
	assert.ErrorIs(t, err, ErrEmptyLevel)
}

func TestPushSingleBox(t *testing.T) {
	w := newTestWorld(t, "W P RB . W", true)

	press(w, KeyRight)

	assert.Equal(t, [][2]int{{2, 0}}, positions[Player](w))
	assert.Equal(t, [][2]int{{3, 0}}, positions[Box](w))
	assert.Equal(t, 1, w.MoveCount())
}

func TestPushChainCostsOneMove(t *testing.T) {
	w := newTestWorld(t, "W P RB BB RB . W", false)

	press(w, KeyRight)

	assert.Equal(t, [][2]int{{2, 0}}, positions[Player](w))
	assert.ElementsMatch(t, [][2]int{{3, 0}, {4, 0}, {5, 0}}, positions[Box](w))
	assert.Equal(t, 1, w.MoveCount())

	press(w, KeyRight)

	assert.Equal(t, [][2]int{{2, 0}}, positions[Player](w), "chain now ends at a wall")
	assert.ElementsMatch(t, [][2]int{{3, 0}, {4, 0}, {5, 0}}, positions[Box](w))
	assert.Equal(t, 1, w.MoveCount())
}

func TestWallBlocksPlayer(t *testing.T) {
	w := newTestWorld(t, "W P . W", true)

	press(w, KeyLeft)

	assert.Equal(t, [][2]int{{1, 0}}, positions[Player](w))
	assert.Zero(t, w.MoveCount())
	assert.Empty(t, w.PendingKeys(), "a blocked key is still consumed")
}

func TestGridEdgeBlocks(t *testing.T) {
	w := newTestWorld(t, "P RB .", false)

	press(w, KeyLeft)
	assert.Equal(t, [][2]int{{0, 0}}, positions[Player](w))
	assert.Zero(t, w.MoveCount())

	press(w, KeyUp)
	assert.Equal(t, [][2]int{{0, 0}}, positions[Player](w))

	press(w, KeyRight)
	assert.Equal(t, [][2]int{{1, 0}}, positions[Player](w))
	assert.Equal(t, [][2]int{{2, 0}}, positions[Box](w))

	press(w, KeyRight)
	assert.Equal(t, [][2]int{{1, 0}}, positions[Player](w), "box would leave the grid")
	assert.Equal(t, [][2]int{{2, 0}}, positions[Box](w))
	assert.Equal(t, 1, w.MoveCount())
}

func TestVerticalPush(t *testing.T) {
	w := newTestWorld(t, "W\nP\nBB\n.\nW", false)

	press(w, KeyDown)

	assert.Equal(t, [][2]int{{0, 2}}, positions[Player](w))
	assert.Equal(t, [][2]int{{0, 3}}, positions[Box](w))

	press(w, KeyUp)
	assert.Equal(t, [][2]int{{0, 1}}, positions[Player](w), "players only push, never pull")
	assert.Equal(t, [][2]int{{0, 3}}, positions[Box](w))
	assert.Equal(t, 2, w.MoveCount())
}

func TestInputIsPoppedMostRecentFirst(t *testing.T) {
	w := newTestWorld(t, "W . P . W", false)

	w.PushKey(KeyLeft)
	w.PushKey(KeyRight)
	w.Tick(frame)

	assert.Equal(t, [][2]int{{3, 0}}, positions[Player](w))
	assert.Equal(t, []KeyCode{KeyLeft}, w.PendingKeys())

	w.Tick(frame)
	assert.Equal(t, [][2]int{{2, 0}}, positions[Player](w))
	assert.Empty(t, w.PendingKeys())
	assert.Equal(t, 2, w.MoveCount())
}

func TestNonDirectionKeyIsConsumed(t *testing.T) {
	w := newTestWorld(t, "W . P . W", true)

	w.PushKey(KeyRight)
	w.PushKey(KeyUnknown)
	w.Tick(frame)

	assert.Equal(t, [][2]int{{2, 0}}, positions[Player](w))
	assert.Equal(t, []KeyCode{KeyRight}, w.PendingKeys())
	assert.Zero(t, w.MoveCount())
}

func TestNoPlayerLeavesInputQueued(t *testing.T) {
	w := newTestWorld(t, "W . RB . W", true)

	press(w, KeyRight)

	assert.Equal(t, [][2]int{{2, 0}}, positions[Box](w))
	assert.Equal(t, []KeyCode{KeyRight}, w.PendingKeys())
	assert.Zero(t, w.MoveCount())
}

func TestEachPlayerConsumesOneKey(t *testing.T) {
	w := newTestWorld(t, "W P . W\nW P . W", true)

	press(w, KeyRight, KeyRight, KeyRight)

	assert.ElementsMatch(t, [][2]int{{2, 0}, {2, 1}}, positions[Player](w))
	assert.Equal(t, 2, w.MoveCount())
	assert.Equal(t, []KeyCode{KeyRight}, w.PendingKeys())
}

func TestPlayerPushesPlayer(t *testing.T) {
	w := newTestWorld(t, "W P P . W", true)

	press(w, KeyRight)

	assert.ElementsMatch(t, [][2]int{{2, 0}, {3, 0}}, positions[Player](w))
	assert.Equal(t, 1, w.MoveCount())
}

func TestWinScenario(t *testing.T) {
	w := newTestWorld(t, "W P . RB RS W", true)

	press(w, KeyRight)
	assert.Equal(t, [][2]int{{2, 0}}, positions[Player](w))
	assert.Equal(t, [][2]int{{3, 0}}, positions[Box](w))
	assert.Equal(t, Playing, w.State())
	assert.Equal(t, 1, w.MoveCount())

	press(w, KeyRight)
	assert.Equal(t, [][2]int{{3, 0}}, positions[Player](w))
	assert.Equal(t, [][2]int{{4, 0}}, positions[Box](w))
	assert.Equal(t, Won, w.State())
	assert.Equal(t, 2, w.MoveCount())

	press(w, KeyRight)
	assert.Equal(t, [][2]int{{3, 0}}, positions[Player](w))
	assert.Equal(t, Won, w.State())
	assert.Equal(t, 2, w.MoveCount())
	assert.Empty(t, w.PendingKeys(), "input is dropped once won")
}

func TestWinScenarioWithoutFreeze(t *testing.T) {
	w := newTestWorld(t, "W P . RB RS W", false)

	press(w, KeyRight)
	press(w, KeyRight)
	require.Equal(t, Won, w.State())

	press(w, KeyRight)
	assert.Equal(t, [][2]int{{3, 0}}, positions[Player](w), "box against the wall blocks the push")
	assert.Equal(t, [][2]int{{4, 0}}, positions[Box](w))
	assert.Equal(t, Won, w.State())
	assert.Equal(t, 2, w.MoveCount())

	press(w, KeyLeft)
	assert.Equal(t, [][2]int{{2, 0}}, positions[Player](w))
	assert.Equal(t, Won, w.State(), "walking away leaves the box in place")
	assert.Equal(t, 3, w.MoveCount())
}

func TestWinFlipsBackWhenBoxLeavesSpot(t *testing.T) {
	w := newTestWorld(t, "W P RB RS . W", false)

	press(w, KeyRight)
	require.Equal(t, Won, w.State())

	press(w, KeyRight)
	assert.Equal(t, [][2]int{{4, 0}}, positions[Box](w))
	assert.Equal(t, Playing, w.State())
	assert.Equal(t, 2, w.MoveCount())
}

func TestColorMismatchIsNotWon(t *testing.T) {
	w := newTestWorld(t, "W P BB RS . W", true)

	press(w, KeyRight)

	assert.Equal(t, [][2]int{{3, 0}}, positions[Box](w))
	assert.Equal(t, Playing, w.State())
}

func TestEvaluationIsIdempotent(t *testing.T) {
	w := newTestWorld(t, "W P RB RS W", false)
	press(w, KeyRight)
	require.Equal(t, Won, w.State())

	for range 3 {
		w.Tick(frame)
		assert.Equal(t, Won, w.State())
		assert.Equal(t, 1, w.MoveCount())
		assert.Equal(t, [][2]int{{3, 0}}, positions[Box](w))
	}
}

func TestLevelWithoutSpotsIsWon(t *testing.T) {
	w := newTestWorld(t, "W P . W", true)

	w.Tick(frame)
	assert.Equal(t, Won, w.State())
}

func TestLevelWithoutSpotsFreezesAfterFirstTick(t *testing.T) {
	w := newTestWorld(t, "W P . . W", true)

	press(w, KeyRight)
	assert.Equal(t, [][2]int{{2, 0}}, positions[Player](w), "the first tick moves before evaluating")
	assert.Equal(t, Won, w.State())

	press(w, KeyRight)
	assert.Equal(t, [][2]int{{2, 0}}, positions[Player](w))
	assert.Equal(t, 1, w.MoveCount())
	assert.Empty(t, w.PendingKeys())
}

func TestSpritesSkipEmptyRenderable(t *testing.T) {
	w := newTestWorld(t, "P", true)
	w.Storage().Spawn(Position{X: 0, Y: 0, Z: LayerPiece}, Renderable{})

	sprites := w.Sprites()
	require.Len(t, sprites, 2)
	for _, s := range sprites {
		assert.NotEmpty(t, s.Path)
	}
}

func TestClockAdvances(t *testing.T) {
	w := newTestWorld(t, "W P . W", true)

	w.Tick(100 * time.Millisecond)
	w.Tick(150 * time.Millisecond)

	assert.Equal(t, 250*time.Millisecond, w.Elapsed())
}

func TestSpritesOrderedByLayer(t *testing.T) {
	w := newTestWorld(t, "P RS", true)

	sprites := w.Sprites()
	require.Len(t, sprites, 4)

	paths := make([]string, len(sprites))
	for i, s := range sprites {
		paths[i] = s.Path
	}
	assert.Equal(t, []string{
		"images/floor.png",
		"images/floor.png",
		"images/box_spot_red.png",
		"images/player_1.png",
	}, paths)

	assert.Equal(t, 0, sprites[0].X)
	assert.Equal(t, 1, sprites[1].X)
	assert.Equal(t, Static, sprites[2].Kind)
	assert.Equal(t, Animated, sprites[3].Kind)
}

func TestSpritesFollowClock(t *testing.T) {
	w := newTestWorld(t, "P", true)

	playerPath := func() string {
		for _, s := range w.Sprites() {
			if s.Z == LayerPiece {
				return s.Path
			}
		}
		return ""
	}

	assert.Equal(t, "images/player_1.png", playerPath())

	w.Tick(250 * time.Millisecond)
	assert.Equal(t, "images/player_2.png", playerPath())

	w.Tick(250 * time.Millisecond)
	assert.Equal(t, "images/player_3.png", playerPath())

	w.Tick(250 * time.Millisecond)
	assert.Equal(t, "images/player_1.png", playerPath(), "phase 3 wraps over three frames")

	w.Tick(250 * time.Millisecond)
	assert.Equal(t, "images/player_1.png", playerPath(), "cycle restarts")
}

func TestWorldGridAndLevel(t *testing.T) {
	w := newTestWorld(t, classicLevel, true)

	assert.Equal(t, Grid{Width: 8, Height: 9}, w.Grid())
	assert.Equal(t, 8, w.Level().Width)
	assert.Equal(t, 105, w.Storage().Len())
}

func TestSnapshot(t *testing.T) {
	w := newTestWorld(t, "W P . RB RS W", true)
	assert.Equal(t, "W  P  .  RB RS W", w.Snapshot())

	press(w, KeyRight)
	press(w, KeyRight)
	assert.Equal(t, "W   .   .   P   RB* W", w.Snapshot())
}

func TestSnapshotVoidAndRows(t *testing.T) {
	w := newTestWorld(t, "N W W\nW P W", true)
	assert.Equal(t, "N W W\nW P W", w.Snapshot())
}
