package sokoban_test

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/plus3/boxpush/internal/sokoban"
)

func ExampleWorld() {
	opts := sokoban.DefaultOptions()
	opts.Logger = log.New(io.Discard)

	world, err := sokoban.NewWorld("W P . RB RS W", opts)
	if err != nil {
		panic(err)
	}

	for range 3 {
		world.PushKey(sokoban.KeyRight)
		world.Tick(16 * time.Millisecond)
		fmt.Println(world.State(), world.MoveCount())
	}

	// Output:
	// Playing 1
	// Won 2
	// Won 2
}

func ExampleParseLevel() {
	_, err := sokoban.ParseLevel("W P\nW GB")
	fmt.Println(err)

	level, _ := sokoban.ParseLevel("W P RB RS W")
	fmt.Println(level.Width, level.Height, level.Count(sokoban.TokenWall))

	// Output:
	// unrecognized map token "GB" at row 1, column 1
	// 5 1 2
}
