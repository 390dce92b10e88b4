package host

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/boxpush/internal/sokoban"
)

// WASD or arrow keys for movement.
var keyBindings = map[ebiten.Key]sokoban.KeyCode{
	ebiten.KeyArrowUp:    sokoban.KeyUp,
	ebiten.KeyW:          sokoban.KeyUp,
	ebiten.KeyArrowDown:  sokoban.KeyDown,
	ebiten.KeyS:          sokoban.KeyDown,
	ebiten.KeyArrowLeft:  sokoban.KeyLeft,
	ebiten.KeyA:          sokoban.KeyLeft,
	ebiten.KeyArrowRight: sokoban.KeyRight,
	ebiten.KeyD:          sokoban.KeyRight,
}

// KeyCodeFor maps an ebiten key to the simulation's key code.
func KeyCodeFor(key ebiten.Key) sokoban.KeyCode {
	if code, ok := keyBindings[key]; ok {
		return code
	}
	return sokoban.KeyUnknown
}

// translateKeys converts keys pressed this frame, dropping unbound ones.
func translateKeys(keys []ebiten.Key) []sokoban.KeyCode {
	var codes []sokoban.KeyCode
	for _, k := range keys {
		if code := KeyCodeFor(k); code != sokoban.KeyUnknown {
			codes = append(codes, code)
		}
	}
	return codes
}

func justPressedKeys() []sokoban.KeyCode {
	return translateKeys(inpututil.AppendJustPressedKeys(nil))
}
