package host

import (
	"image/color"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// spriteCache loads sprite images from disk on first use. A path that fails
// to load is remembered as missing and drawn as a colored tile instead.
type spriteCache struct {
	dir    string
	images map[string]*ebiten.Image
	logger *log.Logger
}

func newSpriteCache(dir string, logger *log.Logger) *spriteCache {
	return &spriteCache{
		dir:    dir,
		images: make(map[string]*ebiten.Image),
		logger: logger,
	}
}

func (c *spriteCache) Image(path string) *ebiten.Image {
	if img, ok := c.images[path]; ok {
		return img
	}

	img, _, err := ebitenutil.NewImageFromFile(filepath.Join(c.dir, path))
	if err != nil {
		c.logger.Warn("sprite unavailable, using placeholder", "path", path, "err", err)
		img = nil
	}
	c.images[path] = img
	return img
}

var (
	colorFloor    = color.RGBA{0x3a, 0x3a, 0x44, 0xff}
	colorWall     = color.RGBA{0x8a, 0x8a, 0x8a, 0xff}
	colorPlayer   = color.RGBA{0xf0, 0xd0, 0x40, 0xff}
	colorRedBox   = color.RGBA{0xd0, 0x40, 0x40, 0xff}
	colorBlueBox  = color.RGBA{0x40, 0x60, 0xd0, 0xff}
	colorRedSpot  = color.RGBA{0x70, 0x28, 0x28, 0xff}
	colorBlueSpot = color.RGBA{0x28, 0x34, 0x70, 0xff}
	colorUnknown  = color.RGBA{0xff, 0x00, 0xff, 0xff}
)

// placeholderColor picks a tile color from the asset file name.
func placeholderColor(path string) color.RGBA {
	name := filepath.Base(path)
	switch {
	case strings.HasPrefix(name, "box_spot_red"):
		return colorRedSpot
	case strings.HasPrefix(name, "box_spot_blue"):
		return colorBlueSpot
	case strings.HasPrefix(name, "box_red"):
		return colorRedBox
	case strings.HasPrefix(name, "box_blue"):
		return colorBlueBox
	case strings.HasPrefix(name, "player"):
		return colorPlayer
	case strings.HasPrefix(name, "wall"):
		return colorWall
	case strings.HasPrefix(name, "floor"):
		return colorFloor
	}
	return colorUnknown
}
