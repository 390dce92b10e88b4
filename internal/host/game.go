// Package host runs a sokoban.World in an ebiten window.
package host

import (
	"errors"
	"fmt"
	_ "image/png"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/boxpush/ecs"
	"github.com/plus3/boxpush/ecs/debugui"
	debugui_ebiten "github.com/plus3/boxpush/ecs/debugui/ebiten"
	"github.com/plus3/boxpush/internal/config"
	"github.com/plus3/boxpush/internal/levels"
	"github.com/plus3/boxpush/internal/sokoban"
)

// Status text placement, in screen pixels.
const (
	statusMinX  = 525
	statusTitle = 60
	statusState = 80
	statusMoves = 100
	statusHelpY = 16
)

// Options configure a Game.
type Options struct {
	Config  config.Config
	Level   levels.Entry
	Logger  *log.Logger
	DebugUI bool
}

// Game implements ebiten.Game on top of a sokoban.World.
type Game struct {
	cfg    config.Config
	level  levels.Entry
	logger *log.Logger

	world   *sokoban.World
	sprites *spriteCache

	overlay    *debugui_ebiten.Overlay
	imguiInput *ecs.Singleton[debugui.ImguiInputState]
	perf       *debugui.PerformanceStats
	timer      *debugui.FrameTimer
}

// New builds a Game. With DebugUI set it also creates the ImGui backend,
// which owns the window, so it must be called before Run.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	g := &Game{
		cfg:     opts.Config,
		level:   opts.Level,
		logger:  logger,
		sprites: newSpriteCache(opts.Config.AssetDir, logger),
	}
	g.Restart()

	if opts.DebugUI {
		g.enableOverlay()
	}
	return g
}

// Restart rebuilds the world from the current level.
func (g *Game) Restart() {
	g.world = sokoban.NewWorldFromLevel(g.level.Level, g.cfg.WorldOptions(g.logger))
	g.logger.Info("level started", "id", g.level.ID, "name", g.level.Title())
}

// World returns the running simulation.
func (g *Game) World() *sokoban.World {
	return g.world
}

func (g *Game) enableOverlay() {
	win := g.cfg.Window
	backend := debugui_ebiten.NewImguiBackend(win.Title+" (debug)", win.Width, win.Height)

	g.perf = debugui.NewPerformanceStats(120)
	g.timer = debugui.NewFrameTimer()
	archetypes := debugui.NewArchetypeViewer()

	storage, scheduler := debugui.NewOverlay(
		g.renderPlayPanel,
		func() { g.perf.Render(g.world.Storage(), g.world.Scheduler()) },
		func() { archetypes.Render(g.world.Storage()) },
	)

	g.overlay = &debugui_ebiten.Overlay{Backend: backend, Scheduler: scheduler}
	g.imguiInput = ecs.NewSingleton[debugui.ImguiInputState](storage)
}

func (g *Game) renderPlayPanel() {
	if !imgui.BeginV("Play State", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Level: %s (%s)", g.level.Title(), g.level.ID))
	imgui.Text(fmt.Sprintf("State: %v", g.world.State()))
	imgui.Text(fmt.Sprintf("Moves: %d", g.world.MoveCount()))
	imgui.Text(fmt.Sprintf("Clock: %v", g.world.Elapsed().Truncate(time.Millisecond)))

	keys := g.world.PendingKeys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	imgui.Text(fmt.Sprintf("Input queue: [%s]", strings.Join(names, " ")))

	if imgui.Button("Restart") {
		g.Restart()
	}

	imgui.End()
}

func (g *Game) keyboardCaptured() bool {
	if g.imguiInput == nil {
		return false
	}
	state := g.imguiInput.Get()
	return state != nil && state.WantCaptureKeyboard
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if !g.keyboardCaptured() {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.Restart()
		}
		for _, key := range justPressedKeys() {
			g.world.PushKey(key)
		}
	}

	prev := g.world.State()
	g.world.Tick(g.cfg.TickInterval())
	if prev != sokoban.Won && g.world.State() == sokoban.Won {
		g.logger.Info("level complete", "id", g.level.ID, "moves", g.world.MoveCount())
	}

	if g.overlay != nil {
		delta := g.timer.Delta()
		g.perf.Record(delta)
		g.overlay.Update(delta.Seconds())
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	tile := float64(g.cfg.TileSize)

	for _, s := range g.world.Sprites() {
		x, y := float64(s.X)*tile, float64(s.Y)*tile

		img := g.sprites.Image(s.Path)
		if img == nil {
			vector.DrawFilledRect(screen, float32(x), float32(y), float32(tile), float32(tile), placeholderColor(s.Path), false)
			continue
		}

		bounds := img.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(tile/float64(bounds.Dx()), tile/float64(bounds.Dy()))
		op.GeoM.Translate(x, y)
		screen.DrawImage(img, op)
	}

	statusX := max(statusMinX, g.world.Grid().Width*g.cfg.TileSize+16)
	ebitenutil.DebugPrintAt(screen, g.level.Title(), statusX, statusTitle)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%v", g.world.State()), statusX, statusState)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Moves: %d", g.world.MoveCount()), statusX, statusMoves)
	ebitenutil.DebugPrintAt(screen, "arrows/WASD move  R restart  Esc quit", statusX, g.cfg.Window.Height-statusHelpY)

	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
	}
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// Run opens the window and blocks until it is closed or Escape is pressed.
func Run(opts Options) error {
	game := New(opts)

	win := opts.Config.Window
	ebiten.SetWindowSize(win.Width, win.Height)
	ebiten.SetWindowTitle(win.Title)
	ebiten.SetTPS(opts.Config.TickRate)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
