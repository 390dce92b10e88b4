package sokoban

import (
	"cmp"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/plus3/boxpush/ecs"
)

// Options tune a World.
type Options struct {
	// FreezeOnWin makes the movement system drop input once the level is won.
	FreezeOnWin bool
	Animation   Animation
	Logger      *log.Logger
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		FreezeOnWin: true,
		Animation:   DefaultAnimation,
	}
}

// Sprite is one drawable entity in a frame snapshot.
type Sprite struct {
	Entity ecs.EntityId
	X, Y   int
	Z      int
	Kind   RenderKind
	Path   string
}

// World owns the store and the per-tick system pipeline for one level.
// It is not safe for concurrent use; hosts call PushKey and Tick from the
// same goroutine that reads the snapshot.
type World struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	level     *Level
	opts      Options
	logger    *log.Logger

	input *ecs.Singleton[InputQueue]
	play  *ecs.Singleton[GamePlay]
	clock *ecs.Singleton[Clock]
	grid  *ecs.Singleton[Grid]

	drawables *ecs.View[struct {
		ecs.EntityId
		*Position
		*Renderable
	}]
}

// NewWorld parses text and builds a ready-to-tick World. A parse error
// aborts before any entity is created.
func NewWorld(text string, opts Options) (*World, error) {
	level, err := ParseLevel(text)
	if err != nil {
		return nil, err
	}
	return NewWorldFromLevel(level, opts), nil
}

// NewWorldFromLevel builds a World from an already parsed level.
func NewWorldFromLevel(level *Level, opts Options) *World {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	w := &World{
		storage: storage,
		level:   level,
		opts:    opts,
		logger:  logger,
		input:   ecs.NewSingleton[InputQueue](storage),
		play:    ecs.NewSingleton[GamePlay](storage),
		clock:   ecs.NewSingleton[Clock](storage),
	}

	level.Spawn(storage)
	w.grid = ecs.NewSingleton[Grid](storage)
	w.drawables = ecs.NewView[struct {
		ecs.EntityId
		*Position
		*Renderable
	}](storage)

	w.scheduler = ecs.NewScheduler(storage)
	w.scheduler.Register(&MovementSystem{FreezeOnWin: opts.FreezeOnWin, Logger: logger})
	w.scheduler.Register(&GameplayStateSystem{Logger: logger})
	w.scheduler.Register(&ClockSystem{})

	logger.Info("level loaded",
		"width", level.Width, "height", level.Height,
		"entities", storage.Len(),
		"boxes", level.Count(TokenRedBox)+level.Count(TokenBlueBox),
		"spots", level.Count(TokenRedSpot)+level.Count(TokenBlueSpot))

	return w
}

// PushKey queues a key press for the next tick.
func (w *World) PushKey(key KeyCode) {
	w.input.Get().Push(key)
}

// Tick runs movement, win evaluation and the clock, in that order.
func (w *World) Tick(dt time.Duration) {
	w.scheduler.Once(dt.Seconds())
}

// State returns the current play state.
func (w *World) State() PlayState {
	return w.play.Get().State
}

// MoveCount returns the number of successful moves so far.
func (w *World) MoveCount() int {
	return w.play.Get().MoveCount
}

// Elapsed returns the accumulated clock time.
func (w *World) Elapsed() time.Duration {
	return w.clock.Get().Elapsed
}

// PendingKeys returns the queued keys, oldest first.
func (w *World) PendingKeys() []KeyCode {
	return w.input.Get().Keys()
}

// Grid returns the level bounds.
func (w *World) Grid() Grid {
	return *w.grid.Get()
}

// Level returns the parsed level the world was built from.
func (w *World) Level() *Level {
	return w.level
}

// Storage exposes the underlying store for read-only tooling.
func (w *World) Storage() *ecs.Storage {
	return w.storage
}

// Scheduler exposes the tick pipeline, mostly for its stats.
func (w *World) Scheduler() *ecs.Scheduler {
	return w.scheduler
}

// Sprites returns every drawable entity with at least one asset, ordered by layer, then row, then
// column, then entity id. Animated renderables resolve to the frame for the
// current clock time.
func (w *World) Sprites() []Sprite {
	elapsed := w.Elapsed()

	var sprites []Sprite
	for id, item := range w.drawables.Iter() {
		if item.Renderable.Len() == 0 {
			continue
		}
		sprites = append(sprites, Sprite{
			Entity: id,
			X:      item.Position.X,
			Y:      item.Position.Y,
			Z:      item.Position.Z,
			Kind:   item.Renderable.Kind(),
			Path:   item.Renderable.PathAt(elapsed, w.opts.Animation),
		})
	}

	slices.SortFunc(sprites, func(a, b Sprite) int {
		return cmp.Or(
			cmp.Compare(a.Z, b.Z),
			cmp.Compare(a.Y, b.Y),
			cmp.Compare(a.X, b.X),
			cmp.Compare(a.Entity, b.Entity),
		)
	})
	return sprites
}
