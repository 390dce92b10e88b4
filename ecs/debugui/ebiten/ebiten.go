// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/boxpush/ecs"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Use this to integrate Dear ImGui rendering into Ebiten game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. The imgui.ini file is disabled.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend}
}

// Overlay ticks an overlay scheduler inside an ImGui frame and draws the
// result on top of the host's screen.
type Overlay struct {
	Backend   *ImguiBackend
	Scheduler *ecs.Scheduler
}

// Update runs one ImGui frame.
func (o *Overlay) Update(dt float64) {
	o.Backend.BeginFrame()
	o.Scheduler.Once(dt)
	o.Backend.EndFrame()
}

// Draw renders the ImGui draw data onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	o.Backend.Draw(screen)
}

// Layout forwards the outside size to the backend.
func (o *Overlay) Layout(outsideWidth, outsideHeight int) {
	o.Backend.Layout(outsideWidth, outsideHeight)
}
