// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It keeps ImGui panels as ECS components and draws them from a system, so an
// overlay is just a small Storage ticked between the backend's BeginFrame and EndFrame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/boxpush/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem runs every ImguiItem render function, in spawn order.
// It also updates the ImguiInputState singleton with current input capture state.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

// Execute updates input state and renders all ImGui items.
// It must run inside an ImGui frame.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
		state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		if item.ImguiItem.Render != nil {
			item.ImguiItem.Render()
		}
	}
}

// RegisterComponents registers the component types an overlay storage needs.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// NewOverlay builds a storage and scheduler that draw the given panels.
// The returned scheduler should be ticked once per host frame inside an ImGui frame.
func NewOverlay(panels ...func()) (*ecs.Storage, *ecs.Scheduler) {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)

	storage := ecs.NewStorage(registry)
	ecs.NewSingleton[ImguiInputState](storage)
	for _, render := range panels {
		storage.Spawn(ImguiItem{Render: render})
	}

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&ImguiSystem{})
	return storage, scheduler
}
