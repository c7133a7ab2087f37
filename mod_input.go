package kinetic

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyA int = iota
	KeyD
	KeyS
	KeyW
	KeyQ
	KeyE
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeySpace
	KeyEscape
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
	numKeys
)

// Input is the per-frame key and mouse snapshot. The simulation reads
// only this resource; tests set Pressed directly and never touch GLFW.
type Input struct {
	Pressed      [numKeys]bool
	JustPressed  [numKeys]bool
	JustReleased [numKeys]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64

	// ScrollDeltaY accumulates wheel motion since the last frame. Only
	// camera code (out of the simulation's scope) consumes it.
	ScrollDeltaY float64

	scrollAccum float64
}

// applyKey records a level state for one key and derives the edge flags.
func (in *Input) applyKey(key int, down bool) {
	in.JustPressed[key] = down && !in.Pressed[key]
	in.JustReleased[key] = !down && in.Pressed[key]
	in.Pressed[key] = down
}

// HeadlessInputModule installs the Input resource without a window or
// polling. Tests and replay drivers write the snapshot directly.
type HeadlessInputModule struct{}

func (mod HeadlessInputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
}

type InputModule struct{}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate),
	)
}

func inputSystem(s *WindowState, input *Input) {
	if !s.scrollHooked {
		s.scrollHooked = true
		s.windowGlfw.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
			input.scrollAccum += yoff
		})
	}

	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		input.applyKey(key, s.windowGlfw.GetKey(glfwKey) == glfw.Press)
	}
	for btn, glfwBtn := range buttonToGlfw {
		input.applyKey(btn, s.windowGlfw.GetMouseButton(glfwBtn) == glfw.Press)
	}

	mx, my := s.windowGlfw.GetCursorPos()
	input.MouseDeltaX = mx - input.MouseX
	input.MouseDeltaY = my - input.MouseY
	input.MouseX = mx
	input.MouseY = my

	input.ScrollDeltaY = input.scrollAccum
	input.scrollAccum = 0
}

var keyToGlfw = map[int]glfw.Key{
	KeyA:      glfw.KeyA,
	KeyD:      glfw.KeyD,
	KeyS:      glfw.KeyS,
	KeyW:      glfw.KeyW,
	KeyQ:      glfw.KeyQ,
	KeyE:      glfw.KeyE,
	KeyLeft:   glfw.KeyLeft,
	KeyRight:  glfw.KeyRight,
	KeyUp:     glfw.KeyUp,
	KeyDown:   glfw.KeyDown,
	KeySpace:  glfw.KeySpace,
	KeyEscape: glfw.KeyEscape,
}

var buttonToGlfw = map[int]glfw.MouseButton{
	MouseButtonLeft:   glfw.MouseButtonLeft,
	MouseButtonRight:  glfw.MouseButtonRight,
	MouseButtonMiddle: glfw.MouseButtonMiddle,
}
