package kinetic

import (
	"reflect"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowState wraps the single shared GLFW window. The prototype draws
// nothing into it; it exists for event polling and key state.
type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string

	scrollHooked bool
}

func createWindowState(windowWidth int, windowHeight int, windowTitle string) *WindowState {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		panic(err)
	}

	return &WindowState{
		windowGlfw:   win,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		windowTitle:  windowTitle,
	}
}

// WindowModule ensures a single shared GLFW window (WindowState) is
// available as a resource. Install is idempotent: an existing WindowState
// resource is reused.
type WindowModule struct {
	Width  int
	Height int
	Title  string
}

func NewWindow(width, height int, title string) *WindowModule {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "kinetic"
	}
	return &WindowModule{Width: width, Height: height, Title: title}
}

func (m WindowModule) Install(app *App, cmd *Commands) {
	t := reflect.TypeOf(WindowState{})
	if _, ok := app.resource(t); ok {
		return
	}

	cmd.AddResources(createWindowState(m.Width, m.Height, m.Title))
	app.UseSystem(
		System(windowCloseSystem).
			InStage(Finale),
	)
}

// windowCloseSystem stops the frame loop when the window is closed or
// escape is held.
func windowCloseSystem(s *WindowState, input *Input, cmd *Commands) {
	if s.windowGlfw.ShouldClose() || input.Pressed[KeyEscape] {
		cmd.Quit()
	}
}
