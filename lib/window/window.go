package window

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/graphicsprogramming/quadrender/lib/config"
	gopointer "github.com/mattn/go-pointer"
)

// Window is the drawable surface and owner of the GL context. It must be
// created, used and destroyed on the same locked OS thread.
type Window struct {
	Name   string
	Window *glfw.Window

	closeRequested atomic.Bool
	self           unsafe.Pointer
}

func New(cfg *config.WindowCfg) (*Window, error) {
	w := &Window{Name: cfg.Title}
	w.log("Initializing window")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("could not create %dx%d window: %w", cfg.Width, cfg.Height, err)
	}
	w.Window = window

	// All GL calls made on this thread from now on go to this window.
	window.MakeContextCurrent()
	if cfg.VSync != nil && !*cfg.VSync {
		glfw.SwapInterval(0)
	} else {
		glfw.SwapInterval(1)
	}

	w.self = gopointer.Save(w)
	window.SetUserPointer(w.self)
	SetupShortcutKeys(w)

	w.log("Created %dx%d window", cfg.Width, cfg.Height)
	return w, nil
}

// RequestClose may be called from any goroutine; the render loop picks it
// up on its next ShouldClose check.
func (w *Window) RequestClose() {
	w.closeRequested.Store(true)
}

func (w *Window) ShouldClose() bool {
	return w.closeRequested.Load() || w.Window.ShouldClose()
}

func (w *Window) SwapBuffers() {
	w.Window.SwapBuffers()
}

func (w *Window) Poll() {
	glfw.PollEvents()
}

func (w *Window) Destroy() {
	if w.Window == nil {
		return
	}
	w.Window.SetUserPointer(nil)
	gopointer.Unref(w.self)
	w.Window.Destroy()
	w.Window = nil
	glfw.Terminate()
}

func (w *Window) log(msg string, args ...interface{}) {
	slog.Info(fmt.Sprintf(msg, args...), slog.String("module", "window"))
}

// fromGLFW recovers the Window that owns a glfw window.
func fromGLFW(gw *glfw.Window) *Window {
	p := gw.GetUserPointer()
	if p == nil {
		return nil
	}
	w, _ := gopointer.Restore(p).(*Window)
	return w
}
