package window

import (
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func SetupShortcutKeys(w *Window) {
	w.Window.SetKeyCallback(keyCallback)
}

func keyCallback(gw *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	w := fromGLFW(gw)
	if w == nil {
		return
	}
	if isQuitShortcut(key, action, mods) {
		slog.Info("told to quit, exiting", slog.String("module", "window"))
		w.RequestClose()
	}
}

// isQuitShortcut matches Escape, or Ctrl+Shift+Q on release.
func isQuitShortcut(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) bool {
	if key == glfw.KeyEscape && action == glfw.Press {
		return true
	}
	return action == glfw.Release &&
		key == glfw.KeyQ &&
		mods&glfw.ModControl != 0 &&
		mods&glfw.ModShift != 0
}
