package breath

import "github.com/go-gl/glfw/v3.3/glfw"

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{
		prevKeys: make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Held reports whether the key is currently down, tracking its edge state
// so subsequent JustPressed calls stay consistent.
func (in *Input) Held(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	in.prevKeys[key] = down
	return down
}
