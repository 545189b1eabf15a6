package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestKeyEdges(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeyW, glfw.Press)
	assert.True(t, im.IsActive(ActionMoveForward))
	assert.True(t, im.JustPressed(ActionMoveForward))

	im.PostUpdate()
	im.HandleKeyEvent(glfw.KeyW, glfw.Repeat)
	assert.True(t, im.IsActive(ActionMoveForward))
	assert.False(t, im.JustPressed(ActionMoveForward), "repeat is not a new press")

	im.HandleKeyEvent(glfw.KeyW, glfw.Release)
	assert.False(t, im.IsActive(ActionMoveForward))
	assert.True(t, im.JustReleased(ActionMoveForward))
}

func TestHotbarBindings(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.Key7, glfw.Press)
	assert.True(t, im.JustPressed(ActionHotbar7))
	assert.False(t, im.JustPressed(ActionHotbar6))
}

func TestMouseButtonsAndRebinding(t *testing.T) {
	im := NewInputManager()
	im.HandleMouseButtonEvent(glfw.MouseButtonLeft, glfw.Press)
	assert.True(t, im.IsActive(ActionBreak))

	im.UnbindMouseButton(glfw.MouseButtonRight)
	im.HandleMouseButtonEvent(glfw.MouseButtonRight, glfw.Press)
	assert.False(t, im.IsActive(ActionPlace))

	im.UnbindKey(glfw.KeyW)
	im.BindKey(glfw.KeyUp, ActionMoveForward)
	im.HandleKeyEvent(glfw.KeyW, glfw.Press)
	assert.False(t, im.IsActive(ActionMoveForward))
	im.HandleKeyEvent(glfw.KeyUp, glfw.Press)
	assert.True(t, im.IsActive(ActionMoveForward))

	assert.False(t, im.IsActive(ActionCount))
	assert.False(t, im.JustPressed(-1))
}

func TestLookDelta(t *testing.T) {
	im := NewInputManager()
	im.HandleCursorPos(100, 100)
	dx, dy := im.LookDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	im.HandleCursorPos(110, 95)
	im.HandleCursorPos(115, 90)
	dx, dy = im.LookDelta()
	assert.Equal(t, 15.0, dx)
	assert.Equal(t, 10.0, dy, "y grows upwards")

	dx, dy = im.LookDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	im.ResetCursor()
	im.HandleCursorPos(0, 0)
	dx, _ = im.LookDelta()
	assert.Zero(t, dx)
}
