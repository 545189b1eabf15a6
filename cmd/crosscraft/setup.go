package main

import (
	"fmt"

	"crosscraft/internal/config"
	"crosscraft/internal/input"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/sirupsen/logrus"
)

func setupLogger(cfg config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(cfg.LogLevel())
	return log
}

func setupWindow(cfg config.WindowConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init gl: %w", err)
	}
	glfw.SwapInterval(1)
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	return window, nil
}

// capturedControls hides input from the observer while the cursor is released.
type capturedControls struct {
	im       *input.InputManager
	captured bool
}

func (c *capturedControls) IsActive(a input.Action) bool {
	return c.captured && c.im.IsActive(a)
}

func (c *capturedControls) JustPressed(a input.Action) bool {
	return c.captured && c.im.JustPressed(a)
}

func (c *capturedControls) LookDelta() (float64, float64) {
	dx, dy := c.im.LookDelta()
	if !c.captured {
		return 0, 0
	}
	return dx, dy
}

// setCaptured grabs or releases the cursor.
func (c *capturedControls) setCaptured(window *glfw.Window, captured bool) {
	c.captured = captured
	mode := glfw.CursorNormal
	if captured {
		mode = glfw.CursorDisabled
		c.im.ResetCursor()
	}
	window.SetInputMode(glfw.CursorMode, mode)
}
